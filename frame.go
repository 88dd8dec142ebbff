// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Frame is one composited picture of the dial: an RGB color buffer and a
// separate alpha buffer, both in row order. Color is not premultiplied.
type Frame struct {
	width  int
	height int
	color  []uint8 // RGB, 3 bytes per pixel
	alpha  []uint8
}

// NewFrame creates a black, fully transparent frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		color:  make([]uint8, width*height*3),
		alpha:  make([]uint8, width*height),
	}
}

// Width returns the frame width.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height.
func (f *Frame) Height() int { return f.height }

// ColorData returns the raw RGB buffer.
func (f *Frame) ColorData() []uint8 { return f.color }

// AlphaData returns the raw alpha buffer.
func (f *Frame) AlphaData() []uint8 { return f.alpha }

// RGBAt returns the color of pixel (x, y).
func (f *Frame) RGBAt(x, y int) RGB {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return RGB{}
	}
	i := (y*f.width + x) * 3
	return RGB{R: f.color[i], G: f.color[i+1], B: f.color[i+2]}
}

// AlphaAt returns the alpha of pixel (x, y).
func (f *Frame) AlphaAt(x, y int) uint8 {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0
	}
	return f.alpha[y*f.width+x]
}

func (f *Frame) setRGB(i int, c RGB) {
	j := i * 3
	f.color[j+0] = c.R
	f.color[j+1] = c.G
	f.color[j+2] = c.B
}

// PremultipliedBGRA appends the frame to dst as premultiplied 32-bit
// pixels in B, G, R, A byte order, the layout of a little-endian ARGB
// visual.
func (f *Frame) PremultipliedBGRA(dst []byte) []byte {
	for i, a := range f.alpha {
		j := i * 3
		dst = append(dst,
			premul(f.color[j+2], a),
			premul(f.color[j+1], a),
			premul(f.color[j+0], a),
			a)
	}
	return dst
}

func premul(c, a uint8) uint8 {
	return uint8((uint32(c)*uint32(a) + 127) / 255)
}

// Image converts the frame to an *image.NRGBA.
func (f *Frame) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	for i, a := range f.alpha {
		copy(img.Pix[i*4:i*4+3], f.color[i*3:i*3+3])
		img.Pix[i*4+3] = a
	}
	return img
}

// SavePNG writes the frame to a PNG file.
func (f *Frame) SavePNG(path string) error {
	return SavePNG(path, f.Image())
}

// SavePNG writes img to a PNG file, for frames that were scaled or
// otherwise converted after rendering.
func SavePNG(path string, img image.Image) error {
	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// At implements the image.Image interface.
func (f *Frame) At(x, y int) color.Color {
	c := f.RGBAt(x, y)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: f.AlphaAt(x, y)}
}

// Bounds implements the image.Image interface.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// ColorModel implements the image.Image interface.
func (f *Frame) ColorModel() color.Model {
	return color.NRGBAModel
}
