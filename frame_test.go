// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNewFrame(t *testing.T) {
	f := NewFrame(3, 2)
	if f.Width() != 3 || f.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", f.Width(), f.Height())
	}
	if len(f.ColorData()) != 18 || len(f.AlphaData()) != 6 {
		t.Errorf("buffers = %d/%d bytes, want 18/6", len(f.ColorData()), len(f.AlphaData()))
	}
	if f.RGBAt(-1, 0) != (RGB{}) || f.AlphaAt(3, 0) != 0 {
		t.Error("out-of-bounds reads should be zero")
	}
}

func TestFramePremultipliedBGRA(t *testing.T) {
	f := NewFrame(2, 1)
	f.setRGB(0, RGB{200, 100, 50})
	f.alpha[0] = 128
	f.setRGB(1, RGB{255, 255, 255})
	f.alpha[1] = 255

	got := f.PremultipliedBGRA(nil)
	want := []byte{25, 50, 100, 128, 255, 255, 255, 255}
	if !bytes.Equal(got, want) {
		t.Errorf("PremultipliedBGRA = %v, want %v", got, want)
	}

	// Appends rather than overwrites.
	prefix := []byte{9}
	if out := f.PremultipliedBGRA(prefix); len(out) != 9 || out[0] != 9 {
		t.Errorf("PremultipliedBGRA did not append: %v", out)
	}
}

func TestFrameImage(t *testing.T) {
	f := NewFrame(2, 2)
	f.setRGB(3, RGB{10, 20, 30})
	f.alpha[3] = 40

	img := f.Image()
	if c := img.NRGBAAt(1, 1); c != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("Image().NRGBAAt(1, 1) = %v", c)
	}
	if c := f.At(1, 1); c != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("At(1, 1) = %v", c)
	}
	if f.Bounds().Dx() != 2 || f.ColorModel() != color.NRGBAModel {
		t.Error("image.Image methods disagree with the frame")
	}
}

func TestFrameSavePNG(t *testing.T) {
	fields := testFields(t)
	f := Render(fields, InteractionState{}, DefaultPalette())

	path := filepath.Join(t.TempDir(), "dial.png")
	if err := f.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	img, err := png.Decode(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != f.Bounds() {
		t.Errorf("decoded bounds = %v, want %v", img.Bounds(), f.Bounds())
	}
	wantR, wantG, wantB, wantA := f.At(50, 50).RGBA()
	gotR, gotG, gotB, gotA := img.At(50, 50).RGBA()
	if wantR != gotR || wantG != gotG || wantB != gotB || wantA != gotA {
		t.Error("center pixel changed in the PNG round trip")
	}
}

func TestSavePNGImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 200})

	path := filepath.Join(t.TempDir(), "scaled.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := png.Decode(r)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c := color.NRGBAModel.Convert(got.At(2, 1)); c != (color.NRGBA{R: 10, G: 20, B: 30, A: 200}) {
		t.Errorf("pixel (2,1) = %v after the round trip", c)
	}
}

func TestFrameSavePNGBadPath(t *testing.T) {
	f := NewFrame(1, 1)
	if err := f.SavePNG(filepath.Join(t.TempDir(), "missing", "x.png")); err == nil {
		t.Error("SavePNG into a missing directory succeeded")
	}
}
