// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/dial"
)

// snapshot renders one frame of cfg to a PNG file. A non-negative angle
// (degrees) starts a wheel drag there so the selector is drawn.
func snapshot(cfg dial.Config, path string, angle, scale float64) error {
	d, err := dial.New(cfg, dial.WithFieldCache(dial.NewFieldCache(1)))
	if err != nil {
		return err
	}
	if angle >= 0 {
		x, y := ringPoint(d.Geometry(), angle*math.Pi/180)
		d.Press(x, y)
	}

	var img image.Image = d.Frame().Image()
	if scale != 1 {
		img = scaleImage(img, scale)
	}

	if err := dial.SavePNG(path, img); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	dial.Logger().Info("snapshot written", "path", path, "size", img.Bounds().Size())
	return nil
}

// ringPoint returns the widget pixel on the middle of the ring at angle
// (radians, 0 pointing left, increasing clockwise on screen through up).
func ringPoint(g *dial.Geometry, angle float64) (float64, float64) {
	r := (g.HoleRadius + g.TotalRadius) / 2
	return float64(g.Width)/2 - r*math.Cos(angle), float64(g.Height)/2 - r*math.Sin(angle)
}

// scaleImage resizes src by factor. Whole factors keep hard pixel edges.
func scaleImage(src image.Image, factor float64) *image.NRGBA {
	b := src.Bounds()
	w := max(1, int(math.Round(float64(b.Dx())*factor)))
	h := max(1, int(math.Round(float64(b.Dy())*factor)))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	var s draw.Scaler = draw.CatmullRom
	if factor == math.Trunc(factor) {
		s = draw.NearestNeighbor
	}
	s.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
