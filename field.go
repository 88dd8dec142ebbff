// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import (
	"math"

	"github.com/gogpu/dial/internal/parallel"
)

// PolarField holds the angle and distance of every pixel measured from
// the widget center. A field is never mutated after BuildPolarField.
type PolarField struct {
	width  int
	height int
	angle  []float64
	dist   []float64
}

// BuildPolarField computes the field for a width x height widget.
// Each pixel (px, py) has offset dx = px - w/2, dy = py - h/2 from the
// center, angle atan2(dy, dx) + π in [0, 2π) and distance hypot(dx, dy).
//
// The cost is O(w·h); use a FieldCache rather than calling it per frame.
func BuildPolarField(width, height int) *PolarField {
	f := &PolarField{
		width:  width,
		height: height,
		angle:  make([]float64, width*height),
		dist:   make([]float64, width*height),
	}

	cx, cy := float64(width)/2, float64(height)/2
	parallel.Rows(width, height, func(y0, y1 int) {
		for py := y0; py < y1; py++ {
			dy := float64(py) - cy
			row := py * width
			for px := 0; px < width; px++ {
				dx := float64(px) - cx
				f.angle[row+px] = NormalizeAngle(math.Atan2(dy, dx) + math.Pi)
				f.dist[row+px] = math.Sqrt(dx*dx + dy*dy)
			}
		}
	})
	return f
}

// Width returns the field width.
func (f *PolarField) Width() int { return f.width }

// Height returns the field height.
func (f *PolarField) Height() int { return f.height }

// Len returns the number of pixels.
func (f *PolarField) Len() int { return len(f.angle) }

// Angle returns the angle of the pixel at linear index i.
func (f *PolarField) Angle(i int) float64 { return f.angle[i] }

// Distance returns the distance of the pixel at linear index i.
func (f *PolarField) Distance(i int) float64 { return f.dist[i] }

// AngleAt returns the angle of pixel (x, y).
func (f *PolarField) AngleAt(x, y int) float64 { return f.angle[y*f.width+x] }

// DistanceAt returns the distance of pixel (x, y).
func (f *PolarField) DistanceAt(x, y int) float64 { return f.dist[y*f.width+x] }

// StaticMasks are the regions that depend only on the field and the
// geometry. They are built with the field and shared by every frame.
type StaticMasks struct {
	Ring          *Mask
	RingAA        *Mask // edge shells of the ring, inner and outer
	RingBorder    *Mask
	Hole          *Mask
	CloseButton   *Mask
	CloseButtonAA *Mask

	// StripeParity marks the even segments. It only tints the background.
	StripeParity *Mask
}

// BuildStaticMasks derives the static region masks from f and g.
func BuildStaticMasks(f *PolarField, g *Geometry) *StaticMasks {
	w, h := f.width, f.height
	d := f.dist

	ring := maskWhere(w, h, func(i int) bool {
		return d[i] > g.HoleRadius && d[i] < g.TotalRadius
	})
	shrunk := func(by float64) *Mask {
		return maskWhere(w, h, func(i int) bool {
			return d[i] < g.TotalRadius-by && d[i] > g.HoleRadius+by
		})
	}
	closeButton := maskWhere(w, h, func(i int) bool {
		return d[i] < g.CloseButtonRadius
	})

	return &StaticMasks{
		Ring:        ring,
		RingAA:      ring.Xor(shrunk(g.AAEdgeWidth)),
		RingBorder:  ring.Xor(shrunk(g.BorderThickness)),
		Hole:        maskWhere(w, h, func(i int) bool { return d[i] < g.HoleRadius }),
		CloseButton: closeButton,
		CloseButtonAA: closeButton.Xor(maskWhere(w, h, func(i int) bool {
			return d[i] < g.CloseButtonRadius-g.AAEdgeWidth
		})),
		StripeParity: maskWhere(w, h, func(i int) bool {
			return g.Segment(f.angle[i])%2 == 0
		}),
	}
}

// Fields bundles everything the compositor needs that does not change
// between frames.
type Fields struct {
	Geometry *Geometry
	Polar    *PolarField
	Masks    *StaticMasks
}

// BuildFields computes the polar field and static masks for g.
func BuildFields(g *Geometry) *Fields {
	polar := BuildPolarField(g.Width, g.Height)
	return &Fields{
		Geometry: g,
		Polar:    polar,
		Masks:    BuildStaticMasks(polar, g),
	}
}
