// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import "math"

// SelectorMask returns the highlighted band centered on dragAngle.
//
// A pixel belongs to the core band when its angular offset
// a = normalize(angle - dragAngle + size/2) lies in [0, size] and its
// distance lies in [SelectorInnerRadius, SelectorOuterRadius]. With
// rounded corners enabled the four corners of the band are carved into
// quarter ellipses. The mask is empty when the band has no angular or
// radial extent.
func SelectorMask(f *PolarField, g *Geometry, dragAngle float64) *Mask {
	m := NewMask(f.width, f.height)

	size := g.SelectorAngularSize
	inner, outer := g.SelectorInnerRadius, g.SelectorOuterRadius
	depth := outer - inner
	if !(size > 0) || !(depth > 0) {
		return m
	}

	rounded := g.SelectorRoundedCorners
	for i := range f.angle {
		d := f.dist[i]
		if d < inner || d > outer {
			continue
		}
		a := NormalizeAngle(f.angle[i] - dragAngle + size/2)
		if a > size {
			continue
		}
		if rounded && !insideRoundedBand(a/size, (d-inner)/depth, g.SelectorRoundingH, g.SelectorRoundingV) {
			continue
		}
		m.data[i] = 255
	}
	return m
}

// insideRoundedBand reports whether the unit-square point (u, v) survives
// corner rounding. u runs along the band (angular), v across it (radial).
//
// Points in the horizontal band v ∈ [rv, 1-rv] or the vertical band
// u ∈ [rh/2, 1-rh/2] are always kept. Anything else is a corner point and
// is kept only under the quarter-circle profile of its quadrant.
func insideRoundedBand(u, v, rh, rv float64) bool {
	halfH := rh / 2
	if v >= rv && v <= 1-rv {
		return true
	}
	if u >= halfH && u <= 1-halfH {
		return true
	}

	// t is the normalized distance from the nearest straight edge.
	t := u / halfH
	if u > 0.5 {
		t = (1 - u) / halfH
	}
	e := easeOutCircle(t)

	if v <= 0.5 {
		return v >= lerp(rv, 0, e)
	}
	return v <= lerp(1-rv, 1, e)
}

// easeOutCircle is the quarter-circle ease sqrt(1 - (1-t)²).
func easeOutCircle(t float64) float64 {
	s := 1 - t
	return math.Sqrt(math.Max(0, 1-s*s))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
