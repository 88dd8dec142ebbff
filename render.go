// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import "github.com/gogpu/dial/internal/parallel"

// Alpha levels used by the compositor.
const (
	ringAlpha       = 255
	holeAlpha       = 1 // faint, so the hole still catches the pointer
	closeAlpha      = 50
	closeHoverAlpha = 100
	edgeAlphaFactor = 0.75 // fixed pseudo-antialias, not edge coverage
)

// Render composites one frame from the cached fields and the current
// interaction state. It allocates a new frame on every call and has no
// side effects.
//
// Color: background stripes, then the close button, then the ring border.
// Alpha: ring opaque, hole faint, close button 50 or 100 when hovered, and
// every ring or close button edge pixel scaled by 0.75. During a scroll
// wheel drag the selector recolors its pixels and leaves alpha alone.
func Render(fields *Fields, state InteractionState, p Palette) *Frame {
	polar, m := fields.Polar, fields.Masks
	f := NewFrame(polar.width, polar.height)

	closeColor := p.CloseButton
	if state.Kind == InteractionCloseButton && state.Capturing && state.HoveringClose {
		closeColor = p.ClosePressed
	}
	closeA := float64(closeAlpha)
	if state.HoveringClose {
		closeA = closeHoverAlpha
	}

	parallel.Rows(f.width, f.height, func(y0, y1 int) {
		shade(f, m, p, closeColor, closeA, y0*f.width, y1*f.width)
	})

	if state.Kind == InteractionScrollWheel && state.Capturing {
		sel := SelectorMask(polar, fields.Geometry, state.DragAngle)
		for i := range f.alpha {
			if sel.Has(i) {
				f.setRGB(i, p.Selector)
			}
		}
	}
	return f
}

// shade fills the static colors and alpha of pixels [i0, i1).
func shade(f *Frame, m *StaticMasks, p Palette, closeColor RGB, closeA float64, i0, i1 int) {
	for i := i0; i < i1; i++ {
		c := p.Background[0]
		if !m.StripeParity.Has(i) {
			c = p.Background[1]
		}
		if m.CloseButton.Has(i) {
			c = closeColor
		}
		if m.RingBorder.Has(i) {
			c = p.Border
		}
		f.setRGB(i, c)

		var a float64
		if m.Ring.Has(i) {
			a = ringAlpha
		}
		if m.Hole.Has(i) {
			a = holeAlpha
		}
		if m.CloseButton.Has(i) {
			a = closeA
		}
		if m.RingAA.Has(i) || m.CloseButtonAA.Has(i) {
			a *= edgeAlphaFactor
		}
		f.alpha[i] = uint8(a)
	}
}
