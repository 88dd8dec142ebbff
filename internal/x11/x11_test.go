// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package x11

import (
	"image"
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/gogpu/dial"
)

func TestRowsPerRequest(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{500, putImageReqDataSize / 2000},
		{1, putImageReqDataSize / 4},
		{1 << 16, 1}, // one row exceeds the limit; still send one
		{0, 1},
	}
	for _, tt := range tests {
		got := rowsPerRequest(tt.width)
		if got != tt.want {
			t.Errorf("rowsPerRequest(%d) = %d, want %d", tt.width, got, tt.want)
		}
		if tt.width > 0 && tt.width*4 <= putImageReqDataSize && got*tt.width*4 > putImageReqDataSize {
			t.Errorf("rowsPerRequest(%d) = %d exceeds the request size", tt.width, got)
		}
	}
}

func TestCenteredOrigin(t *testing.T) {
	got := CenteredOrigin(image.Pt(800, 600), image.Pt(500, 500))
	if want := image.Pt(550, 350); got != want {
		t.Errorf("CenteredOrigin = %v, want %v", got, want)
	}
	// Near the screen edge the window may start off screen.
	if got := CenteredOrigin(image.Pt(10, 10), image.Pt(500, 500)); got != image.Pt(-240, -240) {
		t.Errorf("CenteredOrigin near the corner = %v", got)
	}
}

func TestWheelButton(t *testing.T) {
	tests := []struct {
		steps  int
		button xproto.Button
		n      int
	}{
		{1, 4, 1},
		{3, 4, 3},
		{-1, 5, 1},
		{-4, 5, 4},
		{0, 4, 0},
	}
	for _, tt := range tests {
		b, n := wheelButton(tt.steps)
		if b != tt.button || n != tt.n {
			t.Errorf("wheelButton(%d) = (%d, %d), want (%d, %d)", tt.steps, b, n, tt.button, tt.n)
		}
	}
}

func TestWheelEvents(t *testing.T) {
	target := dial.Target{Window: 0x1c00003, X: 40, Y: 70, RootX: 640, RootY: 470}
	press, release := wheelEvents(0x1e6, target, buttonWheelDown)

	if press.Event != 0x1c00003 || press.Root != 0x1e6 {
		t.Errorf("press windows = event 0x%x root 0x%x", press.Event, press.Root)
	}
	if press.EventX != 40 || press.EventY != 70 || press.RootX != 640 || press.RootY != 470 {
		t.Errorf("press position = (%d, %d) root (%d, %d)", press.EventX, press.EventY, press.RootX, press.RootY)
	}
	if release.State != xproto.ButtonMask5 {
		t.Errorf("release state = %#x, want ButtonMask5", release.State)
	}
	if press.State != 0 {
		t.Errorf("press state = %#x, want 0", press.State)
	}

	pb, rb := press.Bytes(), release.Bytes()
	if len(pb) != 32 || len(rb) != 32 {
		t.Fatalf("event sizes = %d, %d, want 32", len(pb), len(rb))
	}
	if pb[0] != xproto.ButtonPress || rb[0] != xproto.ButtonRelease {
		t.Errorf("event codes = %d, %d, want %d, %d", pb[0], rb[0], xproto.ButtonPress, xproto.ButtonRelease)
	}
	if pb[1] != 5 || rb[1] != 5 {
		t.Errorf("event details = %d, %d, want 5", pb[1], rb[1])
	}
}

func TestFindVisual(t *testing.T) {
	argb := xproto.VisualInfo{
		VisualId: 0x61, Class: xproto.VisualClassTrueColor,
		RedMask: 0xff0000, GreenMask: 0xff00, BlueMask: 0xff,
	}
	direct := argb
	direct.VisualId, direct.Class = 0x62, xproto.VisualClassDirectColor
	rgb24 := argb
	rgb24.VisualId = 0x21

	screen := &xproto.ScreenInfo{
		AllowedDepths: []xproto.DepthInfo{
			{Depth: 24, Visuals: []xproto.VisualInfo{rgb24}},
			{Depth: 32, Visuals: []xproto.VisualInfo{direct, argb}},
		},
	}
	if vid, ok := findVisual(screen, 32); !ok || vid != 0x61 {
		t.Errorf("findVisual(32) = (0x%x, %v), want (0x61, true)", vid, ok)
	}

	screen.AllowedDepths = screen.AllowedDepths[:1]
	if _, ok := findVisual(screen, 32); ok {
		t.Error("findVisual(32) found a visual on a 24-bit-only screen")
	}
}

type fakePointer struct {
	presses, moves, releases, lost int
	drag                           bool
}

func (p *fakePointer) Press(x, y float64) bool { p.presses++; p.drag = true; return true }
func (p *fakePointer) Move(x, y float64) bool  { p.moves++; return p.drag }
func (p *fakePointer) Release() bool {
	p.releases++
	was := p.drag
	p.drag = false
	return was
}
func (p *fakePointer) CaptureLost() bool {
	p.lost++
	was := p.drag
	p.drag = false
	return was
}
func (p *fakePointer) Present(dial.Presenter, image.Point) error { return nil }

func TestHandler(t *testing.T) {
	p := &fakePointer{}
	h := &handler{d: p}

	h.press(3, 10, 10)
	if p.presses != 0 || h.dirty {
		t.Error("right button press reached the dial")
	}

	h.press(xproto.ButtonIndex1, 10, 10)
	if p.presses != 1 || !h.dirty {
		t.Errorf("left press: presses %d dirty %v", p.presses, h.dirty)
	}

	h.dirty = false
	h.motion(20, 20)
	if !h.dirty {
		t.Error("drag motion did not mark the overlay dirty")
	}

	h.dirty = false
	h.leave(xproto.NotifyModeNormal)
	if p.lost != 0 {
		t.Error("an ordinary LeaveNotify was treated as capture loss")
	}
	h.leave(xproto.NotifyModeGrab)
	if p.lost != 1 || !h.dirty {
		t.Errorf("grab LeaveNotify: lost %d dirty %v", p.lost, h.dirty)
	}

	h.dirty = false
	h.release(xproto.ButtonIndex1)
	if p.releases != 1 || h.dirty {
		t.Errorf("release after capture loss: releases %d dirty %v", p.releases, h.dirty)
	}

	h.motion(30, 30)
	if h.dirty {
		t.Error("idle motion without changes marked the overlay dirty")
	}
}
