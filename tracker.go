// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import (
	"fmt"
	"math"
)

// Interaction identifies what the current press is manipulating.
type Interaction uint8

const (
	// InteractionNone means no press is in progress.
	InteractionNone Interaction = iota

	// InteractionScrollWheel is a drag that started inside the ring.
	InteractionScrollWheel

	// InteractionCloseButton is a press that started on the close button.
	InteractionCloseButton
)

// String returns the interaction name.
func (k Interaction) String() string {
	switch k {
	case InteractionNone:
		return "None"
	case InteractionScrollWheel:
		return "ScrollWheel"
	case InteractionCloseButton:
		return "CloseButton"
	default:
		return fmt.Sprintf("Interaction(%d)", uint8(k))
	}
}

// InteractionState is the mutable gesture state of one dial.
// Pointer positions are offsets from the dial center.
type InteractionState struct {
	Kind          Interaction
	Capturing     bool // between press and release
	DragAngle     float64
	PrevDragAngle float64
	PrevPointer   Point
	HoveringClose bool
}

// Capturer grants exclusive pointer capture to the dial for the duration
// of a drag.
type Capturer interface {
	CapturePointer() error
	ReleasePointer() error
}

// nopCapturer is used when the host has no capture concept.
type nopCapturer struct{}

func (nopCapturer) CapturePointer() error { return nil }
func (nopCapturer) ReleasePointer() error { return nil }

// Update is the outcome of one pointer move.
type Update struct {
	// Steps are the signed notch counts to deliver, in order.
	Steps []int

	// Redraw reports whether the frame changed.
	Redraw bool
}

// Tracker turns pointer samples into discrete scroll steps.
//
// States are Idle, Dragging(ScrollWheel) and Dragging(CloseButton).
// Pointer capture is acquired on entering a drag and released on every
// way back to Idle.
//
// Tracker is not safe for concurrent use; it belongs to the host's event
// thread.
type Tracker struct {
	geom     *Geometry
	capturer Capturer
	held     bool
	state    InteractionState
}

// NewTracker creates an idle tracker. A nil capturer disables capture.
func NewTracker(g *Geometry, c Capturer) *Tracker {
	if c == nil {
		c = nopCapturer{}
	}
	return &Tracker{geom: g, capturer: c}
}

// State returns a copy of the current interaction state.
func (t *Tracker) State() InteractionState {
	return t.state
}

// Press starts a gesture at offset p. It reports whether a drag started.
// A press while a drag is active is ignored.
func (t *Tracker) Press(p Point) bool {
	if t.state.Capturing {
		return false
	}
	t.state.HoveringClose = t.geom.InCloseButton(p)

	switch {
	case t.geom.InRing(p):
		a := AngleOf(p)
		t.state.Kind = InteractionScrollWheel
		t.state.DragAngle = a
		t.state.PrevDragAngle = a
		t.state.PrevPointer = p
	case t.geom.InCloseButton(p):
		t.state.Kind = InteractionCloseButton
	default:
		return false
	}

	t.state.Capturing = true
	t.acquire()
	Logger().Debug("dial: drag started", "kind", t.state.Kind)
	return true
}

// Move feeds a pointer sample at offset p. Hover over the close button is
// tracked on every call, even while idle. Steps are only produced by a
// scroll wheel drag outside the dead zone.
func (t *Tracker) Move(p Point) Update {
	var u Update

	if hovering := t.geom.InCloseButton(p); hovering != t.state.HoveringClose {
		t.state.HoveringClose = hovering
		u.Redraw = true
	}
	if !t.state.Capturing || t.state.Kind != InteractionScrollWheel {
		return u
	}

	if t.geom.InDeadZone(p) {
		// Remember we were in the dead zone so the angle resets on exit.
		t.state.PrevPointer = p
		return u
	}

	u.Steps = t.track(AngleOf(p), p)
	u.Redraw = true
	return u
}

// track advances the drag to angle and returns the steps crossed.
func (t *Tracker) track(angle float64, p Point) []int {
	s := &t.state
	if t.geom.InDeadZone(s.PrevPointer) {
		s.PrevDragAngle = angle
	}

	var steps []int
	delta := s.PrevDragAngle - angle
	switch {
	case delta > math.Pi:
		// Wrapped forward through the 0/2π seam.
		steps = append(steps, -1)
		s.DragAngle = angle + (angle - s.PrevDragAngle)
	case delta < -math.Pi:
		// Wrapped backward.
		steps = append(steps, 1)
		s.DragAngle = angle + (angle - s.PrevDragAngle)
	default:
		seg, last := t.geom.Segment(angle), t.geom.Segment(s.PrevDragAngle)
		if seg != last {
			// A falling segment index scrolls positive.
			steps = append(steps, last-seg)
		}
		s.DragAngle = angle
	}

	s.PrevDragAngle = angle
	s.PrevPointer = p
	return steps
}

// Release ends the gesture. It reports whether the host should terminate:
// a close button press released while still over the button.
func (t *Tracker) Release() bool {
	if !t.state.Capturing {
		return false
	}
	terminate := t.state.Kind == InteractionCloseButton && t.state.HoveringClose
	t.reset(true)
	return terminate
}

// CaptureLost resets the gesture after the host revoked capture. No steps
// and no terminate signal are produced.
func (t *Tracker) CaptureLost() bool {
	if !t.state.Capturing {
		return false
	}
	Logger().Debug("dial: pointer capture lost", "kind", t.state.Kind)
	t.reset(false)
	return true
}

// reset returns to Idle. Hover state survives since it is tracked
// independently of gestures.
func (t *Tracker) reset(releaseCapture bool) {
	if releaseCapture {
		t.release()
	}
	t.held = false
	t.state = InteractionState{HoveringClose: t.state.HoveringClose}
}

func (t *Tracker) acquire() {
	if err := t.capturer.CapturePointer(); err != nil {
		Logger().Warn("dial: pointer capture refused, dragging uncaptured", "err", err)
		return
	}
	t.held = true
}

func (t *Tracker) release() {
	if !t.held {
		return
	}
	t.held = false
	if err := t.capturer.ReleasePointer(); err != nil {
		Logger().Warn("dial: pointer release failed", "err", err)
	}
}
