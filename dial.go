// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import (
	"errors"
	"fmt"
	"image"
)

// ErrPresent wraps a failure of the Presenter. A dropped frame is not
// fatal; the next repaint tries again.
var ErrPresent = errors.New("dial: present failed")

// Presenter shows a frame on screen with its top-left corner at origin
// (screen coordinates), honoring per-pixel alpha.
type Presenter interface {
	Present(f *Frame, origin image.Point) error
}

// Target is the window scroll steps are attributed to, with the pointer
// position both local to that window and on screen.
type Target struct {
	Window       uint32
	X, Y         int
	RootX, RootY int
}

// StepSink delivers signed scroll steps to a target. Positive steps
// scroll up (wheel away from the user).
type StepSink interface {
	Scroll(t Target, steps int) error
}

// StepSinkFunc adapts a function to the StepSink interface.
type StepSinkFunc func(t Target, steps int) error

// Scroll calls fn(t, steps).
func (fn StepSinkFunc) Scroll(t Target, steps int) error { return fn(t, steps) }

// Dial is one radial scroll overlay: geometry, cached fields, gesture
// tracker and the host collaborators it reports to.
//
// Pointer methods take widget-local pixel coordinates and return whether
// the dial needs a repaint. Dial is not safe for concurrent use.
type Dial struct {
	geom    *Geometry
	fields  *Fields
	palette Palette
	tracker *Tracker
	opts    options
}

// New validates cfg and creates an idle dial.
// The returned error wraps ErrInvalidConfig.
func New(cfg Config, opts ...Option) (*Dial, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	g, err := NewGeometry(cfg)
	if err != nil {
		return nil, err
	}

	d := &Dial{
		geom:    g,
		fields:  o.fields.Fields(g),
		palette: cfg.Palette,
		tracker: NewTracker(g, o.capturer),
		opts:    o,
	}
	Logger().Info("dial: created",
		"width", g.Width, "height", g.Height,
		"radius", g.TotalRadius, "divisions", g.Divisions,
		"deadZoneRadius", g.DeadZoneRadius)
	return d, nil
}

// Geometry returns the derived geometry.
func (d *Dial) Geometry() *Geometry { return d.geom }

// Fields returns the cached polar field and static masks.
func (d *Dial) Fields() *Fields { return d.fields }

// Target returns the step target.
func (d *Dial) Target() Target { return d.opts.target }

// State returns the current interaction state.
func (d *Dial) State() InteractionState { return d.tracker.State() }

// Press handles a primary button press at (x, y).
func (d *Dial) Press(x, y float64) bool {
	return d.tracker.Press(d.geom.Offset(x, y))
}

// Move handles pointer motion to (x, y) and delivers any steps crossed.
func (d *Dial) Move(x, y float64) bool {
	u := d.tracker.Move(d.geom.Offset(x, y))
	for _, n := range u.Steps {
		d.deliver(n)
	}
	return u.Redraw
}

// Release handles the primary button release. A close button press
// released over the button calls the terminate function.
func (d *Dial) Release() bool {
	wasDragging := d.tracker.State().Capturing
	if d.tracker.Release() {
		Logger().Info("dial: close button released, terminating")
		d.opts.onTerminate()
	}
	return wasDragging
}

// CaptureLost handles a forced loss of pointer capture.
func (d *Dial) CaptureLost() bool {
	return d.tracker.CaptureLost()
}

// Frame renders the current state.
func (d *Dial) Frame() *Frame {
	return Render(d.fields, d.tracker.State(), d.palette)
}

// Present renders the current state and hands it to p. Failures are
// logged and returned wrapped in ErrPresent.
func (d *Dial) Present(p Presenter, origin image.Point) error {
	if err := p.Present(d.Frame(), origin); err != nil {
		Logger().Warn("dial: frame dropped", "err", err)
		return fmt.Errorf("%w: %w", ErrPresent, err)
	}
	return nil
}

func (d *Dial) deliver(steps int) {
	if d.opts.sink == nil {
		Logger().Debug("dial: step without sink", "steps", steps)
		return
	}
	if err := d.opts.sink.Scroll(d.opts.target, steps); err != nil {
		Logger().Warn("dial: step not delivered", "steps", steps, "err", err)
	}
}
