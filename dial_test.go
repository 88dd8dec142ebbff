// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import (
	"errors"
	"image"
	"testing"
)

type recordedStep struct {
	target Target
	steps  int
}

// pixel converts a polar position to widget-local pixel coordinates of a
// 100x100 dial.
func pixel(a, r float64) (float64, float64) {
	p := polar(a, r)
	return 50 + p.X, 50 + p.Y
}

type fakePresenter struct {
	frames []*Frame
	origin image.Point
	err    error
}

func (p *fakePresenter) Present(f *Frame, origin image.Point) error {
	p.frames = append(p.frames, f)
	p.origin = origin
	return p.err
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Divisions = 0
	d, err := New(cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New error = %v, want ErrInvalidConfig", err)
	}
	if d != nil {
		t.Error("New returned a dial along with an error")
	}
}

func TestDialDeliversSteps(t *testing.T) {
	var got []recordedStep
	target := Target{Window: 0x2a00007, X: 10, Y: 20, RootX: 110, RootY: 220}
	sink := StepSinkFunc(func(tg Target, n int) error {
		got = append(got, recordedStep{tg, n})
		return nil
	})

	d, err := New(testConfig(),
		WithStepSink(sink),
		WithTarget(target),
		WithFieldCache(NewFieldCache(1)))
	if err != nil {
		t.Fatal(err)
	}
	if d.Target() != target {
		t.Errorf("Target() = %+v, want %+v", d.Target(), target)
	}

	nudge := d.Geometry().NudgeAngle
	if !d.Press(pixel(nudge/2, 30)) {
		t.Fatal("Press in the ring did not start a drag")
	}
	for _, a := range []float64{nudge, 1.5 * nudge, 2.5 * nudge} {
		if !d.Move(pixel(a, 30)) {
			t.Errorf("Move to %v did not request a repaint", a)
		}
	}
	if !d.Release() {
		t.Error("Release of an active drag returned false")
	}

	if len(got) != 2 {
		t.Fatalf("delivered %d steps, want 2: %+v", len(got), got)
	}
	for _, s := range got {
		if s.target != target || s.steps != -1 {
			t.Errorf("delivered %+v, want -1 to %+v", s, target)
		}
	}
}

func TestDialDeadZoneEdgeNoSteps(t *testing.T) {
	var got []int
	d, err := New(testConfig(),
		WithStepSink(StepSinkFunc(func(_ Target, n int) error {
			got = append(got, n)
			return nil
		})),
		WithFieldCache(NewFieldCache(1)))
	if err != nil {
		t.Fatal(err)
	}

	d.Press(pixel(0.3, 30))
	d.Move(65, 50) // offset (15, 0) lies on the dead zone radius
	d.Move(80, 50)
	if len(got) != 0 {
		t.Errorf("steps after leaving the dead zone edge = %v, want none", got)
	}
}

func TestDialSinkErrorNotFatal(t *testing.T) {
	calls := 0
	sink := StepSinkFunc(func(Target, int) error {
		calls++
		return errors.New("injection failed")
	})
	d, err := New(testConfig(), WithStepSink(sink))
	if err != nil {
		t.Fatal(err)
	}

	nudge := d.Geometry().NudgeAngle
	d.Press(pixel(nudge/2, 30))
	d.Move(pixel(1.5*nudge, 30))
	d.Move(pixel(2.5*nudge, 30))
	if calls != 2 {
		t.Errorf("sink called %d times, want 2", calls)
	}
	if d.State().Kind != InteractionScrollWheel {
		t.Error("sink error ended the drag")
	}
}

func TestDialWithoutSink(t *testing.T) {
	d, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	nudge := d.Geometry().NudgeAngle
	d.Press(pixel(nudge/2, 30))
	d.Move(pixel(1.5*nudge, 30)) // must not panic
}

func TestDialTerminate(t *testing.T) {
	tests := []struct {
		name  string
		moveX float64
		moveY float64
		want  int
	}{
		{"released over the button", 52, 49, 1},
		{"moved off first", 80, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terminated := 0
			c := &fakeCapturer{}
			d, err := New(testConfig(),
				WithCapturer(c),
				WithTerminate(func() { terminated++ }))
			if err != nil {
				t.Fatal(err)
			}

			if !d.Press(50, 50) {
				t.Fatal("Press on the close button did not start")
			}
			d.Move(tt.moveX, tt.moveY)
			d.Release()
			d.Release()

			if terminated != tt.want {
				t.Errorf("terminate called %d times, want %d", terminated, tt.want)
			}
			if c.captures != 1 || c.releases != 1 {
				t.Errorf("captures/releases = %d/%d, want 1/1", c.captures, c.releases)
			}
		})
	}
}

func TestDialCaptureLost(t *testing.T) {
	terminated := false
	d, err := New(testConfig(), WithTerminate(func() { terminated = true }))
	if err != nil {
		t.Fatal(err)
	}
	d.Press(50, 50)
	if !d.CaptureLost() {
		t.Error("CaptureLost during a press returned false")
	}
	if d.Release() {
		t.Error("Release after capture loss reported an active drag")
	}
	if terminated {
		t.Error("capture loss terminated the dial")
	}
}

func TestDialSharesFields(t *testing.T) {
	c := NewFieldCache(2)
	a, err := New(testConfig(), WithFieldCache(c))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(testConfig(), WithFieldCache(c))
	if err != nil {
		t.Fatal(err)
	}
	if a.Fields() != b.Fields() {
		t.Error("dials with equal configs built separate fields")
	}
	if s := c.Stats(); s.Misses != 1 {
		t.Errorf("field builds = %d, want 1", s.Misses)
	}
}

func TestDialFrame(t *testing.T) {
	cfg := testConfig()
	cfg.Palette.Selector = RGB{255, 0, 255}
	d, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}

	f := d.Frame()
	if f.Width() != 100 || f.Height() != 100 {
		t.Fatalf("frame = %dx%d, want 100x100", f.Width(), f.Height())
	}

	d.Press(pixel(2, 30))
	x, y := pixel(2, 30)
	if got := d.Frame().RGBAt(int(x+0.5), int(y+0.5)); got != cfg.Palette.Selector {
		t.Errorf("pixel under the pointer = %v, want selector color", got)
	}
}

func TestDialPresent(t *testing.T) {
	d, err := New(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	p := &fakePresenter{}
	origin := image.Pt(300, 200)
	if err := d.Present(p, origin); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(p.frames) != 1 || p.origin != origin {
		t.Errorf("presenter got %d frames at %v", len(p.frames), p.origin)
	}

	cause := errors.New("connection closed")
	p.err = cause
	err = d.Present(p, origin)
	if !errors.Is(err, ErrPresent) || !errors.Is(err, cause) {
		t.Errorf("Present error = %v, want ErrPresent wrapping the cause", err)
	}
}

func TestOptionsIgnoreNil(t *testing.T) {
	o := defaultOptions()
	WithCapturer(nil)(&o)
	WithFieldCache(nil)(&o)
	WithTerminate(nil)(&o)
	if o.capturer == nil || o.fields == nil || o.onTerminate == nil {
		t.Errorf("nil option replaced a default: %+v", o)
	}
}
