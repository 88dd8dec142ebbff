// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package term

import (
	"context"
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/dial"
)

func testFactory(counter *Counter) Factory {
	return func(w, h int, terminate func()) (*dial.Dial, error) {
		return dial.New(FitConfig(dial.DefaultConfig(), w, h),
			dial.WithStepSink(counter),
			dial.WithTerminate(terminate),
			dial.WithFieldCache(dial.NewFieldCache(4)))
	}
}

// newTestHost returns a host on a 40x21 simulation screen, which gives a
// 40x40 pixel dial centered at (20, 20) with radius 19.2.
func newTestHost(t *testing.T) (*Host, tcell.SimulationScreen, *Counter) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(40, 21)

	counter := NewCounter(nil)
	h, err := NewHost(s, testFactory(counter), counter)
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	return h, s, counter
}

func TestFitConfig(t *testing.T) {
	base := dial.DefaultConfig()

	cfg := FitConfig(base, 40, 60)
	if cfg.Width != 40 || cfg.Height != 60 {
		t.Errorf("size = %dx%d, want 40x60", cfg.Width, cfg.Height)
	}
	if cfg.TotalRadius != 0.48*40 {
		t.Errorf("radius = %v, want %v", cfg.TotalRadius, 0.48*40)
	}

	cfg = FitConfig(base, 800, 800)
	if cfg.TotalRadius != base.TotalRadius {
		t.Errorf("radius = %v, want unchanged %v", cfg.TotalRadius, base.TotalRadius)
	}
}

func TestCellToPixel(t *testing.T) {
	x, y := cellToPixel(3, 4)
	if x != 3.5 || y != 9 {
		t.Errorf("cellToPixel(3, 4) = (%v, %v), want (3.5, 9)", x, y)
	}
}

func TestCell(t *testing.T) {
	red := tcell.NewRGBColor(200, 0, 0)
	blue := tcell.NewRGBColor(0, 0, 200)

	tests := []struct {
		name      string
		top, bot  bool
		wantRune  rune
		wantStyle tcell.Style
	}{
		{"both", true, true, upperHalf, tcell.StyleDefault.Foreground(red).Background(blue)},
		{"top only", true, false, upperHalf, tcell.StyleDefault.Foreground(red)},
		{"bottom only", false, true, lowerHalf, tcell.StyleDefault.Foreground(blue)},
		{"neither", false, false, ' ', tcell.StyleDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, style := cell(red, tt.top, blue, tt.bot)
			if r != tt.wantRune {
				t.Errorf("rune = %q, want %q", r, tt.wantRune)
			}
			if style != tt.wantStyle {
				t.Errorf("style = %v, want %v", style, tt.wantStyle)
			}
		})
	}
}

func TestPixel(t *testing.T) {
	h, _, _ := newTestHost(t)
	f := h.Dial().Frame()

	if _, ok := pixel(f, 20, 20); ok {
		t.Error("hole pixel is visible")
	}
	if _, ok := pixel(f, 0, 0); ok {
		t.Error("corner pixel is visible")
	}
	if _, ok := pixel(f, 3, 20); !ok {
		t.Error("ring pixel is not visible")
	}
	if _, ok := pixel(f, 3, f.Height()); ok {
		t.Error("row past the frame is visible")
	}
}

func TestPresent(t *testing.T) {
	h, s, _ := newTestHost(t)
	h.draw()

	if r, _, _, _ := s.GetContent(3, 10); r != upperHalf {
		t.Errorf("ring cell rune = %q, want %q", r, upperHalf)
	}
	if r, _, _, _ := s.GetContent(20, 4); r != ' ' {
		t.Errorf("hole cell rune = %q, want blank", r)
	}
	if r, _, _, _ := s.GetContent(1, 20); r != 's' {
		t.Errorf("status line starts with %q, want 's'", r)
	}
}

func TestNewHostTooSmall(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer s.Fini()
	s.SetSize(40, 1)

	if _, err := NewHost(s, testFactory(NewCounter(nil)), nil); err == nil {
		t.Fatal("NewHost on a one-row screen succeeded")
	}
}

func TestMouseDrag(t *testing.T) {
	h, _, counter := newTestHost(t)

	// (19, 1) is straight up in segment 4, (36, 9) points right in segment 9.
	h.handle(tcell.NewEventMouse(19, 1, tcell.Button1, tcell.ModNone))
	if st := h.Dial().State(); st.Kind != dial.InteractionScrollWheel {
		t.Fatalf("kind after press = %v, want ScrollWheel", st.Kind)
	}
	h.handle(tcell.NewEventMouse(36, 9, tcell.Button1, tcell.ModNone))
	h.handle(tcell.NewEventMouse(36, 9, tcell.ButtonNone, tcell.ModNone))

	if counter.Total() != -5 || counter.Last() != -5 {
		t.Errorf("counter = total %d last %d, want -5, -5", counter.Total(), counter.Last())
	}
	if h.Dial().State().Capturing {
		t.Error("still capturing after release")
	}
	if h.quit {
		t.Error("wheel drag quit the host")
	}
}

func TestCloseButtonQuits(t *testing.T) {
	h, _, counter := newTestHost(t)

	h.handle(tcell.NewEventMouse(20, 9, tcell.Button1, tcell.ModNone))
	h.handle(tcell.NewEventMouse(20, 9, tcell.ButtonNone, tcell.ModNone))

	if !h.quit {
		t.Error("close button click did not quit")
	}
	if counter.Total() != 0 {
		t.Errorf("close button produced %d steps", counter.Total())
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		quit bool
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{"x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, _ := newTestHost(t)
			h.handle(tt.ev)
			if h.quit != tt.quit {
				t.Errorf("quit = %v, want %v", h.quit, tt.quit)
			}
		})
	}
}

func TestResize(t *testing.T) {
	h, s, _ := newTestHost(t)
	h.handle(tcell.NewEventMouse(19, 1, tcell.Button1, tcell.ModNone))

	s.SetSize(60, 31)
	h.handle(tcell.NewEventResize(60, 31))

	g := h.Dial().Geometry()
	if g.Width != 60 || g.Height != 60 {
		t.Errorf("dial size = %dx%d, want 60x60", g.Width, g.Height)
	}
	if h.button || h.Dial().State().Capturing {
		t.Error("drag survived the resize")
	}
	if !h.dirty {
		t.Error("resize did not request a repaint")
	}
}

func TestRunContextDone(t *testing.T) {
	h, _, _ := newTestHost(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.Run(ctx, 60); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

type recordingSink struct {
	steps []int
	err   error
}

func (r *recordingSink) Scroll(_ dial.Target, steps int) error {
	r.steps = append(r.steps, steps)
	return r.err
}

func TestCounterForwards(t *testing.T) {
	next := &recordingSink{err: errors.New("boom")}
	c := NewCounter(next)

	if err := c.Scroll(dial.Target{}, 2); !errors.Is(err, next.err) {
		t.Errorf("Scroll error = %v, want %v", err, next.err)
	}
	_ = c.Scroll(dial.Target{}, -3)

	if c.Total() != -1 || c.Last() != -3 {
		t.Errorf("counter = total %d last %d, want -1, -3", c.Total(), c.Last())
	}
	if len(next.steps) != 2 || next.steps[0] != 2 || next.steps[1] != -3 {
		t.Errorf("forwarded %v, want [2 -3]", next.steps)
	}
}
