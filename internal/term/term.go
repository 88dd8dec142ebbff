// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package term hosts a dial in a terminal.
//
// Each cell shows two vertically stacked dial pixels with the upper half
// block rune, so the ring keeps its aspect ratio on common fonts. The
// mouse drives the dial; steps are tallied on a status line instead of
// being injected anywhere.
package term

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/dial"
)

const (
	upperHalf = '▀'
	lowerHalf = '▄'

	// Pixels fainter than this are left to the terminal background. The
	// hole is drawn at alpha 1 so it stays clickable on a compositor.
	visibleAlpha = 8
)

// Factory builds a dial for a pixel area of w×h. The dial must call
// terminate when its close button fires.
type Factory func(w, h int, terminate func()) (*dial.Dial, error)

// FitConfig returns base resized to w×h with the radius shrunk if the
// ring would not fit.
func FitConfig(base dial.Config, w, h int) dial.Config {
	cfg := base
	cfg.Width, cfg.Height = w, h
	if r := 0.48 * float64(min(w, h)); cfg.TotalRadius > r {
		cfg.TotalRadius = r
	}
	return cfg
}

// Host runs one dial on a tcell screen. It implements dial.Presenter.
type Host struct {
	screen  tcell.Screen
	factory Factory
	counter *Counter

	d      *dial.Dial
	button bool // primary button held
	dirty  bool
	quit   bool
}

// NewHost creates a host on an initialized screen and builds the first
// dial for its current size. counter may be nil.
func NewHost(screen tcell.Screen, factory Factory, counter *Counter) (*Host, error) {
	if counter == nil {
		counter = NewCounter(nil)
	}
	h := &Host{screen: screen, factory: factory, counter: counter}
	if err := h.resize(); err != nil {
		return nil, err
	}
	return h, nil
}

// Dial returns the current dial. It changes on resize.
func (h *Host) Dial() *dial.Dial { return h.d }

// Quit makes Run return after the current event.
func (h *Host) Quit() { h.quit = true }

// Run polls screen events until the dial terminates, the user quits or
// ctx is done, repainting at most fps times per second. The caller owns
// the screen and calls Fini after Run returns.
func (h *Host) Run(ctx context.Context, fps int) error {
	events := make(chan tcell.Event, 100)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()

	h.draw()
	for !h.quit {
		select {
		case ev := <-events:
			h.handle(ev)
		case <-ticker.C:
			if h.dirty {
				h.draw()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	dial.Logger().Info("term: quit", "total", h.counter.Total())
	return nil
}

// handle applies one event.
func (h *Host) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			h.Quit()
		}
	case *tcell.EventMouse:
		cx, cy := ev.Position()
		h.mouse(cx, cy, ev.Buttons()&tcell.Button1 != 0)
	case *tcell.EventResize:
		h.screen.Sync()
		if err := h.resize(); err != nil {
			dial.Logger().Warn("term: keeping previous dial", "err", err)
		}
		h.dirty = true
	}
}

// mouse feeds one mouse report. tcell reports button state rather than
// transitions, so presses and releases are derived from the last report.
func (h *Host) mouse(cx, cy int, down bool) {
	x, y := cellToPixel(cx, cy)
	var redraw bool
	switch {
	case down && !h.button:
		h.button = true
		redraw = h.d.Press(x, y)
	case down:
		redraw = h.d.Move(x, y)
	case h.button:
		h.button = false
		h.d.Move(x, y)
		redraw = h.d.Release()
	default:
		redraw = h.d.Move(x, y)
	}
	if redraw {
		h.dirty = true
	}
}

// resize rebuilds the dial for the screen size, keeping one row for the
// status line.
func (h *Host) resize() error {
	cols, rows := h.screen.Size()
	w, px := cols, 2*(rows-1)
	if w <= 0 || px <= 0 {
		return fmt.Errorf("term: screen %dx%d too small", cols, rows)
	}
	d, err := h.factory(w, px, h.Quit)
	if err != nil {
		return fmt.Errorf("term: build %dx%d dial: %w", w, px, err)
	}
	if h.d != nil && h.d.State().Capturing {
		h.d.CaptureLost()
	}
	h.d, h.button = d, false
	dial.Logger().Debug("term: dial resized", "width", w, "height", px)
	return nil
}

func (h *Host) draw() {
	h.screen.Clear()
	_ = h.d.Present(h, image.Point{})
	h.status()
	h.screen.Show()
	h.dirty = false
}

func (h *Host) status() {
	_, rows := h.screen.Size()
	st := h.d.State()
	line := fmt.Sprintf(" scroll %+d  last %+d  %s  q quits", h.counter.Total(), h.counter.Last(), st.Kind)
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range line {
		h.screen.SetContent(i, rows-1, r, nil, style)
	}
}

// Present draws f with its top-left pixel at origin. origin.Y must be
// even so pixel rows pair up into cells.
func (h *Host) Present(f *dial.Frame, origin image.Point) error {
	cols, rows := h.screen.Size()
	oy := origin.Y / 2
	for cy := 0; cy < (f.Height()+1)/2; cy++ {
		if cy+oy < 0 || cy+oy >= rows-1 {
			continue
		}
		for x := 0; x < f.Width(); x++ {
			if x+origin.X < 0 || x+origin.X >= cols {
				continue
			}
			top, topOK := pixel(f, x, 2*cy)
			bottom, bottomOK := pixel(f, x, 2*cy+1)
			r, style := cell(top, topOK, bottom, bottomOK)
			h.screen.SetContent(x+origin.X, cy+oy, r, nil, style)
		}
	}
	return nil
}

// cellToPixel maps a cell to the dial pixel at its horizontal center and
// between its two half blocks.
func cellToPixel(cx, cy int) (float64, float64) {
	return float64(cx) + 0.5, float64(2*cy + 1)
}

// pixel returns the color of a frame pixel composited over black, or
// false for a pixel too transparent to show.
func pixel(f *dial.Frame, x, y int) (tcell.Color, bool) {
	if y >= f.Height() {
		return tcell.ColorDefault, false
	}
	a := int32(f.AlphaAt(x, y))
	if a < visibleAlpha {
		return tcell.ColorDefault, false
	}
	c := f.RGBAt(x, y)
	return tcell.NewRGBColor(int32(c.R)*a/255, int32(c.G)*a/255, int32(c.B)*a/255), true
}

// cell picks the rune and style showing two stacked pixels.
func cell(top tcell.Color, topOK bool, bottom tcell.Color, bottomOK bool) (rune, tcell.Style) {
	switch {
	case topOK && bottomOK:
		return upperHalf, tcell.StyleDefault.Foreground(top).Background(bottom)
	case topOK:
		return upperHalf, tcell.StyleDefault.Foreground(top)
	case bottomOK:
		return lowerHalf, tcell.StyleDefault.Foreground(bottom)
	default:
		return ' ', tcell.StyleDefault
	}
}
