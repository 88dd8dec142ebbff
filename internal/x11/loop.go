// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package x11

import (
	"context"
	"image"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/gogpu/dial"
)

// Pointer is the subset of *dial.Dial driven by the event loop.
type Pointer interface {
	Press(x, y float64) bool
	Move(x, y float64) bool
	Release() bool
	CaptureLost() bool
	Present(p dial.Presenter, origin image.Point) error
}

// Run dispatches overlay events to d and repaints at most fps times per
// second. It returns when xevent.Quit is called on xu (the dial's
// terminate function should do that) or when ctx is done.
func Run(ctx context.Context, xu *xgbutil.XUtil, o *Overlay, d Pointer, fps int) error {
	h := &handler{d: d, dirty: true}
	h.connect(xu, o.Window())

	before, after, quit := xevent.MainPing(xu)
	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()

	done := ctx.Done()
	for {
		select {
		case <-before:
			<-after
		case <-ticker.C:
			if !h.dirty {
				continue
			}
			if err := d.Present(o, o.Origin()); err == nil {
				h.dirty = false
			}
		case <-done:
			done = nil
			xevent.Quit(xu)
		case <-quit:
			dial.Logger().Info("x11: event loop stopped")
			return ctx.Err()
		}
	}
}

// handler translates X events into dial pointer calls. Its callbacks run
// on the xevent goroutine between MainPing's before and after pings, so
// dirty needs no lock.
type handler struct {
	d     Pointer
	dirty bool
}

func (h *handler) connect(xu *xgbutil.XUtil, win xproto.Window) {
	xevent.ButtonPressFun(func(_ *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		h.press(ev.Detail, ev.EventX, ev.EventY)
	}).Connect(xu, win)
	xevent.ButtonReleaseFun(func(_ *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		h.release(ev.Detail)
	}).Connect(xu, win)
	xevent.MotionNotifyFun(func(_ *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		h.motion(ev.EventX, ev.EventY)
	}).Connect(xu, win)
	xevent.LeaveNotifyFun(func(_ *xgbutil.XUtil, ev xevent.LeaveNotifyEvent) {
		h.leave(ev.Mode)
	}).Connect(xu, win)
	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 {
			h.dirty = true
		}
	}).Connect(xu, win)
}

func (h *handler) press(b xproto.Button, x, y int16) {
	if b != xproto.ButtonIndex1 {
		return
	}
	h.d.Press(float64(x), float64(y))
	// Pressing can change the close button color even without a drag.
	h.dirty = true
}

func (h *handler) release(b xproto.Button) {
	if b != xproto.ButtonIndex1 {
		return
	}
	if h.d.Release() {
		h.dirty = true
	}
}

func (h *handler) motion(x, y int16) {
	if h.d.Move(float64(x), float64(y)) {
		h.dirty = true
	}
}

// leave treats a LeaveNotify caused by another client's grab as loss of
// our pointer capture.
func (h *handler) leave(mode byte) {
	if mode != xproto.NotifyModeGrab {
		return
	}
	if h.d.CaptureLost() {
		h.dirty = true
	}
}
