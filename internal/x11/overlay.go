// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package x11

import (
	"errors"
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/gogpu/dial"
)

// WindowName is the title and WM_CLASS of the overlay.
const WindowName = "Scroll tool"

// PutImage requests are limited to 2^16 four-byte units including the
// fixed request header.
const (
	putImageReqSizeMax   = (1 << 16) * 4
	putImageReqSizeFixed = 28
	putImageReqDataSize  = putImageReqSizeMax - putImageReqSizeFixed
)

const overlayEventMask = xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify

// ErrGrab is returned when the server refuses the pointer grab.
var ErrGrab = errors.New("x11: pointer grab refused")

// Overlay is the dial window. It implements dial.Presenter and
// dial.Capturer.
type Overlay struct {
	xu     *xgbutil.XUtil
	win    xproto.Window
	gc     xproto.Gcontext
	depth  byte
	size   image.Point
	origin image.Point
	buf    []byte
}

// CenteredOrigin returns the top-left corner that centers a window of
// the given size on the cursor.
func CenteredOrigin(cursor, size image.Point) image.Point {
	return cursor.Sub(size.Div(2))
}

// NewOverlay creates and maps an override-redirect window of the given
// size at origin. Without a 32-bit TrueColor visual the window falls back
// to the root depth and is drawn opaque.
func NewOverlay(xu *xgbutil.XUtil, size, origin image.Point) (*Overlay, error) {
	c := xu.Conn()
	screen := xu.Screen()
	log := dial.Logger()

	win, err := xproto.NewWindowId(c)
	if err != nil {
		return nil, fmt.Errorf("x11: allocate window id: %w", err)
	}
	gc, err := xproto.NewGcontextId(c)
	if err != nil {
		return nil, fmt.Errorf("x11: allocate gcontext id: %w", err)
	}

	o := &Overlay{xu: xu, win: win, gc: gc, size: size, origin: origin}

	var (
		visual xproto.Visualid
		mask   uint32
		values []uint32
	)
	if vid, ok := findVisual(screen, 32); ok {
		colormap, err := xproto.NewColormapId(c)
		if err != nil {
			return nil, fmt.Errorf("x11: allocate colormap id: %w", err)
		}
		if err := xproto.CreateColormapChecked(c, xproto.ColormapAllocNone, colormap, screen.Root, vid).Check(); err != nil {
			return nil, fmt.Errorf("x11: create colormap: %w", err)
		}
		o.depth, visual = 32, vid
		// A border pixel is required whenever the depth differs from the parent.
		mask = xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwOverrideRedirect | xproto.CwEventMask | xproto.CwColormap
		values = []uint32{0, 0, 1, overlayEventMask, uint32(colormap)}
	} else {
		log.Warn("x11: no 32-bit ARGB visual, overlay will be opaque", "rootDepth", screen.RootDepth)
		o.depth, visual = screen.RootDepth, screen.RootVisual
		mask = xproto.CwBackPixel | xproto.CwOverrideRedirect | xproto.CwEventMask
		values = []uint32{0, 1, overlayEventMask}
	}

	err = xproto.CreateWindowChecked(c, o.depth, win, screen.Root,
		int16(origin.X), int16(origin.Y), uint16(size.X), uint16(size.Y), 0,
		xproto.WindowClassInputOutput, visual, mask, values).Check()
	if err != nil {
		return nil, fmt.Errorf("x11: create window: %w", err)
	}
	if err := xproto.CreateGCChecked(c, gc, xproto.Drawable(win), 0, nil).Check(); err != nil {
		xproto.DestroyWindow(c, win)
		return nil, fmt.Errorf("x11: create gcontext: %w", err)
	}

	o.name()
	if err := xproto.MapWindowChecked(c, win).Check(); err != nil {
		o.Close()
		return nil, fmt.Errorf("x11: map window: %w", err)
	}

	log.Info("x11: overlay mapped",
		"window", fmt.Sprintf("0x%x", uint32(win)),
		"depth", o.depth, "size", size, "origin", origin)
	return o, nil
}

// name sets the window title and class. Failures only affect how
// window lists display the overlay.
func (o *Overlay) name() {
	log := dial.Logger()
	if err := ewmh.WmNameSet(o.xu, o.win, WindowName); err != nil {
		log.Debug("x11: set _NET_WM_NAME", "err", err)
	}
	if err := icccm.WmNameSet(o.xu, o.win, WindowName); err != nil {
		log.Debug("x11: set WM_NAME", "err", err)
	}
	class := &icccm.WmClass{Instance: WindowName, Class: WindowName}
	if err := icccm.WmClassSet(o.xu, o.win, class); err != nil {
		log.Debug("x11: set WM_CLASS", "err", err)
	}
}

// Window returns the X window id.
func (o *Overlay) Window() xproto.Window { return o.win }

// Origin returns the window position on the root window.
func (o *Overlay) Origin() image.Point { return o.origin }

// Size returns the window size.
func (o *Overlay) Size() image.Point { return o.size }

// Present uploads f to the window and moves it to origin if needed.
func (o *Overlay) Present(f *dial.Frame, origin image.Point) error {
	if f.Width() != o.size.X || f.Height() != o.size.Y {
		return fmt.Errorf("x11: frame %dx%d does not match window %dx%d",
			f.Width(), f.Height(), o.size.X, o.size.Y)
	}
	c := o.xu.Conn()

	if origin != o.origin {
		err := xproto.ConfigureWindowChecked(c, o.win,
			xproto.ConfigWindowX|xproto.ConfigWindowY,
			[]uint32{uint32(int32(origin.X)), uint32(int32(origin.Y))}).Check()
		if err != nil {
			return fmt.Errorf("x11: move window: %w", err)
		}
		o.origin = origin
	}

	o.buf = f.PremultipliedBGRA(o.buf[:0])
	stride := o.size.X * 4
	rows := rowsPerRequest(o.size.X)
	for y := 0; y < o.size.Y; y += rows {
		h := min(rows, o.size.Y-y)
		data := o.buf[y*stride : (y+h)*stride]
		err := xproto.PutImageChecked(c, xproto.ImageFormatZPixmap,
			xproto.Drawable(o.win), o.gc,
			uint16(o.size.X), uint16(h), 0, int16(y), 0, o.depth, data).Check()
		if err != nil {
			return fmt.Errorf("x11: put image rows %d-%d: %w", y, y+h, err)
		}
	}
	return nil
}

// CapturePointer actively grabs the pointer for the overlay so drags keep
// reporting outside the window.
func (o *Overlay) CapturePointer() error {
	reply, err := xproto.GrabPointer(o.xu.Conn(), false, o.win,
		uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion),
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, xproto.CursorNone, xproto.TimeCurrentTime).Reply()
	if err != nil {
		return fmt.Errorf("x11: grab pointer: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("%w: status %d", ErrGrab, reply.Status)
	}
	return nil
}

// ReleasePointer ends the grab taken by CapturePointer.
func (o *Overlay) ReleasePointer() error {
	if err := xproto.UngrabPointerChecked(o.xu.Conn(), xproto.TimeCurrentTime).Check(); err != nil {
		return fmt.Errorf("x11: ungrab pointer: %w", err)
	}
	return nil
}

// Close destroys the window.
func (o *Overlay) Close() {
	c := o.xu.Conn()
	xproto.FreeGC(c, o.gc)
	xproto.DestroyWindow(c, o.win)
}

// rowsPerRequest returns how many rows of a width-pixel 32bpp image fit
// in one PutImage request.
func rowsPerRequest(width int) int {
	if width <= 0 {
		return 1
	}
	return max(1, putImageReqDataSize/(width*4))
}

// findVisual returns a TrueColor visual of the given depth with the usual
// 8-8-8 channel masks.
func findVisual(screen *xproto.ScreenInfo, depth byte) (xproto.Visualid, bool) {
	for _, d := range screen.AllowedDepths {
		if d.Depth != depth {
			continue
		}
		for _, v := range d.Visuals {
			if v.Class == xproto.VisualClassTrueColor &&
				v.RedMask == 0xff0000 && v.GreenMask == 0xff00 && v.BlueMask == 0xff {
				return v.VisualId, true
			}
		}
	}
	return 0, false
}
