// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package x11 hosts a dial as a per-pixel-alpha overlay window on an X
// server.
//
// The overlay is an override-redirect window on a 32-bit ARGB visual
// centered on the pointer. Frames are uploaded with PutImage, drags hold
// an active pointer grab, and scroll steps are delivered to the window
// that was under the pointer as synthetic wheel button events.
package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/gogpu/dial"
)

// ErrNoDisplay is returned when no X server can be reached.
var ErrNoDisplay = errors.New("x11: cannot connect to display")

// maxTreeDepth bounds the window tree descent in FindTarget.
const maxTreeDepth = 64

// Connect opens a connection to display, or to $DISPLAY when empty.
func Connect(display string) (*xgbutil.XUtil, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDisplay, err)
	}
	return xu, nil
}

// FindTarget returns the deepest window under the pointer together with
// the pointer position local to it and on the root window.
func FindTarget(xu *xgbutil.XUtil) (dial.Target, error) {
	c := xu.Conn()
	win := xu.RootWin()

	reply, err := xproto.QueryPointer(c, win).Reply()
	if err != nil {
		return dial.Target{}, fmt.Errorf("x11: query pointer: %w", err)
	}
	t := dial.Target{
		Window: uint32(win),
		X:      int(reply.RootX),
		Y:      int(reply.RootY),
		RootX:  int(reply.RootX),
		RootY:  int(reply.RootY),
	}

	for depth := 0; reply.Child != xproto.WindowNone; depth++ {
		if depth == maxTreeDepth {
			dial.Logger().Warn("x11: window tree too deep, stopping descent", "window", t.Window)
			break
		}
		win = reply.Child
		reply, err = xproto.QueryPointer(c, win).Reply()
		if err != nil {
			return dial.Target{}, fmt.Errorf("x11: query pointer on 0x%x: %w", uint32(win), err)
		}
		t.Window = uint32(win)
		t.X, t.Y = int(reply.WinX), int(reply.WinY)
	}

	dial.Logger().Debug("x11: scroll target",
		"window", fmt.Sprintf("0x%x", t.Window),
		"x", t.X, "y", t.Y, "rootX", t.RootX, "rootY", t.RootY)
	return t, nil
}
