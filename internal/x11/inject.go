// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/gogpu/dial"
)

// Core protocol wheel buttons.
const (
	buttonWheelUp   xproto.Button = 4
	buttonWheelDown xproto.Button = 5
)

// Injector delivers scroll steps as synthetic wheel clicks. It implements
// dial.StepSink.
//
// Clicks are sent with SendEvent to the target window. XTEST input would
// be routed like device input, and during a drag the overlay sits under
// the pointer and holds the pointer grab, so it would receive its own
// wheel clicks.
type Injector struct {
	xu *xgbutil.XUtil
}

// NewInjector creates an injector on xu.
func NewInjector(xu *xgbutil.XUtil) *Injector {
	return &Injector{xu: xu}
}

// Scroll sends |steps| press/release pairs of the wheel button to the
// target window. Positive steps scroll up.
func (in *Injector) Scroll(t dial.Target, steps int) error {
	button, n := wheelButton(steps)
	press, release := wheelEvents(in.xu.RootWin(), t, button)

	c := in.xu.Conn()
	dest := xproto.Window(t.Window)
	for i := 0; i < n; i++ {
		err := xproto.SendEventChecked(c, true, dest,
			xproto.EventMaskButtonPress, string(press.Bytes())).Check()
		if err != nil {
			return fmt.Errorf("x11: send button %d press to 0x%x: %w", button, t.Window, err)
		}
		err = xproto.SendEventChecked(c, true, dest,
			xproto.EventMaskButtonRelease, string(release.Bytes())).Check()
		if err != nil {
			return fmt.Errorf("x11: send button %d release to 0x%x: %w", button, t.Window, err)
		}
	}
	dial.Logger().Debug("x11: scrolled", "steps", steps, "button", button)
	return nil
}

// wheelButton maps a signed step count to a wheel button and a click
// count.
func wheelButton(steps int) (xproto.Button, int) {
	if steps < 0 {
		return buttonWheelDown, -steps
	}
	return buttonWheelUp, steps
}

// wheelEvents builds the press and release events of one wheel click at
// the target position. The release carries the button in its state mask
// as a real release would.
func wheelEvents(root xproto.Window, t dial.Target, button xproto.Button) (xproto.ButtonPressEvent, xproto.ButtonReleaseEvent) {
	press := xproto.ButtonPressEvent{
		Detail:     button,
		Time:       xproto.TimeCurrentTime,
		Root:       root,
		Event:      xproto.Window(t.Window),
		Child:      xproto.WindowNone,
		RootX:      int16(t.RootX),
		RootY:      int16(t.RootY),
		EventX:     int16(t.X),
		EventY:     int16(t.Y),
		SameScreen: true,
	}
	release := xproto.ButtonReleaseEvent(press)
	release.State = buttonStateMask(button)
	return press, release
}

func buttonStateMask(b xproto.Button) uint16 {
	switch b {
	case buttonWheelUp:
		return xproto.ButtonMask4
	case buttonWheelDown:
		return xproto.ButtonMask5
	default:
		return 0
	}
}
