// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrUnknownColor is returned by ParseColor for a string that is neither a
// hex color nor a known color name.
var ErrUnknownColor = errors.New("dial: unknown color")

// RGB is an opaque 8-bit color. Transparency lives in the frame's alpha
// buffer, never in palette colors.
type RGB struct {
	R, G, B uint8
}

// Color converts c to the standard color.Color interface.
func (c RGB) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// String formats c as #rrggbb.
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses "#rgb", "#rrggbb" (leading '#' optional) or an SVG
// color name such as "slateblue".
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGB{R: c.R, G: c.G, B: c.B}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	var r, g, b uint32
	switch len(hex) {
	case 3:
		if !parseHex(hex[0:1], &r) || !parseHex(hex[1:2], &g) || !parseHex(hex[2:3], &b) {
			return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if !parseHex(hex[0:2], &r) || !parseHex(hex[2:4], &g) || !parseHex(hex[4:6], &b) {
			return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
	default:
		return RGB{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// MustParseColor is like ParseColor but panics on error.
// Use only for hardcoded colors.
func MustParseColor(s string) RGB {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// parseHex reports whether s is made of hex digits only.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Palette holds the colors the compositor paints with.
type Palette struct {
	Border      RGB
	Background  [2]RGB
	Selector    RGB
	CloseButton RGB

	// ClosePressed paints the close button while a press on it is held
	// and the pointer is still over it.
	ClosePressed RGB
}

// DefaultPalette returns the slate-blue palette of the scroll tool.
func DefaultPalette() Palette {
	return Palette{
		Border:       RGB{70, 70, 90},
		Background:   [2]RGB{{100, 100, 125}, {90, 90, 110}},
		Selector:     RGB{100, 100, 200},
		CloseButton:  RGB{100, 100, 125},
		ClosePressed: RGB{90, 90, 110},
	}
}
