// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import "image"

// Mask is a per-pixel region membership buffer.
// A pixel is a member when its value is 255 and outside the region at 0.
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates an empty mask with the given dimensions.
func NewMask(width, height int) *Mask {
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At reports whether (x, y) is a member of the mask.
// Coordinates outside the mask are never members.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.data[y*m.width+x] != 0
}

// Set sets membership of (x, y). Coordinates outside the mask are ignored.
func (m *Mask) Set(x, y int, member bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = coverage(member)
}

// Has reports membership of the pixel at linear index i.
func (m *Mask) Has(i int) bool { return m.data[i] != 0 }

// Fill makes every pixel a member.
func (m *Mask) Fill() {
	for i := range m.data {
		m.data[i] = 255
	}
}

// Clear removes every pixel from the mask.
func (m *Mask) Clear() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// Invert flips membership of every pixel.
func (m *Mask) Invert() {
	for i := range m.data {
		m.data[i] = 255 - m.data[i]
	}
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	clone := NewMask(m.width, m.height)
	copy(clone.data, m.data)
	return clone
}

// Count returns the number of member pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// Data returns the underlying buffer, one byte per pixel in row order.
func (m *Mask) Data() []uint8 {
	return m.data
}

// And returns a new mask with the pixels in both m and o.
func (m *Mask) And(o *Mask) *Mask {
	return m.combine(o, func(a, b bool) bool { return a && b })
}

// Or returns a new mask with the pixels in m or o.
func (m *Mask) Or(o *Mask) *Mask {
	return m.combine(o, func(a, b bool) bool { return a || b })
}

// Xor returns a new mask with the pixels in exactly one of m and o.
func (m *Mask) Xor(o *Mask) *Mask {
	return m.combine(o, func(a, b bool) bool { return a != b })
}

// AndNot returns a new mask with the pixels in m but not in o.
func (m *Mask) AndNot(o *Mask) *Mask {
	return m.combine(o, func(a, b bool) bool { return a && !b })
}

// combine panics if the masks differ in size; masks of one dial always
// share the field dimensions.
func (m *Mask) combine(o *Mask, op func(a, b bool) bool) *Mask {
	if m.width != o.width || m.height != o.height {
		panic("dial: mask size mismatch")
	}
	out := NewMask(m.width, m.height)
	for i := range m.data {
		out.data[i] = coverage(op(m.data[i] != 0, o.data[i] != 0))
	}
	return out
}

// maskWhere builds a mask from a per-pixel predicate over linear indices.
func maskWhere(width, height int, pred func(i int) bool) *Mask {
	m := NewMask(width, height)
	for i := range m.data {
		m.data[i] = coverage(pred(i))
	}
	return m
}

func coverage(member bool) uint8 {
	if member {
		return 255
	}
	return 0
}
