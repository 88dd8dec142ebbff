// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package term

import "github.com/gogpu/dial"

// Counter is a dial.StepSink that tallies steps for the status line and
// forwards them to an optional next sink.
type Counter struct {
	next  dial.StepSink
	total int
	last  int
}

// NewCounter returns a counter forwarding to next, which may be nil.
func NewCounter(next dial.StepSink) *Counter {
	return &Counter{next: next}
}

// Scroll records steps and forwards them.
func (c *Counter) Scroll(t dial.Target, steps int) error {
	c.total += steps
	c.last = steps
	if c.next == nil {
		return nil
	}
	return c.next.Scroll(t, steps)
}

// Total returns the sum of all steps seen.
func (c *Counter) Total() int { return c.total }

// Last returns the most recent step.
func (c *Counter) Last() int { return c.last }
