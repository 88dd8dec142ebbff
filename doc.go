// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package dial renders a radial scroll overlay and turns pointer drags
// around it into discrete scroll-wheel steps.
//
// # Overview
//
// The dial is a ring with a hole and a close button in the middle.
// Dragging around the ring emits one step for every segment boundary the
// pointer crosses; releasing a press on the close button asks the host to
// quit.
//
//	d, err := dial.New(dial.DefaultConfig(),
//	    dial.WithStepSink(sink),
//	    dial.WithTerminate(stop))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d.Press(x, y)
//	d.Move(x2, y2) // delivers steps to sink
//	d.Release()
//	_ = d.Present(presenter, origin)
//
// # Architecture
//
//   - Geometry: radii and angles derived once from a Config
//   - PolarField and StaticMasks: per-pixel angle, distance and regions,
//     memoized by FieldCache per (size, geometry)
//   - SelectorMask: the highlighted band around the drag angle, with
//     optional rounded corners
//   - Render: composites masks and state into a Frame (RGB + alpha)
//   - Tracker: the gesture state machine producing steps
//
// Platform bindings (window, pointer, wheel injection) are hosts under
// internal/ that implement Presenter, Capturer and StepSink.
//
// # Coordinate System
//
// Pixel (px, py) has offset (px - w/2, py - h/2) from the center. Angles
// are atan2(dy, dx) + π, so 0 points left and angles grow clockwise on
// screen (y down). All angles are in [0, 2π).
package dial
