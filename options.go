// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

// Option configures a Dial during creation.
//
// Example:
//
//	d, err := dial.New(cfg,
//	    dial.WithStepSink(sink),
//	    dial.WithTarget(target),
//	    dial.WithTerminate(func() { quit() }))
type Option func(*options)

// options holds optional collaborators of a Dial.
type options struct {
	capturer    Capturer
	sink        StepSink
	target      Target
	fields      *FieldCache
	onTerminate func()
}

func defaultOptions() options {
	return options{
		capturer:    nopCapturer{},
		fields:      sharedFieldCache,
		onTerminate: func() {},
	}
}

// WithCapturer sets the pointer capture provider of the host.
func WithCapturer(c Capturer) Option {
	return func(o *options) {
		if c != nil {
			o.capturer = c
		}
	}
}

// WithStepSink sets where scroll steps are delivered.
// Without a sink steps are only logged.
func WithStepSink(s StepSink) Option {
	return func(o *options) {
		o.sink = s
	}
}

// WithTarget sets the window and position steps are attributed to.
func WithTarget(t Target) Option {
	return func(o *options) {
		o.target = t
	}
}

// WithFieldCache makes the dial memoize its fields in c instead of the
// package-wide cache.
func WithFieldCache(c *FieldCache) Option {
	return func(o *options) {
		if c != nil {
			o.fields = c
		}
	}
}

// WithTerminate sets the function called when the close button is
// pressed and released while hovered. The host owns shutdown.
func WithTerminate(fn func()) Option {
	return func(o *options) {
		if fn != nil {
			o.onTerminate = fn
		}
	}
}
