// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards every record.
// Enabled reports false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger. Hosts may install a logger from a
// different goroutine than the one driving the dial.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by dial and its hosts.
// By default nothing is logged. Pass nil to restore the silent logger.
//
// Log levels used by dial:
//   - [slog.LevelDebug]: field cache builds and hits, gesture transitions
//   - [slog.LevelInfo]: lifecycle events (dial opened, target resolved)
//   - [slog.LevelWarn]: non-fatal failures (dropped frame, lost step,
//     capture refused, suspicious geometry)
//
// Example:
//
//	dial.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Host packages under internal/ call
// it so they share the configuration installed by the command.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
