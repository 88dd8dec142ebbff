// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command scrolldial opens a radial scroll dial centered on the pointer.
// Dragging around the ring scrolls the window that was under the pointer
// one wheel step per segment; clicking the center button closes the dial.
//
// Usage:
//
//	scrolldial [-backend x11|term] [-radius r] [-size px] [-divisions n] [-click]
//	scrolldial -snapshot out.png [-angle deg] [-scale k]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/dial"
	"github.com/gogpu/dial/internal/config"
	"github.com/gogpu/dial/internal/feedback"
	"github.com/gogpu/dial/internal/term"
	"github.com/gogpu/dial/internal/x11"
)

func main() {
	opt, err := parseCLIOpts(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "scrolldial: %v\n", err)
		os.Exit(2)
	}
	setupLogging(opt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opt); err != nil && !errors.Is(err, context.Canceled) {
		dial.Logger().Error("exiting", "err", err)
		fmt.Fprintf(os.Stderr, "scrolldial: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func setupLogging(opt cliOpts) {
	if !opt.doLog {
		return
	}
	level := slog.LevelInfo
	if opt.verbose {
		level = slog.LevelDebug
	}
	dial.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig reads the settings file, creating the default one on first
// use, and applies the command line overrides.
func loadConfig(opt cliOpts) (*config.Config, error) {
	path := opt.configPath
	if path == "" {
		if err := config.InitializeIfMissing(config.Dir()); err != nil {
			return nil, err
		}
		path = config.Path()
	}
	conf, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	opt.apply(conf)
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func run(ctx context.Context, opt cliOpts) error {
	conf, err := loadConfig(opt)
	if err != nil {
		return err
	}
	cfg, err := conf.Dial()
	if err != nil {
		return err
	}

	if opt.snapshot != "" {
		return snapshot(cfg, opt.snapshot, opt.angle, opt.scale)
	}

	switch conf.Backend {
	case config.BackendTerminal:
		return runTerminal(ctx, conf, cfg)
	default:
		return runX11(ctx, conf, cfg, opt.display)
	}
}

func runX11(ctx context.Context, conf *config.Config, cfg dial.Config, display string) error {
	xu, err := x11.Connect(display)
	if err != nil {
		return err
	}
	defer xu.Conn().Close()

	target, err := x11.FindTarget(xu)
	if err != nil {
		return err
	}

	size := image.Pt(cfg.Width, cfg.Height)
	origin := x11.CenteredOrigin(image.Pt(target.RootX, target.RootY), size)
	o, err := x11.NewOverlay(xu, size, origin)
	if err != nil {
		return err
	}
	defer o.Close()

	sink, closeSink := withClick(x11.NewInjector(xu), conf.Click)
	defer closeSink()

	d, err := dial.New(cfg,
		dial.WithCapturer(o),
		dial.WithStepSink(sink),
		dial.WithTarget(target),
		dial.WithTerminate(func() { xevent.Quit(xu) }))
	if err != nil {
		return err
	}
	return x11.Run(ctx, xu, o, d, conf.RepaintHz)
}

func runTerminal(ctx context.Context, conf *config.Config, cfg dial.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	counter := term.NewCounter(nil)
	sink, closeSink := withClick(counter, conf.Click)
	defer closeSink()

	fields := dial.NewFieldCache(2)
	factory := func(w, h int, terminate func()) (*dial.Dial, error) {
		return dial.New(term.FitConfig(cfg, w, h),
			dial.WithStepSink(sink),
			dial.WithFieldCache(fields),
			dial.WithTerminate(terminate))
	}
	host, err := term.NewHost(screen, factory, counter)
	if err != nil {
		return err
	}
	return host.Run(ctx, conf.RepaintHz)
}

// withClick wraps sink with audible detents when enabled. Audio failures
// only disable the clicks.
func withClick(sink dial.StepSink, c config.Click) (dial.StepSink, func()) {
	if !c.Enabled {
		return sink, func() {}
	}
	if err := feedback.Init(); err != nil {
		dial.Logger().Warn("click feedback disabled", "err", err)
		return sink, func() {}
	}
	return feedback.NewClicker(sink, c.Volume), feedback.Close
}
