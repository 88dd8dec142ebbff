// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/gogpu/dial/internal/config"
)

type cliOpts struct {
	doLog   bool
	verbose bool

	configPath string
	backend    string
	display    string

	radius    float64
	size      int
	divisions int
	click     bool

	snapshot string
	angle    float64
	scale    float64

	// set records the flags given on the command line.
	set map[string]bool
}

func parseCLIOpts(args []string, stderr io.Writer) (cliOpts, error) {
	opt := cliOpts{set: make(map[string]bool)}

	fs := flag.NewFlagSet("scrolldial", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opt.doLog, "log", false, "Print log output to stderr")
	fs.BoolVar(&opt.verbose, "v", false, "With -log, include debug output")
	fs.StringVar(&opt.configPath, "config", "", "Settings file (default "+config.Path()+")")
	fs.StringVar(&opt.backend, "backend", "", "Host to run on: x11 or term")
	fs.StringVar(&opt.display, "display", "", "X display to connect to (default $DISPLAY)")
	fs.Float64Var(&opt.radius, "radius", 0, "Outer ring radius in pixels")
	fs.IntVar(&opt.size, "size", 0, "Window width and height in pixels")
	fs.IntVar(&opt.divisions, "divisions", 0, "Number of ring segments")
	fs.BoolVar(&opt.click, "click", false, "Play a detent click per scroll step")
	fs.StringVar(&opt.snapshot, "snapshot", "", "Render one frame to this PNG file and exit")
	fs.Float64Var(&opt.angle, "angle", -1, "With -snapshot, draw the selector at this angle in degrees (0 is left, 90 is up)")
	fs.Float64Var(&opt.scale, "scale", 1, "With -snapshot, scale the image by this factor")
	if err := fs.Parse(args); err != nil {
		return cliOpts{}, err
	}
	if fs.NArg() > 0 {
		return cliOpts{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) { opt.set[f.Name] = true })

	if opt.scale <= 0 {
		return cliOpts{}, fmt.Errorf("-scale must be positive, got %v", opt.scale)
	}
	return opt, nil
}

// apply overrides the settings with the flags given on the command line.
func (opt cliOpts) apply(conf *config.Config) {
	if opt.set["backend"] {
		conf.Backend = opt.backend
	}
	if opt.set["radius"] {
		conf.Radius = opt.radius
	}
	if opt.set["size"] {
		conf.Width, conf.Height = opt.size, opt.size
	}
	if opt.set["divisions"] {
		conf.Divisions = opt.divisions
	}
	if opt.set["click"] {
		conf.Click.Enabled = opt.click
	}
}
