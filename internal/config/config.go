// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads and stores the scrolldial settings file.
//
// The file lives at $XDG_CONFIG_HOME/scrolldial/config.toml (falling back
// to ~/.config) and is created with defaults on first start. Keys missing
// from the file keep their default values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/dial"
)

// FileName is the name of the settings file inside Dir.
const FileName = "config.toml"

// Backend names accepted in the file and on the command line.
const (
	BackendX11      = "x11"
	BackendTerminal = "term"
)

// ErrInvalid is returned for a settings file that decodes but cannot be
// turned into a dial configuration.
var ErrInvalid = errors.New("config: invalid settings")

// Config is the on-disk settings file.
type Config struct {
	Backend string `toml:"backend"`

	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Radius float64 `toml:"radius"`

	HoleFactor            float64 `toml:"hole_factor"`
	BorderThicknessFactor float64 `toml:"border_thickness_factor"`
	Divisions             int     `toml:"divisions"`
	CloseButtonFactor     float64 `toml:"close_button_factor"`
	DeadZoneFactor        float64 `toml:"dead_zone_factor"`

	Selector Selector `toml:"selector"`
	Colors   Colors   `toml:"colors"`
	Click    Click    `toml:"click"`

	// RepaintHz caps how often the overlay is redrawn.
	RepaintHz int `toml:"repaint_hz"`
}

// Selector holds the highlighted band settings.
type Selector struct {
	SizeFactor     float64 `toml:"size_factor"`
	MarginFactor   float64 `toml:"margin_factor"`
	RoundedCorners bool    `toml:"rounded_corners"`
	RoundingH      float64 `toml:"rounding_h"`
	RoundingV      float64 `toml:"rounding_v"`
}

// Colors are hex codes or SVG color names.
type Colors struct {
	Border         string `toml:"border"`
	BackgroundEven string `toml:"background_even"`
	BackgroundOdd  string `toml:"background_odd"`
	Selector       string `toml:"selector"`
	CloseButton    string `toml:"close_button"`
	ClosePressed   string `toml:"close_pressed"`
}

// Click configures the audible detent played for every step.
type Click struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0..1
}

// Default returns the settings written to a fresh file.
func Default() Config {
	d := dial.DefaultConfig()
	p := d.Palette
	return Config{
		Backend:               BackendX11,
		Width:                 d.Width,
		Height:                d.Height,
		Radius:                d.TotalRadius,
		HoleFactor:            d.HoleFactor,
		BorderThicknessFactor: d.BorderThicknessFactor,
		Divisions:             d.Divisions,
		CloseButtonFactor:     d.CloseButtonFactor,
		DeadZoneFactor:        d.DeadZoneFactor,
		Selector: Selector{
			SizeFactor:     d.SelectorSizeFactor,
			MarginFactor:   d.SelectorMarginFactor,
			RoundedCorners: d.SelectorRoundedCorners,
			RoundingH:      d.SelectorRoundingH,
			RoundingV:      d.SelectorRoundingV,
		},
		Colors: Colors{
			Border:         p.Border.String(),
			BackgroundEven: p.Background[0].String(),
			BackgroundOdd:  p.Background[1].String(),
			Selector:       p.Selector.String(),
			CloseButton:    p.CloseButton.String(),
			ClosePressed:   p.ClosePressed.String(),
		},
		Click:     Click{Enabled: false, Volume: 0.3},
		RepaintHz: 60,
	}
}

// Dir returns the directory holding the settings file.
func Dir() string {
	fallback := filepath.Join(os.Getenv("HOME"), ".config")
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", fallback), "scrolldial")
}

// Path returns the full path of the settings file.
func Path() string {
	return filepath.Join(Dir(), FileName)
}

// InitializeIfMissing creates dir and writes the default settings file
// into it unless one already exists.
func InitializeIfMissing(dir string) error {
	log := dial.Logger()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	ok, err := exists(path)
	if err != nil {
		return fmt.Errorf("config: check %s: %w", path, err)
	}
	if ok {
		return nil
	}

	log.Info("config: initializing settings file", "path", path)
	def := Default()
	return Save(path, &def)
}

// Load reads the settings file at path on top of the defaults.
func Load(path string) (*Config, error) {
	conf := Default()
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		dial.Logger().Warn("config: ignoring unknown keys", "path", path, "keys", keys)
	}
	return &conf, nil
}

// Save writes conf to path.
func Save(path string, conf *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(conf); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // settings are not secret
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Dial converts the settings into a dial configuration. Color strings are
// parsed here; geometry is validated later by dial.New.
func (c *Config) Dial() (dial.Config, error) {
	cfg := dial.DefaultConfig()
	cfg.Width = c.Width
	cfg.Height = c.Height
	cfg.TotalRadius = c.Radius
	cfg.HoleFactor = c.HoleFactor
	cfg.BorderThicknessFactor = c.BorderThicknessFactor
	cfg.Divisions = c.Divisions
	cfg.CloseButtonFactor = c.CloseButtonFactor
	cfg.DeadZoneFactor = c.DeadZoneFactor
	cfg.SelectorSizeFactor = c.Selector.SizeFactor
	cfg.SelectorMarginFactor = c.Selector.MarginFactor
	cfg.SelectorRoundedCorners = c.Selector.RoundedCorners
	cfg.SelectorRoundingH = c.Selector.RoundingH
	cfg.SelectorRoundingV = c.Selector.RoundingV

	p, err := c.Colors.Palette()
	if err != nil {
		return dial.Config{}, err
	}
	cfg.Palette = p
	return cfg, nil
}

// Palette parses the color strings. Empty strings keep the default color.
func (c Colors) Palette() (dial.Palette, error) {
	p := dial.DefaultPalette()
	fields := []struct {
		key string
		val string
		dst *dial.RGB
	}{
		{"border", c.Border, &p.Border},
		{"background_even", c.BackgroundEven, &p.Background[0]},
		{"background_odd", c.BackgroundOdd, &p.Background[1]},
		{"selector", c.Selector, &p.Selector},
		{"close_button", c.CloseButton, &p.CloseButton},
		{"close_pressed", c.ClosePressed, &p.ClosePressed},
	}
	for _, f := range fields {
		if f.val == "" {
			continue
		}
		rgb, err := dial.ParseColor(f.val)
		if err != nil {
			return dial.Palette{}, fmt.Errorf("%w: colors.%s: %w", ErrInvalid, f.key, err)
		}
		*f.dst = rgb
	}
	return p, nil
}

// Validate checks the settings that are not part of the dial geometry.
func (c *Config) Validate() error {
	switch {
	case c.Backend != BackendX11 && c.Backend != BackendTerminal:
		return fmt.Errorf("%w: backend %q (want %q or %q)", ErrInvalid, c.Backend, BackendX11, BackendTerminal)
	case c.RepaintHz <= 0 || c.RepaintHz > 1000:
		return fmt.Errorf("%w: repaint_hz %d (must be in 1..1000)", ErrInvalid, c.RepaintHz)
	case c.Click.Volume < 0 || c.Click.Volume > 1:
		return fmt.Errorf("%w: click.volume %v (must be in [0,1])", ErrInvalid, c.Click.Volume)
	}
	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func xdgOrFallback(xdg, fallback string) string {
	dir := os.Getenv(xdg)
	if dir != "" {
		if ok, err := exists(dir); ok && err == nil {
			dial.Logger().Debug("config: resolved XDG directory", "var", xdg, "dir", dir)
			return dir
		}
	}
	dial.Logger().Debug("config: XDG directory unset or missing, using fallback", "var", xdg, "dir", fallback)
	return fallback
}
