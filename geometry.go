// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dial

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// AAEdgeWidth is the width in pixels of the pseudo-antialiased edge shells.
const AAEdgeWidth = 0.5

// ErrInvalidConfig is returned by NewGeometry and New for a configuration
// that cannot produce well-formed masks.
var ErrInvalidConfig = errors.New("dial: invalid config")

// Config holds the constructor-time parameters of a dial.
// Factors are fractions of the radius they refer to.
type Config struct {
	Width  int
	Height int

	// TotalRadius is the outer radius of the ring in pixels.
	TotalRadius float64

	// BorderThicknessFactor is the width of the ring border bands as a
	// fraction of the ring thickness.
	BorderThicknessFactor float64

	// HoleFactor is the hole radius as a fraction of TotalRadius.
	HoleFactor float64

	// Divisions is the number of segments around the ring.
	Divisions int

	// SelectorSizeFactor is the angular size of the selector as a
	// fraction of a full turn.
	SelectorSizeFactor float64

	// SelectorMarginFactor is the radial margin subtracted from both sides
	// of the selector, as a fraction of the ring thickness.
	SelectorMarginFactor float64

	SelectorRoundedCorners bool
	SelectorRoundingH      float64
	SelectorRoundingV      float64

	// CloseButtonFactor is the close button radius as a fraction of the
	// hole radius.
	CloseButtonFactor float64

	// DeadZoneFactor is the dead zone radius as a fraction of the hole
	// radius. Zero places the dead zone edge midway between the close
	// button and the hole.
	DeadZoneFactor float64

	Palette Palette
}

// DefaultConfig returns the configuration the scrolldial command starts
// from before applying the config file and flags.
func DefaultConfig() Config {
	return Config{
		Width:                  500,
		Height:                 500,
		TotalRadius:            150,
		BorderThicknessFactor:  0.05,
		HoleFactor:             0.75,
		Divisions:              20,
		SelectorSizeFactor:     0.05,
		SelectorMarginFactor:   0.1,
		SelectorRoundedCorners: true,
		SelectorRoundingH:      0.5,
		SelectorRoundingV:      0.25,
		CloseButtonFactor:      0.5,
		Palette:                DefaultPalette(),
	}
}

// Geometry is the immutable set of radii and angles derived from a Config.
type Geometry struct {
	Width  int
	Height int

	TotalRadius   float64
	HoleRadius    float64
	RingThickness float64

	Divisions  int
	NudgeAngle float64

	SelectorAngularSize    float64
	SelectorInnerRadius    float64
	SelectorOuterRadius    float64
	SelectorRoundedCorners bool
	SelectorRoundingH      float64
	SelectorRoundingV      float64

	CloseButtonRadius float64
	DeadZoneRadius    float64
	BorderThickness   float64
	AAEdgeWidth       float64
}

// NewGeometry validates cfg and derives the dial geometry from it.
// The returned error wraps ErrInvalidConfig.
func NewGeometry(cfg Config) (*Geometry, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	hole := cfg.TotalRadius * cfg.HoleFactor
	ring := cfg.TotalRadius - hole
	margin := ring * cfg.SelectorMarginFactor
	closeR := hole * cfg.CloseButtonFactor

	dead := hole * cfg.DeadZoneFactor
	if cfg.DeadZoneFactor == 0 {
		dead = (closeR + hole) / 2
	}
	if dead <= closeR {
		return nil, fmt.Errorf("%w: dead zone radius %.2f must exceed close button radius %.2f",
			ErrInvalidConfig, dead, closeR)
	}

	g := &Geometry{
		Width:                  cfg.Width,
		Height:                 cfg.Height,
		TotalRadius:            cfg.TotalRadius,
		HoleRadius:             hole,
		RingThickness:          ring,
		Divisions:              cfg.Divisions,
		NudgeAngle:             TwoPi / float64(cfg.Divisions),
		SelectorAngularSize:    TwoPi * cfg.SelectorSizeFactor,
		SelectorInnerRadius:    hole + margin,
		SelectorOuterRadius:    cfg.TotalRadius - margin,
		SelectorRoundedCorners: cfg.SelectorRoundedCorners,
		SelectorRoundingH:      cfg.SelectorRoundingH,
		SelectorRoundingV:      cfg.SelectorRoundingV,
		CloseButtonRadius:      closeR,
		DeadZoneRadius:         dead,
		BorderThickness:        ring * cfg.BorderThicknessFactor,
		AAEdgeWidth:            AAEdgeWidth,
	}

	log := Logger()
	if dead > hole {
		log.Warn("dial: dead zone extends into the ring",
			"deadZoneRadius", dead, "holeRadius", hole)
	}
	if 2*cfg.TotalRadius > float64(min(cfg.Width, cfg.Height)) {
		log.Warn("dial: ring does not fit the window and will be clipped",
			"radius", cfg.TotalRadius, "width", cfg.Width, "height", cfg.Height)
	}
	return g, nil
}

func (cfg Config) validate() error {
	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("%w: size %dx%d (both must be > 0)", ErrInvalidConfig, cfg.Width, cfg.Height)
	case !(cfg.TotalRadius > 0) || math.IsInf(cfg.TotalRadius, 0):
		return fmt.Errorf("%w: radius %v (must be > 0)", ErrInvalidConfig, cfg.TotalRadius)
	case !(cfg.HoleFactor > 0 && cfg.HoleFactor < 1):
		return fmt.Errorf("%w: hole factor %v (must be in (0,1))", ErrInvalidConfig, cfg.HoleFactor)
	case cfg.Divisions < 1:
		return fmt.Errorf("%w: divisions %d (must be >= 1)", ErrInvalidConfig, cfg.Divisions)
	case !(cfg.SelectorSizeFactor > 0 && cfg.SelectorSizeFactor <= 1):
		return fmt.Errorf("%w: selector size factor %v (must be in (0,1])", ErrInvalidConfig, cfg.SelectorSizeFactor)
	case !(cfg.SelectorMarginFactor >= 0 && cfg.SelectorMarginFactor < 0.5):
		return fmt.Errorf("%w: selector margin factor %v (must be in [0,0.5))", ErrInvalidConfig, cfg.SelectorMarginFactor)
	case !(cfg.SelectorRoundingH >= 0 && cfg.SelectorRoundingH < 1):
		return fmt.Errorf("%w: horizontal rounding %v (must be in [0,1))", ErrInvalidConfig, cfg.SelectorRoundingH)
	case !(cfg.SelectorRoundingV >= 0 && cfg.SelectorRoundingV < 1):
		return fmt.Errorf("%w: vertical rounding %v (must be in [0,1))", ErrInvalidConfig, cfg.SelectorRoundingV)
	case !(cfg.CloseButtonFactor > 0 && cfg.CloseButtonFactor < 1):
		return fmt.Errorf("%w: close button factor %v (must be in (0,1))", ErrInvalidConfig, cfg.CloseButtonFactor)
	case !(cfg.DeadZoneFactor >= 0) || math.IsInf(cfg.DeadZoneFactor, 0):
		return fmt.Errorf("%w: dead zone factor %v (must be >= 0)", ErrInvalidConfig, cfg.DeadZoneFactor)
	case !(cfg.BorderThicknessFactor >= 0 && cfg.BorderThicknessFactor <= 0.5):
		return fmt.Errorf("%w: border thickness factor %v (must be in [0,0.5])", ErrInvalidConfig, cfg.BorderThicknessFactor)
	}
	return nil
}

// Hash returns an FNV-1a digest of every derived value. Two geometries
// with the same hash produce the same static masks.
func (g *Geometry) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(u uint64) {
		binary.LittleEndian.PutUint64(buf[:], u)
		_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	}

	put(uint64(g.Width))
	put(uint64(g.Height))
	put(uint64(g.Divisions))
	for _, f := range []float64{
		g.TotalRadius, g.HoleRadius, g.NudgeAngle,
		g.SelectorAngularSize, g.SelectorInnerRadius, g.SelectorOuterRadius,
		g.SelectorRoundingH, g.SelectorRoundingV,
		g.CloseButtonRadius, g.DeadZoneRadius, g.BorderThickness, g.AAEdgeWidth,
	} {
		put(math.Float64bits(f))
	}
	if g.SelectorRoundedCorners {
		put(1)
	} else {
		put(0)
	}
	return h.Sum64()
}

// Offset converts widget-local pixel coordinates to an offset from the
// dial center.
func (g *Geometry) Offset(x, y float64) Point {
	return Point{X: x - float64(g.Width)/2, Y: y - float64(g.Height)/2}
}

// InRing reports whether an offset from the center lies strictly inside
// the ring annulus.
func (g *Geometry) InRing(p Point) bool {
	d := p.Length()
	return d > g.HoleRadius && d < g.TotalRadius
}

// InCloseButton reports whether an offset from the center lies on the
// close button.
func (g *Geometry) InCloseButton(p Point) bool {
	return p.Length() < g.CloseButtonRadius
}

// InDeadZone reports whether an offset from the center lies in the dead
// zone. The edge belongs to the dead zone.
func (g *Geometry) InDeadZone(p Point) bool {
	return p.Length() <= g.DeadZoneRadius
}

// Segment returns the index of the ring segment containing angle, an
// angle in [0, 2π). The result is in [0, Divisions).
func (g *Geometry) Segment(angle float64) int {
	s := int(math.Floor(angle / g.NudgeAngle))
	if s >= g.Divisions {
		return g.Divisions - 1
	}
	return s
}

// AngleOf returns the polar angle of an offset from the center, measured
// the same way as PolarField angles.
func AngleOf(p Point) float64 {
	return NormalizeAngle(math.Atan2(p.Y, p.X) + math.Pi)
}

// NormalizeAngle maps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a -= TwoPi * math.Floor(a/TwoPi)
	if a >= TwoPi {
		return 0
	}
	return a
}
