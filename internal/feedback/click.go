// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package feedback plays an audible detent for every scroll step.
package feedback

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/gogpu/dial"
)

// SampleRate is the output rate of the speaker.
const SampleRate = beep.SampleRate(44100)

// Detent pitches. Scrolling up clicks higher than scrolling down.
const (
	upFreq        = 1800.0
	downFreq      = 1350.0
	clickDuration = 12 * time.Millisecond
	clickGap      = 25 * time.Millisecond
)

var initOnce struct {
	sync.Once
	err error
}

// Init opens the speaker. It is safe to call more than once.
func Init() error {
	initOnce.Do(func() {
		initOnce.err = speaker.Init(SampleRate, SampleRate.N(time.Second/20))
	})
	return initOnce.err
}

// Close releases the speaker.
func Close() {
	speaker.Close()
}

// click is an exponentially decaying sine burst.
type click struct {
	freq   float64
	rate   beep.SampleRate
	length int
	pos    int
}

// NewClick returns a single detent tick at freq.
func NewClick(freq float64, rate beep.SampleRate) beep.Streamer {
	return &click{freq: freq, rate: rate, length: rate.N(clickDuration)}
}

func (c *click) Stream(samples [][2]float64) (n int, ok bool) {
	if c.pos >= c.length {
		return 0, false
	}
	decay := 5 / float64(c.length)
	for i := range samples {
		if c.pos >= c.length {
			return i, true
		}
		t := float64(c.pos) / float64(c.rate)
		v := math.Sin(2*math.Pi*c.freq*t) * math.Exp(-decay*float64(c.pos))
		samples[i][0] = v
		samples[i][1] = v
		c.pos++
	}
	return len(samples), true
}

func (c *click) Err() error { return nil }

// Detents returns |steps| clicks separated by short silences, pitched by
// direction and scaled to volume in [0, 1].
func Detents(steps int, volume float64, rate beep.SampleRate) beep.Streamer {
	freq := upFreq
	if steps < 0 {
		freq = downFreq
		steps = -steps
	}

	seq := make([]beep.Streamer, 0, 2*steps)
	for i := 0; i < steps; i++ {
		if i > 0 {
			seq = append(seq, beep.Silence(rate.N(clickGap)))
		}
		seq = append(seq, NewClick(freq, rate))
	}
	return withVolume(beep.Seq(seq...), volume)
}

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Clicker decorates a StepSink with an audible detent per step. Steps are
// always forwarded; sound is best effort.
type Clicker struct {
	next   dial.StepSink
	volume float64
	play   func(beep.Streamer)
}

// NewClicker wraps next. The speaker must be initialized with Init.
func NewClicker(next dial.StepSink, volume float64) *Clicker {
	return &Clicker{
		next:   next,
		volume: volume,
		play:   func(s beep.Streamer) { speaker.Play(s) },
	}
}

// Scroll forwards the steps and plays one click for each.
func (c *Clicker) Scroll(t dial.Target, steps int) error {
	err := c.next.Scroll(t, steps)
	if steps != 0 {
		c.play(Detents(steps, c.volume, SampleRate))
	}
	return err
}
