package engine

import (
	"time"

	"funcgen-go/wave"
)

const (
	DefaultSaturatePeriod = 20 * time.Millisecond
	DefaultRefreshPeriod  = 500 * time.Millisecond
	DefaultStatsPeriod    = time.Second
)

// Config is the static part of the engine setup.
type Config struct {
	Limits       wave.Limits
	Compensation float64 // timing compensation factor applied to intervals

	// Initial waveform.
	Kind   wave.Kind
	Params wave.Params

	SaturatePeriod time.Duration
	RefreshPeriod  time.Duration // values-only display refresh while configuring
	StatsPeriod    time.Duration // stats publication while running
}

func (c Config) withDefaults() Config {
	if !(c.Compensation > 0) {
		c.Compensation = wave.DefaultTimingCompensation
	}
	if !(c.Limits.MinFrequency > 0) {
		c.Limits.MinFrequency = wave.DefaultMinFrequency
	}
	if c.SaturatePeriod <= 0 {
		c.SaturatePeriod = DefaultSaturatePeriod
	}
	if c.RefreshPeriod <= 0 {
		c.RefreshPeriod = DefaultRefreshPeriod
	}
	if c.StatsPeriod <= 0 {
		c.StatsPeriod = DefaultStatsPeriod
	}
	if !c.Kind.Valid() {
		c.Kind = wave.Sine
	}
	return c
}
