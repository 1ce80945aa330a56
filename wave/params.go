package wave

import (
	"funcgen-go/x/mathx"
)

const (
	// Resolution is the number of output codes of the 12-bit converter.
	Resolution = 4096
	// TopCode is the largest representable output code.
	TopCode = Resolution - 1

	// DefaultMinFrequency is used when Limits.MinFrequency is unset.
	DefaultMinFrequency = 1.0

	MinSamples = 16
	MaxSamples = 128
)

// Params is the operator-editable parameter set.
type Params struct {
	Frequency float64 // Hz
	Amplitude float64 // V peak-to-peak
	Offset    float64 // V DC
	Samples   int     // points per cycle, power of two in [MinSamples, MaxSamples]
}

// Limits holds the build-time bounds the saturation pass enforces.
type Limits struct {
	VRef         float64 // converter reference voltage
	MaxFrequency float64 // attainable frequency at MinSamples
	MinFrequency float64 // floor applied to non-positive frequencies
}

// MaxFrequencyFor returns the highest attainable frequency for n samples per
// cycle: more samples at the same minimum sample interval means fewer cycles.
func (l Limits) MaxFrequencyFor(n int) float64 {
	if n < MinSamples {
		n = MinSamples
	}
	return l.MaxFrequency / float64(n/MinSamples)
}

// ValidSamples reports whether n is an allowed sample count.
func ValidSamples(n int) bool {
	return n >= MinSamples && n <= MaxSamples && mathx.IsPow2(n)
}

// ClampSamples forces n onto the allowed set, rounding down to a power of two.
func ClampSamples(n int) int {
	return mathx.FloorPow2(mathx.Clamp(n, MinSamples, MaxSamples))
}

// Saturate returns p with every field forced into its valid range.
func Saturate(p Params, lim Limits) Params {
	p.Samples = ClampSamples(p.Samples)

	fmax := lim.MaxFrequencyFor(p.Samples)
	fmin := lim.MinFrequency
	if !(fmin > 0) {
		fmin = DefaultMinFrequency
	}
	fmin = mathx.Min(fmin, fmax)
	if !(p.Frequency > 0) || p.Frequency < fmin {
		p.Frequency = fmin
	}
	if p.Frequency > fmax {
		p.Frequency = fmax
	}
	p.Amplitude = clampVolts(p.Amplitude, lim.VRef)
	p.Offset = clampVolts(p.Offset, lim.VRef)
	return p
}

func clampVolts(v, vref float64) float64 {
	if !(v > 0) {
		return 0
	}
	return mathx.Min(v, vref)
}
