// Package editor applies encoder steps to the field under the edit cursor.
//
// Field edits are deliberately unclamped (except the sample count, which must
// stay a power of two at all times); range enforcement is left to
// wave.Saturate, which the engine runs on its own cadence.
package editor

import (
	"funcgen-go/wave"
)

// Field is the edit cursor position.
type Field uint8

const (
	FieldKind Field = iota
	FieldFreqTens
	FieldFreqUnits
	FieldAmpWhole
	FieldAmpTenths
	FieldAmpHundredths
	FieldOffsetWhole
	FieldOffsetTenths
	FieldOffsetHundredths
	FieldSamples

	NumFields
)

var multipliers = [NumFields]float64{
	FieldKind:             1,
	FieldFreqTens:         10,
	FieldFreqUnits:        1,
	FieldAmpWhole:         1,
	FieldAmpTenths:        0.1,
	FieldAmpHundredths:    0.01,
	FieldOffsetWhole:      1,
	FieldOffsetTenths:     0.1,
	FieldOffsetHundredths: 0.01,
	FieldSamples:          1,
}

// Multiplier returns the step size of f. Out-of-range fields step by 0.
func Multiplier(f Field) float64 {
	if f >= NumFields {
		return 0
	}
	return multipliers[f]
}

func (f Field) String() string {
	switch f {
	case FieldKind:
		return "kind"
	case FieldFreqTens, FieldFreqUnits:
		return "frequency"
	case FieldAmpWhole, FieldAmpTenths, FieldAmpHundredths:
		return "amplitude"
	case FieldOffsetWhole, FieldOffsetTenths, FieldOffsetHundredths:
		return "offset"
	case FieldSamples:
		return "samples"
	default:
		return "invalid"
	}
}

// Editor owns the cursor and mutates the parameter set it is given.
type Editor struct {
	cursor Field
}

func (e *Editor) Cursor() Field { return e.cursor }

// Reset returns the cursor to the waveform kind.
func (e *Editor) Reset() { e.cursor = FieldKind }

// Advance moves the cursor presses positions forward, wrapping after the
// sample count field. For a DC output the frequency and amplitude fields are
// skipped: landing on the frequency tens digit jumps to the offset.
func (e *Editor) Advance(presses uint32, kind wave.Kind) {
	for ; presses > 0; presses-- {
		e.cursor = (e.cursor + 1) % NumFields
		if kind == wave.DC && e.cursor == FieldFreqTens {
			e.cursor = FieldOffsetWhole
		}
	}
}

// Apply adds one decoder step to the field under the cursor. A zero step is
// a no-op. It reports whether anything changed.
func (e *Editor) Apply(step int8, p *wave.Params, kind *wave.Kind) bool {
	if step == 0 {
		return false
	}
	s := float64(step)
	switch e.cursor {
	case FieldKind:
		*kind = kind.Step(int(step))
	case FieldFreqTens, FieldFreqUnits:
		p.Frequency += s * Multiplier(e.cursor)
	case FieldAmpWhole, FieldAmpTenths, FieldAmpHundredths:
		p.Amplitude += s * Multiplier(e.cursor)
	case FieldOffsetWhole, FieldOffsetTenths, FieldOffsetHundredths:
		p.Offset += s * Multiplier(e.cursor)
	case FieldSamples:
		n := StepSamples(p.Samples, step)
		if n == p.Samples {
			return false
		}
		p.Samples = n
	default:
		e.cursor = FieldKind
		return false
	}
	return true
}

// StepSamples doubles (step > 0) or halves (step < 0) n, refusing to leave
// [wave.MinSamples, wave.MaxSamples]. The result is a power of two.
func StepSamples(n int, step int8) int {
	n = wave.ClampSamples(n)
	switch {
	case step > 0 && n < wave.MaxSamples:
		n <<= 1
	case step < 0 && n > wave.MinSamples:
		n >>= 1
	}
	// Multiples of 16 only; with the bounds above this keeps powers of two.
	return n &^ (wave.MinSamples - 1)
}
