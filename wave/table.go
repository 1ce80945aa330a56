package wave

import (
	"math"

	"funcgen-go/x/mathx"

	"github.com/cespare/xxhash"
)

// Table is one waveform cycle of output codes together with the interval at
// which the codes are to be emitted. Both halves are always produced by the
// same calculation and replaced together.
type Table struct {
	codes    [MaxSamples]uint16
	n        int
	Interval uint32 // µs between samples
}

// Len returns the logical length (the sample count it was generated for).
func (t *Table) Len() int { return t.n }

// At returns the code for a free-running index. The length is a power of
// two, so wraparound is a mask.
func (t *Table) At(i uint32) uint16 {
	if t.n == 0 {
		return 0
	}
	return t.codes[i&uint32(t.n-1)]
}

// Codes returns the active codes. The slice aliases the table.
func (t *Table) Codes() []uint16 { return t.codes[:t.n] }

// Checksum fingerprints the active codes and the interval.
func (t *Table) Checksum() uint64 {
	var buf [2*MaxSamples + 4]byte
	b := buf[:0]
	for _, c := range t.codes[:t.n] {
		b = append(b, byte(c), byte(c>>8))
	}
	b = append(b, byte(t.Interval), byte(t.Interval>>8), byte(t.Interval>>16), byte(t.Interval>>24))
	return xxhash.Sum64(b)
}

// Generate computes a fresh table for kind and p. The interval is left zero;
// see Build for the paired form.
func Generate(kind Kind, p Params, vref float64) Table {
	var t Table
	GenerateInto(&t, kind, p, vref)
	return t
}

// GenerateInto overwrites every entry of t from scratch.
//
// p.Samples must satisfy ValidSamples; anything else is a programming error
// and panics.
func GenerateInto(t *Table, kind Kind, p Params, vref float64) {
	n := p.Samples
	if !ValidSamples(n) {
		panic("wave: sample count must be a power of two in [16,128]")
	}
	t.n = n
	t.codes = [MaxSamples]uint16{}

	k := 0.0
	if vref > 0 {
		k = Resolution / vref
	}
	base := k * p.Offset
	for i := 0; i < n; i++ {
		var v float64
		switch kind {
		case Sine:
			v = k*p.Amplitude/2*math.Sin(2*math.Pi*float64(i)/float64(n)) + base
		case Ramp:
			v = k*p.Amplitude*(float64(i)/float64(n)) + base
		case Square:
			if i < n/2 {
				v = k*p.Amplitude + base
			} else {
				v = base
			}
		default: // DC
			v = base
		}
		t.codes[i] = mathx.RoundClampU16(v, TopCode)
	}
}

// Build derives the complete (codes, interval) pair for one calculation.
func Build(kind Kind, p Params, vref, comp float64) Table {
	t := Generate(kind, p, vref)
	t.Interval = Interval(p.Frequency, p.Samples, comp)
	return t
}
