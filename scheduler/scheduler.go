// Package scheduler streams a waveform table to the converter by polling a
// clock. Nothing here blocks: the main loop calls Poll as often as it can and
// a sample goes out whenever its interval has elapsed. A late poll emits one
// sample, never a burst, so under load the output frequency drops instead of
// the waveform being distorted.
package scheduler

import (
	"funcgen-go/wave"
	"funcgen-go/x/timex"
)

// Output is the converter transport.
type Output interface {
	SetCode(code uint16)
}

// Stats counts emissions since the last Load.
type Stats struct {
	Emitted uint32
	Late    uint32 // emissions at least two intervals after the previous one
}

// Scheduler emits table codes at the table's interval.
type Scheduler struct {
	out   Output
	clock timex.Clock

	table *wave.Table
	idx   uint32
	last  uint64
	fresh bool // next Poll emits without waiting
	stats Stats
}

func New(out Output, clock timex.Clock) *Scheduler {
	return &Scheduler{out: out, clock: clock}
}

// Load installs a new table (codes and interval together), restarts the index
// and emits the first sample on the next Poll.
func (s *Scheduler) Load(t *wave.Table) {
	if t != nil && !wave.ValidSamples(t.Len()) {
		panic("scheduler: table length must be a power of two in [16,128]")
	}
	s.table = t
	s.idx = 0
	s.stats = Stats{}
	s.last = s.clock.Micros()
	s.fresh = true
}

// Poll emits one sample if its time has come and reports whether it did.
func (s *Scheduler) Poll() bool {
	t := s.table
	if t == nil {
		return false
	}
	now := s.clock.Micros()
	elapsed := timex.Since(now, s.last)
	if !s.fresh && elapsed < uint64(t.Interval) {
		return false
	}
	s.fresh = false
	s.out.SetCode(t.At(s.idx))
	s.idx++
	if s.stats.Emitted > 0 && t.Interval > 0 && elapsed >= 2*uint64(t.Interval) {
		s.stats.Late++
	}
	s.stats.Emitted++
	s.last = now
	return true
}

// Index is the free-running index of the next sample.
func (s *Scheduler) Index() uint32 { return s.idx }

func (s *Scheduler) Stats() Stats { return s.stats }

// Table returns the loaded table, or nil.
func (s *Scheduler) Table() *wave.Table { return s.table }
