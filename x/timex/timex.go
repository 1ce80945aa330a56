package timex

import (
	"sync/atomic"
	"time"
)

// Clock is a monotonic microsecond time source. Values only matter relative
// to each other; callers compare with Since.
type Clock interface {
	Micros() uint64
}

// Since returns now-then in microseconds, or 0 if the clock stepped backwards.
func Since(now, then uint64) uint64 {
	if now < then {
		return 0
	}
	return now - then
}

// System reads the runtime monotonic clock.
type System struct {
	start time.Time
}

// NewSystem returns a clock whose zero is the moment of the call.
func NewSystem() *System { return &System{start: time.Now()} }

func (s *System) Micros() uint64 { return uint64(time.Since(s.start) / time.Microsecond) }

// Manual is a clock that only moves when told to. Safe for use from
// several goroutines.
type Manual struct {
	us atomic.Uint64
}

func (m *Manual) Micros() uint64 { return m.us.Load() }

// Advance moves the clock forward by d (truncated to microseconds).
func (m *Manual) Advance(d time.Duration) { m.us.Add(uint64(d / time.Microsecond)) }

// AdvanceMicros moves the clock forward by us microseconds.
func (m *Manual) AdvanceMicros(us uint64) { m.us.Add(us) }

// Set jumps the clock to an absolute value.
func (m *Manual) Set(us uint64) { m.us.Store(us) }
