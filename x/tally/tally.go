// Package tally provides a press counter shared between one interrupt
// handler (producer) and the cooperative main loop (consumer).
//
// The producer only ever adds to a monotonic 32-bit value. The consumer keeps
// its own mark of what it has already seen and never writes the producer's
// word, so an increment that races a "reset" cannot be lost. Differences are
// taken modulo 2^32, which is wrap-safe as long as fewer than 2^32 presses
// arrive between two consumer reads.
package tally

import "sync/atomic"

// Counter is a single-producer, single-consumer event counter.
type Counter struct {
	n    atomic.Uint32 // producer (monotonic)
	seen uint32        // consumer only
}

// Inc records one event. Safe to call from an interrupt handler: it does not
// block or allocate.
func (c *Counter) Inc() { c.n.Add(1) }

// Total returns the number of events recorded since start (mod 2^32).
func (c *Counter) Total() uint32 { return c.n.Load() }

// Pending reports how many events the consumer has not taken yet.
func (c *Counter) Pending() uint32 { return c.n.Load() - c.seen }

// Take consumes at most max pending events and returns how many it took.
// max == 0 means no limit.
func (c *Counter) Take(max uint32) uint32 {
	p := c.n.Load() - c.seen
	if max != 0 && p > max {
		p = max
	}
	c.seen += p
	return p
}

// Drain discards all pending events and returns how many were discarded.
func (c *Counter) Drain() uint32 { return c.Take(0) }
