// Package shmring is a single-producer single-consumer byte ring. The
// producer never blocks: bytes that do not fit are dropped and reported.
// A Pump moves the ring's contents to a slow writer on its own goroutine,
// so a busy loop can log without waiting on a UART.
package shmring

import (
	"context"
	"io"
	"sync/atomic"

	"funcgen-go/errcode"
	"funcgen-go/x/mathx"
)

// ErrFull is returned by Write when only part of p fitted.
var ErrFull error = &errcode.E{C: errcode.OutOfRange, Op: "shmring.write", Msg: "ring full"}

// Ring is a single-producer, single-consumer byte ring.
type Ring struct {
	buf  []byte
	mask uint32
	rd   atomic.Uint32 // consumer index (monotonic)
	wr   atomic.Uint32 // producer index (monotonic)

	dropped atomic.Uint32

	readable chan struct{} // 0->>0 available edge
	writable chan struct{} // 0->>0 space edge
}

func New(size int) *Ring {
	if size < 2 || !mathx.IsPow2(size) {
		panic("shmring: size must be power of two >= 2")
	}
	return &Ring{
		buf:      make([]byte, size),
		mask:     uint32(size - 1),
		readable: make(chan struct{}, 1),
		writable: make(chan struct{}, 1),
	}
}

func (r *Ring) size() uint32 { return uint32(len(r.buf)) }

func (r *Ring) Space() int {
	rd := r.rd.Load()
	wr := r.wr.Load()
	return int(r.size() - (wr - rd))
}

func (r *Ring) Available() int {
	rd := r.rd.Load()
	wr := r.wr.Load()
	return int(wr - rd)
}

// Dropped counts bytes refused by Write since creation.
func (r *Ring) Dropped() uint32 { return r.dropped.Load() }

// Producer side

func (r *Ring) TryWriteFrom(src []byte) (n int) {
	if len(src) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load()
	beforeAvail := wr - rd
	space := int(r.size() - beforeAvail)
	if space <= 0 {
		return 0
	}
	n = mathx.Min(space, len(src))

	size := r.size()
	wrIdx := wr & r.mask
	first := mathx.Min(int(size-wrIdx), n)
	copy(r.buf[wrIdx:wrIdx+uint32(first)], src[:first])
	if second := n - first; second > 0 {
		copy(r.buf[:second], src[first:n])
	}
	r.wr.Store(wr + uint32(n)) // release

	// Notify reader if we transitioned 0->>0 available
	if beforeAvail == 0 {
		select {
		case r.readable <- struct{}{}:
		default:
		}
	}
	return n
}

// Write implements io.Writer without blocking. A short write returns ErrFull
// and the tail of p is lost.
func (r *Ring) Write(p []byte) (int, error) {
	n := r.TryWriteFrom(p)
	if n < len(p) {
		r.dropped.Add(uint32(len(p) - n))
		return n, ErrFull
	}
	return n, nil
}

// Consumer side

func (r *Ring) TryReadInto(dst []byte) (n int) {
	if len(dst) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load() // acquire
	avail := int(wr - rd)
	if avail <= 0 {
		return 0
	}
	n = mathx.Min(avail, len(dst))

	size := r.size()
	rdIdx := rd & r.mask
	first := mathx.Min(int(size-rdIdx), n)
	copy(dst[:first], r.buf[rdIdx:rdIdx+uint32(first)])
	if second := n - first; second > 0 {
		copy(dst[first:n], r.buf[:second])
	}
	r.rd.Store(rd + uint32(n)) // release

	// Notify writer if we transitioned 0->>0 space
	beforeSpace := int(size - (wr - rd))
	if beforeSpace == 0 {
		select {
		case r.writable <- struct{}{}:
		default:
		}
	}
	return n
}

func (r *Ring) Readable() <-chan struct{} { return r.readable }
func (r *Ring) Writable() <-chan struct{} { return r.writable }

// Pump copies everything written to r into w until ctx is done. It is the
// ring's only consumer. Write errors from w drop the chunk.
func Pump(ctx context.Context, r *Ring, w io.Writer, chunk int) {
	if chunk <= 0 {
		chunk = 64
	}
	buf := make([]byte, chunk)
	for {
		if n := r.TryReadInto(buf); n > 0 {
			_, _ = w.Write(buf[:n])
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-r.Readable():
		}
	}
}
