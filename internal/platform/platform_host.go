//go:build !(rp2040 || rp2350)

package platform

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"funcgen-go/display"
	"funcgen-go/engine"
	"funcgen-go/input/quadrature"
	"funcgen-go/services/config"
	"funcgen-go/x/logx"
	"funcgen-go/x/tally"
	"funcgen-go/x/timex"
)

// Setup builds a host board drawing to stdout and logging to stderr.
func Setup(set config.Settings) (*Board, error) {
	h := NewHost(set, os.Stdout, os.Stderr, timex.NewSystem())
	return &h.Board, nil
}

// Host is a Board on fake hardware, with handles to drive and inspect it.
type Host struct {
	Board
	Knob *Knob
	DAC  *Recorder
	DACO *DACOutput
}

// NewHost builds a board whose display writes text to screen and whose log
// writes to logw.
func NewHost(set config.Settings, screen, logw io.Writer, clock timex.Clock) *Host {
	log := logx.New(logw, "")
	applyLevel(log, set.LogLevel)

	h := &Host{Knob: NewKnob(), DAC: NewRecorder(1024)}
	h.DACO = NewDACOutput(h.DAC, clock, log.Named("dac"))
	h.Board = Board{
		Name:    set.Board,
		Clock:   clock,
		Out:     h.DACO,
		Display: display.NewConsole(screen),
		Inputs: engine.Inputs{
			Mode:    new(tally.Counter),
			Field:   new(tally.Counter),
			Encoder: h.Knob,
		},
		Log: log,
	}
	return h
}

// -----------------------------------------------------------------------------
// Fake pins and encoder
// -----------------------------------------------------------------------------

type FakePin struct{ level atomic.Bool }

func (p *FakePin) Get() bool  { return p.level.Load() }
func (p *FakePin) Set(v bool) { p.level.Store(v) }

type levels struct{ clk, data bool }

// Knob emulates a rotary encoder on two pulled-up pins. Turn queues detents;
// every Poll plays one pin transition through the quadrature decoder.
type Knob struct {
	Clock, Data FakePin

	mu    sync.Mutex
	queue []levels
	lines *quadrature.Lines
}

func NewKnob() *Knob {
	k := &Knob{}
	k.Clock.Set(true)
	k.Data.Set(true)
	k.lines = quadrature.NewLines(&k.Clock, &k.Data)
	return k
}

// Turn queues n detents, clockwise when positive.
func (k *Knob) Turn(n int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for ; n > 0; n-- {
		k.queue = append(k.queue, levels{true, true}, levels{false, true}, levels{true, true})
	}
	for ; n < 0; n++ {
		k.queue = append(k.queue, levels{true, false}, levels{false, false}, levels{true, true})
	}
}

// Pending is the number of queued pin transitions.
func (k *Knob) Pending() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.queue)
}

func (k *Knob) Poll() int8 {
	k.mu.Lock()
	if len(k.queue) > 0 {
		l := k.queue[0]
		k.queue = k.queue[1:]
		k.Clock.Set(l.clk)
		k.Data.Set(l.data)
	}
	k.mu.Unlock()
	return k.lines.Poll()
}

// -----------------------------------------------------------------------------
// Recording DAC
// -----------------------------------------------------------------------------

// Recorder keeps the most recent codes written to it.
type Recorder struct {
	mu    sync.Mutex
	codes []uint16
	max   int
	count uint64
	fail  error
}

func NewRecorder(max int) *Recorder {
	if max <= 0 {
		max = 1
	}
	return &Recorder{max: max}
}

func (r *Recorder) SetCode(code uint16) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	if len(r.codes) == r.max {
		copy(r.codes, r.codes[1:])
		r.codes = r.codes[:r.max-1]
	}
	r.codes = append(r.codes, code)
	r.count++
	return nil
}

// Fail makes every following write return err; nil restores writes.
func (r *Recorder) Fail(err error) {
	r.mu.Lock()
	r.fail = err
	r.mu.Unlock()
}

// Codes returns a copy of the retained codes, oldest first.
func (r *Recorder) Codes() []uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint16(nil), r.codes...)
}

// Count is the number of successful writes.
func (r *Recorder) Count() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset drops the retained codes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.codes = r.codes[:0]
	r.mu.Unlock()
}
