// Package platform wires the engine to a board: the RP2 family under TinyGo,
// or fake hardware on the host.
package platform

import (
	"funcgen-go/engine"
	"funcgen-go/x/logx"
	"funcgen-go/x/timex"
)

// Board is everything the engine needs from the hardware.
type Board struct {
	Name    string
	Clock   timex.Clock
	Out     engine.Output
	Display engine.Display
	Inputs  engine.Inputs
	Log     *logx.Logger
}

// CodeWriter is a converter transport that can fail.
type CodeWriter interface {
	SetCode(code uint16) error
}

const dacLogEvery = 1_000_000 // µs between repeated failure logs

// DACOutput adapts a CodeWriter to engine.Output. Failures are counted and
// logged at most once per second; the sample is dropped.
type DACOutput struct {
	w     CodeWriter
	clock timex.Clock
	log   *logx.Logger

	errs    uint32
	logged  bool
	lastLog uint64
}

func NewDACOutput(w CodeWriter, clock timex.Clock, log *logx.Logger) *DACOutput {
	if log == nil {
		log = logx.Nop()
	}
	return &DACOutput{w: w, clock: clock, log: log}
}

func (o *DACOutput) SetCode(code uint16) {
	err := o.w.SetCode(code)
	if err == nil {
		return
	}
	o.errs++
	now := o.clock.Micros()
	if o.logged && timex.Since(now, o.lastLog) < dacLogEvery {
		return
	}
	o.logged = true
	o.lastLog = now
	o.log.Warn("dac write failed", "err", err, "failures", o.errs)
}

// Errors is the number of failed writes so far.
func (o *DACOutput) Errors() uint32 { return o.errs }

func applyLevel(log *logx.Logger, level string) {
	if lv, ok := logx.ParseLevel(level); ok {
		log.SetLevel(lv)
	}
}
