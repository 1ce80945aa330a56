// Package quadrature turns polled rotary-encoder line levels into steps.
//
// Only the falling edge of the clock line is counted; the data line level at
// that moment gives the direction. Contact bounce is not filtered, so the
// lines must be polled faster than the encoder can change.
package quadrature

// Line is one digital input.
type Line interface {
	Get() bool
}

// Decode detects a falling clock edge between prevClk and clk. On an edge the
// data level selects the direction: high is +1, low is -1. Without an edge the
// step is 0. next is the level to pass as prevClk on the following poll.
func Decode(prevClk, clk, data bool) (step int8, next bool) {
	if prevClk && !clk {
		if data {
			return +1, clk
		}
		return -1, clk
	}
	return 0, clk
}

// Decoder keeps the previous clock level between polls.
type Decoder struct {
	prev bool
}

// Reset sets the remembered clock level, typically to the idle level read at
// start-up so the first poll does not report a phantom edge.
func (d *Decoder) Reset(clk bool) { d.prev = clk }

// Poll feeds one pair of samples and returns the step.
func (d *Decoder) Poll(clk, data bool) int8 {
	var s int8
	s, d.prev = Decode(d.prev, clk, data)
	return s
}

// Lines polls a clock/data pair of inputs.
type Lines struct {
	Clock, Data Line
	dec         Decoder
}

// NewLines samples the clock once to seed the decoder.
func NewLines(clock, data Line) *Lines {
	l := &Lines{Clock: clock, Data: data}
	l.dec.Reset(clock.Get())
	return l
}

// Poll samples both lines and returns the step.
func (l *Lines) Poll() int8 {
	clk := l.Clock.Get()
	return l.dec.Poll(clk, l.Data.Get())
}
