//go:build !(rp2040 || rp2350)

package platform

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"funcgen-go/engine"
	"funcgen-go/services/config"
	"funcgen-go/x/logx"
	"funcgen-go/x/timex"
)

func TestKnobThroughDecoder(t *testing.T) {
	k := NewKnob()
	k.Turn(2)
	k.Turn(-1)
	var sum, moves int
	for k.Pending() > 0 {
		if s := k.Poll(); s != 0 {
			sum += int(s)
			moves++
		}
	}
	if sum != 1 || moves != 3 {
		t.Fatalf("sum %d over %d steps, want 1 over 3", sum, moves)
	}
	if k.Poll() != 0 {
		t.Fatal("idle knob produced a step")
	}
}

func TestRecorderKeepsNewest(t *testing.T) {
	r := NewRecorder(3)
	for c := uint16(1); c <= 5; c++ {
		if err := r.SetCode(c); err != nil {
			t.Fatal(err)
		}
	}
	got := r.Codes()
	if len(got) != 3 || got[0] != 3 || got[2] != 5 || r.Count() != 5 {
		t.Fatalf("codes %v count %d", got, r.Count())
	}
}

func TestDACOutputThrottlesFailureLogs(t *testing.T) {
	var buf bytes.Buffer
	var clk timex.Manual
	rec := NewRecorder(4)
	rec.Fail(errors.New("nack"))
	out := NewDACOutput(rec, &clk, logx.New(&buf, "dac"))

	for i := 0; i < 10; i++ {
		out.SetCode(1)
		clk.Advance(10 * time.Millisecond)
	}
	if out.Errors() != 10 {
		t.Fatalf("errors = %d", out.Errors())
	}
	if n := strings.Count(buf.String(), "dac write failed"); n != 1 {
		t.Fatalf("logged %d times in 100ms, want 1", n)
	}
	clk.Advance(time.Second)
	out.SetCode(1)
	if n := strings.Count(buf.String(), "dac write failed"); n != 2 {
		t.Fatalf("logged %d times, want 2", n)
	}

	rec.Fail(nil)
	out.SetCode(7)
	if out.Errors() != 11 || rec.Codes()[0] != 7 {
		t.Fatal("recovered write not recorded")
	}
}

func TestHostBoardRunsEngine(t *testing.T) {
	set, err := config.Lookup("host")
	if err != nil {
		t.Fatal(err)
	}
	var screen, logs bytes.Buffer
	clk := new(timex.Manual)
	h := NewHost(set, &screen, &logs, clk)
	e := engine.New(set.Engine(), h.Clock, h.Out, h.Display, h.Inputs)

	e.Step() // calculate
	tb := e.Table()
	for i := 0; i < 64; i++ {
		e.Step()
		clk.AdvanceMicros(uint64(tb.Interval))
	}
	if h.DAC.Count() != 64 {
		t.Fatalf("dac writes = %d, want 64", h.DAC.Count())
	}

	// Edit the kind through the fake knob.
	h.Inputs.Mode.Inc()
	e.Step()
	h.Knob.Turn(1)
	for h.Knob.Pending() > 0 {
		e.Step()
	}
	if e.Kind().String() != "ramp" {
		t.Fatalf("kind = %v, want ramp", e.Kind())
	}
	h.Inputs.Mode.Inc()
	e.Step()
	e.Step()
	if e.Mode() != engine.Running {
		t.Fatalf("mode = %v", e.Mode())
	}
	if !strings.Contains(screen.String(), "RUN  ramp") {
		t.Fatalf("screen:\n%s", screen.String())
	}
}
