package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"funcgen-go/bus"
	"funcgen-go/engine"
	"funcgen-go/errcode"
	"funcgen-go/internal/platform"
	"funcgen-go/services/config"
	"funcgen-go/x/timex"
)

func newTestSim(t *testing.T) (*sim, *bytes.Buffer) {
	t.Helper()
	set, err := config.Lookup("host")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	clock := new(timex.Manual)
	h := platform.NewHost(set, io.Discard, io.Discard, clock)
	e := engine.New(set.Engine(), h.Clock, h.Out, h.Display, h.Inputs)
	return newSim(h, e, clock, &out, 0), &out
}

func TestScriptEditsWaveform(t *testing.T) {
	s, out := newTestSim(t)
	script := `
# start, then switch to square at 64 samples
run 10ms
mode
turn 2
field 9
turn 1
mode
run 2ms
show
`
	if err := s.runScript(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"mode=running", "kind=square", "samples=64", "cursor=kind"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if s.h.DAC.Count() == 0 {
		t.Fatal("no samples written")
	}
}

func TestScriptTurnIgnoredWhileRunning(t *testing.T) {
	s, _ := newTestSim(t)
	if err := s.runScript(strings.NewReader("run 1ms\nturn 5\nrun 1ms")); err != nil {
		t.Fatal(err)
	}
	if s.e.Kind().String() != "sine" || s.h.Knob.Pending() != 0 {
		t.Fatalf("kind %v pending %d", s.e.Kind(), s.h.Knob.Pending())
	}
}

func TestScriptErrors(t *testing.T) {
	s, _ := newTestSim(t)
	for _, c := range []struct {
		script string
		code   errcode.Code
	}{
		{"jump", errcode.Unsupported},
		{"run soon", errcode.InvalidParams},
		{"turn", errcode.InvalidParams},
		{"fail maybe", errcode.InvalidParams},
		{`show "unterminated`, errcode.InvalidParams},
	} {
		err := s.runScript(strings.NewReader(c.script))
		if errcode.Of(err) != c.code {
			t.Fatalf("%q: err = %v, want %s", c.script, err, c.code)
		}
		if !strings.HasPrefix(err.Error(), "line 1: ") {
			t.Fatalf("%q: error lacks line number: %v", c.script, err)
		}
	}
}

func TestScriptDACFailureCounted(t *testing.T) {
	s, out := newTestSim(t)
	if err := s.runScript(strings.NewReader("run 1ms\nfail on\nrun 1ms\nfail off\nshow")); err != nil {
		t.Fatal(err)
	}
	if s.h.DACO.Errors() == 0 || !strings.Contains(out.String(), "dac_errors=") {
		t.Fatalf("failures not counted: %s", out.String())
	}
}

func TestNewEngineStartsMonitor(t *testing.T) {
	set, err := config.Lookup("host")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := bus.NewBus(4)
	h := platform.NewHost(set, io.Discard, io.Discard, new(timex.Manual))
	e, err := newEngine(ctx, b, set, h)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	e.Step()
	if e.Mode() != engine.Running {
		t.Fatalf("mode = %v, want running", e.Mode())
	}
}

func TestRunReportsErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := run(ctx, "host", "", "run 1ms", "error", 0); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := run(ctx, "nope", "", "run 1ms", "", 0); errcode.Of(err) != errcode.UnknownBoard {
		t.Fatalf("unknown board: err = %v", err)
	}
	if err := run(ctx, "host", "", "bogus", "error", 0); errcode.Of(err) != errcode.Unsupported {
		t.Fatalf("bad command: err = %v", err)
	}
}
