package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"funcgen-go/engine"
	"funcgen-go/errcode"
	"funcgen-go/internal/platform"
	"funcgen-go/x/timex"
)

// sim drives an engine on a host board against a manual clock.
type sim struct {
	h     *platform.Host
	e     *engine.Engine
	clock *timex.Manual
	out   io.Writer
	tick  time.Duration
}

func newSim(h *platform.Host, e *engine.Engine, clock *timex.Manual, out io.Writer, tick time.Duration) *sim {
	if tick <= 0 {
		tick = 10 * time.Microsecond
	}
	return &sim{h: h, e: e, clock: clock, out: out, tick: tick}
}

// runScript executes one command per line. Blank lines and lines starting
// with '#' are skipped.
func (s *sim) runScript(r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		args, err := shlex.Split(sc.Text())
		if err != nil {
			return &errcode.E{C: errcode.InvalidParams, Op: "line " + strconv.Itoa(line), Err: err}
		}
		if len(args) == 0 || strings.HasPrefix(args[0], "#") {
			continue
		}
		if err := s.exec(args); err != nil {
			return &errcode.E{C: errcode.Of(err), Op: "line " + strconv.Itoa(line), Err: err}
		}
	}
	return sc.Err()
}

func usage(cmd string) error {
	return &errcode.E{C: errcode.InvalidParams, Op: cmd, Msg: "usage: " + help[cmd]}
}

var help = map[string]string{
	"mode":  "mode",
	"field": "field [n]",
	"turn":  "turn <detents>",
	"run":   "run <duration>",
	"show":  "show",
	"table": "table",
	"fail":  "fail on|off",
}

func (s *sim) exec(args []string) error {
	switch cmd := args[0]; cmd {
	case "mode":
		s.h.Inputs.Mode.Inc()
		s.e.Step()
	case "field":
		n := 1
		if len(args) > 1 {
			v, err := strconv.Atoi(args[1])
			if err != nil || v < 0 {
				return usage(cmd)
			}
			n = v
		}
		for i := 0; i < n; i++ {
			s.h.Inputs.Field.Inc()
		}
		s.e.Step()
	case "turn":
		if len(args) != 2 {
			return usage(cmd)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return usage(cmd)
		}
		if s.e.Mode() != engine.Configuring {
			return nil // the knob is only read while configuring
		}
		s.h.Knob.Turn(n)
		for s.h.Knob.Pending() > 0 {
			s.step()
		}
	case "run":
		if len(args) != 2 {
			return usage(cmd)
		}
		d, err := time.ParseDuration(args[1])
		if err != nil || d < 0 {
			return usage(cmd)
		}
		for end := s.clock.Micros() + uint64(d/time.Microsecond); s.clock.Micros() < end; {
			s.step()
		}
	case "show":
		s.show()
	case "table":
		s.table()
	case "fail":
		if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
			return usage(cmd)
		}
		if args[1] == "on" {
			s.h.DAC.Fail(errcode.BusError)
		} else {
			s.h.DAC.Fail(nil)
		}
	default:
		return &errcode.E{C: errcode.Unsupported, Op: cmd, Msg: "unknown command"}
	}
	return nil
}

func (s *sim) step() {
	s.e.Step()
	s.clock.Advance(s.tick)
}

func (s *sim) show() {
	p := s.e.Params()
	st := s.e.Stats()
	fmt.Fprintf(s.out, "mode=%s kind=%s freq=%g amp=%g offset=%g samples=%d cursor=%s\n",
		s.e.Mode(), s.e.Kind(), p.Frequency, p.Amplitude, p.Offset, p.Samples, s.e.Cursor())
	if t := s.e.Table(); t != nil {
		fmt.Fprintf(s.out, "interval=%dus checksum=%016x emitted=%d late=%d dac_writes=%d dac_errors=%d\n",
			t.Interval, t.Checksum(), st.Emitted, st.Late, s.h.DAC.Count(), s.h.DACO.Errors())
	}
}

func (s *sim) table() {
	t := s.e.Table()
	if t == nil {
		fmt.Fprintln(s.out, "no table")
		return
	}
	for i, c := range t.Codes() {
		sep := " "
		if i%16 == 15 {
			sep = "\n"
		}
		fmt.Fprintf(s.out, "%4d%s", c, sep)
	}
}
