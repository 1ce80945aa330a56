// Command funcgen-sim runs the function generator against fake hardware.
//
// With -e or -script it executes commands on a simulated clock:
//
//	funcgen-sim -e 'run 20ms; mode; field 3; turn -2; mode; run 5ms; show'
//
// Without a script and with a terminal on stdin it runs interactively in
// real time.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/term"

	"funcgen-go/bus"
	"funcgen-go/engine"
	"funcgen-go/internal/platform"
	"funcgen-go/services/config"
	"funcgen-go/services/monitor"
	"funcgen-go/x/timex"
)

func main() {
	board := flag.String("board", platform.DefaultBoard, "settings profile ("+strings.Join(config.Boards(), ", ")+")")
	script := flag.String("script", "", "script file, - for stdin")
	inline := flag.String("e", "", "inline script; commands separated by ';'")
	level := flag.String("log", "", "log level override (debug, info, warn, error)")
	tick := flag.Duration("tick", 10*time.Microsecond, "simulated loop period")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *board, *script, *inline, *level, *tick); err != nil {
		println("Error:", err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, board, script, inline, level string, tick time.Duration) error {
	ctx = context.WithValue(ctx, config.CtxDeviceKey, board)

	b := bus.NewBus(8)
	set, err := config.NewConfigService().Start(ctx, b.NewConnection("config"))
	if err != nil {
		return err
	}
	if level != "" {
		set.LogLevel = level
	}

	var src io.Reader
	switch {
	case inline != "":
		src = strings.NewReader(strings.ReplaceAll(inline, ";", "\n"))
	case script == "-":
		src = os.Stdin
	case script != "":
		f, err := os.Open(script)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	case !term.IsTerminal(int(os.Stdin.Fd())):
		src = os.Stdin
	}

	if src == nil {
		h := platform.NewHost(set, crlf{os.Stdout}, crlf{os.Stderr}, timex.NewSystem())
		e, err := newEngine(ctx, b, set, h)
		if err != nil {
			return err
		}
		return interactive(ctx, h, e)
	}

	clock := new(timex.Manual)
	h := platform.NewHost(set, os.Stdout, os.Stderr, clock)
	e, err := newEngine(ctx, b, set, h)
	if err != nil {
		return err
	}
	return newSim(h, e, clock, os.Stdout, tick).runScript(src)
}

func newEngine(ctx context.Context, b *bus.Bus, set config.Settings, h *platform.Host) (*engine.Engine, error) {
	if err := monitor.New(h.Log.Named("monitor"), set.Heartbeat).Start(ctx, b.NewConnection("monitor")); err != nil {
		return nil, err
	}
	return engine.New(set.Engine(), h.Clock, h.Out, h.Display, h.Inputs,
		engine.WithBus(b.NewConnection("engine")),
		engine.WithLogger(h.Log.Named("engine"))), nil
}
