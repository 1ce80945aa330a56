package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/term"

	"funcgen-go/engine"
	"funcgen-go/internal/platform"
)

const keyHelp = "keys: m=mode f=field +/- or ]/[ turn  s=show  q=quit\r\n"

// crlf translates "\n" to "\r\n" for a terminal in raw mode.
type crlf struct{ w io.Writer }

func (c crlf) Write(p []byte) (int, error) {
	buf := make([]byte, 0, len(p)+8)
	for _, b := range p {
		if b == '\n' {
			buf = append(buf, '\r')
		}
		buf = append(buf, b)
	}
	if _, err := c.w.Write(buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

// interactive runs the engine in real time, reading single keys from a raw
// terminal.
func interactive(ctx context.Context, h *platform.Host, e *engine.Engine) error {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer func() { _ = term.Restore(fd, old) }()

	fmt.Fprint(os.Stdout, keyHelp)
	keys := make(chan byte, 16)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				close(keys)
				return
			}
			if n == 1 {
				keys <- buf[0]
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			switch k {
			case 'm':
				h.Inputs.Mode.Inc()
			case 'f':
				h.Inputs.Field.Inc()
			case '+', '=', ']':
				if e.Mode() == engine.Configuring {
					h.Knob.Turn(1)
				}
			case '-', '[':
				if e.Mode() == engine.Configuring {
					h.Knob.Turn(-1)
				}
			case 's':
				p := e.Params()
				fmt.Fprintf(os.Stdout, "mode=%s kind=%s freq=%g samples=%d emitted=%d late=%d\r\n",
					e.Mode(), e.Kind(), p.Frequency, p.Samples, e.Stats().Emitted, e.Stats().Late)
			case 'q', 3: // ctrl-c
				return nil
			}
		default:
		}
		e.Step()
		runtime.Gosched()
	}
}
