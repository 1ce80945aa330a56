package display

import (
	"io"

	"funcgen-go/engine"
)

// Console writes frames as text, one row per line, with carets under the
// field being edited.
type Console struct {
	w   io.Writer
	buf []byte
}

func NewConsole(w io.Writer) *Console { return &Console{w: w} }

func (c *Console) Redraw(s engine.Snapshot) {
	c.buf = append(c.buf[:0], "----------------\n"...)
	c.frame(Compose(s))
}

func (c *Console) Refresh(s engine.Snapshot) {
	c.buf = c.buf[:0]
	c.frame(Compose(s))
}

func (c *Console) frame(f Frame) {
	b := c.buf
	for i, row := range f.Rows {
		b = append(b, row...)
		b = append(b, '\n')
		if f.Mark.Row == i {
			for j := 0; j < f.Mark.To; j++ {
				if j < f.Mark.From {
					b = append(b, ' ')
				} else {
					b = append(b, '^')
				}
			}
			b = append(b, '\n')
		}
	}
	c.buf = b
	_, _ = c.w.Write(b)
}
