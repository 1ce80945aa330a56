package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"funcgen-go/engine"
)

var (
	colorOn  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorOff = color.RGBA{A: 0xff}
)

const (
	rowPitch = 12
	baseline = 10 // first row baseline
	ruleY    = 12 // separator under the header
)

// OLED draws frames onto a monochrome pixel display.
type OLED struct {
	d    drivers.Displayer
	font tinyfont.Fonter
	err  error
}

func NewOLED(d drivers.Displayer) *OLED {
	return &OLED{d: d, font: &proggy.TinySZ8pt7b}
}

// Err returns the last error from the display transport.
func (o *OLED) Err() error { return o.err }

func (o *OLED) Redraw(s engine.Snapshot) {
	w, h := o.d.Size()
	o.clear(0, 0, w, h)
	for x := int16(0); x < w; x++ {
		o.d.SetPixel(x, ruleY, colorOn)
	}
	o.draw(Compose(s))
}

// Refresh repaints the text, leaving the separator alone.
func (o *OLED) Refresh(s engine.Snapshot) {
	w, h := o.d.Size()
	o.clear(0, 0, w, ruleY)
	o.clear(0, ruleY+1, w, h)
	o.draw(Compose(s))
}

func (o *OLED) draw(f Frame) {
	for i := 0; i < NumRows; i++ {
		y := int16(baseline + i*rowPitch)
		tinyfont.WriteLine(o.d, o.font, 0, y, f.Rows[i], colorOn)
		if f.Mark.Row == i {
			row := f.Rows[i]
			_, x0 := tinyfont.LineWidth(o.font, row[:f.Mark.From])
			_, x1 := tinyfont.LineWidth(o.font, row[:f.Mark.To])
			for x := int16(x0); x < int16(x1); x++ {
				o.d.SetPixel(x, y+1, colorOn)
			}
		}
	}
	o.err = o.d.Display()
}

func (o *OLED) clear(x0, y0, x1, y1 int16) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			o.d.SetPixel(x, y, colorOff)
		}
	}
}
