// Command waveplot renders the table the generator would stream for a given
// configuration, as a stepped voltage-over-time plot.
//
//	waveplot -kind square -freq 40 -samples 64 -o square.png
package main

import (
	"flag"
	"os"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"funcgen-go/errcode"
	"funcgen-go/services/config"
	"funcgen-go/wave"
)

func main() {
	board := flag.String("board", "pico", "settings profile for vref, limits and defaults")
	kind := flag.String("kind", "", "sine, ramp, square or dc (default from profile)")
	freq := flag.Float64("freq", 0, "frequency in Hz (default from profile)")
	amp := flag.Float64("amp", -1, "amplitude in volts peak-to-peak (default from profile)")
	offset := flag.Float64("offset", -1, "offset in volts (default from profile)")
	samples := flag.Int("samples", 0, "samples per cycle (default from profile)")
	cycles := flag.Int("cycles", 2, "cycles to draw")
	out := flag.String("o", "wave.png", "output file; the extension selects the format")
	flag.Parse()

	set, err := config.Lookup(*board)
	if err != nil {
		fail(err)
	}
	k := set.Kind
	if *kind != "" {
		var ok bool
		if k, ok = wave.ParseKind(*kind); !ok {
			fail(&errcode.E{C: errcode.InvalidParams, Op: "waveplot", Msg: "unknown kind " + *kind})
		}
	}
	p := set.Params
	if *freq > 0 {
		p.Frequency = *freq
	}
	if *amp >= 0 {
		p.Amplitude = *amp
	}
	if *offset >= 0 {
		p.Offset = *offset
	}
	if *samples > 0 {
		p.Samples = *samples
	}

	lim := set.Engine().Limits
	p = wave.Saturate(p, lim)
	t := wave.Build(k, p, lim.VRef, set.Compensation)

	pl, err := render(&t, k, p, lim.VRef, *cycles)
	if err != nil {
		fail(err)
	}
	if err := pl.Save(8*vg.Inch, 4*vg.Inch, *out); err != nil {
		fail(err)
	}
	println("Info: wrote", *out, "interval_us", t.Interval)
}

func fail(err error) {
	println("Error:", err.Error())
	os.Exit(1)
}

func render(t *wave.Table, k wave.Kind, p wave.Params, vref float64, cycles int) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = k.String() + " " + strconv.FormatFloat(p.Frequency, 'g', 4, 64) + " Hz, " +
		strconv.Itoa(p.Samples) + " samples"
	pl.X.Label.Text = "time (ms)"
	pl.Y.Label.Text = "output (V)"
	pl.Y.Min = 0
	pl.Y.Max = vref

	line, err := plotter.NewLine(steps(t, vref, cycles))
	if err != nil {
		return nil, err
	}
	pl.Add(plotter.NewGrid(), line)
	return pl, nil
}

// steps returns two points per sample so the line holds each code for one
// interval, the way the converter does.
func steps(t *wave.Table, vref float64, cycles int) plotter.XYs {
	if cycles < 1 {
		cycles = 1
	}
	n := t.Len() * cycles
	dt := float64(t.Interval) / 1000
	xys := make(plotter.XYs, 0, 2*n)
	for i := 0; i < n; i++ {
		v := float64(t.At(uint32(i))) * vref / wave.Resolution
		x := float64(i) * dt
		xys = append(xys, plotter.XY{X: x, Y: v}, plotter.XY{X: x + dt, Y: v})
	}
	return xys
}
