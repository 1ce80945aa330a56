package main

import (
	"math"
	"testing"

	"funcgen-go/wave"
)

func TestStepsHoldEachCode(t *testing.T) {
	p := wave.Params{Frequency: 50, Amplitude: 4, Offset: 0, Samples: 16}
	tb := wave.Build(wave.Square, p, 4.096, 1)
	xys := steps(&tb, 4.096, 2)
	if len(xys) != 2*16*2 {
		t.Fatalf("len = %d, want 64", len(xys))
	}
	dt := float64(tb.Interval) / 1000
	for i := 0; i < 32; i++ {
		a, b := xys[2*i], xys[2*i+1]
		if a.Y != b.Y || !near(b.X-a.X, dt) {
			t.Fatalf("sample %d not held: %+v %+v", i, a, b)
		}
	}
	if !near(xys[0].Y, 4) || xys[2*8].Y != 0 {
		t.Fatalf("square levels %v / %v, want 4 / 0", xys[0].Y, xys[2*8].Y)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRender(t *testing.T) {
	p := wave.Params{Frequency: 10, Amplitude: 2, Offset: 1, Samples: 32}
	tb := wave.Build(wave.Sine, p, 4.975, 0.86)
	pl, err := render(&tb, wave.Sine, p, 4.975, 1)
	if err != nil {
		t.Fatal(err)
	}
	if pl.Title.Text != "sine 10 Hz, 32 samples" {
		t.Fatalf("title = %q", pl.Title.Text)
	}
}
