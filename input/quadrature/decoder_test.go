package quadrature

import "testing"

type fakeLine struct{ level bool }

func (l *fakeLine) Get() bool { return l.level }

func TestDecodeTruthTable(t *testing.T) {
	type C struct {
		prev, clk, data bool
		want            int8
	}
	for _, c := range []C{
		{true, false, true, +1},
		{true, false, false, -1},
		{false, false, true, 0},
		{false, true, true, 0}, // rising edge ignored
		{true, true, false, 0},
		{false, false, false, 0},
	} {
		got, next := Decode(c.prev, c.clk, c.data)
		if got != c.want {
			t.Fatalf("Decode(%v,%v,%v) = %d, want %d", c.prev, c.clk, c.data, got, c.want)
		}
		if next != c.clk {
			t.Fatalf("next = %v, want %v", next, c.clk)
		}
	}
}

func TestDecoderCountsOneStepPerDetent(t *testing.T) {
	var d Decoder
	d.Reset(true) // idle high with pull-ups

	// Clockwise detent: clock falls while data is high, then both return.
	seq := []struct{ clk, data bool }{
		{true, true}, {false, true}, {false, true}, {true, true},
		{true, false}, {false, false}, {true, false},
	}
	var sum int
	for _, s := range seq {
		sum += int(d.Poll(s.clk, s.data))
	}
	if sum != 0 {
		t.Fatalf("one cw + one ccw detent summed to %d, want 0", sum)
	}

	d.Reset(true)
	if d.Poll(true, true) != 0 {
		t.Fatal("no edge must give 0")
	}
	if d.Poll(false, true) != +1 {
		t.Fatal("falling edge with data high must give +1")
	}
	if d.Poll(false, true) != 0 {
		t.Fatal("held low must not repeat the step")
	}
}

func TestLinesSeedFromClock(t *testing.T) {
	clk, data := &fakeLine{level: false}, &fakeLine{level: true}
	l := NewLines(clk, data)
	if l.Poll() != 0 {
		t.Fatal("seeded low clock must not report an edge")
	}
	clk.level = true
	if l.Poll() != 0 {
		t.Fatal("rising edge must not count")
	}
	clk.level = false
	data.level = false
	if got := l.Poll(); got != -1 {
		t.Fatalf("Poll = %d, want -1", got)
	}
}
