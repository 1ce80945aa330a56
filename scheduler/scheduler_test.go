package scheduler

import (
	"testing"

	"funcgen-go/wave"
	"funcgen-go/x/timex"
)

type recorder struct{ codes []uint16 }

func (r *recorder) SetCode(c uint16) { r.codes = append(r.codes, c) }

func rampTable(n int, interval uint32) *wave.Table {
	t := wave.Generate(wave.Ramp, wave.Params{Frequency: 10, Amplitude: 4.9, Offset: 0, Samples: n}, 4.975)
	t.Interval = interval
	return &t
}

func TestEmitsAtIntervalOnly(t *testing.T) {
	var clk timex.Manual
	clk.Set(1000)
	out := &recorder{}
	s := New(out, &clk)
	tb := rampTable(16, 100)
	s.Load(tb)

	if !s.Poll() {
		t.Fatal("first sample must go out right after Load")
	}
	clk.AdvanceMicros(99)
	if s.Poll() {
		t.Fatal("emitted before the interval elapsed")
	}
	clk.AdvanceMicros(1)
	if !s.Poll() {
		t.Fatal("did not emit at the interval")
	}
	if s.Poll() {
		t.Fatal("emitted twice for one interval")
	}
	if len(out.codes) != 2 || out.codes[0] != tb.Codes()[0] || out.codes[1] != tb.Codes()[1] {
		t.Fatalf("codes = %v", out.codes)
	}
}

func TestWraparoundReproducesTableTwice(t *testing.T) {
	var clk timex.Manual
	out := &recorder{}
	s := New(out, &clk)
	tb := rampTable(16, 10)
	s.Load(tb)
	for i := 0; i < 32; i++ {
		if !s.Poll() {
			t.Fatalf("poll %d did not emit", i)
		}
		clk.AdvanceMicros(10)
	}
	for i := 0; i < 32; i++ {
		if out.codes[i] != tb.Codes()[i&15] {
			t.Fatalf("sample %d = %d, want buffer[%d] = %d", i, out.codes[i], i&15, tb.Codes()[i&15])
		}
	}
	if out.codes[17] != tb.Codes()[1] {
		t.Fatal("index 17 must resolve to buffer[1]")
	}
	if s.Index() != 32 {
		t.Fatalf("Index = %d, want 32", s.Index())
	}
}

func TestNoCatchUpBurst(t *testing.T) {
	var clk timex.Manual
	out := &recorder{}
	s := New(out, &clk)
	s.Load(rampTable(32, 50))
	s.Poll()

	clk.AdvanceMicros(500) // ten intervals late
	if !s.Poll() {
		t.Fatal("late poll must emit")
	}
	if s.Poll() {
		t.Fatal("missed deadlines must not be replayed")
	}
	st := s.Stats()
	if st.Emitted != 2 || st.Late != 1 {
		t.Fatalf("stats = %+v, want 2 emitted 1 late", st)
	}
}

func TestLoadReplacesPairAndResets(t *testing.T) {
	var clk timex.Manual
	out := &recorder{}
	s := New(out, &clk)
	if s.Poll() {
		t.Fatal("emitted without a table")
	}
	s.Load(rampTable(16, 10))
	for i := 0; i < 5; i++ {
		s.Poll()
		clk.AdvanceMicros(10)
	}
	next := rampTable(64, 1000)
	s.Load(next)
	if s.Index() != 0 || s.Stats().Emitted != 0 {
		t.Fatal("Load did not reset index and stats")
	}
	if !s.Poll() {
		t.Fatal("first sample of new table not emitted")
	}
	clk.AdvanceMicros(10)
	if s.Poll() {
		t.Fatal("old interval still in effect after Load")
	}
	if s.Table() != next {
		t.Fatal("Table() does not return the loaded table")
	}
}

func TestLoadRejectsBadLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Load accepted an empty table")
		}
	}()
	var clk timex.Manual
	New(&recorder{}, &clk).Load(&wave.Table{})
}
