package timex

import (
	"testing"
	"time"
)

func TestManualAdvance(t *testing.T) {
	var m Manual
	if m.Micros() != 0 {
		t.Fatalf("zero value = %d, want 0", m.Micros())
	}
	m.Advance(1500 * time.Microsecond)
	m.AdvanceMicros(250)
	if got := m.Micros(); got != 1750 {
		t.Fatalf("Micros = %d, want 1750", got)
	}
	m.Set(10)
	if got := m.Micros(); got != 10 {
		t.Fatalf("after Set Micros = %d, want 10", got)
	}
}

func TestSince(t *testing.T) {
	if got := Since(500, 200); got != 300 {
		t.Fatalf("Since(500,200) = %d, want 300", got)
	}
	if got := Since(100, 200); got != 0 {
		t.Fatalf("Since backwards = %d, want 0", got)
	}
}

func TestSystemMonotonic(t *testing.T) {
	s := NewSystem()
	a := s.Micros()
	time.Sleep(2 * time.Millisecond)
	b := s.Micros()
	if b <= a {
		t.Fatalf("system clock did not advance: %d -> %d", a, b)
	}
}
