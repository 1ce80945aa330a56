package errcode

import (
	"errors"
	"testing"
)

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("Of(nil) != OK")
	}
	if Of(OutOfRange) != OutOfRange {
		t.Fatal("bare code not recognised")
	}
	e := &E{C: InvalidParams, Op: "config.validate", Msg: "vref must be > 0"}
	if Of(e) != InvalidParams {
		t.Fatalf("Of(E) = %q", Of(e))
	}
	if Of(errors.New("x")) != Error {
		t.Fatal("foreign error should map to Error")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(BusError, "dac", nil) != nil {
		t.Fatal("Wrap(nil) must be nil")
	}
	cause := errors.New("nack")
	err := Wrap(BusError, "mcp4725.SetCode", cause)
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause lost")
	}
	if got, want := err.Error(), "mcp4725.SetCode: bus_error: nack"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
