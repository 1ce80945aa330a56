package mcp4725

import (
	"bytes"
	"errors"
	"testing"

	"tinygo.org/x/drivers/tester"

	"funcgen-go/errcode"
)

// fakeBus records writes and answers reads with resp.
type fakeBus struct {
	addr   uint16
	writes [][]byte
	resp   []byte
	err    error
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	if b.err != nil {
		return b.err
	}
	b.addr = addr
	if len(w) > 0 {
		b.writes = append(b.writes, append([]byte(nil), w...))
	}
	copy(r, b.resp)
	return nil
}

func TestFastWriteEncoding(t *testing.T) {
	bus := &fakeBus{}
	d := New(bus)
	d.Configure(Config{})

	for _, c := range []struct {
		code uint16
		want []byte
	}{
		{0, []byte{0x00, 0x00}},
		{0x0ABC, []byte{0x0A, 0xBC}},
		{MaxCode, []byte{0x0F, 0xFF}},
		{0xFFFF, []byte{0x0F, 0xFF}}, // clamped
	} {
		bus.writes = nil
		if err := d.SetCode(c.code); err != nil {
			t.Fatal(err)
		}
		if len(bus.writes) != 1 || !bytes.Equal(bus.writes[0], c.want) {
			t.Fatalf("SetCode(%#x) wrote %x, want %x", c.code, bus.writes, c.want)
		}
	}
	if bus.addr != Address {
		t.Fatalf("address %#x, want %#x", bus.addr, Address)
	}
}

func TestWriteDACAndPowerDown(t *testing.T) {
	bus := &fakeBus{}
	d := New(bus)
	d.Configure(Config{Address: 0x61})

	if err := d.WriteDAC(0x0123, PowerDown100k); err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x44, 0x12, 0x30}; !bytes.Equal(bus.writes[0], want) {
		t.Fatalf("WriteDAC wrote %x, want %x", bus.writes[0], want)
	}
	// Power-down bits persist into fast writes.
	if err := d.SetCode(0x0001); err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x20, 0x01}; !bytes.Equal(bus.writes[1], want) {
		t.Fatalf("fast write %x, want %x", bus.writes[1], want)
	}
	if err := d.SetPowerDown(PowerOn); err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x40, 0x00, 0x10}; !bytes.Equal(bus.writes[2], want) {
		t.Fatalf("power on wrote %x, want %x", bus.writes[2], want)
	}
	if bus.addr != 0x61 {
		t.Fatalf("address %#x", bus.addr)
	}
}

func TestReadStatus(t *testing.T) {
	bus := &fakeBus{resp: []byte{0xC2, 0x80, 0x00, 0x28, 0x00}}
	d := New(bus)
	st, err := d.Read()
	if err != nil {
		t.Fatal(err)
	}
	want := Status{
		Ready:           true,
		PowerOnReset:    true,
		PowerDown:       PowerDown1k,
		Code:            0x800,
		EEPROMPowerDown: PowerDown1k,
		EEPROMCode:      0x800,
	}
	if st != want {
		t.Fatalf("status = %+v, want %+v", st, want)
	}
}

func TestSetVoltage(t *testing.T) {
	bus := &fakeBus{}
	d := New(bus)
	for _, c := range []struct {
		v    float64
		want uint16
	}{
		{-1, 0},
		{0, 0},
		{2.5, 2048},
		{5, MaxCode},
		{6, MaxCode},
	} {
		if err := d.SetVoltage(c.v, 5); err != nil {
			t.Fatal(err)
		}
		if d.Last() != c.want {
			t.Fatalf("SetVoltage(%v) = %d, want %d", c.v, d.Last(), c.want)
		}
	}
}

func TestMockDeviceCommands(t *testing.T) {
	bus := tester.NewI2CBus(t)
	dev := tester.NewI2CDeviceCmd(t, Address)
	dev.Commands = map[uint8]*tester.Cmd{
		0: {Command: []byte{0x00}, Mask: []byte{0xC0}},
		1: {Command: []byte{cmdWriteDAC}, Mask: []byte{0xE0}},
	}
	bus.AddDevice(dev)

	d := New(bus)
	for i := uint16(0); i < 3; i++ {
		if err := d.SetCode(i * 1000); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.WriteDAC(42, PowerOn); err != nil {
		t.Fatal(err)
	}
	if n := dev.Commands[0].Invocations; n != 3 {
		t.Fatalf("fast writes = %d, want 3", n)
	}
	if n := dev.Commands[1].Invocations; n != 1 {
		t.Fatalf("dac writes = %d, want 1", n)
	}
}

func TestBusErrorWrapped(t *testing.T) {
	cause := errors.New("nack")
	bus := tester.NewI2CBus(t)
	dev := tester.NewI2CDeviceCmd(t, Address)
	dev.Err = cause
	bus.AddDevice(dev)

	d := New(bus)
	err := d.SetCode(1)
	if errcode.Of(err) != ErrBus {
		t.Fatalf("code = %v, want %v", errcode.Of(err), ErrBus)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	if d.Last() != 0 {
		t.Fatal("failed write updated Last")
	}
	if _, err := d.Read(); errcode.Of(err) != ErrBus {
		t.Fatalf("read err = %v", err)
	}
}
