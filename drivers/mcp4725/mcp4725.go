// Package mcp4725 provides a driver for the MCP4725 12-bit I2C DAC.
//
//	d := mcp4725.New(bus)
//	d.Configure(mcp4725.Config{})
//	err := d.SetCode(2048) // fast write, mid-scale
//
// Only the volatile DAC register is written; the EEPROM path is not exposed.
package mcp4725

import (
	"tinygo.org/x/drivers"

	"funcgen-go/errcode"
)

// I2C address with A0 tied low. A0 high gives 0x61.
const Address = 0x60

// MaxCode is the full-scale output code.
const MaxCode = 0x0FFF

const (
	cmdWriteDAC = 0x40 // C2..C0 = 010

	statusReady = 0x80
	statusPOR   = 0x40
)

// ErrBus is the code carried by every bus failure returned by the driver.
var ErrBus = errcode.BusError

// PowerDown selects the output state. Anything but PowerOn disconnects the
// output and ties it to ground through the given resistor.
type PowerDown uint8

const (
	PowerOn PowerDown = iota
	PowerDown1k
	PowerDown100k
	PowerDown500k
)

type Config struct {
	// Address defaults to 0x60 if zero.
	Address uint16
}

// Status is the decoded 5-byte read-back.
type Status struct {
	Ready        bool // EEPROM write finished
	PowerOnReset bool
	PowerDown    PowerDown
	Code         uint16

	EEPROMPowerDown PowerDown
	EEPROMCode      uint16
}

// Device wraps an I2C connection to an MCP4725.
type Device struct {
	bus     drivers.I2C
	Address uint16

	pd   PowerDown
	last uint16
	w    [3]byte // reuse buffers to avoid allocations
	r    [5]byte
}

// New creates a new MCP4725 connection. The I2C bus must already be configured.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, Address: Address}
}

func (d *Device) Configure(cfg Config) {
	if cfg.Address != 0 {
		d.Address = cfg.Address
	}
}

// SetCode sets the output with a two-byte fast write. Codes above MaxCode
// are clamped.
func (d *Device) SetCode(code uint16) error {
	if code > MaxCode {
		code = MaxCode
	}
	d.w[0] = byte(d.pd)<<4 | byte(code>>8)
	d.w[1] = byte(code)
	if err := d.bus.Tx(d.Address, d.w[:2], nil); err != nil {
		return errcode.Wrap(ErrBus, "mcp4725.fastwrite", err)
	}
	d.last = code
	return nil
}

// SetVoltage converts v to a code against vref and sets it.
func (d *Device) SetVoltage(v, vref float64) error {
	if !(v > 0) || !(vref > 0) {
		return d.SetCode(0)
	}
	if v >= vref {
		return d.SetCode(MaxCode)
	}
	return d.SetCode(uint16(v / vref * (MaxCode + 1)))
}

// WriteDAC writes the DAC register and power-down bits in one three-byte
// transaction.
func (d *Device) WriteDAC(code uint16, pd PowerDown) error {
	if code > MaxCode {
		code = MaxCode
	}
	pd &= 0x03
	d.w[0] = cmdWriteDAC | byte(pd)<<1
	d.w[1] = byte(code >> 4)
	d.w[2] = byte(code << 4)
	if err := d.bus.Tx(d.Address, d.w[:3], nil); err != nil {
		return errcode.Wrap(ErrBus, "mcp4725.writedac", err)
	}
	d.pd = pd
	d.last = code
	return nil
}

// SetPowerDown changes the output state keeping the last code.
func (d *Device) SetPowerDown(pd PowerDown) error {
	return d.WriteDAC(d.last, pd)
}

// Last returns the last code written successfully.
func (d *Device) Last() uint16 { return d.last }

// Read fetches and decodes the device status.
func (d *Device) Read() (Status, error) {
	b := d.r[:]
	if err := d.bus.Tx(d.Address, nil, b); err != nil {
		return Status{}, errcode.Wrap(ErrBus, "mcp4725.read", err)
	}
	return decodeStatus(b), nil
}

func decodeStatus(b []byte) Status {
	return Status{
		Ready:           b[0]&statusReady != 0,
		PowerOnReset:    b[0]&statusPOR != 0,
		PowerDown:       PowerDown(b[0]>>1) & 0x03,
		Code:            uint16(b[1])<<4 | uint16(b[2])>>4,
		EEPROMPowerDown: PowerDown(b[3]>>5) & 0x03,
		EEPROMCode:      uint16(b[3]&0x0F)<<8 | uint16(b[4]),
	}
}
