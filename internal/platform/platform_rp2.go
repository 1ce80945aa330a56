//go:build rp2040 || rp2350

package platform

import (
	"context"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ssd1306"

	"funcgen-go/display"
	"funcgen-go/drivers/mcp4725"
	"funcgen-go/errcode"
	"funcgen-go/input/quadrature"
	"funcgen-go/services/config"
	"funcgen-go/x/logx"
	"funcgen-go/x/shmring"
	"funcgen-go/x/tally"
	"funcgen-go/x/timex"
)

// logRingSize bounds log bytes queued ahead of the UART.
const logRingSize = 2048

// Setup configures the peripherals named in set. The UART log sink comes up
// first so later failures can be reported. Log lines go through a ring that a
// background goroutine drains to the UART, so logging from the sample loop
// never waits on the serial port.
func Setup(set config.Settings) (*Board, error) {
	const op = "platform.setup"

	_ = uartx.UART0.Configure(uartx.UARTConfig{
		BaudRate: set.UARTBaud,
		TX:       machine.Pin(set.Pins.UARTTX),
		RX:       machine.Pin(set.Pins.UARTRX),
	})
	ring := shmring.New(logRingSize)
	go shmring.Pump(context.Background(), ring, uartx.UART0, 64)
	log := logx.New(ring, "")
	applyLevel(log, set.LogLevel)

	clock := timex.NewSystem()
	b := &Board{Name: set.Board, Clock: clock, Log: log}

	// DAC on i2c0.
	i2c0 := machine.I2C0
	if err := i2c0.Configure(machine.I2CConfig{
		Frequency: set.I2CFrequency,
		SDA:       machine.Pin(set.Pins.DACSDA),
		SCL:       machine.Pin(set.Pins.DACSCL),
	}); err != nil {
		return nil, errcode.Wrap(errcode.BusError, op+".i2c0", err)
	}
	dac := mcp4725.New(i2c0)
	dac.Configure(mcp4725.Config{Address: set.DACAddress})
	if st, err := dac.Read(); err != nil {
		log.Warn("dac not responding", "err", err)
	} else if st.PowerDown != mcp4725.PowerOn {
		_ = dac.WriteDAC(st.Code, mcp4725.PowerOn)
	}
	b.Out = NewDACOutput(dac, clock, log.Named("dac"))

	// OLED on i2c1.
	i2c1 := machine.I2C1
	if err := i2c1.Configure(machine.I2CConfig{
		Frequency: set.I2CFrequency,
		SDA:       machine.Pin(set.Pins.DisplaySDA),
		SCL:       machine.Pin(set.Pins.DisplaySCL),
	}); err != nil {
		return nil, errcode.Wrap(errcode.BusError, op+".i2c1", err)
	}
	oled := ssd1306.NewI2C(i2c1)
	oled.Configure(ssd1306.Config{
		Width:   set.DisplayWidth,
		Height:  set.DisplayHeight,
		Address: set.DisplayAddress,
	})
	b.Display = display.NewOLED(oled)

	// Encoder lines idle high through the pull-ups.
	clk := inputPin(set.Pins.EncoderClock)
	data := inputPin(set.Pins.EncoderData)
	b.Inputs.Encoder = quadrature.NewLines(clk, data)

	// Buttons pull low when pressed; the handlers only count.
	b.Inputs.Mode = new(tally.Counter)
	b.Inputs.Field = new(tally.Counter)
	if err := buttonIRQ(set.Pins.ModeButton, b.Inputs.Mode); err != nil {
		return nil, errcode.Wrap(errcode.Unsupported, op+".mode_button", err)
	}
	if err := buttonIRQ(set.Pins.FieldButton, b.Inputs.Field); err != nil {
		return nil, errcode.Wrap(errcode.Unsupported, op+".field_button", err)
	}
	return b, nil
}

func inputPin(n uint8) machine.Pin {
	p := machine.Pin(n)
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return p
}

func buttonIRQ(n uint8, c *tally.Counter) error {
	p := inputPin(n)
	return p.SetInterrupt(machine.PinFalling, func(machine.Pin) { c.Inc() })
}
