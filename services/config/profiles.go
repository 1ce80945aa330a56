package config

import (
	"time"

	"funcgen-go/wave"

	"golang.org/x/exp/slices"
)

// -----------------------------------------------------------------------------
// Board profiles
//
// Key: board name (same value placed in ctx under CtxDeviceKey).
// -----------------------------------------------------------------------------

var defaultParams = wave.Params{
	Frequency: 50,
	Amplitude: 4.975,
	Offset:    2.4875,
	Samples:   32,
}

var picoPins = Pins{
	EncoderClock: 14,
	EncoderData:  15,
	ModeButton:   16,
	FieldButton:  17,
	DACSDA:       4,
	DACSCL:       5,
	DisplaySDA:   2,
	DisplaySCL:   3,
	UARTTX:       0,
	UARTRX:       1,
}

var profiles = map[string]Settings{
	"pico": {
		Board:          "pico",
		VRef:           4.975,
		MaxFrequency:   568,
		MinFrequency:   wave.DefaultMinFrequency,
		Compensation:   wave.DefaultTimingCompensation,
		Kind:           wave.Sine,
		Params:         defaultParams,
		DACAddress:     0x60,
		DisplayAddress: 0x3C,
		DisplayWidth:   128,
		DisplayHeight:  64,
		I2CFrequency:   400_000,
		UARTBaud:       115200,
		LogLevel:       "info",
		Heartbeat:      5 * time.Second,
		Pins:           picoPins,
	},
	// RP2350 runs the loop faster, so less compensation is needed.
	"pico2": {
		Board:          "pico2",
		VRef:           4.975,
		MaxFrequency:   1136,
		MinFrequency:   wave.DefaultMinFrequency,
		Compensation:   0.93,
		Kind:           wave.Sine,
		Params:         defaultParams,
		DACAddress:     0x60,
		DisplayAddress: 0x3C,
		DisplayWidth:   128,
		DisplayHeight:  64,
		I2CFrequency:   1_000_000,
		UARTBaud:       115200,
		LogLevel:       "info",
		Heartbeat:      5 * time.Second,
		Pins:           picoPins,
	},
	// host drives fake hardware; timing is exact so no compensation.
	"host": {
		Board:          "host",
		VRef:           4.975,
		MaxFrequency:   568,
		MinFrequency:   wave.DefaultMinFrequency,
		Compensation:   1,
		Kind:           wave.Sine,
		Params:         defaultParams,
		DACAddress:     0x60,
		DisplayAddress: 0x3C,
		DisplayWidth:   128,
		DisplayHeight:  64,
		LogLevel:       "debug",
		Heartbeat:      2 * time.Second,
	},
}

// Boards lists the known profile names.
func Boards() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
