package config

import (
	"context"
	"time"

	"funcgen-go/bus"
	"funcgen-go/engine"
	"funcgen-go/errcode"
	"funcgen-go/types"
	"funcgen-go/wave"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName  = "config"
	configKey    = "funcgen"
	CtxDeviceKey = "device" // context key used for the board name
)

// -----------------------------------------------------------------------------
// Settings
// -----------------------------------------------------------------------------

// Pins are GPIO numbers on the board.
type Pins struct {
	EncoderClock uint8 `json:"encoder_clk"`
	EncoderData  uint8 `json:"encoder_dt"`
	ModeButton   uint8 `json:"mode_button"`
	FieldButton  uint8 `json:"field_button"`

	DACSDA     uint8 `json:"dac_sda"` // I2C0
	DACSCL     uint8 `json:"dac_scl"`
	DisplaySDA uint8 `json:"display_sda"` // I2C1
	DisplaySCL uint8 `json:"display_scl"`

	UARTTX uint8 `json:"uart_tx"`
	UARTRX uint8 `json:"uart_rx"`
}

// Settings is the static configuration of one board.
type Settings struct {
	Board string `json:"board"`

	VRef         float64 `json:"vref"`          // converter reference, volts
	MaxFrequency float64 `json:"max_frequency"` // at 16 samples
	MinFrequency float64 `json:"min_frequency"`
	Compensation float64 `json:"timing_compensation"`

	Kind   wave.Kind   `json:"kind"`
	Params wave.Params `json:"params"`

	DACAddress     uint16 `json:"dac_address"`
	DisplayAddress uint16 `json:"display_address"`
	DisplayWidth   int16  `json:"display_width"`
	DisplayHeight  int16  `json:"display_height"`
	I2CFrequency   uint32 `json:"i2c_hz"`
	UARTBaud       uint32 `json:"uart_baud"`

	LogLevel  string        `json:"log_level"`
	Heartbeat time.Duration `json:"heartbeat"`

	Pins Pins `json:"pins"`
}

// Validate checks the settings a board cannot run without. Initial waveform
// parameters are not validated: the engine saturates them before first use.
func (s Settings) Validate() error {
	const op = "config.validate"
	switch {
	case s.Board == "":
		return &errcode.E{C: errcode.InvalidParams, Op: op, Msg: "missing board name"}
	case !(s.VRef > 0):
		return &errcode.E{C: errcode.OutOfRange, Op: op, Msg: "vref must be positive"}
	case !(s.MaxFrequency > 0):
		return &errcode.E{C: errcode.OutOfRange, Op: op, Msg: "max frequency must be positive"}
	case s.MinFrequency < 0 || s.MinFrequency > s.MaxFrequency/(wave.MaxSamples/wave.MinSamples):
		return &errcode.E{C: errcode.OutOfRange, Op: op, Msg: "min frequency outside attainable range"}
	case !(s.Compensation > 0) || s.Compensation > 1:
		return &errcode.E{C: errcode.OutOfRange, Op: op, Msg: "timing compensation must be in (0,1]"}
	case !s.Kind.Valid():
		return &errcode.E{C: errcode.InvalidParams, Op: op, Msg: "unknown waveform kind"}
	case !wave.ValidSamples(s.Params.Samples):
		return &errcode.E{C: errcode.InvalidParams, Op: op, Msg: "samples must be 16, 32, 64 or 128"}
	case s.DACAddress == 0 || s.DACAddress > 0x7f:
		return &errcode.E{C: errcode.InvalidParams, Op: op, Msg: "bad DAC address"}
	case s.DisplayAddress > 0x7f:
		return &errcode.E{C: errcode.InvalidParams, Op: op, Msg: "bad display address"}
	}
	return nil
}

// Engine returns the engine configuration derived from s.
func (s Settings) Engine() engine.Config {
	return engine.Config{
		Limits: wave.Limits{
			VRef:         s.VRef,
			MaxFrequency: s.MaxFrequency,
			MinFrequency: s.MinFrequency,
		},
		Compensation: s.Compensation,
		Kind:         s.Kind,
		Params:       s.Params,
	}
}

// ProfileLookup allows overriding how board profiles are resolved.
var ProfileLookup = func(board string) (Settings, bool) {
	s, ok := profiles[board]
	return s, ok
}

// Lookup returns the validated settings for board.
func Lookup(board string) (Settings, error) {
	s, ok := ProfileLookup(board)
	if !ok {
		return Settings{}, &errcode.E{C: errcode.UnknownBoard, Op: "config.lookup", Msg: board}
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// publishConfig resolves the board named in ctx and publishes its settings
// as a retained message on config/funcgen.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) (Settings, error) {
	board, _ := ctx.Value(CtxDeviceKey).(string)
	if board == "" {
		return Settings{}, &errcode.E{C: errcode.NotConfigured, Op: "config.publish", Msg: "missing board name in context"}
	}
	set, err := Lookup(board)
	if err != nil {
		return Settings{}, err
	}
	conn.Publish(conn.NewMessage(bus.T(types.TopicConfig, configKey), set, true))
	return set, nil
}

// Start publishes the board settings before returning them, so that services
// started afterwards see the retained message on subscribe.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) (Settings, error) {
	return s.publishConfig(ctx, conn)
}

// Topic is where settings are published.
func Topic() bus.Topic { return bus.T(types.TopicConfig, configKey) }
