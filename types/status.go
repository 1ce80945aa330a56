package types

// Topic tokens. Engine status lives under "funcgen/<kind>", settings under
// "config/funcgen". All status messages are retained.
const (
	TopicFuncgen = "funcgen"
	TopicConfig  = "config"

	TopicMode  = "mode"
	TopicTable = "table"
	TopicStats = "stats"
)

// ---- Engine status payloads (retained) ----

type ModeStatus struct {
	Mode   string `json:"mode"` // "running", "configuring", "calculating"
	Cursor uint8  `json:"cursor"`
	Field  string `json:"field"`
	TS     int64  `json:"ts_ms"`
}

// TableStatus describes the table currently loaded into the scheduler.
type TableStatus struct {
	Kind      string  `json:"kind"`
	Frequency float64 `json:"frequency_hz"`
	Amplitude float64 `json:"amplitude_v"`
	Offset    float64 `json:"offset_v"`
	Samples   int     `json:"samples"`
	Interval  uint32  `json:"interval_us"`
	Checksum  uint64  `json:"checksum"`
	TS        int64   `json:"ts_ms"`
}

type StatsStatus struct {
	Emitted uint32 `json:"emitted"`
	Late    uint32 `json:"late"`
	Mode    string `json:"mode"`
	TS      int64  `json:"ts_ms"`
}
