package engine

// Mode is the engine's top-level state.
type Mode uint8

const (
	Calculating Mode = iota // initial: build the table, then run
	Running
	Configuring

	numModes
)

func (m Mode) Valid() bool { return m < numModes }

func (m Mode) String() string {
	switch m {
	case Calculating:
		return "calculating"
	case Running:
		return "running"
	case Configuring:
		return "configuring"
	default:
		return "invalid"
	}
}
