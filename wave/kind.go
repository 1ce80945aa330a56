package wave

// Kind selects the waveform shape. The set is closed; Valid reports
// membership.
type Kind uint8

const (
	Sine Kind = iota
	Ramp
	Square
	DC

	numKinds
)

// Step moves through the kinds by step positions, wrapping in both
// directions. An invalid receiver is treated as Sine.
func (k Kind) Step(step int) Kind {
	if !k.Valid() {
		k = Sine
	}
	n := (int(k) + step%int(numKinds) + int(numKinds)) % int(numKinds)
	return Kind(n)
}

func (k Kind) Valid() bool { return k < numKinds }

func (k Kind) String() string {
	switch k {
	case Sine:
		return "sine"
	case Ramp:
		return "ramp"
	case Square:
		return "square"
	case DC:
		return "dc"
	default:
		return "invalid"
	}
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, bool) {
	for k := Sine; k < numKinds; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}
