package wave

// DefaultTimingCompensation scales the ideal interval down to absorb the
// per-sample cost of the loop and the converter write on RP2040 at 125 MHz
// with the DAC on a 400 kHz I²C bus.
const DefaultTimingCompensation = 0.86

// Interval returns the microseconds between samples for freq Hz at samples
// points per cycle, scaled by comp. A non-positive frequency or sample count
// yields 0.
func Interval(freq float64, samples int, comp float64) uint32 {
	if !(freq > 0) || samples <= 0 {
		return 0
	}
	us := (1/freq)/float64(samples)*1e6*comp + 0.5
	if us <= 0 {
		return 0
	}
	if us >= 1<<32-1 {
		return 1<<32 - 1
	}
	return uint32(us)
}
