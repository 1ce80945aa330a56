package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Min/Max for convenience.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// RoundClampU16 rounds v half away from zero and saturates it into [0, top].
// NaN maps to 0.
func RoundClampU16(v float64, top uint16) uint16 {
	if !(v > 0) {
		return 0
	}
	r := v + 0.5
	if r >= float64(top) {
		return top
	}
	return uint16(r)
}
