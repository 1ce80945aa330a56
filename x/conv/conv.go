// Package conv formats numbers into caller-owned byte buffers.
// No allocations; no fmt/strconv dependency, so it is cheap on the display
// refresh path.
package conv

// Utoa writes base-10 representation of n into the tail of buf and returns
// the used slice. buf should be length >= 20 for uint64.
func Utoa(buf []byte, n uint64) []byte {
	return PadUtoa(buf, n, 1)
}

// PadUtoa is Utoa with zero padding to at least width digits.
func PadUtoa(buf []byte, n uint64, width int) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	digits := 0
	for (n > 0 || digits < width || digits == 0) && i > 0 {
		i--
		buf[i] = byte('0' + (n % 10))
		n /= 10
		digits++
	}
	return buf[i:]
}

// Fixed writes v rounded to decimals fractional digits ("4.97", "-0.50").
// decimals is limited to 0..6. buf should be length >= 24.
func Fixed(buf []byte, v float64, decimals int) []byte {
	if decimals < 0 {
		decimals = 0
	}
	if decimals > 6 {
		decimals = 6
	}
	neg := v < 0
	if neg {
		v = -v
	}
	scale := uint64(1)
	for i := 0; i < decimals; i++ {
		scale *= 10
	}
	scaled := uint64(v*float64(scale) + 0.5)
	whole, frac := scaled/scale, scaled%scale

	i := len(buf)
	if decimals > 0 {
		f := PadUtoa(buf[:i], frac, decimals)
		i -= len(f)
		if i == 0 {
			return buf[:0]
		}
		i--
		buf[i] = '.'
	}
	w := Utoa(buf[:i], whole)
	i -= len(w)
	if neg && scaled != 0 && i > 0 {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}
