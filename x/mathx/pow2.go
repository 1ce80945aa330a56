package mathx

// IsPow2 reports whether n is a positive power of two.
func IsPow2[T ~int | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](n T) bool {
	return n > 0 && n&(n-1) == 0
}

// FloorPow2 returns the largest power of two <= n, or 0 for n <= 0.
func FloorPow2(n int) int {
	if n <= 0 {
		return 0
	}
	p := 1
	for p <= n/2 {
		p <<= 1
	}
	return p
}
