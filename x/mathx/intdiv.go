package mathx

// MulDiv returns a*num/den truncated, using 64-bit intermediates.
// den == 0 yields 0.
func MulDiv(a, num, den uint32) uint32 {
	if den == 0 {
		return 0
	}
	return uint32(uint64(a) * uint64(num) / uint64(den))
}
