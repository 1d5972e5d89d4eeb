//go:build rp2040

package strconvx

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

func Itoa(i int) string { return FormatInt(int64(i), 10) }

func FormatInt(i int64, base int) string {
	if i < 0 {
		// -(MinInt64) overflows; go through uint64.
		return "-" + FormatUint(uint64(-(i+1))+1, base)
	}
	return FormatUint(uint64(i), base)
}

func FormatUint(u uint64, base int) string {
	if base < 2 || base > len(digits) {
		base = 10
	}
	if u == 0 {
		return "0"
	}
	var buf [64]byte
	i := len(buf)
	b := uint64(base)
	for u > 0 {
		i--
		buf[i] = digits[u%b]
		u /= b
	}
	return string(buf[i:])
}

// FormatFloat renders fixed-point decimals only; the verb is ignored.
// NaN and infinities get their strconv spellings.
func FormatFloat(f float64, _ byte, prec, _ int) string {
	switch {
	case f != f:
		return "NaN"
	case f > maxF:
		return "+Inf"
	case f < -maxF:
		return "-Inf"
	}
	if prec < 0 {
		prec = 6
	}
	if prec > 9 {
		prec = 9
	}
	neg := f < 0
	if neg {
		f = -f
	}
	pow := uint64(1)
	for i := 0; i < prec; i++ {
		pow *= 10
	}
	// Round once on the scaled value so carries reach the integer part.
	scaled := uint64(f*float64(pow) + 0.5)
	intp, frac := scaled/pow, scaled%pow

	out := FormatUint(intp, 10)
	if prec > 0 {
		fs := FormatUint(frac, 10)
		pad := make([]byte, 0, prec)
		for i := len(fs); i < prec; i++ {
			pad = append(pad, '0')
		}
		out += "." + string(pad) + fs
	}
	if neg && scaled != 0 {
		return "-" + out
	}
	return out
}

const maxF = 1.7976931348623157e308
