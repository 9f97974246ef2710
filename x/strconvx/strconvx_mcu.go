//go:build tinygo

package strconvx

// Minimal, allocation-aware replacements with the same signatures as the
// strconv subset the firmware uses. Base 10 only for Format*; FormatFloat
// supports the fixed 'f' form, which is all the serial record needs.

func Itoa(i int) string { return FormatInt(int64(i), 10) }

func Atoi(s string) (int, error) {
	v, err := parseI64(s)
	return int(v), err
}

func FormatInt(i int64, _ int) string {
	if i < 0 {
		return "-" + fmtUint(uint64(-i))
	}
	return fmtUint(uint64(i))
}

func FormatUint(u uint64, _ int) string { return fmtUint(u) }

func fmtUint(u uint64) string {
	if u == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return string(buf[i:])
}

type parseError struct{}

func (parseError) Error() string { return "invalid syntax" }

func ParseUint(s string, _, _ int) (uint64, error) {
	if len(s) == 0 {
		return 0, parseError{}
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, parseError{}
		}
		v = v*10 + uint64(c-'0')
	}
	return v, nil
}

func parseI64(s string) (int64, error) {
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	u, err := ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		return -int64(u), nil
	}
	return int64(u), nil
}

// FormatFloat renders f in fixed decimal notation with prec digits after
// the point. Simple rounding; no infinities or NaN on this path.
func FormatFloat(f float64, _ byte, prec, _ int) string {
	if prec < 0 {
		prec = 2
	}
	neg := f < 0
	if neg {
		f = -f
	}
	intp := uint64(f)
	frac := f - float64(intp)

	out := fmtUint(intp)
	if prec > 0 {
		pow := 1.0
		for i := 0; i < prec; i++ {
			pow *= 10
		}
		fracN := uint64(frac*pow + 0.5)
		if fracN >= uint64(pow) { // rounded up into the integer part
			fracN -= uint64(pow)
			out = fmtUint(intp + 1)
		}
		fs := fmtUint(fracN)
		for len(fs) < prec {
			fs = "0" + fs
		}
		out += "." + fs
	}
	if neg {
		return "-" + out
	}
	return out
}

func ParseFloat(s string, _ int) (float64, error) {
	if len(s) == 0 {
		return 0, parseError{}
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	var intPart uint64
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		intPart = intPart*10 + uint64(s[i]-'0')
		i++
	}
	var frac, scale float64 = 0, 1
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			frac = frac*10 + float64(s[i]-'0')
			scale *= 10
			i++
		}
	}
	if i != len(s) {
		return 0, parseError{}
	}
	v := float64(intPart) + frac/scale
	if neg {
		v = -v
	}
	return v, nil
}
