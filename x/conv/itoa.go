package conv

// Utoa writes the base-10 representation of u into buf and returns the used
// slice. buf should be length >= 20 for uint64. No allocations; no
// fmt/strconv dependency, so it is safe inside firmware render paths.
func Utoa(buf []byte, u uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if u == 0 {
		i--
		buf[i] = '0'
		return buf[i:]
	}
	for u > 0 && i > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return buf[i:]
}

// Itoa is Utoa for signed values.
func Itoa(buf []byte, n int64) []byte {
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	s := Utoa(buf[1:], uint64(-n))
	// The sign goes immediately before the digits; Utoa fills from the end.
	idx := len(buf) - len(s) - 1
	buf[idx] = '-'
	return buf[idx:]
}
