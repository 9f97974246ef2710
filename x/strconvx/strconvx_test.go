package strconvx

import "testing"

// These run against whichever variant the build selects; the firmware
// variant must agree with strconv for the subset the serial record uses.

func TestFormatUint(t *testing.T) {
	cases := map[uint64]string{0: "0", 7: "7", 1000: "1000", 4294967295: "4294967295"}
	for in, want := range cases {
		if got := FormatUint(in, 10); got != want {
			t.Errorf("FormatUint(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatFloatFixed(t *testing.T) {
	cases := []struct {
		in   float64
		prec int
		want string
	}{
		{0, 2, "0.00"},
		{1, 2, "1.00"},
		{1.005, 2, "1.00"}, // float64(1.005) is just below 1.005
		{2.5, 2, "2.50"},
		{1.999, 2, "2.00"},
		{-0.5, 2, "-0.50"},
		{3, 0, "3"},
	}
	for _, c := range cases {
		if got := FormatFloat(c.in, 'f', c.prec, 64); got != c.want {
			t.Errorf("FormatFloat(%v, %d) = %q, want %q", c.in, c.prec, got, c.want)
		}
	}
}

func TestParseFloatRoundTrip(t *testing.T) {
	for _, s := range []string{"1.00", "2.50", "0.02", "1234.75"} {
		f, err := ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("ParseFloat(%q): %v", s, err)
		}
		if got := FormatFloat(f, 'f', 2, 64); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}

func TestParseUint(t *testing.T) {
	if _, err := ParseUint("12x", 10, 32); err == nil {
		t.Error("expected error for trailing junk")
	}
	v, err := ParseUint("42", 10, 32)
	if err != nil || v != 42 {
		t.Errorf("ParseUint(42) = %d, %v", v, err)
	}
}
