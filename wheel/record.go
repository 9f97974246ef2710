package wheel

import (
	"lostwheel-go/errcode"
	"lostwheel-go/x/strconvx"
)

// The serial wire format: one ASCII line per interval,
// "<elapsed-period-fraction>,<count>\n", e.g. "1.00,7". The first field is
// elapsed time divided by the reporting period, to two decimals; the second
// is the exact interval count.

// FormatRecord renders one record line including the trailing newline.
func FormatRecord(elapsedMs, periodMs int64, count uint32) string {
	if periodMs <= 0 {
		periodMs = 1
	}
	frac := float64(elapsedMs) / float64(periodMs)
	return strconvx.FormatFloat(frac, 'f', 2, 64) +
		"," + strconvx.FormatUint(uint64(count), 10) + "\n"
}

// ParseRecord is the host-side inverse. line must not include the newline.
func ParseRecord(line string) (elapsed float64, count uint32, err error) {
	comma := -1
	for i := 0; i < len(line); i++ {
		if line[i] == ',' {
			comma = i
			break
		}
	}
	if comma <= 0 || comma == len(line)-1 {
		return 0, 0, &errcode.E{C: errcode.BadRecord, Op: "parse", Msg: line}
	}
	elapsed, ferr := strconvx.ParseFloat(line[:comma], 64)
	if ferr != nil {
		return 0, 0, &errcode.E{C: errcode.BadRecord, Op: "parse", Msg: line, Err: ferr}
	}
	c, cerr := strconvx.ParseUint(line[comma+1:], 10, 32)
	if cerr != nil {
		return 0, 0, &errcode.E{C: errcode.BadRecord, Op: "parse", Msg: line, Err: cerr}
	}
	return elapsed, uint32(c), nil
}
