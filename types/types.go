package types

// ReportingMode selects what the reporter does with the counter each tick.
// It is fixed at boot from config and never changes at runtime.
type ReportingMode uint8

const (
	// ModeCumulative never resets the counter; the panel shows a running
	// total and nothing is written to the serial sink.
	ModeCumulative ReportingMode = iota
	// ModeInterval resets the counter on every tick; each interval's count
	// is emitted on the serial sink together with the elapsed time.
	ModeInterval
)

func (m ReportingMode) String() string {
	switch m {
	case ModeInterval:
		return "interval"
	default:
		return "cumulative"
	}
}

// ParseReportingMode maps a config string to a mode. Unknown strings fall
// back to cumulative, the simpler of the two observed behaviours.
func ParseReportingMode(s string) ReportingMode {
	if s == "interval" {
		return ModeInterval
	}
	return ModeCumulative
}

// ReportRecord is the snapshot produced once per reporting tick. It exists
// only for the duration of one render; nothing persists it on the device.
type ReportRecord struct {
	ElapsedMs int64  // monotonic time since service start
	Count     uint32 // revolutions in this interval (or running total)
}

// WheelConfig is the device configuration published retained on the bus
// under config/wheel. JSON field names match the embedded config blobs.
type WheelConfig struct {
	Mode      string `json:"mode"`           // "cumulative" | "interval"
	PeriodMs  int64  `json:"period_ms"`      // reporting period
	SensorPin int    `json:"sensor_pin"`     // hall sensor input (falling edge)
	PollMs    int    `json:"poll_ms"`        // main-loop poll granularity
	LCDAddr   uint8  `json:"lcd_addr"`       // I2C address of the character panel
	Baud      uint32 `json:"baud,omitempty"` // serial sink baud rate
}

// Defaults for anything the config blob leaves zero.
const (
	DefaultPeriodMs = 1000
	DefaultPollMs   = 1
	DefaultBaud     = 9600
	DefaultLCDAddr  = 0x27
)

// Normalize fills unset fields with defaults and returns the effective mode.
func (c *WheelConfig) Normalize() ReportingMode {
	if c.PeriodMs <= 0 {
		c.PeriodMs = DefaultPeriodMs
	}
	if c.PollMs <= 0 {
		c.PollMs = DefaultPollMs
	}
	if c.Baud == 0 {
		c.Baud = DefaultBaud
	}
	if c.LCDAddr == 0 {
		c.LCDAddr = DefaultLCDAddr
	}
	return ParseReportingMode(c.Mode)
}
