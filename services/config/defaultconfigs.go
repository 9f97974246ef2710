// services/config/defaultconfigs.go
package config

// Embedded configuration, one blob per device profile. The profile name is
// placed in ctx under CtxDeviceKey by the firmware entry point.

const cfgInterval = `{
  "wheel": {
      "mode": "interval",
      "period_ms": 1000,
      "sensor_pin": 16,
      "poll_ms": 1,
      "lcd_addr": 39,
      "baud": 9600
  }
}`

const cfgCumulative = `{
  "wheel": {
      "mode": "cumulative",
      "sensor_pin": 16,
      "lcd_addr": 39
  }
}`

var embeddedConfigs = map[string][]byte{
	"lostwheel-interval":   []byte(cfgInterval),
	"lostwheel-cumulative": []byte(cfgCumulative),
}
