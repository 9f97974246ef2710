// host/config/config.go
package config

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is everything the host-side tooling needs: where the device is,
// where measurements go, and how chatty to be.
type Config struct {
	Port    string // serial device, e.g. /dev/ttyACM0
	Baud    int
	DBPath  string
	LogDir  string // per-session CSV directory
	Session string // recording session name; empty derives one from the clock
	UI      bool   // run the desktop window instead of the headless pump
	Debug   bool
	Verbose bool
}

// Load merges defaults, the config file and command-line flags, then sets
// the global log level. Flags win over the file, the file over defaults.
func Load() (*Config, error) {
	config := &Config{}

	pflag.String("port", "/dev/ttyACM0", "Serial port of the wheel device")
	pflag.Int("baud", 9600, "Serial baud rate")
	pflag.String("dbpath", "lostwheel.db", "SQLite database path")
	pflag.String("logdir", "sessions", "Directory for per-session CSV files")
	pflag.String("session", "", "Recording session name (default: timestamp)")
	pflag.Bool("ui", false, "Open the desktop window")
	pflag.Bool("debug", false, "Enable debugging mode")
	pflag.Bool("verbose", false, "Enable verbose logging")
	pflag.Parse()

	viper.SetConfigName("lostwheel.conf")
	viper.SetConfigType("toml")
	viper.AddConfigPath("/etc")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else if config.Verbose {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	return config, nil
}
