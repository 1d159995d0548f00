// pkg/config/defaults.go
package config

import "time"

// DefaultConfig returns the default configuration for an elapsed time measurement
func DefaultConfig() *TimerConfig {
	config := &TimerConfig{
		Clock:       "auto",
		MetadataKey: "elapsed_ms",
		Log: LogConfig{
			Enabled: false,
			Level:   "debug",
		},
		Summary: SummaryConfig{
			Enabled:  false,
			Interval: time.Minute,
		},
	}

	return config
}

// MetricsOnlyConfig returns a configuration that only reports through metrics
func MetricsOnlyConfig() *TimerConfig {
	config := DefaultConfig()

	config.MetadataKey = ""
	config.Log.Enabled = false

	return config
}

// VerboseConfig returns a configuration that logs every measurement and a
// periodic summary
func VerboseConfig() *TimerConfig {
	config := DefaultConfig()

	config.Log = LogConfig{
		Enabled: true,
		Level:   "info",
	}
	config.Summary = SummaryConfig{
		Enabled:  true,
		Interval: 10 * time.Second,
	}

	return config
}

// PortableConfig returns a configuration pinned to the time of day clock,
// which behaves the same on every host
func PortableConfig() *TimerConfig {
	config := DefaultConfig()

	config.Clock = "calendar"

	return config
}
