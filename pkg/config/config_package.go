// pkg/config/config.go
package config

import (
	"fmt"
	"maps"
	"net"
	"time"
)

// TimerConfig represents the complete configuration of an elapsed time measurement
type TimerConfig struct {
	Clock         string            `yaml:"clock"`
	MetadataKey   string            `yaml:"metadata_key"`
	MetricName    string            `yaml:"metric_name,omitempty"`
	MetricAddress string            `yaml:"metric_address,omitempty"`
	Labels        map[string]string `yaml:"labels,omitempty"`
	Log           LogConfig         `yaml:"log"`
	Summary       SummaryConfig     `yaml:"summary"`
}

type LogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
}

type SummaryConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

// Validate performs comprehensive validation of the timer configuration
func (c *TimerConfig) Validate() error {
	if err := c.validateClock(); err != nil {
		return fmt.Errorf("invalid clock: %w", err)
	}

	if err := c.validateMetadataKey(); err != nil {
		return fmt.Errorf("invalid metadata key: %w", err)
	}

	if err := c.validateMetric(); err != nil {
		return fmt.Errorf("invalid metric config: %w", err)
	}

	if err := c.validateLog(); err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}

	if err := c.validateSummary(); err != nil {
		return fmt.Errorf("invalid summary config: %w", err)
	}

	return nil
}

func (c *TimerConfig) validateClock() error {
	return ValidateClock(c.Clock)
}

func (c *TimerConfig) validateMetadataKey() error {
	if c.MetadataKey == "" {
		return nil // Metadata is optional
	}
	return ValidateMetadataKey(c.MetadataKey)
}

func (c *TimerConfig) validateMetric() error {
	if c.MetricName != "" {
		if err := ValidateMetricName(c.MetricName); err != nil {
			return err
		}
	}

	if c.MetricAddress != "" {
		if c.MetricName == "" {
			return fmt.Errorf("metric address %s set without a metric name", c.MetricAddress)
		}
		if _, _, err := net.SplitHostPort(c.MetricAddress); err != nil {
			return fmt.Errorf("invalid metric address %s: %w", c.MetricAddress, err)
		}
	}

	for name := range c.Labels {
		if err := ValidateExtraLabelName(name); err != nil {
			return fmt.Errorf("invalid label %s: %w", name, err)
		}
	}

	return nil
}

func (c *TimerConfig) validateLog() error {
	if !c.Log.Enabled {
		return nil
	}
	return ValidateLogLevel(c.Log.Level)
}

func (c *TimerConfig) validateSummary() error {
	if !c.Summary.Enabled {
		return nil
	}

	if c.Summary.Interval <= 0 {
		return fmt.Errorf("summary interval must be positive")
	}

	if c.Summary.Interval < 100*time.Millisecond {
		return fmt.Errorf("summary interval too small (min: 100ms)")
	}

	return nil
}

// ApplyDefaults sets default values for unspecified configuration options.
// An empty metadata key is left as is since it disables metadata.
func (c *TimerConfig) ApplyDefaults() {
	if c.Clock == "" {
		c.Clock = "auto"
	}

	if c.Log.Level == "" {
		c.Log.Level = "debug"
	}

	if c.Summary.Interval == 0 {
		c.Summary.Interval = time.Minute
	}
}

// Clone creates a deep copy of the configuration
func (c *TimerConfig) Clone() *TimerConfig {
	clone := *c

	if c.Labels != nil {
		clone.Labels = maps.Clone(c.Labels)
	}

	return &clone
}
