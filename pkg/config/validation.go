// pkg/config/validation.go
package config

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/twinfer/benthos-elapsed-timer/pkg/timer"
)

var (
	// Valid clock backends
	validClocks = map[string]bool{
		timer.ClockAuto:     true,
		timer.ClockTicks:    true,
		timer.ClockCalendar: true,
	}

	// Levels a per-measurement log line may be emitted at
	validLogLevels = []string{"trace", "debug", "info", "warn"}

	// Prometheus compatible metric and label names
	metricNamePattern = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)
	labelNamePattern  = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	// Labels every measurement already carries
	reservedLabelNames = []string{"component", "stage", "clock"}
)

// ValidateClock checks if the clock backend is supported
func ValidateClock(clock string) error {
	if !validClocks[clock] {
		return fmt.Errorf("unsupported clock %s, must be one of: %s",
			clock, strings.Join(getKeys(validClocks), ", "))
	}
	return nil
}

// ValidateMetadataKey validates the message metadata key the elapsed time is written to
func ValidateMetadataKey(key string) error {
	if key == "" {
		return fmt.Errorf("metadata key cannot be empty")
	}

	if len(key) > 128 {
		return fmt.Errorf("metadata key too long (maximum 128 characters)")
	}

	if strings.IndexFunc(key, unicode.IsSpace) >= 0 {
		return fmt.Errorf("metadata key cannot contain whitespace")
	}

	return nil
}

// ValidateMetricName validates a metric name
func ValidateMetricName(name string) error {
	if name == "" {
		return fmt.Errorf("metric name cannot be empty")
	}

	if !metricNamePattern.MatchString(name) {
		return fmt.Errorf("invalid metric name format: %s", name)
	}

	return nil
}

// ValidateLabelName validates a metric label name
func ValidateLabelName(name string) error {
	if !labelNamePattern.MatchString(name) {
		return fmt.Errorf("invalid label name format: %s", name)
	}

	if strings.HasPrefix(name, "__") {
		return fmt.Errorf("label names starting with __ are reserved")
	}

	return nil
}

// ValidateExtraLabelName validates a user supplied label name, which must not
// collide with the labels set for every measurement
func ValidateExtraLabelName(name string) error {
	if err := ValidateLabelName(name); err != nil {
		return err
	}

	if slices.Contains(reservedLabelNames, name) {
		return fmt.Errorf("label name %s is reserved, reserved names: %s",
			name, strings.Join(reservedLabelNames, ", "))
	}

	return nil
}

// ValidateLogLevel validates the level used for per-measurement log lines
func ValidateLogLevel(level string) error {
	if !slices.Contains(validLogLevels, level) {
		return fmt.Errorf("unsupported log level %s, must be one of: %s",
			level, strings.Join(validLogLevels, ", "))
	}
	return nil
}

// Helper functions

func getKeys(m map[string]bool) []string {
	return slices.Sorted(maps.Keys(m))
}
