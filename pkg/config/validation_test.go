package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClock(t *testing.T) {
	for _, clock := range []string{"auto", "ticks", "calendar"} {
		t.Run(clock, func(t *testing.T) {
			assert.NoError(t, ValidateClock(clock))
		})
	}

	t.Run("Unsupported", func(t *testing.T) {
		err := ValidateClock("rdtsc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported clock rdtsc")
		assert.Contains(t, err.Error(), "auto, calendar, ticks")
	})

	t.Run("EmptyIsNotAccepted", func(t *testing.T) {
		assert.Error(t, ValidateClock(""))
	})
}

func TestValidateMetadataKey(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		expectError string
	}{
		{name: "simple", key: "elapsed_ms"},
		{name: "dotted", key: "timing.processors.elapsed"},
		{name: "empty", key: "", expectError: "cannot be empty"},
		{name: "whitespace", key: "elapsed ms", expectError: "whitespace"},
		{name: "too long", key: strings.Repeat("k", 129), expectError: "too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMetadataKey(tt.key)
			if tt.expectError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateMetricName(t *testing.T) {
	assert.NoError(t, ValidateMetricName("elapsed_time_ns"))
	assert.NoError(t, ValidateMetricName("pipeline:elapsed"))
	assert.Error(t, ValidateMetricName(""))
	assert.Error(t, ValidateMetricName("9lives"))
	assert.Error(t, ValidateMetricName("elapsed-time"))
}

func TestValidateLabelName(t *testing.T) {
	assert.NoError(t, ValidateLabelName("stage"))
	assert.Error(t, ValidateLabelName("__reserved"))
	assert.Error(t, ValidateLabelName("has:colon"))
	assert.Error(t, ValidateLabelName(""))
}

func TestValidateLogLevel(t *testing.T) {
	assert.NoError(t, ValidateLogLevel("debug"))
	assert.NoError(t, ValidateLogLevel("warn"))

	err := ValidateLogLevel("fatal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trace, debug, info, warn")
}

func TestTimerConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(c *TimerConfig)
		expectError string
	}{
		{
			name:   "defaults are valid",
			modify: func(c *TimerConfig) {},
		},
		{
			name:        "bad clock",
			modify:      func(c *TimerConfig) { c.Clock = "hourglass" },
			expectError: "invalid clock",
		},
		{
			name:   "metadata disabled",
			modify: func(c *TimerConfig) { c.MetadataKey = "" },
		},
		{
			name:        "bad metadata key",
			modify:      func(c *TimerConfig) { c.MetadataKey = "a b" },
			expectError: "invalid metadata key",
		},
		{
			name:        "bad metric name",
			modify:      func(c *TimerConfig) { c.MetricName = "has space" },
			expectError: "invalid metric config",
		},
		{
			name:        "bad label",
			modify:      func(c *TimerConfig) { c.Labels = map[string]string{"__x": "y"} },
			expectError: "invalid label __x",
		},
		{
			name:        "reserved label",
			modify:      func(c *TimerConfig) { c.Labels = map[string]string{"stage": "x", "clock": "y"} },
			expectError: "is reserved",
		},
		{
			name: "metric address",
			modify: func(c *TimerConfig) {
				c.MetricName = "elapsed_seconds"
				c.MetricAddress = "0.0.0.0:9464"
			},
		},
		{
			name:        "metric address without name",
			modify:      func(c *TimerConfig) { c.MetricAddress = "0.0.0.0:9464" },
			expectError: "without a metric name",
		},
		{
			name: "malformed metric address",
			modify: func(c *TimerConfig) {
				c.MetricName = "elapsed_seconds"
				c.MetricAddress = "9464"
			},
			expectError: "invalid metric address",
		},
		{
			name: "log level ignored when disabled",
			modify: func(c *TimerConfig) {
				c.Log = LogConfig{Enabled: false, Level: "nope"}
			},
		},
		{
			name: "bad log level",
			modify: func(c *TimerConfig) {
				c.Log = LogConfig{Enabled: true, Level: "nope"}
			},
			expectError: "invalid log config",
		},
		{
			name: "summary interval too small",
			modify: func(c *TimerConfig) {
				c.Summary = SummaryConfig{Enabled: true, Interval: time.Millisecond}
			},
			expectError: "too small",
		},
		{
			name: "summary interval missing",
			modify: func(c *TimerConfig) {
				c.Summary = SummaryConfig{Enabled: true}
			},
			expectError: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)

			err := c.Validate()
			if tt.expectError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	c := &TimerConfig{}
	c.ApplyDefaults()

	assert.Equal(t, "auto", c.Clock)
	assert.Empty(t, c.MetadataKey)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, time.Minute, c.Summary.Interval)
	assert.NoError(t, c.Validate())

	custom := &TimerConfig{Clock: "ticks", MetadataKey: "took"}
	custom.ApplyDefaults()
	assert.Equal(t, "ticks", custom.Clock)
	assert.Equal(t, "took", custom.MetadataKey)
}

func TestClone(t *testing.T) {
	orig := DefaultConfig()
	orig.Labels = map[string]string{"stage": "enrich"}

	clone := orig.Clone()
	clone.Labels["stage"] = "store"
	clone.Clock = "ticks"

	assert.Equal(t, "enrich", orig.Labels["stage"])
	assert.Equal(t, "auto", orig.Clock)
}

func TestPresets(t *testing.T) {
	for name, c := range map[string]*TimerConfig{
		"default":      DefaultConfig(),
		"metrics only": MetricsOnlyConfig(),
		"verbose":      VerboseConfig(),
		"portable":     PortableConfig(),
	} {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, c.Validate())
		})
	}

	assert.Equal(t, "calendar", PortableConfig().Clock)
	assert.Empty(t, MetricsOnlyConfig().MetadataKey)
}

func TestValidateExtraLabelName(t *testing.T) {
	assert.NoError(t, ValidateExtraLabelName("pipeline"))
	assert.Error(t, ValidateExtraLabelName("__reserved"))

	for _, name := range []string{"component", "stage", "clock"} {
		t.Run(name, func(t *testing.T) {
			err := ValidateExtraLabelName(name)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "is reserved")
		})
	}
}
