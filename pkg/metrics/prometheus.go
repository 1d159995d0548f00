// pkg/metrics/prometheus.go
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/twinfer/benthos-elapsed-timer/pkg/config"
	"github.com/twinfer/benthos-elapsed-timer/pkg/timer"
)

// DefaultBuckets spans 0.5ms to ~16s in seconds
var DefaultBuckets = prometheus.ExponentialBuckets(0.0005, 2, 16)

// NewElapsedHistogramVec creates a histogram of elapsed seconds partitioned
// by the given label names
func NewElapsedHistogramVec(name string, labelNames ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    name,
		Help:    "Elapsed time of measured scopes in seconds.",
		Buckets: DefaultBuckets,
	}, labelNames)
}

// RegisterElapsedHistogramVec registers a histogram vec with reg, reusing an
// identical collector that is already registered. Names are held to the
// classic Prometheus naming rules.
func RegisterElapsedHistogramVec(reg prometheus.Registerer, name string, labelNames ...string) (*prometheus.HistogramVec, error) {
	if err := config.ValidateMetricName(name); err != nil {
		return nil, fmt.Errorf("failed to register histogram: %w", err)
	}
	for _, label := range labelNames {
		if err := config.ValidateLabelName(label); err != nil {
			return nil, fmt.Errorf("failed to register histogram %s: %w", name, err)
		}
	}

	vec := NewElapsedHistogramVec(name, labelNames...)
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				return nil, fmt.Errorf("collector %s already registered with a different type", name)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("failed to register histogram %s: %w", name, err)
	}
	return vec, nil
}

// HistogramCallback returns a timer callback observing measurements, in
// seconds, into o
func HistogramCallback(o prometheus.Observer) timer.Callback {
	return func(ms float64) {
		o.Observe(ms / 1000)
	}
}
