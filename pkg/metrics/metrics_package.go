// pkg/metrics/metrics.go
package metrics

import (
	"github.com/redpanda-data/benthos/v4/public/service"

	"github.com/twinfer/benthos-elapsed-timer/pkg/timer"
)

// Manager records elapsed time measurements into Benthos metrics
type Manager struct {
	resources *service.Resources
	logger    *service.Logger
	labels    *Labels
	values    []string

	Measurements   *service.MetricCounter
	CallbackPanics *service.MetricCounter
	Elapsed        *service.MetricTimer
	LastElapsedMs  *service.MetricGauge
}

// NewManager creates a new metrics manager. Labels may be nil.
func NewManager(resources *service.Resources, labels *Labels) *Manager {
	if labels == nil {
		labels = &Labels{}
	}
	keys := labels.Keys()

	m := &Manager{
		resources: resources,
		logger:    resources.Logger(),
		labels:    labels,
		values:    labels.Values(),

		Measurements:   resources.Metrics().NewCounter("elapsed_measurements_total", keys...),
		CallbackPanics: resources.Metrics().NewCounter("elapsed_callback_panics_total", keys...),
		Elapsed:        resources.Metrics().NewTimer("elapsed_time_ns", keys...),
		LastElapsedMs:  resources.Metrics().NewGauge("elapsed_last_ms", keys...),
	}

	return m
}

// Labels returns the labels the manager's metrics carry
func (m *Manager) Labels() *Labels {
	return m.labels
}

// Record stores one measurement
func (m *Manager) Record(ms float64) {
	m.Measurements.Incr(1, m.values...)
	m.Elapsed.Timing(timer.ToDuration(ms).Nanoseconds(), m.values...)
	m.LastElapsedMs.SetFloat64(ms, m.values...)
}

// Recorder returns a callback feeding measurements into the manager
func (m *Manager) Recorder() timer.Callback {
	return m.Record
}

// ScopedOptions reports callback panics to the logger and the panic counter
func (m *Manager) ScopedOptions() []timer.ScopedOption {
	return []timer.ScopedOption{
		timer.WithLogger(m.logger),
		timer.WithPanicHandler(func(any) {
			m.CallbackPanics.Incr(1, m.values...)
		}),
	}
}

// Fanout combines callbacks into one, invoking them in order. Nil callbacks
// are skipped. A panicking callback does not keep later ones from running;
// the first panic is re-raised once all of them ran.
func Fanout(callbacks ...timer.Callback) timer.Callback {
	return func(ms float64) {
		var first any
		for _, cb := range callbacks {
			if cb == nil {
				continue
			}
			if r := invoke(cb, ms); r != nil && first == nil {
				first = r
			}
		}
		if first != nil {
			panic(first)
		}
	}
}

func invoke(cb timer.Callback, ms float64) (recovered any) {
	defer func() {
		recovered = recover()
	}()
	cb(ms)
	return nil
}
