// pkg/metrics/timer.go
package metrics

import (
	"github.com/twinfer/benthos-elapsed-timer/pkg/timer"
)

// StartTimer starts a scoped measurement on the default clock that is
// recorded into the manager's metrics when ended. Extra callbacks receive the
// same measurement.
func (m *Manager) StartTimer(extra ...timer.Callback) *timer.Scoped[*timer.Timer] {
	return m.StartTimerWithClock(timer.Default(), extra...)
}

// StartTimerWithClock is StartTimer on a specific clock.
func (m *Manager) StartTimerWithClock(clock timer.Clock, extra ...timer.Callback) *timer.Scoped[*timer.Timer] {
	callbacks := append([]timer.Callback{m.Recorder()}, extra...)
	return timer.BeginWith(timer.NewWithClock(clock), Fanout(callbacks...), m.ScopedOptions()...)
}
