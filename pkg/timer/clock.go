// pkg/timer/clock.go
package timer

import (
	"errors"
	"fmt"
)

// ErrUnknownClock is returned by ClockByName for unsupported clock names.
var ErrUnknownClock = errors.New("unknown clock")

// Clock names accepted by ClockByName.
const (
	ClockAuto     = "auto"
	ClockTicks    = "ticks"
	ClockCalendar = "calendar"
)

// Instant is an opaque clock sample. Its fields are only meaningful to the
// Clock that produced it; the zero value is the reset instant.
type Instant struct {
	ticks int64
	sec   int64
	usec  int64
}

// IsZero reports whether the instant was never sampled.
func (i Instant) IsZero() bool {
	return i == Instant{}
}

// Clock reads instants and converts instant pairs to milliseconds.
type Clock interface {
	Now() Instant
	Milliseconds(from, to Instant) float64
}

var defaultClock = newDefaultClock()

// Default returns the clock backend selected for this build.
func Default() Clock {
	return defaultClock
}

// ClockByName resolves a configured clock name.
func ClockByName(name string) (Clock, error) {
	switch name {
	case "", ClockAuto:
		return Default(), nil
	case ClockTicks:
		return NewTickClock(), nil
	case ClockCalendar:
		return NewCalendarClock(), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be one of: %s, %s, %s)", ErrUnknownClock, name, ClockAuto, ClockTicks, ClockCalendar)
	}
}
