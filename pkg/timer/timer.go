// pkg/timer/timer.go
package timer

import "time"

// noCopy makes go vet's copylocks check reject copies of the structs that
// embed it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Timer measures the wall clock interval between Start and Stop in
// milliseconds. A Timer must not be copied after first use and is not safe
// for concurrent use; independent Timers never share state.
type Timer struct {
	_ noCopy

	clock Clock
	start Instant
	stop  Instant
	// peek is written by DTime only.
	peek Instant
}

// New creates a reset Timer on the default clock.
func New() *Timer {
	return &Timer{clock: Default()}
}

// NewWithClock creates a reset Timer reading the given clock.
func NewWithClock(c Clock) *Timer {
	if c == nil {
		c = Default()
	}
	return &Timer{clock: c}
}

func (t *Timer) clk() Clock {
	if t.clock == nil {
		t.clock = Default()
	}
	return t.clock
}

// Start records the start instant, overwriting any previous one.
func (t *Timer) Start() {
	t.start = t.clk().Now()
}

// Stop records the stop instant and returns the milliseconds elapsed since
// Start. Without a prior Start the result is measured from the reset instant.
func (t *Timer) Stop() float64 {
	t.stop = t.clk().Now()
	return t.ElapsedTime()
}

// ElapsedTime returns the milliseconds between the last Start and Stop calls.
// It does not sample the clock. The result is negative if the stop instant
// precedes the start instant.
func (t *Timer) ElapsedTime() float64 {
	return t.clk().Milliseconds(t.start, t.stop)
}

// DTime returns the milliseconds elapsed since Start without stopping the
// timer.
func (t *Timer) DTime() float64 {
	t.peek = t.clk().Now()
	return t.clk().Milliseconds(t.start, t.peek)
}

// Elapsed is ElapsedTime as a time.Duration.
func (t *Timer) Elapsed() time.Duration {
	return ToDuration(t.ElapsedTime())
}

// Reset zeroes all recorded instants.
func (t *Timer) Reset() {
	t.start = Instant{}
	t.stop = Instant{}
	t.peek = Instant{}
}

// ToDuration converts a millisecond reading to a time.Duration, truncating
// below one nanosecond.
func ToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
