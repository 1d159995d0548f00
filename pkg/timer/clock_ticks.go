// pkg/timer/clock_ticks.go
package timer

// TickClock samples a high resolution tick counter. The counter frequency is
// read once when the clock is created.
type TickClock struct {
	freq int64
}

// NewTickClock creates a tick counter clock.
func NewTickClock() *TickClock {
	return &TickClock{freq: counterFrequency()}
}

// Frequency returns the cached number of ticks per second.
func (c *TickClock) Frequency() int64 {
	return c.freq
}

func (c *TickClock) Now() Instant {
	return Instant{ticks: readCounter()}
}

func (c *TickClock) Milliseconds(from, to Instant) float64 {
	return 1000. * (float64(to.ticks) - float64(from.ticks)) / float64(c.freq)
}
