// pkg/timer/clock_calendar.go
package timer

// CalendarClock samples time of day as seconds plus microseconds.
type CalendarClock struct{}

// NewCalendarClock creates a time of day clock.
func NewCalendarClock() *CalendarClock {
	return &CalendarClock{}
}

func (c *CalendarClock) Now() Instant {
	sec, usec := timeOfDay()
	return Instant{sec: sec, usec: usec}
}

func (c *CalendarClock) Milliseconds(from, to Instant) float64 {
	t1 := float64(from.sec) + float64(from.usec)/1e6
	t2 := float64(to.sec) + float64(to.usec)/1e6
	return 1000. * (t2 - t1)
}
