//go:build windows

package timer

func newDefaultClock() Clock {
	return NewTickClock()
}
