package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock advances by step ticks on every Now call. One tick is one
// millisecond.
type stepClock struct {
	ticks int64
	step  int64
}

func (c *stepClock) Now() Instant {
	c.ticks += c.step
	return Instant{ticks: c.ticks}
}

func (c *stepClock) Milliseconds(from, to Instant) float64 {
	return (&TickClock{freq: 1000}).Milliseconds(from, to)
}

func TestTimerStartStop(t *testing.T) {
	tm := NewWithClock(&stepClock{step: 5})

	tm.Start()
	ms := tm.Stop()

	assert.Equal(t, 5.0, ms)
	assert.Equal(t, 5.0, tm.ElapsedTime())
	assert.Equal(t, 5.0, tm.ElapsedTime(), "ElapsedTime must not sample the clock")
}

func TestTimerDTimeDoesNotDisturbStop(t *testing.T) {
	clock := &stepClock{step: 5}
	tm := NewWithClock(clock)

	tm.Start()                        // 5
	assert.Equal(t, 5.0, tm.DTime())  // 10
	assert.Equal(t, 10.0, tm.DTime()) // 15
	assert.Equal(t, 15.0, tm.Stop())  // 20

	assert.Equal(t, 20.0, tm.DTime()) // 25
	assert.Equal(t, 15.0, tm.ElapsedTime())
}

func TestTimerStopWithoutStart(t *testing.T) {
	tm := NewWithClock(&stepClock{step: 7})

	// Measured against the reset instant.
	assert.Equal(t, 7.0, tm.Stop())
}

func TestTimerStopTwice(t *testing.T) {
	tm := NewWithClock(&stepClock{step: 3})

	tm.Start()
	first := tm.Stop()
	second := tm.Stop()

	assert.Equal(t, 3.0, first)
	assert.Equal(t, 6.0, second)
	assert.Equal(t, second, tm.ElapsedTime())
}

func TestTimerRestart(t *testing.T) {
	tm := NewWithClock(&stepClock{step: 2})

	tm.Start()
	tm.Stop()
	tm.Start()
	assert.Equal(t, 2.0, tm.Stop())
}

func TestTimerReset(t *testing.T) {
	clock := &stepClock{step: 4}
	tm := NewWithClock(clock)

	tm.Start()
	tm.Stop()
	tm.Reset()

	assert.Equal(t, 0.0, tm.ElapsedTime())
	assert.True(t, tm.start.IsZero())
	assert.True(t, tm.stop.IsZero())
	assert.True(t, tm.peek.IsZero())
}

func TestTimerNegativeElapsed(t *testing.T) {
	tm := NewWithClock(&stepClock{step: 1})
	tm.start = Instant{ticks: 100}
	tm.stop = Instant{ticks: 40}

	assert.Equal(t, -60.0, tm.ElapsedTime())
}

func TestTimerZeroValue(t *testing.T) {
	var tm Timer

	tm.Start()
	ms := tm.Stop()

	assert.GreaterOrEqual(t, ms, 0.0)
	assert.Less(t, ms, 50.0)
}

func TestTimerImmediateStop(t *testing.T) {
	for name, c := range map[string]Clock{"ticks": NewTickClock(), "calendar": NewCalendarClock()} {
		t.Run(name, func(t *testing.T) {
			tm := NewWithClock(c)
			tm.Start()
			tm.Stop()

			assert.GreaterOrEqual(t, tm.ElapsedTime(), 0.0)
			assert.Less(t, tm.ElapsedTime(), 50.0)
		})
	}
}

func TestTimerSleep(t *testing.T) {
	for name, c := range map[string]Clock{"default": Default(), "ticks": NewTickClock(), "calendar": NewCalendarClock()} {
		t.Run(name, func(t *testing.T) {
			tm := NewWithClock(c)
			tm.Start()
			time.Sleep(100 * time.Millisecond)
			ms := tm.Stop()

			assert.GreaterOrEqual(t, ms, 90.0)
			assert.LessOrEqual(t, ms, 250.0)
			assert.InDelta(t, ms, float64(tm.Elapsed())/float64(time.Millisecond), 1e-3)
		})
	}
}

func TestTimerDTimeNonDecreasing(t *testing.T) {
	tm := New()
	tm.Start()

	first := tm.DTime()
	time.Sleep(time.Millisecond)
	second := tm.DTime()

	assert.GreaterOrEqual(t, second, first)
}

func TestTimerDTimeRealClockKeepsStop(t *testing.T) {
	tm := NewWithClock(NewTickClock())
	tm.Start()
	time.Sleep(10 * time.Millisecond)
	stopped := tm.Stop()

	time.Sleep(10 * time.Millisecond)
	peeked := tm.DTime()

	assert.Greater(t, peeked, stopped)
	assert.Equal(t, stopped, tm.ElapsedTime())
}

func TestIndependentTimers(t *testing.T) {
	a := New()
	b := New()

	a.Start()
	time.Sleep(30 * time.Millisecond)
	b.Start()
	bMs := b.Stop()
	time.Sleep(10 * time.Millisecond)
	aMs := a.Stop()

	require.Less(t, bMs, 30.0)
	assert.GreaterOrEqual(t, aMs, 35.0)
	assert.Equal(t, bMs, b.ElapsedTime())
}

func TestToDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Microsecond, ToDuration(1.5))
	assert.Equal(t, -2*time.Millisecond, ToDuration(-2))
	assert.Equal(t, time.Duration(0), ToDuration(0))
}
