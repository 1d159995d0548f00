//go:build unix

package timer

import (
	"time"

	"golang.org/x/sys/unix"
)

func timeOfDay() (sec, usec int64) {
	var tv unix.Timeval
	if err := unix.Gettimeofday(&tv); err != nil {
		now := time.Now()
		return now.Unix(), int64(now.Nanosecond() / 1000)
	}
	s, ns := tv.Unix()
	return s, ns / 1000
}
