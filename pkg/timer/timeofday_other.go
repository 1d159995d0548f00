//go:build !unix

package timer

import "time"

func timeOfDay() (sec, usec int64) {
	now := time.Now()
	return now.Unix(), int64(now.Nanosecond() / 1000)
}
