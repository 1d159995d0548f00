//go:build !windows

package timer

import "time"

var counterEpoch = time.Now()

// readCounter returns monotonic nanoseconds since package init.
func readCounter() int64 {
	return time.Since(counterEpoch).Nanoseconds()
}

func counterFrequency() int64 {
	return int64(time.Second)
}
