//go:build windows

package timer

import "golang.org/x/sys/windows"

// QueryPerformanceCounter cannot fail on Windows XP and later.
func readCounter() int64 {
	var count int64
	_ = windows.QueryPerformanceCounter(&count)
	return count
}

func counterFrequency() int64 {
	var freq int64
	if err := windows.QueryPerformanceFrequency(&freq); err != nil || freq <= 0 {
		return 1
	}
	return freq
}
