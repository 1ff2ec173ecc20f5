package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// MillisSince returns the whole milliseconds elapsed between start and now.
func MillisSince(start, now time.Time) int64 {
	if now.Before(start) {
		return 0
	}
	return now.Sub(start).Milliseconds()
}
