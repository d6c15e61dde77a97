package app

import "time"

// untilNextHour returns the time left to the next full hour. Offsets are whole hours so the
// UTC boundary is also the local one.
func untilNextHour(now time.Time) time.Duration {
	next := now.Truncate(time.Hour).Add(time.Hour)
	return next.Sub(now)
}
