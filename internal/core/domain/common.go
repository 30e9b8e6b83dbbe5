package domain

import "time"

// Clock returns the current time. Services take one so runs can be reproduced.
type Clock func() time.Time

// SystemClock is the wall clock truncated to microseconds, which is what Postgres stores.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
