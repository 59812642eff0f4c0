package domain

import "time"

// Clock supplies the current time. Injected so token expiry can be
// controlled in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock used outside of tests
type SystemClock struct{}

// Now returns the current wall-clock time
func (SystemClock) Now() time.Time {
	return time.Now()
}
