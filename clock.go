package diskpack

import "time"

// Clock supplies the current time for run timing. Inject a fixed or
// stepping implementation to make durations deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

var _ Clock = SystemClock{}
