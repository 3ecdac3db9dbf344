package practice

import "time"

// Clock abstracts the wall clock so scheduling decisions are testable.
type Clock interface {
	Now() time.Time
}

// systemClock reads the real time.
type systemClock struct{}

// Now implements Clock using time.Now.
func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// NewSystemClock returns a Clock backed by the real wall clock.
func NewSystemClock() Clock {
	return systemClock{}
}

// fixedClock always returns the same instant. Test helper.
type fixedClock struct {
	t time.Time
}

// NewFixedClock returns a Clock pinned to the given instant.
func NewFixedClock(t time.Time) Clock {
	return fixedClock{t: t}
}

// Now implements Clock.
func (c fixedClock) Now() time.Time {
	return c.t
}
