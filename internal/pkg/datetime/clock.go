package datetime

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock reads the local wall clock.
var SystemClock Clock = systemClock{}

// Today returns the calendar date of c.Now() in the clock's own location,
// falling back to the system clock when c is nil.
func Today(c Clock) Date {
	if c == nil {
		c = SystemClock
	}
	return DateOf(c.Now())
}
