// Package clock provides the time source used to decide "today".
package clock

import (
	"time"

	"github.com/mamadbah2/fittrack/internal/domain/models"
)

// Clock pairs a time source with the zone that defines calendar days.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// New returns a wall clock for loc (UTC when nil).
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

// Fixed returns a clock frozen at t, observed in t's location.
func Fixed(t time.Time) Clock {
	return Clock{Now: func() time.Time { return t }, Location: t.Location()}
}

// Today is the current calendar date.
func (c Clock) Today() time.Time {
	return c.DateOf(c.now())
}

// DateOf is the calendar date of t in the clock's zone.
func (c Clock) DateOf(t time.Time) time.Time {
	return models.DateOf(t, c.Location)
}

// Timestamp is the current instant in UTC, used for createdAt/updatedAt.
func (c Clock) Timestamp() time.Time {
	return c.now().UTC()
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
