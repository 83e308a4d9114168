package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates (ISO-8601 yyyy-MM-dd).
const DateLayout = "2006-01-02"

// MaxWindowDays bounds every "last N days" query.
const MaxWindowDays = 366

// DateOf returns the calendar date of t as observed in loc, normalized to
// midnight UTC so dates compare and serialize independently of the zone.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a yyyy-MM-dd string into a normalized calendar date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must use layout %s", value, DateLayout)
	}
	return parsed, nil
}

// FormatDate renders a calendar date using DateLayout.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// WindowStart returns the first date of the inclusive window of the given
// number of days ending on end.
func WindowStart(end time.Time, days int) time.Time {
	return end.AddDate(0, 0, -(days - 1))
}
