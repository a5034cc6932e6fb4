package timeutil

import (
	"time"

	"cloud.google.com/go/civil"
)

// Appointment dates are calendar days with no time zone attached: a clean
// scheduled for "2025-06-01" is on that day wherever the client happens to
// be. All upcoming/history decisions compare midnight-normalized calendar
// dates and ignore time-of-day.

// Today returns the current calendar day in local time.
func Today() civil.Date {
	return civil.DateOf(time.Now())
}

// DayOf truncates a point in time to its local calendar day.
func DayOf(t time.Time) civil.Date {
	return civil.DateOf(t)
}

// ParseDay parses a YYYY-MM-DD string into a calendar day.
func ParseDay(s string) (civil.Date, error) {
	return civil.ParseDate(s)
}

// SameOrAfter reports whether day d falls on or after the reference day.
func SameOrAfter(d, ref civil.Date) bool {
	return !d.Before(ref)
}
