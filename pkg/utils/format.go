package utils

import "time"

// LongDate formats a timestamp the way passenger-facing messages show
// trip dates, e.g. "Monday, January 5, 2026".
func LongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// ParseTripDate parses a YYYY-MM-DD calendar date in the given zone.
func ParseTripDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}
