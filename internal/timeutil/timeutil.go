// Package timeutil holds the calendar-date helpers shared by the board builder.
package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseDateIn parses a YYYY-MM-DD date as midnight in loc.
func ParseDateIn(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, loc)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDateIn formats t as the calendar date it falls on in loc.
func FormatDateIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// Midday returns noon of the calendar day, which sits inside any week window covering it.
func Midday(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, day.Location())
}

// LoadLocation returns the named zone, or fallback when the zone database lacks it.
func LoadLocation(name string, fallback *time.Location) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
