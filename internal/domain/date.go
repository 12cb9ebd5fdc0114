package domain

import "time"

// All scheduling arithmetic in this system works on calendar dates only.
// A "date" is a time.Time pinned to midnight UTC; the helpers below are the
// single place where that normalization happens.

// DateOnly strips the time-of-day component, returning midnight UTC of the
// same calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Sunday beginning the calendar week containing t.
// Weekday index 0 = Sunday, matching time.Weekday.
func WeekStart(t time.Time) time.Time {
	d := DateOnly(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// DaysBetween returns the number of calendar days from a to b (negative if
// b is before a). Both arguments are normalized first.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
