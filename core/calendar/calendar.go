package calendar

import "time"

// DateFormat is the day-granular key format used across the planning board.
const DateFormat = "2006-01-02"

// MondayOf returns the Monday of the ISO week containing d, at the same
// clock time. Weeks run Monday through Sunday, so a Sunday maps six days
// back.
func MondayOf(d time.Time) time.Time {
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return d.AddDate(0, 0, -offset)
}

// ISOWeek returns the ISO-8601 week number of d: the week containing the
// year's first Thursday is week 1.
func ISOWeek(d time.Time) int {
	_, week := d.ISOWeek()
	return week
}

// AddWeeks shifts d by n calendar weeks, handling month and year rollover.
func AddWeeks(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n*7)
}
