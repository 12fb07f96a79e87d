package domain

import "time"

// DayFormat is the layout for day bucket strings used in range queries.
const DayFormat = "2006-01-02"

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// DayString formats t as a day bucket.
func DayString(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay parses a day bucket string at midnight local time.
func ParseDay(day string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, day, time.Local)
}
