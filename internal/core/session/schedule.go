// Package session contains the pure business logic for study sessions.
// This file contains the meeting-date arithmetic.
package session

import "time"

// DateLayout is the wire format for session dates.
const DateLayout = "2006-01-02"

// NextMeetingDate returns the next occurrence of the meeting weekday
// strictly after from. If from already falls on the meeting weekday the
// following week is returned.
func NextMeetingDate(from time.Time, weekday time.Weekday) time.Time {
	days := (int(weekday) - int(from.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	next := from.AddDate(0, 0, days)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, from.Location())
}

// ParseDate parses a YYYY-MM-DD session date.
func ParseDate(value string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
