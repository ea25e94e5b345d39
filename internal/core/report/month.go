// Package report contains the pure logic for monthly participation
// reports and meeting minutes. This is part of the Functional Core -
// no I/O, only pure functions; fetching sessions and attendance is the
// caller's job.
package report

import (
	"fmt"
	"time"
)

// Period formats a year and month as YYYY-MM.
func Period(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// PreviousMonth returns the calendar month before the given time.
func PreviousMonth(now time.Time) (year, month int) {
	prev := now.AddDate(0, -1, -now.Day()+1)
	return prev.Year(), int(prev.Month())
}

// MonthRange returns the inclusive YYYY-MM-DD bounds of a month.
func MonthRange(year, month int) (from, to string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// ValidMonth reports whether month is a calendar month number.
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// AttendanceRate returns attended over held as a percentage, 0 when no
// sessions were held.
func AttendanceRate(attended, held int) float64 {
	if held == 0 {
		return 0
	}
	return float64(attended) / float64(held) * 100
}
