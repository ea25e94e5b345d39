// Package primary defines the primary ports (driving adapters) for the application.
// This file defines the reporting port.
package primary

import "context"

// ReportService defines the primary port for reports and minutes.
type ReportService interface {
	// MonthlyReport summarises one month's sessions and participation.
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (*MonthlyReportResponse, error)

	// MeetingMinutes renders a markdown minutes document for a session
	// and writes it next to the study guides.
	MeetingMinutes(ctx context.Context, req MeetingMinutesRequest) (*MeetingMinutesResponse, error)
}

// MonthlyReportRequest contains parameters for a monthly report.
// Zero values default to the previous calendar month.
type MonthlyReportRequest struct {
	Year  int
	Month int // 1-12
}

// MonthlyReportResponse contains one month's participation summary.
type MonthlyReportResponse struct {
	Period            string // YYYY-MM
	SessionsHeld      int
	SessionsCancelled int
	Sessions          []*ReportSession
	MemberStats       []*MemberMonthStats
	NeverAssigned     []string // names of active members without a role that month
}

// ReportSession is one session line of a monthly report.
type ReportSession struct {
	Date         string
	Status       string
	PassageTitle string
	Reference    string
	Participants []string // "Name (role)" pairs
}

// MemberMonthStats is one member's participation in a month.
type MemberMonthStats struct {
	MemberID       string
	Name           string
	Attended       int
	AttendanceRate float64 // against the month's held sessions
	RolesTaken     int
	Roles          []string
}

// MeetingMinutesRequest contains parameters for minutes generation.
// Date wins when both are set.
type MeetingMinutesRequest struct {
	SessionID string
	Date      string // YYYY-MM-DD
}

// MeetingMinutesResponse contains the rendered minutes.
type MeetingMinutesResponse struct {
	SessionID string
	Date      string
	Markdown  string
	FilePath  string
}
