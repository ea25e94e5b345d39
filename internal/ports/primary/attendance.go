// Package primary defines the primary ports (driving adapters) for the application.
// This file defines the attendance tracking port.
package primary

import "context"

// AttendanceService defines the primary port for attendance tracking.
type AttendanceService interface {
	// RecordAttendance stores who attended a planned session and marks
	// it completed. Recording twice is rejected.
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (*RecordAttendanceResponse, error)

	// GetSessionAttendance retrieves the attendance of one session.
	GetSessionAttendance(ctx context.Context, sessionID string) ([]*AttendanceEntry, error)

	// MemberStats returns one member's attendance count.
	MemberStats(ctx context.Context, memberID string) (*MemberAttendanceStats, error)
}

// RecordAttendanceRequest contains parameters for recording attendance.
type RecordAttendanceRequest struct {
	SessionID        string
	PresentMemberIDs []string
}

// RecordAttendanceResponse contains the result of recording attendance.
// AbsentAssignees flags role holders who did not show so a human can
// re-cover their duty; the assignment record itself stands as given.
type RecordAttendanceResponse struct {
	SessionID       string
	Recorded        int
	AbsentAssignees []*Assignment
}

// AttendanceEntry represents one member's presence at the port boundary.
type AttendanceEntry struct {
	SessionID  string
	MemberID   string
	MemberName string
	Present    bool
}

// MemberAttendanceStats summarises one member's participation.
type MemberAttendanceStats struct {
	MemberID        string
	SessionsPresent int
}
