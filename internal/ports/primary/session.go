// Package primary defines the primary ports (driving adapters) for the application.
// This file defines the session scheduling port.
package primary

import "context"

// SessionService defines the primary port for session scheduling.
type SessionService interface {
	// CreateSession schedules a session on a date. At most one session
	// per calendar date.
	CreateSession(ctx context.Context, req CreateSessionRequest) (*CreateSessionResponse, error)

	// GetSession retrieves a session with its assignments.
	GetSession(ctx context.Context, sessionID string) (*Session, error)

	// GetSessionByDate retrieves the session held on a date.
	GetSessionByDate(ctx context.Context, date string) (*Session, error)

	// ListSessions lists sessions with optional filters.
	ListSessions(ctx context.Context, filters SessionFilters) ([]*Session, error)

	// ComputeAssignments runs the fairness engine for a planned session
	// and persists the complete plan atomically. A session that already
	// has assignments returns them unchanged.
	ComputeAssignments(ctx context.Context, req ComputeAssignmentsRequest) (*ComputeAssignmentsResponse, error)

	// CancelSession cancels a planned session. Its assignments are kept
	// but stop counting toward fairness history.
	CancelSession(ctx context.Context, sessionID string) error

	// NextMeetingDate returns the next configured meeting date strictly
	// after today.
	NextMeetingDate(ctx context.Context) (string, error)
}

// CreateSessionRequest contains parameters for scheduling a session.
type CreateSessionRequest struct {
	Date      string // YYYY-MM-DD; next meeting date when empty
	PassageID string // optional
}

// CreateSessionResponse contains the result of scheduling a session.
type CreateSessionResponse struct {
	SessionID string
	Session   *Session
}

// ComputeAssignmentsRequest contains parameters for an assignment run.
type ComputeAssignmentsRequest struct {
	SessionID string
}

// ComputeAssignmentsResponse contains the result of an assignment run.
type ComputeAssignmentsResponse struct {
	SessionID   string
	Assignments []*Assignment
	Existing    bool // true when the stored plan was returned untouched
}

// Session represents a session entity at the port boundary.
type Session struct {
	ID           string
	Date         string
	PassageID    string
	PassageTitle string
	Reference    string
	Status       string
	CreatedAt    string
	CompletedAt  string
	CancelledAt  string
	Assignments  []*Assignment
}

// Assignment represents one role assignment at the port boundary.
type Assignment struct {
	Role       string
	MemberID   string
	MemberName string
	AssignedAt string
}

// SessionFilters contains filter options for listing sessions.
type SessionFilters struct {
	Status string
	From   string
	To     string
	Limit  int
}
