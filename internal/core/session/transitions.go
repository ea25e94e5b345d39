// Package session contains the pure business logic for study sessions.
// This is part of the Functional Core - no I/O, only pure functions.
package session

import "time"

// Status represents the possible states of a session.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// StatusTransitionResult contains the result of a status transition.
// This is a value object that captures both the new status and any
// side effects (like setting the CompletedAt timestamp).
type StatusTransitionResult struct {
	NewStatus   Status
	CompletedAt *time.Time // Set when transitioning to completed
	CancelledAt *time.Time // Set when transitioning to cancelled
}

// ApplyStatusTransition applies a status transition and returns the result.
// This is a pure function that captures the business rules:
// - "completed" stamps CompletedAt with the current time.
// - "cancelled" stamps CancelledAt with the current time.
// The caller should pass the current time to enable testing.
func ApplyStatusTransition(newStatus Status, now time.Time) StatusTransitionResult {
	result := StatusTransitionResult{
		NewStatus: newStatus,
	}

	switch newStatus {
	case StatusCompleted:
		result.CompletedAt = &now
	case StatusCancelled:
		result.CancelledAt = &now
	}

	return result
}

// InitialStatus returns the initial status for a new session.
func InitialStatus() Status {
	return StatusPlanned
}
