// Package primary defines the primary ports (driving adapters) for the application.
// This file defines the reminders port.
package primary

import "context"

// ReminderService defines the primary port for meeting reminders.
type ReminderService interface {
	// SendReminders composes and delivers a personal reminder to every
	// assignee of the session on the given date. Delivery failures are
	// reported per recipient, never as a fatal error.
	SendReminders(ctx context.Context, req SendRemindersRequest) (*SendRemindersResponse, error)
}

// SendRemindersRequest contains parameters for a reminder run.
type SendRemindersRequest struct {
	Date string // YYYY-MM-DD; next meeting date when empty
}

// SendRemindersResponse contains the result of a reminder run.
type SendRemindersResponse struct {
	Date    string
	Results []*ReminderResult
}

// ReminderResult describes one recipient's delivery outcome.
type ReminderResult struct {
	MemberID   string
	MemberName string
	Phone      string
	Roles      []string
	Link       string
	Delivered  bool
	Error      string // delivery failure, empty on success
}
