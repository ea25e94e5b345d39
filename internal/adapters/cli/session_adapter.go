package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	corereminder "github.com/Elsie-Muhumuza/kambari/internal/core/reminder"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
)

// SessionAdapter is a thin adapter that translates CLI operations to
// SessionService calls.
type SessionAdapter struct {
	service primary.SessionService
	out     io.Writer
}

// NewSessionAdapter creates a new SessionAdapter with the given service.
func NewSessionAdapter(service primary.SessionService, out io.Writer) *SessionAdapter {
	return &SessionAdapter{
		service: service,
		out:     out,
	}
}

// Create schedules a session. An empty date means the next meeting date.
func (a *SessionAdapter) Create(ctx context.Context, date, passageID string) error {
	resp, err := a.service.CreateSession(ctx, primary.CreateSessionRequest{
		Date:      date,
		PassageID: passageID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created session %s on %s\n", resp.SessionID, resp.Session.Date)
	if resp.Session.PassageTitle != "" {
		fmt.Fprintf(a.out, "  Passage: %s (%s)\n", resp.Session.PassageTitle, resp.Session.Reference)
	}
	return nil
}

// List lists sessions with optional filters.
func (a *SessionAdapter) List(ctx context.Context, status, from, to string, limit int) error {
	sessions, err := a.service.ListSessions(ctx, primary.SessionFilters{
		Status: status,
		From:   from,
		To:     to,
		Limit:  limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No sessions found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-12s %-11s %s\n", "ID", "DATE", "STATUS", "PASSAGE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, s := range sessions {
		fmt.Fprintf(a.out, "%-10s %-12s %-11s %s\n", s.ID, s.Date, statusLabel(s.Status), s.PassageTitle)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays one session with its serving team.
func (a *SessionAdapter) Show(ctx context.Context, sessionID string) error {
	session, err := a.service.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	return a.printSession(session)
}

// ShowByDate displays the session held on a date.
func (a *SessionAdapter) ShowByDate(ctx context.Context, date string) error {
	session, err := a.service.GetSessionByDate(ctx, date)
	if err != nil {
		return err
	}
	return a.printSession(session)
}

func (a *SessionAdapter) printSession(session *primary.Session) error {
	fmt.Fprintf(a.out, "\nSession: %s\n", session.ID)
	fmt.Fprintf(a.out, "Date:    %s\n", session.Date)
	fmt.Fprintf(a.out, "Status:  %s\n", statusLabel(session.Status))
	if session.PassageTitle != "" {
		fmt.Fprintf(a.out, "Passage: %s (%s)\n", session.PassageTitle, session.Reference)
	}

	if len(session.Assignments) == 0 {
		fmt.Fprintln(a.out, "\nNo roles assigned yet. Run: kambari session assign", session.ID)
	} else {
		fmt.Fprintln(a.out, "\nServing team:")
		for _, assignment := range session.Assignments {
			fmt.Fprintf(a.out, "  %-20s %s (%s)\n",
				corereminder.RoleLabel(assignment.Role), assignment.MemberName, assignment.MemberID)
		}
	}
	fmt.Fprintln(a.out)

	return nil
}

// Assign runs the fairness engine for a session and prints the plan.
func (a *SessionAdapter) Assign(ctx context.Context, sessionID string) error {
	resp, err := a.service.ComputeAssignments(ctx, primary.ComputeAssignmentsRequest{
		SessionID: sessionID,
	})
	if err != nil {
		return err
	}

	if resp.Existing {
		fmt.Fprintf(a.out, "Session %s already has a plan:\n", resp.SessionID)
	} else {
		fmt.Fprintf(a.out, "✓ Assigned roles for session %s:\n", resp.SessionID)
	}
	for _, assignment := range resp.Assignments {
		fmt.Fprintf(a.out, "  %-20s %s (%s)\n",
			corereminder.RoleLabel(assignment.Role), assignment.MemberName, assignment.MemberID)
	}
	return nil
}

// Cancel cancels a planned session.
func (a *SessionAdapter) Cancel(ctx context.Context, sessionID string) error {
	if err := a.service.CancelSession(ctx, sessionID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Session %s cancelled; its assignments no longer count toward fairness\n", sessionID)
	return nil
}

// Next prints the next meeting date.
func (a *SessionAdapter) Next(ctx context.Context) error {
	date, err := a.service.NextMeetingDate(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Next meeting: %s\n", date)
	return nil
}

// statusLabel colors terminal session statuses.
func statusLabel(status string) string {
	switch status {
	case "completed":
		return color.New(color.FgGreen).Sprint(status)
	case "cancelled":
		return color.New(color.FgRed).Sprint(status)
	}
	return status
}
