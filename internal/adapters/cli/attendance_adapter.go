package cli

import (
	"context"
	"fmt"
	"io"

	corereminder "github.com/Elsie-Muhumuza/kambari/internal/core/reminder"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
)

// AttendanceAdapter is a thin adapter that translates CLI operations to
// AttendanceService calls.
type AttendanceAdapter struct {
	service primary.AttendanceService
	out     io.Writer
}

// NewAttendanceAdapter creates a new AttendanceAdapter with the given service.
func NewAttendanceAdapter(service primary.AttendanceService, out io.Writer) *AttendanceAdapter {
	return &AttendanceAdapter{
		service: service,
		out:     out,
	}
}

// Record stores attendance for a session and flags absent assignees.
func (a *AttendanceAdapter) Record(ctx context.Context, sessionID string, presentMemberIDs []string) error {
	resp, err := a.service.RecordAttendance(ctx, primary.RecordAttendanceRequest{
		SessionID:        sessionID,
		PresentMemberIDs: presentMemberIDs,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Recorded attendance for session %s (%d members), session completed\n",
		resp.SessionID, resp.Recorded)

	if len(resp.AbsentAssignees) > 0 {
		fmt.Fprintln(a.out, "\n⚠ Assignees who were absent (roles need manual follow-up):")
		for _, assignment := range resp.AbsentAssignees {
			fmt.Fprintf(a.out, "  %-20s %s (%s)\n",
				corereminder.RoleLabel(assignment.Role), assignment.MemberName, assignment.MemberID)
		}
	}
	return nil
}

// Show lists one session's attendance.
func (a *AttendanceAdapter) Show(ctx context.Context, sessionID string) error {
	entries, err := a.service.GetSessionAttendance(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to get attendance: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No attendance recorded")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-20s %s\n", "ID", "NAME", "PRESENT")
	fmt.Fprintln(a.out, "────────────────────────────────────────")
	for _, entry := range entries {
		present := "yes"
		if !entry.Present {
			present = "no"
		}
		fmt.Fprintf(a.out, "%-10s %-20s %s\n", entry.MemberID, entry.MemberName, present)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Stats prints one member's attendance count.
func (a *AttendanceAdapter) Stats(ctx context.Context, memberID string) error {
	stats, err := a.service.MemberStats(ctx, memberID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Member %s attended %d session(s)\n", stats.MemberID, stats.SessionsPresent)
	return nil
}
