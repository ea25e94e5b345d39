package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
)

// ReportAdapter is a thin adapter that translates CLI operations to
// ReportService calls.
type ReportAdapter struct {
	service primary.ReportService
	out     io.Writer
}

// NewReportAdapter creates a new ReportAdapter with the given service.
func NewReportAdapter(service primary.ReportService, out io.Writer) *ReportAdapter {
	return &ReportAdapter{
		service: service,
		out:     out,
	}
}

// Monthly prints a month's participation summary. Zero values default
// to the previous calendar month.
func (a *ReportAdapter) Monthly(ctx context.Context, year, month int) error {
	resp, err := a.service.MonthlyReport(ctx, primary.MonthlyReportRequest{
		Year:  year,
		Month: month,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nMonthly report %s\n", resp.Period)
	fmt.Fprintf(a.out, "Sessions held: %d, cancelled: %d\n", resp.SessionsHeld, resp.SessionsCancelled)

	if len(resp.Sessions) > 0 {
		fmt.Fprintln(a.out, "\nSessions:")
		for _, session := range resp.Sessions {
			line := fmt.Sprintf("  %s  %-11s", session.Date, statusLabel(session.Status))
			if session.PassageTitle != "" {
				line += fmt.Sprintf(" %s (%s)", session.PassageTitle, session.Reference)
			}
			fmt.Fprintln(a.out, line)
			if len(session.Participants) > 0 {
				fmt.Fprintf(a.out, "              %s\n", strings.Join(session.Participants, ", "))
			}
		}
	}

	if len(resp.MemberStats) > 0 {
		fmt.Fprintf(a.out, "\n%-20s %-10s %-8s %s\n", "MEMBER", "ATTENDED", "RATE", "ROLES")
		fmt.Fprintln(a.out, "────────────────────────────────────────────────────────")
		for _, stats := range resp.MemberStats {
			fmt.Fprintf(a.out, "%-20s %-10d %-8s %s\n",
				stats.Name, stats.Attended,
				fmt.Sprintf("%.0f%%", stats.AttendanceRate),
				strings.Join(stats.Roles, ", "))
		}
	}

	if len(resp.NeverAssigned) > 0 {
		fmt.Fprintf(a.out, "\nNever assigned this month: %s\n", strings.Join(resp.NeverAssigned, ", "))
	}
	fmt.Fprintln(a.out)

	return nil
}

// Minutes renders and exports the minutes of one session.
func (a *ReportAdapter) Minutes(ctx context.Context, sessionID, date string) error {
	resp, err := a.service.MeetingMinutes(ctx, primary.MeetingMinutesRequest{
		SessionID: sessionID,
		Date:      date,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, resp.Markdown)
	if resp.FilePath != "" {
		fmt.Fprintf(a.out, "✓ Minutes written to %s\n", resp.FilePath)
	}
	return nil
}
