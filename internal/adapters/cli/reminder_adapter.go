package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	corereminder "github.com/Elsie-Muhumuza/kambari/internal/core/reminder"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
)

// ReminderAdapter is a thin adapter that translates CLI operations to
// ReminderService calls.
type ReminderAdapter struct {
	service primary.ReminderService
	out     io.Writer
}

// NewReminderAdapter creates a new ReminderAdapter with the given service.
func NewReminderAdapter(service primary.ReminderService, out io.Writer) *ReminderAdapter {
	return &ReminderAdapter{
		service: service,
		out:     out,
	}
}

// Send composes and delivers reminders to every assignee of the
// session on a date. An empty date means the next meeting date.
func (a *ReminderAdapter) Send(ctx context.Context, date string) error {
	resp, err := a.service.SendReminders(ctx, primary.SendRemindersRequest{Date: date})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Reminders for %s:\n", resp.Date)
	delivered := 0
	for _, result := range resp.Results {
		labels := make([]string, len(result.Roles))
		for i, role := range result.Roles {
			labels[i] = corereminder.RoleLabel(role)
		}
		roles := strings.Join(labels, " and ")

		if result.Error != "" {
			mark := color.New(color.FgRed).Sprint("✗")
			fmt.Fprintf(a.out, "%s %s (%s): %s\n", mark, result.MemberName, roles, result.Error)
			continue
		}
		delivered++
		fmt.Fprintf(a.out, "✓ %s (%s)\n", result.MemberName, roles)
	}
	fmt.Fprintf(a.out, "\n%d of %d reminder(s) prepared\n", delivered, len(resp.Results))

	return nil
}
