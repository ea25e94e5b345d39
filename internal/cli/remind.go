package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Elsie-Muhumuza/kambari/internal/wire"
)

// RemindCmd returns the remind command
func RemindCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send WhatsApp reminders to a session's serving team",
		Long: `Compose a personal reminder for every assignee of a session and
print the wa.me link for each. Without --date the next meeting date
is used. Members without a phone number are reported, not skipped
silently.

Examples:
  kambari remind
  kambari remind --date 2026-09-03`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ReminderAdapter().Send(context.Background(), date)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Session date (YYYY-MM-DD); next meeting date when omitted")

	return cmd
}
