package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Elsie-Muhumuza/kambari/internal/wire"
)

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Participation reports",
	}

	cmd.AddCommand(reportMonthlyCmd())

	return cmd
}

func reportMonthlyCmd() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show a month's participation summary",
		Long: `Summarize a month: sessions held and cancelled, per-member
attendance and roles served, and members never assigned. Without
flags the previous calendar month is reported.

Examples:
  kambari report monthly
  kambari report monthly --year 2026 --month 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ReportAdapter().Monthly(context.Background(), year, month)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Report year")
	cmd.Flags().IntVar(&month, "month", 0, "Report month (1-12)")
	cmd.MarkFlagsRequiredTogether("year", "month")

	return cmd
}

// MinutesCmd returns the minutes command
func MinutesCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "minutes [session-id]",
		Short: "Render and export a session's meeting minutes",
		Long: `Render the minutes of a completed session as markdown and export
them next to the study guides.

Examples:
  kambari minutes SES-003
  kambari minutes --date 2026-09-03`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID := ""
			if len(args) == 1 {
				sessionID = args[0]
			}
			if sessionID == "" && date == "" {
				return cmd.Help()
			}
			return wire.ReportAdapter().Minutes(context.Background(), sessionID, date)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Look up the session by date instead of ID")

	return cmd
}
