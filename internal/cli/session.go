package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Elsie-Muhumuza/kambari/internal/wire"
)

// SessionCmd returns the session command
func SessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage study sessions",
		Long:  `Schedule sessions, run the role rotation and record attendance.`,
	}

	cmd.AddCommand(sessionCreateCmd())
	cmd.AddCommand(sessionListCmd())
	cmd.AddCommand(sessionShowCmd())
	cmd.AddCommand(sessionAssignCmd())
	cmd.AddCommand(sessionCancelCmd())
	cmd.AddCommand(sessionAttendCmd())
	cmd.AddCommand(sessionAttendanceCmd())
	cmd.AddCommand(sessionNextCmd())

	return cmd
}

func sessionCreateCmd() *cobra.Command {
	var date, passageID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule a session",
		Long: `Schedule a session. Without --date the next meeting date is used.
A passage already scheduled on the date is linked automatically.

Examples:
  kambari session create
  kambari session create --date 2026-09-03
  kambari session create --date 2026-09-03 --passage PAS-004`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapter().Create(context.Background(), date, passageID)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Session date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&passageID, "passage", "", "Passage to study (PAS-XXX)")

	return cmd
}

func sessionListCmd() *cobra.Command {
	var status, from, to string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapter().List(context.Background(), status, from, to, limit)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (planned, completed, cancelled)")
	cmd.Flags().StringVar(&from, "from", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Latest date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of sessions")

	return cmd
}

func sessionShowCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show [session-id]",
		Short: "Show a session and its serving team",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if len(args) == 1 {
				return wire.SessionAdapter().Show(ctx, args[0])
			}
			if date != "" {
				return wire.SessionAdapter().ShowByDate(ctx, date)
			}
			return cmd.Help()
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Look up by date instead of ID")

	return cmd
}

func sessionAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign [session-id]",
		Short: "Run the role rotation for a session",
		Long: `Run the fairness engine for a planned session and persist the
complete plan. Fails naming the unfillable role(s) when eligibility
runs short; nothing is stored in that case.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapter().Assign(context.Background(), args[0])
		},
	}
}

func sessionCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [session-id]",
		Short: "Cancel a planned session",
		Long:  `Cancel a planned session. Its assignments are kept for the audit trail but stop counting toward fairness history.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapter().Cancel(context.Background(), args[0])
		},
	}
}

func sessionAttendCmd() *cobra.Command {
	var present []string

	cmd := &cobra.Command{
		Use:   "attend [session-id]",
		Short: "Record attendance and complete the session",
		Long: `Record who attended a planned session and mark it completed.
Assignees who were absent are flagged for manual follow-up; their
assignment stands as given.

Examples:
  kambari session attend SES-001 --present MEM-001,MEM-002,MEM-004`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AttendanceAdapter().Record(context.Background(), args[0], present)
		},
	}

	cmd.Flags().StringSliceVar(&present, "present", nil, "Members who attended (comma-separated IDs)")
	cmd.MarkFlagRequired("present")

	return cmd
}

func sessionAttendanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attendance [session-id]",
		Short: "Show a session's attendance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AttendanceAdapter().Show(context.Background(), args[0])
		},
	}
}

func sessionNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next meeting date",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SessionAdapter().Next(context.Background())
		},
	}
}
