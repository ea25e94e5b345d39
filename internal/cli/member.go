// Package cli contains the cobra command tree. Commands parse flags and
// delegate to the presentation adapters; business logic lives in the
// application services.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Elsie-Muhumuza/kambari/internal/wire"
)

// MemberCmd returns the member command
func MemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage the group roster",
		Long:  `Register members, control their role eligibility and availability.`,
	}

	cmd.AddCommand(memberAddCmd())
	cmd.AddCommand(memberListCmd())
	cmd.AddCommand(memberShowCmd())
	cmd.AddCommand(memberDeactivateCmd())
	cmd.AddCommand(memberReactivateCmd())
	cmd.AddCommand(memberRolesCmd())
	cmd.AddCommand(memberAvailabilityCmd())
	cmd.AddCommand(memberStatsCmd())

	return cmd
}

func memberAddCmd() *cobra.Command {
	var phone, email string
	var roles []string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Register a new member",
		Long: `Register a new member with an eligibility set.

Without --roles the member is eligible for every configured role.

Examples:
  kambari member add "Alice Wanjiru" --phone 0712345678
  kambari member add "Bob Otieno" --roles prayer_lead,sharing_lead`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.MemberAdapter().Add(context.Background(), args[0], phone, email, roles)
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (used for WhatsApp reminders)")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringSliceVar(&roles, "roles", nil, "Eligible roles (comma-separated)")

	return cmd
}

func memberListCmd() *cobra.Command {
	var activeOnly bool
	var role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.MemberAdapter().List(context.Background(), activeOnly, role)
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only active members")
	cmd.Flags().StringVar(&role, "role", "", "Only members eligible for this role")

	return cmd
}

func memberShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [member-id]",
		Short: "Show member details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.MemberAdapter().Show(context.Background(), args[0])
		},
	}
}

func memberDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate [member-id]",
		Short: "Take a member out of the rotation",
		Long:  `Deactivate a member. History and existing assignments are kept; the eligibility set is restored on reactivation.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.MemberAdapter().Deactivate(context.Background(), args[0])
		},
	}
}

func memberReactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reactivate [member-id]",
		Short: "Put a member back into the rotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.MemberAdapter().Reactivate(context.Background(), args[0])
		},
	}
}

func memberRolesCmd() *cobra.Command {
	var roles []string

	cmd := &cobra.Command{
		Use:   "roles [member-id]",
		Short: "Replace a member's eligible-role set",
		Long: `Replace a member's eligible-role set. An active member must keep
at least one role.

Examples:
  kambari member roles MEM-001 --roles prayer_lead,scripture_reader`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.MemberAdapter().SetEligibility(context.Background(), args[0], roles)
		},
	}

	cmd.Flags().StringSliceVar(&roles, "roles", nil, "Eligible roles (comma-separated)")
	cmd.MarkFlagRequired("roles")

	return cmd
}

func memberStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [member-id]",
		Short: "Show a member's attendance and role history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AttendanceAdapter().Stats(context.Background(), args[0])
		},
	}
}

func memberAvailabilityCmd() *cobra.Command {
	var date, reason string
	var away bool

	cmd := &cobra.Command{
		Use:   "availability [member-id]",
		Short: "Show or set per-date availability",
		Long: `Without flags, lists a member's upcoming availability overrides.
With --date, records an override for that date.

Examples:
  kambari member availability MEM-001
  kambari member availability MEM-001 --date 2026-09-03 --away --reason "traveling"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if date == "" {
				from := time.Now().Format("2006-01-02")
				return wire.MemberAdapter().ShowAvailability(ctx, args[0], from)
			}
			return wire.MemberAdapter().SetAvailability(ctx, args[0], date, !away, reason)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to override (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&away, "away", false, "Mark the member unavailable on the date")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason for the override")

	return cmd
}
