package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Elsie-Muhumuza/kambari/internal/cli"
	"github.com/Elsie-Muhumuza/kambari/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "kambari",
		Short:   "Kambari - weekly Bible-study group manager",
		Version: version.String(),
		Long: `Kambari manages a small weekly Bible-study group: the member roster,
fair role rotation, session scheduling, attendance, study guides and
WhatsApp reminders.`,
	}

	// Setup and health
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	// Core entities
	rootCmd.AddCommand(cli.MemberCmd())
	rootCmd.AddCommand(cli.SessionCmd())
	rootCmd.AddCommand(cli.SeriesCmd())
	rootCmd.AddCommand(cli.MaterialsCmd())

	// Communication and reporting
	rootCmd.AddCommand(cli.RemindCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.MinutesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
