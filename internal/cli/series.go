package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Elsie-Muhumuza/kambari/internal/wire"
)

// SeriesCmd returns the series command
func SeriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Manage study series",
		Long:  `Create study series from theme packs; each passage gets a planned session.`,
	}

	cmd.AddCommand(seriesCreateCmd())
	cmd.AddCommand(seriesListCmd())
	cmd.AddCommand(seriesShowCmd())
	cmd.AddCommand(seriesThemesCmd())

	return cmd
}

func seriesCreateCmd() *cobra.Command {
	var theme, startDate, cadence string
	var weeks int

	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a series from a theme pack",
		Long: `Create a series drawing passages from a theme pack, cycling when
the run is longer than the pack. Each passage is laid on a meeting
date with a planned session.

Examples:
  kambari series create "Parables of Jesus" --theme parables --weeks 6
  kambari series create "Miracles" --theme miracles --start 2026-09-03 --cadence biweekly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SeriesAdapter().Create(context.Background(), args[0], theme, startDate, weeks, cadence)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Theme pack to draw passages from")
	cmd.Flags().StringVar(&startDate, "start", "", "First session date (YYYY-MM-DD); next meeting date when omitted")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Number of passages; pack size when omitted")
	cmd.Flags().StringVar(&cadence, "cadence", "", "weekly (default) or biweekly")
	cmd.MarkFlagRequired("theme")

	return cmd
}

func seriesListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List series",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SeriesAdapter().List(context.Background(), status)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (active, archived)")

	return cmd
}

func seriesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [series-id]",
		Short: "Show a series with its passages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SeriesAdapter().Show(context.Background(), args[0])
		},
	}
}

func seriesThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the available theme packs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SeriesAdapter().Themes(context.Background())
		},
	}
}
