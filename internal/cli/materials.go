package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Elsie-Muhumuza/kambari/internal/wire"
)

// MaterialsCmd returns the materials command
func MaterialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Generate and view study guides",
		Long:  `Generate discussion guides for passages and export them as markdown.`,
	}

	cmd.AddCommand(materialsGenerateCmd())
	cmd.AddCommand(materialsShowCmd())

	return cmd
}

func materialsGenerateCmd() *cobra.Command {
	var seriesID, passageID string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate study guides",
		Long: `Generate study guides. With --series, every passage in the series
that has no guide yet gets one; with --passage, that passage's guide
is (re)generated. When the question provider is unreachable the
built-in question set is used instead.

Examples:
  kambari materials generate --series SER-001
  kambari materials generate --passage PAS-003`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if passageID != "" {
				return wire.MaterialAdapter().GeneratePassage(ctx, passageID)
			}
			if seriesID != "" {
				return wire.MaterialAdapter().GenerateSeries(ctx, seriesID)
			}
			return cmd.Help()
		},
	}

	cmd.Flags().StringVar(&seriesID, "series", "", "Generate for every passage of a series (SER-XXX)")
	cmd.Flags().StringVar(&passageID, "passage", "", "Generate for one passage (PAS-XXX)")
	cmd.MarkFlagsMutuallyExclusive("series", "passage")

	return cmd
}

func materialsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [passage-id]",
		Short: "Show a passage's study guide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.MaterialAdapter().ShowGuide(context.Background(), args[0])
		},
	}
}
