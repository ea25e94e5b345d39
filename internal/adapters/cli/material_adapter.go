package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
)

// MaterialAdapter is a thin adapter that translates CLI operations to
// MaterialService calls.
type MaterialAdapter struct {
	service primary.MaterialService
	out     io.Writer
}

// NewMaterialAdapter creates a new MaterialAdapter with the given service.
func NewMaterialAdapter(service primary.MaterialService, out io.Writer) *MaterialAdapter {
	return &MaterialAdapter{
		service: service,
		out:     out,
	}
}

// GenerateSeries generates guides for every passage of a series that
// has none yet.
func (a *MaterialAdapter) GenerateSeries(ctx context.Context, seriesID string) error {
	resp, err := a.service.GenerateForSeries(ctx, primary.GenerateMaterialsRequest{
		SeriesID: seriesID,
	})
	if err != nil {
		return err
	}

	generated := 0
	for _, guide := range resp.Guides {
		switch {
		case guide.Skipped:
			fmt.Fprintf(a.out, "- %s (%s): guide already exists, skipped\n", guide.Passage, guide.Reference)
		case guide.Degraded:
			generated++
			fmt.Fprintf(a.out, "⚠ %s (%s): provider unavailable, built-in questions used\n  → %s\n",
				guide.Passage, guide.Reference, guide.FilePath)
		default:
			generated++
			fmt.Fprintf(a.out, "✓ %s (%s)\n  → %s\n", guide.Passage, guide.Reference, guide.FilePath)
		}
	}
	fmt.Fprintf(a.out, "\n✓ Generated %d guide(s) for series %s\n", generated, resp.SeriesID)

	return nil
}

// GeneratePassage generates (or regenerates) one passage's guide.
func (a *MaterialAdapter) GeneratePassage(ctx context.Context, passageID string) error {
	guide, err := a.service.GenerateForPassage(ctx, passageID)
	if err != nil {
		return err
	}

	if guide.Degraded {
		fmt.Fprintf(a.out, "⚠ Provider unavailable, built-in questions used for %s\n", guide.Passage)
	}
	fmt.Fprintf(a.out, "✓ Generated guide for %s (%s)\n  → %s\n", guide.Passage, guide.Reference, guide.FilePath)
	return nil
}

// ShowGuide prints a passage's stored guide.
func (a *MaterialAdapter) ShowGuide(ctx context.Context, passageID string) error {
	guide, err := a.service.GetGuide(ctx, passageID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n📖 %s (%s)\n", guide.Passage, guide.Reference)
	if guide.Theme != "" {
		fmt.Fprintf(a.out, "Theme: %s\n", guide.Theme)
	}

	sections := []struct {
		title     string
		questions []string
	}{
		{"Application", guide.Application},
		{"Discussion", guide.Discussion},
		{"Reflection", guide.Reflection},
	}
	for _, section := range sections {
		if len(section.questions) == 0 {
			continue
		}
		fmt.Fprintf(a.out, "\n%s:\n", section.title)
		for _, q := range section.questions {
			fmt.Fprintf(a.out, "  %s\n", q)
		}
	}
	if guide.FilePath != "" {
		fmt.Fprintf(a.out, "\nExported to %s\n", guide.FilePath)
	}
	fmt.Fprintln(a.out)

	return nil
}
