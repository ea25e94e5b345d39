package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
)

// SeriesAdapter is a thin adapter that translates CLI operations to
// SeriesService calls.
type SeriesAdapter struct {
	service primary.SeriesService
	out     io.Writer
}

// NewSeriesAdapter creates a new SeriesAdapter with the given service.
func NewSeriesAdapter(service primary.SeriesService, out io.Writer) *SeriesAdapter {
	return &SeriesAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a series from a theme pack.
func (a *SeriesAdapter) Create(ctx context.Context, title, theme, startDate string, weeks int, cadence string) error {
	resp, err := a.service.CreateSeries(ctx, primary.CreateSeriesRequest{
		Title:     title,
		Theme:     theme,
		StartDate: startDate,
		Weeks:     weeks,
		Cadence:   cadence,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created series %s: %s (%s)\n", resp.SeriesID, resp.Series.Title, resp.Series.Theme)
	fmt.Fprintf(a.out, "  %d passage(s) scheduled, %d session(s) created\n",
		len(resp.Series.Passages), resp.SessionsCreated)
	if len(resp.LinkedDates) > 0 {
		fmt.Fprintf(a.out, "  Linked to existing session(s) on: %s\n", strings.Join(resp.LinkedDates, ", "))
	}
	if len(resp.SkippedDates) > 0 {
		fmt.Fprintf(a.out, "  ⚠ Already studying something on: %s\n", strings.Join(resp.SkippedDates, ", "))
	}
	for _, passage := range resp.Series.Passages {
		fmt.Fprintf(a.out, "  %s  %s (%s)\n", passage.Date, passage.Title, passage.Reference)
	}
	return nil
}

// List lists series with optional filters.
func (a *SeriesAdapter) List(ctx context.Context, status string) error {
	series, err := a.service.ListSeries(ctx, primary.SeriesFilters{Status: status})
	if err != nil {
		return fmt.Errorf("failed to list series: %w", err)
	}

	if len(series) == 0 {
		fmt.Fprintln(a.out, "No series found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-25s %-12s %-12s %s\n", "ID", "TITLE", "THEME", "START", "STATUS")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────")
	for _, s := range series {
		fmt.Fprintf(a.out, "%-10s %-25s %-12s %-12s %s\n", s.ID, s.Title, s.Theme, s.StartDate, s.Status)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays one series with its passages.
func (a *SeriesAdapter) Show(ctx context.Context, seriesID string) error {
	series, err := a.service.GetSeries(ctx, seriesID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nSeries: %s\n", series.ID)
	fmt.Fprintf(a.out, "Title:  %s\n", series.Title)
	fmt.Fprintf(a.out, "Theme:  %s\n", series.Theme)
	fmt.Fprintf(a.out, "Start:  %s\n", series.StartDate)
	fmt.Fprintf(a.out, "Status: %s\n", series.Status)

	if len(series.Passages) > 0 {
		fmt.Fprintln(a.out, "\nPassages:")
		for _, passage := range series.Passages {
			fmt.Fprintf(a.out, "  %s  %s (%s)\n", passage.Date, passage.Title, passage.Reference)
		}
	}
	fmt.Fprintln(a.out)

	return nil
}

// Themes lists the available theme packs.
func (a *SeriesAdapter) Themes(ctx context.Context) error {
	themes, err := a.service.ListThemes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}

	if len(themes) == 0 {
		fmt.Fprintln(a.out, "No theme packs found. Run: kambari init")
		return nil
	}

	fmt.Fprintf(a.out, "Available themes: %s\n", strings.Join(themes, ", "))
	return nil
}
