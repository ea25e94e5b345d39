// Package primary defines the primary ports (driving adapters) for the application.
// This file defines the series planning port.
package primary

import "context"

// SeriesService defines the primary port for study series.
type SeriesService interface {
	// CreateSeries creates a series from a theme pack, laying one
	// passage and one planned session per meeting date.
	CreateSeries(ctx context.Context, req CreateSeriesRequest) (*CreateSeriesResponse, error)

	// GetSeries retrieves a series with its passages.
	GetSeries(ctx context.Context, seriesID string) (*Series, error)

	// ListSeries lists series with optional filters.
	ListSeries(ctx context.Context, filters SeriesFilters) ([]*Series, error)

	// ListThemes lists the available theme packs.
	ListThemes(ctx context.Context) ([]string, error)
}

// CreateSeriesRequest contains parameters for creating a series.
type CreateSeriesRequest struct {
	Title     string
	Theme     string
	StartDate string // YYYY-MM-DD
	Weeks     int
	Cadence   string // weekly (default) or biweekly
}

// CreateSeriesResponse contains the result of creating a series.
type CreateSeriesResponse struct {
	SeriesID        string
	Series          *Series
	SessionsCreated int
	LinkedDates     []string // dates whose existing session got the passage
	SkippedDates    []string // dates whose existing session kept its own passage
}

// Series represents a series entity at the port boundary.
type Series struct {
	ID        string
	Title     string
	Theme     string
	StartDate string
	Status    string
	Passages  []*Passage
}

// Passage represents a passage entity at the port boundary.
type Passage struct {
	ID          string
	SeriesID    string
	SeriesTitle string
	Title       string
	Reference   string
	Date        string
}

// SeriesFilters contains filter options for listing series.
type SeriesFilters struct {
	Status string
	Limit  int
}
