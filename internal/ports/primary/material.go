// Package primary defines the primary ports (driving adapters) for the application.
// This file defines the study materials port.
package primary

import "context"

// MaterialService defines the primary port for generated study guides.
type MaterialService interface {
	// GenerateForSeries generates a guide for every passage of a series
	// that has none yet. Provider failures degrade to the built-in
	// questions instead of failing the run.
	GenerateForSeries(ctx context.Context, req GenerateMaterialsRequest) (*GenerateMaterialsResponse, error)

	// GenerateForPassage generates (or regenerates) one passage's guide.
	GenerateForPassage(ctx context.Context, passageID string) (*GeneratedGuide, error)

	// GetGuide retrieves a passage's stored guide.
	GetGuide(ctx context.Context, passageID string) (*Guide, error)
}

// GenerateMaterialsRequest contains parameters for a generation run.
type GenerateMaterialsRequest struct {
	SeriesID string
}

// GenerateMaterialsResponse contains the result of a generation run.
type GenerateMaterialsResponse struct {
	SeriesID string
	Guides   []*GeneratedGuide
}

// GeneratedGuide describes one passage's generation outcome.
type GeneratedGuide struct {
	PassageID string
	Passage   string
	Reference string
	FilePath  string
	Skipped   bool // a guide already existed
	Degraded  bool // provider failed, built-in questions used
}

// Guide represents a study guide at the port boundary.
type Guide struct {
	PassageID   string
	Passage     string
	Reference   string
	Theme       string
	Application []string
	Discussion  []string
	Reflection  []string
	FilePath    string
}
