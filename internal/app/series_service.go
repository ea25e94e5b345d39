package app

import (
	"context"
	"fmt"
	"time"

	coreseries "github.com/Elsie-Muhumuza/kambari/internal/core/series"
	coresession "github.com/Elsie-Muhumuza/kambari/internal/core/session"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// SeriesServiceImpl implements the SeriesService interface.
type SeriesServiceImpl struct {
	seriesRepo     secondary.SeriesRepository
	passageRepo    secondary.PassageRepository
	packs          secondary.ThemePackProvider
	meetingWeekday time.Weekday
}

// NewSeriesService creates a new SeriesService with injected dependencies.
func NewSeriesService(
	seriesRepo secondary.SeriesRepository,
	passageRepo secondary.PassageRepository,
	packs secondary.ThemePackProvider,
	meetingWeekday time.Weekday,
) *SeriesServiceImpl {
	return &SeriesServiceImpl{
		seriesRepo:     seriesRepo,
		passageRepo:    passageRepo,
		packs:          packs,
		meetingWeekday: meetingWeekday,
	}
}

// CreateSeries creates a series from a theme pack, laying one passage
// and one planned session per meeting date.
func (s *SeriesServiceImpl) CreateSeries(ctx context.Context, req primary.CreateSeriesRequest) (*primary.CreateSeriesResponse, error) {
	// 1. Load the theme pack for the guard
	pack, packErr := s.packs.LoadPack(ctx, req.Theme)

	// 2. Fill request defaults
	cadence := coreseries.Cadence(req.Cadence)
	if req.Cadence == "" {
		cadence = coreseries.CadenceWeekly
	}

	startDate := req.StartDate
	if startDate == "" {
		startDate = coresession.NextMeetingDate(time.Now(), s.meetingWeekday).Format(coresession.DateLayout)
	}
	start, startValid := coresession.ParseDate(startDate)

	weeks := req.Weeks
	if weeks == 0 {
		weeks = len(pack)
	}

	// 3. Check guard
	guardCtx := coreseries.CreateContext{
		Title:          req.Title,
		Theme:          req.Theme,
		ThemeKnown:     packErr == nil,
		PackSize:       len(pack),
		Weeks:          weeks,
		Cadence:        cadence,
		StartDateValid: startValid,
	}
	if result := coreseries.CanCreate(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	// 4. Lay the passages onto meeting dates (pure function)
	packPassages := make([]coreseries.PackPassage, len(pack))
	for i, p := range pack {
		packPassages[i] = coreseries.PackPassage{Title: p.Title, Reference: p.Reference}
	}
	planned := coreseries.PlanPassages(coreseries.PlanInput{
		StartDate: start,
		Weeks:     weeks,
		Cadence:   cadence,
		Pack:      packPassages,
	})

	// 5. Persist the whole layout in one transaction, the repository
	// assigns passage and session IDs and links or skips taken dates
	seriesID, err := s.seriesRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate series ID: %w", err)
	}
	seriesRecord := &secondary.SeriesRecord{
		ID:        seriesID,
		Title:     req.Title,
		Theme:     req.Theme,
		StartDate: startDate,
		Status:    "active",
	}
	passageRecords := make([]*secondary.PassageRecord, len(planned))
	for i, p := range planned {
		passageRecords[i] = &secondary.PassageRecord{
			SeriesID:  seriesID,
			Title:     p.Title,
			Reference: p.Reference,
			Date:      p.Date.Format(coresession.DateLayout),
		}
	}
	layout, err := s.seriesRepo.CreateLayout(ctx, seriesRecord, passageRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to create series: %w", err)
	}

	// 6. Return response
	passages := make([]*primary.Passage, len(passageRecords))
	for i, rec := range passageRecords {
		passages[i] = &primary.Passage{
			ID:          rec.ID,
			SeriesID:    seriesID,
			SeriesTitle: req.Title,
			Title:       rec.Title,
			Reference:   rec.Reference,
			Date:        rec.Date,
		}
	}
	return &primary.CreateSeriesResponse{
		SeriesID: seriesID,
		Series: &primary.Series{
			ID:        seriesID,
			Title:     req.Title,
			Theme:     req.Theme,
			StartDate: startDate,
			Status:    seriesRecord.Status,
			Passages:  passages,
		},
		SessionsCreated: layout.SessionsCreated,
		LinkedDates:     layout.LinkedDates,
		SkippedDates:    layout.SkippedDates,
	}, nil
}

// GetSeries retrieves a series with its passages.
func (s *SeriesServiceImpl) GetSeries(ctx context.Context, seriesID string) (*primary.Series, error) {
	record, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return nil, fmt.Errorf("series not found: %w", err)
	}

	passageRecords, err := s.passageRepo.ListBySeries(ctx, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list passages: %w", err)
	}

	passages := make([]*primary.Passage, len(passageRecords))
	for i, p := range passageRecords {
		passages[i] = s.recordToPassage(p)
	}

	return &primary.Series{
		ID:        record.ID,
		Title:     record.Title,
		Theme:     record.Theme,
		StartDate: record.StartDate,
		Status:    record.Status,
		Passages:  passages,
	}, nil
}

// ListSeries lists series with optional filters.
func (s *SeriesServiceImpl) ListSeries(ctx context.Context, filters primary.SeriesFilters) ([]*primary.Series, error) {
	records, err := s.seriesRepo.List(ctx, secondary.SeriesFilters{
		Status: filters.Status,
		Limit:  filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}

	result := make([]*primary.Series, len(records))
	for i, r := range records {
		result[i] = &primary.Series{
			ID:        r.ID,
			Title:     r.Title,
			Theme:     r.Theme,
			StartDate: r.StartDate,
			Status:    r.Status,
		}
	}
	return result, nil
}

// ListThemes lists the available theme packs.
func (s *SeriesServiceImpl) ListThemes(ctx context.Context) ([]string, error) {
	themes, err := s.packs.KnownThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}
	return themes, nil
}

// Helper methods

func (s *SeriesServiceImpl) recordToPassage(r *secondary.PassageRecord) *primary.Passage {
	return &primary.Passage{
		ID:          r.ID,
		SeriesID:    r.SeriesID,
		SeriesTitle: r.SeriesTitle,
		Title:       r.Title,
		Reference:   r.Reference,
		Date:        r.Date,
	}
}

// Ensure SeriesServiceImpl implements the interface
var _ primary.SeriesService = (*SeriesServiceImpl)(nil)
