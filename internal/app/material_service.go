package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Elsie-Muhumuza/kambari/internal/core/studyguide"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// MaterialServiceImpl implements the MaterialService interface.
type MaterialServiceImpl struct {
	materialRepo secondary.MaterialRepository
	passageRepo  secondary.PassageRepository
	seriesRepo   secondary.SeriesRepository
	generator    secondary.TextGenerator
	store        secondary.GuideStore
}

// NewMaterialService creates a new MaterialService with injected dependencies.
func NewMaterialService(
	materialRepo secondary.MaterialRepository,
	passageRepo secondary.PassageRepository,
	seriesRepo secondary.SeriesRepository,
	generator secondary.TextGenerator,
	store secondary.GuideStore,
) *MaterialServiceImpl {
	return &MaterialServiceImpl{
		materialRepo: materialRepo,
		passageRepo:  passageRepo,
		seriesRepo:   seriesRepo,
		generator:    generator,
		store:        store,
	}
}

// GenerateForSeries generates a guide for every passage of a series
// that has none yet. Provider failures degrade to the built-in
// questions instead of failing the run.
func (s *MaterialServiceImpl) GenerateForSeries(ctx context.Context, req primary.GenerateMaterialsRequest) (*primary.GenerateMaterialsResponse, error) {
	if _, err := s.seriesRepo.GetByID(ctx, req.SeriesID); err != nil {
		return nil, fmt.Errorf("series not found: %w", err)
	}

	passages, err := s.passageRepo.ListBySeries(ctx, req.SeriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list passages: %w", err)
	}

	guides := make([]*primary.GeneratedGuide, 0, len(passages))
	for _, passage := range passages {
		exists, err := s.materialRepo.ExistsForPassage(ctx, passage.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check material: %w", err)
		}
		if exists {
			guides = append(guides, &primary.GeneratedGuide{
				PassageID: passage.ID,
				Passage:   passage.Title,
				Reference: passage.Reference,
				Skipped:   true,
			})
			continue
		}

		guide, err := s.generateOne(ctx, passage, false)
		if err != nil {
			return nil, err
		}
		guides = append(guides, guide)
	}

	return &primary.GenerateMaterialsResponse{
		SeriesID: req.SeriesID,
		Guides:   guides,
	}, nil
}

// GenerateForPassage generates (or regenerates) one passage's guide.
func (s *MaterialServiceImpl) GenerateForPassage(ctx context.Context, passageID string) (*primary.GeneratedGuide, error) {
	passage, err := s.passageRepo.GetByID(ctx, passageID)
	if err != nil {
		return nil, fmt.Errorf("passage not found: %w", err)
	}
	return s.generateOne(ctx, passage, true)
}

// GetGuide retrieves a passage's stored guide.
func (s *MaterialServiceImpl) GetGuide(ctx context.Context, passageID string) (*primary.Guide, error) {
	record, err := s.materialRepo.GetByPassage(ctx, passageID)
	if err != nil {
		return nil, err
	}

	var guide studyguide.Guide
	if err := json.Unmarshal([]byte(record.Questions), &guide); err != nil {
		return nil, fmt.Errorf("failed to decode stored guide: %w", err)
	}

	return &primary.Guide{
		PassageID:   passageID,
		Passage:     guide.Passage,
		Reference:   guide.Reference,
		Theme:       guide.Theme,
		Application: guide.Application,
		Discussion:  guide.Discussion,
		Reflection:  guide.Reflection,
		FilePath:    record.FilePath,
	}, nil
}

// generateOne asks the provider for each question section, falls back
// to the built-in questions when a section comes back empty, and
// persists the composed guide.
func (s *MaterialServiceImpl) generateOne(ctx context.Context, passage *secondary.PassageRecord, replace bool) (*primary.GeneratedGuide, error) {
	theme := ""
	if series, err := s.seriesRepo.GetByID(ctx, passage.SeriesID); err == nil {
		theme = series.Theme
	}

	degraded := false
	generated := make(map[studyguide.QuestionType][]string)
	for _, t := range studyguide.QuestionTypes() {
		prompt, ok := studyguide.BuildPrompt(t, passage.Reference)
		if !ok {
			continue
		}

		raw, err := s.generator.Invoke(ctx, prompt)
		if err != nil {
			slog.Warn("question provider unavailable, using fallback questions",
				"passage", passage.ID, "section", string(t), "error", err)
			degraded = true
			continue
		}

		questions := studyguide.ParseQuestions(raw)
		if len(questions) == 0 {
			degraded = true
			continue
		}
		generated[t] = questions
	}

	guide := studyguide.Compose(passage.Title, passage.Reference, theme, generated)
	content, err := json.MarshalIndent(guide, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode guide: %w", err)
	}

	filePath, err := s.store.WriteGuide(ctx, studyguide.FileName(passage.Reference), content)
	if err != nil {
		return nil, fmt.Errorf("failed to write guide: %w", err)
	}

	materialID, err := s.materialRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate material ID: %w", err)
	}
	record := &secondary.MaterialRecord{
		ID:        materialID,
		PassageID: passage.ID,
		Questions: string(content),
		FilePath:  filePath,
	}
	if replace {
		err = s.materialRepo.Replace(ctx, record)
	} else {
		err = s.materialRepo.Create(ctx, record)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store material: %w", err)
	}

	return &primary.GeneratedGuide{
		PassageID: passage.ID,
		Passage:   passage.Title,
		Reference: passage.Reference,
		FilePath:  filePath,
		Degraded:  degraded,
	}, nil
}

// Ensure MaterialServiceImpl implements the interface
var _ primary.MaterialService = (*MaterialServiceImpl)(nil)
