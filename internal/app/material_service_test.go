package app

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Elsie-Muhumuza/kambari/internal/core/studyguide"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

func newTestMaterialService() (*MaterialServiceImpl, *mockMaterialRepository, *mockPassageRepository, *mockSeriesRepository, *mockTextGenerator, *mockGuideStore) {
	materialRepo := newMockMaterialRepository()
	passageRepo := newMockPassageRepository()
	seriesRepo := newMockSeriesRepository()
	generator := &mockTextGenerator{response: `["What stands out to you in this passage?", "How does it challenge you today?"]`}
	store := newMockGuideStore()
	service := NewMaterialService(materialRepo, passageRepo, seriesRepo, generator, store)
	return service, materialRepo, passageRepo, seriesRepo, generator, store
}

func seedTestPassage(passageRepo *mockPassageRepository, seriesRepo *mockSeriesRepository, id, date string) {
	if _, ok := seriesRepo.series["SER-001"]; !ok {
		seriesRepo.series["SER-001"] = &secondary.SeriesRecord{
			ID: "SER-001", Title: "Parables of Jesus", Theme: "parables", StartDate: date, Status: "active",
		}
	}
	passageRepo.passages[id] = &secondary.PassageRecord{
		ID:          id,
		SeriesID:    "SER-001",
		SeriesTitle: "Parables of Jesus",
		Title:       "The Prodigal Son",
		Reference:   "Luke 15:11-32",
		Date:        date,
	}
}

// ============================================================================
// GenerateForSeries Tests
// ============================================================================

func TestGenerateForSeries_GeneratesAndStores(t *testing.T) {
	service, materialRepo, passageRepo, seriesRepo, generator, store := newTestMaterialService()
	ctx := context.Background()

	seedTestPassage(passageRepo, seriesRepo, "PAS-001", "2026-09-03")

	resp, err := service.GenerateForSeries(ctx, primary.GenerateMaterialsRequest{SeriesID: "SER-001"})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.Guides) != 1 {
		t.Fatalf("expected 1 guide, got %d", len(resp.Guides))
	}
	guide := resp.Guides[0]
	if guide.Skipped || guide.Degraded {
		t.Errorf("expected a clean generation, got %+v", guide)
	}
	if guide.FilePath == "" {
		t.Error("expected an export path")
	}

	// One prompt per question section.
	if len(generator.prompts) != 3 {
		t.Errorf("expected 3 provider calls, got %d", len(generator.prompts))
	}

	record := materialRepo.materials["PAS-001"]
	if record == nil {
		t.Fatal("expected a material record for the passage")
	}
	var stored studyguide.Guide
	if err := json.Unmarshal([]byte(record.Questions), &stored); err != nil {
		t.Fatalf("stored questions are not valid guide JSON: %v", err)
	}
	if stored.Theme != "parables" {
		t.Errorf("expected the series theme on the guide, got %q", stored.Theme)
	}
	// The standing questions are always appended to reflection.
	if len(stored.Reflection) != 2+4 {
		t.Errorf("expected 2 generated + 4 standing reflection questions, got %d", len(stored.Reflection))
	}
	if len(store.files) != 1 {
		t.Errorf("expected 1 exported file, got %d", len(store.files))
	}
}

func TestGenerateForSeries_SkipsPassagesWithGuides(t *testing.T) {
	service, materialRepo, passageRepo, seriesRepo, generator, _ := newTestMaterialService()
	ctx := context.Background()

	seedTestPassage(passageRepo, seriesRepo, "PAS-001", "2026-09-03")
	materialRepo.materials["PAS-001"] = &secondary.MaterialRecord{
		ID: "MAT-001", PassageID: "PAS-001", Questions: "{}",
	}

	resp, err := service.GenerateForSeries(ctx, primary.GenerateMaterialsRequest{SeriesID: "SER-001"})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.Guides) != 1 || !resp.Guides[0].Skipped {
		t.Errorf("expected the passage to be skipped, got %+v", resp.Guides)
	}
	if len(generator.prompts) != 0 {
		t.Errorf("expected no provider calls for a skipped passage, got %d", len(generator.prompts))
	}
}

func TestGenerateForSeries_UnknownSeriesRejected(t *testing.T) {
	service, _, _, _, _, _ := newTestMaterialService()
	ctx := context.Background()

	_, err := service.GenerateForSeries(ctx, primary.GenerateMaterialsRequest{SeriesID: "SER-099"})

	if err == nil {
		t.Fatal("expected error for unknown series, got nil")
	}
}

func TestGenerateForSeries_ProviderFailureDegrades(t *testing.T) {
	service, materialRepo, passageRepo, seriesRepo, generator, _ := newTestMaterialService()
	ctx := context.Background()

	seedTestPassage(passageRepo, seriesRepo, "PAS-001", "2026-09-03")
	generator.err = &secondary.ExternalServiceError{Service: "gemini", Err: context.DeadlineExceeded}

	resp, err := service.GenerateForSeries(ctx, primary.GenerateMaterialsRequest{SeriesID: "SER-001"})

	if err != nil {
		t.Fatalf("expected generation to degrade, not fail: %v", err)
	}
	if !resp.Guides[0].Degraded {
		t.Error("expected the guide to be flagged degraded")
	}

	// The stored guide falls back to the built-in questions.
	var stored studyguide.Guide
	if err := json.Unmarshal([]byte(materialRepo.materials["PAS-001"].Questions), &stored); err != nil {
		t.Fatalf("stored questions are not valid guide JSON: %v", err)
	}
	if len(stored.Application) == 0 || len(stored.Discussion) == 0 {
		t.Error("expected fallback questions in every section")
	}
	if !strings.Contains(stored.Application[0], "Luke 15:11-32") {
		t.Errorf("expected fallback questions to reference the passage, got %q", stored.Application[0])
	}
}

// ============================================================================
// GenerateForPassage Tests
// ============================================================================

func TestGenerateForPassage_RegeneratesInPlace(t *testing.T) {
	service, materialRepo, passageRepo, seriesRepo, _, _ := newTestMaterialService()
	ctx := context.Background()

	seedTestPassage(passageRepo, seriesRepo, "PAS-001", "2026-09-03")
	materialRepo.materials["PAS-001"] = &secondary.MaterialRecord{
		ID: "MAT-001", PassageID: "PAS-001", Questions: "{}",
	}

	guide, err := service.GenerateForPassage(ctx, "PAS-001")

	if err != nil {
		t.Fatalf("expected regeneration to succeed, got %v", err)
	}
	if guide.Skipped {
		t.Error("expected regeneration, not a skip")
	}
	record := materialRepo.materials["PAS-001"]
	if record.ID != "MAT-001" {
		t.Errorf("expected the original material ID to be kept, got %s", record.ID)
	}
	if record.Questions == "{}" {
		t.Error("expected the stored questions to be replaced")
	}
}

func TestGenerateForPassage_UnknownPassageRejected(t *testing.T) {
	service, _, _, _, _, _ := newTestMaterialService()
	ctx := context.Background()

	if _, err := service.GenerateForPassage(ctx, "PAS-099"); err == nil {
		t.Fatal("expected error for unknown passage, got nil")
	}
}

// ============================================================================
// GetGuide Tests
// ============================================================================

func TestGetGuide_DecodesStoredQuestions(t *testing.T) {
	service, materialRepo, _, _, _, _ := newTestMaterialService()
	ctx := context.Background()

	stored := studyguide.Guide{
		Passage:     "The Prodigal Son",
		Reference:   "Luke 15:11-32",
		Theme:       "parables",
		Application: []string{"Apply it."},
		Discussion:  []string{"Discuss it."},
		Reflection:  []string{"Reflect on it."},
	}
	content, _ := json.Marshal(stored)
	materialRepo.materials["PAS-001"] = &secondary.MaterialRecord{
		ID: "MAT-001", PassageID: "PAS-001", Questions: string(content), FilePath: "/tmp/guides/x.json",
	}

	guide, err := service.GetGuide(ctx, "PAS-001")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if guide.Passage != "The Prodigal Son" || guide.Theme != "parables" {
		t.Errorf("guide header wrong: %+v", guide)
	}
	if len(guide.Discussion) != 1 || guide.Discussion[0] != "Discuss it." {
		t.Errorf("guide questions wrong: %+v", guide.Discussion)
	}
	if guide.FilePath != "/tmp/guides/x.json" {
		t.Errorf("expected the export path, got %s", guide.FilePath)
	}
}

func TestGetGuide_NoMaterial(t *testing.T) {
	service, _, _, _, _, _ := newTestMaterialService()
	ctx := context.Background()

	if _, err := service.GetGuide(ctx, "PAS-001"); err == nil {
		t.Fatal("expected error when no guide is stored, got nil")
	}
}
