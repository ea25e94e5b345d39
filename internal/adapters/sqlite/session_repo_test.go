package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/Elsie-Muhumuza/kambari/internal/adapters/sqlite"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

func TestSessionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	session := &secondary.SessionRecord{
		ID:     "SES-001",
		Date:   "2026-09-03",
		Status: "planned",
	}

	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "SES-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Date != "2026-09-03" {
		t.Errorf("expected date 2026-09-03, got %s", got.Date)
	}
	if got.Status != "planned" {
		t.Errorf("expected status planned, got %s", got.Status)
	}
	if got.PassageID != "" {
		t.Errorf("expected empty passage, got %s", got.PassageID)
	}
	if got.CompletedAt != "" {
		t.Errorf("expected empty completed_at, got %s", got.CompletedAt)
	}
}

func TestSessionRepository_GetByDate(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	seedSession(t, db, "SES-001", "2026-09-03", "planned")

	got, err := repo.GetByDate(ctx, "2026-09-03")
	if err != nil {
		t.Fatalf("GetByDate failed: %v", err)
	}
	if got.ID != "SES-001" {
		t.Errorf("expected SES-001, got %s", got.ID)
	}

	if _, err := repo.GetByDate(ctx, "2026-09-10"); err == nil {
		t.Error("expected error for date without session")
	}
}

func TestSessionRepository_ExistsOnDate(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	seedSession(t, db, "SES-001", "2026-09-03", "planned")

	exists, err := repo.ExistsOnDate(ctx, "2026-09-03")
	if err != nil {
		t.Fatalf("ExistsOnDate failed: %v", err)
	}
	if !exists {
		t.Error("expected session to exist on 2026-09-03")
	}

	exists, err = repo.ExistsOnDate(ctx, "2026-09-10")
	if err != nil {
		t.Fatalf("ExistsOnDate failed: %v", err)
	}
	if exists {
		t.Error("expected no session on 2026-09-10")
	}
}

func TestSessionRepository_Create_DuplicateDate(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	seedSession(t, db, "SES-001", "2026-09-03", "planned")

	dup := &secondary.SessionRecord{ID: "SES-002", Date: "2026-09-03", Status: "planned"}
	if err := repo.Create(ctx, dup); err == nil {
		t.Error("expected error for duplicate date")
	}
}

func TestSessionRepository_List_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	seedSession(t, db, "SES-001", "2026-09-03", "completed")
	seedSession(t, db, "SES-002", "2026-09-10", "planned")
	seedSession(t, db, "SES-003", "2026-09-17", "cancelled")
	seedSession(t, db, "SES-004", "2026-09-24", "planned")

	all, err := repo.List(ctx, secondary.SessionFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 sessions, got %d", len(all))
	}
	if all[0].ID != "SES-001" || all[3].ID != "SES-004" {
		t.Errorf("expected date order, got %s..%s", all[0].ID, all[3].ID)
	}

	planned, err := repo.List(ctx, secondary.SessionFilters{Status: "planned"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(planned) != 2 {
		t.Errorf("expected 2 planned sessions, got %d", len(planned))
	}

	ranged, err := repo.List(ctx, secondary.SessionFilters{From: "2026-09-10", To: "2026-09-17"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ranged) != 2 {
		t.Errorf("expected 2 sessions in range, got %d", len(ranged))
	}

	limited, err := repo.List(ctx, secondary.SessionFilters{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 session with limit, got %d", len(limited))
	}
}

func TestSessionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	seedSession(t, db, "SES-001", "2026-09-03", "planned")

	completedAt := time.Date(2026, 9, 3, 21, 0, 0, 0, time.UTC).Format(time.RFC3339)
	update := &secondary.SessionRecord{
		ID:          "SES-001",
		Status:      "completed",
		CompletedAt: completedAt,
	}
	if err := repo.Update(ctx, update); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "SES-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "completed" {
		t.Errorf("expected status completed, got %s", got.Status)
	}
	if got.CompletedAt == "" {
		t.Error("expected completed_at to be set")
	}

	missing := &secondary.SessionRecord{ID: "SES-999", Status: "cancelled"}
	if err := repo.Update(ctx, missing); err == nil {
		t.Error("expected error for missing session")
	}
}

func TestSessionRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSessionRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "SES-001" {
		t.Errorf("expected SES-001, got %s", id)
	}

	seedSession(t, db, "SES-012", "2026-09-03", "planned")

	id, err = repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "SES-013" {
		t.Errorf("expected SES-013, got %s", id)
	}
}
