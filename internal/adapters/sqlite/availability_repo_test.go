package sqlite_test

import (
	"context"
	"testing"

	"github.com/Elsie-Muhumuza/kambari/internal/adapters/sqlite"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

func TestAvailabilityRepository_SetAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewAvailabilityRepository(db)
	ctx := context.Background()

	seedMember(t, db, "MBR-001", "Grace", "0712000001", "prayer_lead")

	record := &secondary.AvailabilityRecord{
		MemberID:  "MBR-001",
		Date:      "2026-09-03",
		Available: false,
		Reason:    "travelling",
	}
	if err := repo.Set(ctx, record); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := repo.ListForMember(ctx, "MBR-001", "2026-09-01")
	if err != nil {
		t.Fatalf("ListForMember failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 override, got %d", len(got))
	}
	if got[0].Available {
		t.Error("expected member to be away")
	}
	if got[0].Reason != "travelling" {
		t.Errorf("expected reason travelling, got %s", got[0].Reason)
	}
}

func TestAvailabilityRepository_Set_Upserts(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewAvailabilityRepository(db)
	ctx := context.Background()

	seedMember(t, db, "MBR-001", "Grace", "0712000001", "prayer_lead")

	away := &secondary.AvailabilityRecord{MemberID: "MBR-001", Date: "2026-09-03", Available: false}
	if err := repo.Set(ctx, away); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	back := &secondary.AvailabilityRecord{MemberID: "MBR-001", Date: "2026-09-03", Available: true}
	if err := repo.Set(ctx, back); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := repo.ListForMember(ctx, "MBR-001", "2026-09-01")
	if err != nil {
		t.Fatalf("ListForMember failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 override, got %d", len(got))
	}
	if !got[0].Available {
		t.Error("expected second Set to overwrite the first")
	}
}

func TestAvailabilityRepository_ListForMember_FromBound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewAvailabilityRepository(db)
	ctx := context.Background()

	seedMember(t, db, "MBR-001", "Grace", "0712000001", "prayer_lead")

	for _, date := range []string{"2026-08-27", "2026-09-03", "2026-09-10"} {
		record := &secondary.AvailabilityRecord{MemberID: "MBR-001", Date: date, Available: false}
		if err := repo.Set(ctx, record); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	got, err := repo.ListForMember(ctx, "MBR-001", "2026-09-01")
	if err != nil {
		t.Fatalf("ListForMember failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 overrides from 2026-09-01, got %d", len(got))
	}
	if got[0].Date != "2026-09-03" || got[1].Date != "2026-09-10" {
		t.Errorf("expected date order, got %s then %s", got[0].Date, got[1].Date)
	}
}

func TestAvailabilityRepository_ListForDate(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewAvailabilityRepository(db)
	ctx := context.Background()

	seedMember(t, db, "MBR-001", "Grace", "0712000001", "prayer_lead")
	seedMember(t, db, "MBR-002", "David", "0712000002", "prayer_lead")

	one := &secondary.AvailabilityRecord{MemberID: "MBR-001", Date: "2026-09-03", Available: false}
	if err := repo.Set(ctx, one); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	other := &secondary.AvailabilityRecord{MemberID: "MBR-002", Date: "2026-09-10", Available: false}
	if err := repo.Set(ctx, other); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := repo.ListForDate(ctx, "2026-09-03")
	if err != nil {
		t.Fatalf("ListForDate failed: %v", err)
	}
	if len(got) != 1 || got[0].MemberID != "MBR-001" {
		t.Errorf("expected only MBR-001 override, got %v", got)
	}
}
