package guides

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFileStore_WriteGuideCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "study_guides")
	store := NewFileStore(dir)

	path, err := store.WriteGuide(context.Background(), "luke_10_25-37.json", []byte(`{"passage":"x"}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if path != filepath.Join(dir, "luke_10_25-37.json") {
		t.Errorf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
	if string(data) != `{"passage":"x"}` {
		t.Errorf("unexpected content %s", data)
	}
}

func TestThemePacks_EnsureDefaultsAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "themes")
	packs := NewThemePacks(dir)
	ctx := context.Background()

	if err := packs.EnsureDefaults(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	themes, err := packs.KnownThemes(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(themes, []string{"miracles", "parables", "teachings"}) {
		t.Errorf("unexpected themes %v", themes)
	}

	passages, err := packs.LoadPack(ctx, "parables")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(passages) != 2 || passages[0].Reference != "Luke 10:25-37" {
		t.Errorf("unexpected pack content %+v", passages)
	}
}

func TestThemePacks_EnsureDefaultsKeepsUserEdits(t *testing.T) {
	dir := t.TempDir()
	custom := `[{"title": "My Study", "reference": "John 1:1-18"}]`
	if err := os.WriteFile(filepath.Join(dir, "parables.json"), []byte(custom), 0644); err != nil {
		t.Fatalf("failed to seed pack: %v", err)
	}

	packs := NewThemePacks(dir)
	ctx := context.Background()
	if err := packs.EnsureDefaults(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	passages, err := packs.LoadPack(ctx, "parables")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(passages) != 1 || passages[0].Title != "My Study" {
		t.Errorf("expected user pack to survive, got %+v", passages)
	}
}

func TestThemePacks_UnknownTheme(t *testing.T) {
	packs := NewThemePacks(t.TempDir())

	if _, err := packs.LoadPack(context.Background(), "epistles"); err == nil {
		t.Fatal("expected error for missing pack, got nil")
	}
}

func TestThemePacks_RejectsBadJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to seed pack: %v", err)
	}
	packs := NewThemePacks(dir)

	if _, err := packs.LoadPack(context.Background(), "broken"); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestThemePacks_KnownThemesEmptyDir(t *testing.T) {
	packs := NewThemePacks(filepath.Join(t.TempDir(), "missing"))

	themes, err := packs.KnownThemes(context.Background())
	if err != nil {
		t.Fatalf("expected no error for missing dir, got %v", err)
	}
	if len(themes) != 0 {
		t.Errorf("expected no themes, got %v", themes)
	}
}
