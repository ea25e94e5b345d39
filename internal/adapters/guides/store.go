// Package guides implements the file-based storage ports: study-guide
// exports, meeting minutes and the editable theme packs a series draws
// its passages from.
package guides

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// FileStore writes guide and minutes exports under one directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is
// created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// WriteGuide writes one guide export and returns its path.
func (s *FileStore) WriteGuide(ctx context.Context, fileName string, content []byte) (string, error) {
	return s.write(fileName, content)
}

// WriteMinutes writes one minutes document and returns its path.
func (s *FileStore) WriteMinutes(ctx context.Context, fileName string, content []byte) (string, error) {
	return s.write(fileName, content)
}

func (s *FileStore) write(fileName string, content []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", fileName, err)
	}
	return path, nil
}

// themePassage is the theme pack file format: a JSON array of
// title/reference pairs, kept editable by hand.
type themePassage struct {
	Title     string `json:"title"`
	Reference string `json:"reference"`
}

// defaultPacks are written on first run so users have packs to edit.
var defaultPacks = map[string][]themePassage{
	"parables": {
		{Title: "The Good Samaritan", Reference: "Luke 10:25-37"},
		{Title: "The Prodigal Son", Reference: "Luke 15:11-32"},
	},
	"miracles": {
		{Title: "Jesus Feeds the 5000", Reference: "John 6:1-15"},
		{Title: "Jesus Walks on Water", Reference: "Matthew 14:22-33"},
	},
	"teachings": {
		{Title: "The Beatitudes", Reference: "Matthew 5:1-12"},
		{Title: "The Lord's Prayer", Reference: "Matthew 6:9-13"},
	},
}

// ThemePacks loads theme packs from JSON files in one directory.
type ThemePacks struct {
	dir string
}

// NewThemePacks creates a ThemePacks provider rooted at dir.
func NewThemePacks(dir string) *ThemePacks {
	return &ThemePacks{dir: dir}
}

// EnsureDefaults writes the built-in packs for any that are missing.
// Existing files are never touched, user edits survive.
func (p *ThemePacks) EnsureDefaults(ctx context.Context) error {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return fmt.Errorf("failed to create themes dir: %w", err)
	}
	for theme, passages := range defaultPacks {
		path := p.packPath(theme)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		data, err := json.MarshalIndent(passages, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal %s pack: %w", theme, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s pack: %w", theme, err)
		}
	}
	return nil
}

// LoadPack returns the passages of one theme pack.
func (p *ThemePacks) LoadPack(ctx context.Context, theme string) ([]secondary.ThemePassage, error) {
	data, err := os.ReadFile(p.packPath(theme))
	if err != nil {
		return nil, fmt.Errorf("unknown theme %q: %w", theme, err)
	}

	var raw []themePassage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("theme pack %q is not valid JSON: %w", theme, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("theme pack %q is empty", theme)
	}

	passages := make([]secondary.ThemePassage, len(raw))
	for i, entry := range raw {
		passages[i] = secondary.ThemePassage{Title: entry.Title, Reference: entry.Reference}
	}
	return passages, nil
}

// KnownThemes lists the available pack names, sorted.
func (p *ThemePacks) KnownThemes(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read themes dir: %w", err)
	}

	var themes []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		themes = append(themes, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(themes)
	return themes, nil
}

func (p *ThemePacks) packPath(theme string) string {
	return filepath.Join(p.dir, theme+".json")
}

// Ensure the adapters implement their ports
var (
	_ secondary.GuideStore        = (*FileStore)(nil)
	_ secondary.MinutesWriter     = (*FileStore)(nil)
	_ secondary.ThemePackProvider = (*ThemePacks)(nil)
)
