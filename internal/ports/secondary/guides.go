// Package secondary defines the secondary ports (driven adapters) for the application.
// This file defines the file-based storage ports for guides, theme
// packs and minutes.
package secondary

import "context"

// GuideStore defines the secondary port for study-guide exports.
type GuideStore interface {
	// WriteGuide writes one guide export and returns its path.
	WriteGuide(ctx context.Context, fileName string, content []byte) (string, error)
}

// ThemePassage is one passage of a theme pack.
type ThemePassage struct {
	Title     string
	Reference string
}

// ThemePackProvider defines the secondary port for theme packs, the
// editable passage lists a series draws from.
type ThemePackProvider interface {
	// LoadPack returns the passages of one theme pack.
	LoadPack(ctx context.Context, theme string) ([]ThemePassage, error)

	// KnownThemes lists the available pack names.
	KnownThemes(ctx context.Context) ([]string, error)

	// EnsureDefaults writes the built-in packs for any that are missing.
	EnsureDefaults(ctx context.Context) error
}

// MinutesWriter defines the secondary port for meeting-minutes exports.
type MinutesWriter interface {
	// WriteMinutes writes one minutes document and returns its path.
	WriteMinutes(ctx context.Context, fileName string, content []byte) (string, error)
}
