package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Elsie-Muhumuza/kambari/internal/core/studyguide"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// MaterialRepository implements secondary.MaterialRepository with SQLite.
type MaterialRepository struct {
	db *sql.DB
}

// NewMaterialRepository creates a new SQLite material repository.
func NewMaterialRepository(db *sql.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Create persists a generated guide for a passage.
// The material record must have ID pre-populated by the service layer.
func (r *MaterialRepository) Create(ctx context.Context, material *secondary.MaterialRecord) error {
	if material.ID == "" {
		return fmt.Errorf("material ID must be pre-populated by service layer")
	}

	var filePath sql.NullString
	if material.FilePath != "" {
		filePath = sql.NullString{String: material.FilePath, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO materials (id, passage_id, questions, file_path) VALUES (?, ?, ?, ?)",
		material.ID, material.PassageID, material.Questions, filePath,
	)
	if err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}

	return nil
}

// Replace persists a regenerated guide, overwriting the passage's
// existing one if any. The stored material keeps its original ID.
func (r *MaterialRepository) Replace(ctx context.Context, material *secondary.MaterialRecord) error {
	if material.ID == "" {
		return fmt.Errorf("material ID must be pre-populated by service layer")
	}

	var filePath sql.NullString
	if material.FilePath != "" {
		filePath = sql.NullString{String: material.FilePath, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO materials (id, passage_id, questions, file_path)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(passage_id) DO UPDATE SET questions = excluded.questions, file_path = excluded.file_path, created_at = CURRENT_TIMESTAMP`,
		material.ID, material.PassageID, material.Questions, filePath,
	)
	if err != nil {
		return fmt.Errorf("failed to replace material: %w", err)
	}

	return nil
}

// GetByPassage retrieves the guide generated for a passage.
func (r *MaterialRepository) GetByPassage(ctx context.Context, passageID string) (*secondary.MaterialRecord, error) {
	record, err := r.scanMaterial(r.db.QueryRowContext(ctx,
		"SELECT id, passage_id, questions, file_path, created_at FROM materials WHERE passage_id = ?",
		passageID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no material for passage %s", passageID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	return record, nil
}

// ExistsForPassage reports whether a passage already has a guide.
func (r *MaterialRepository) ExistsForPassage(ctx context.Context, passageID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM materials WHERE passage_id = ?", passageID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check material: %w", err)
	}
	return count > 0, nil
}

// ListBySeries retrieves the guides of a series' passages.
func (r *MaterialRepository) ListBySeries(ctx context.Context, seriesID string) ([]*secondary.MaterialRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT mt.id, mt.passage_id, mt.questions, mt.file_path, mt.created_at
		FROM materials mt
		JOIN passages p ON p.id = mt.passage_id
		WHERE p.series_id = ?
		ORDER BY p.date`,
		seriesID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	defer rows.Close()

	var materials []*secondary.MaterialRecord
	for rows.Next() {
		record, err := r.scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	return materials, nil
}

// GetNextID returns the next available material ID.
// Uses core function for ID format to keep business logic in the functional core.
func (r *MaterialRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM materials",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next material ID: %w", err)
	}

	return studyguide.GenerateMaterialID(maxID), nil
}

func (r *MaterialRepository) scanMaterial(row rowScanner) (*secondary.MaterialRecord, error) {
	var (
		filePath  sql.NullString
		createdAt time.Time
	)

	record := &secondary.MaterialRecord{}
	err := row.Scan(&record.ID, &record.PassageID, &record.Questions, &filePath, &createdAt)
	if err != nil {
		return nil, err
	}

	record.FilePath = filePath.String
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure MaterialRepository implements the interface
var _ secondary.MaterialRepository = (*MaterialRepository)(nil)
