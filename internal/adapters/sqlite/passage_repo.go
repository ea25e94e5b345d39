package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	coreseries "github.com/Elsie-Muhumuza/kambari/internal/core/series"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// PassageRepository implements secondary.PassageRepository with SQLite.
type PassageRepository struct {
	db *sql.DB
}

// NewPassageRepository creates a new SQLite passage repository.
func NewPassageRepository(db *sql.DB) *PassageRepository {
	return &PassageRepository{db: db}
}

const passageColumns = "p.id, p.series_id, se.title, p.title, p.reference, p.date, p.created_at"

const passageFrom = " FROM passages p JOIN series se ON se.id = p.series_id"

// Create persists a new passage.
// The passage record must have ID pre-populated by the service layer.
func (r *PassageRepository) Create(ctx context.Context, passage *secondary.PassageRecord) error {
	if passage.ID == "" {
		return fmt.Errorf("passage ID must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO passages (id, series_id, title, reference, date) VALUES (?, ?, ?, ?, ?)",
		passage.ID, passage.SeriesID, passage.Title, passage.Reference, passage.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to create passage: %w", err)
	}

	return nil
}

// GetByID retrieves a passage by its ID.
func (r *PassageRepository) GetByID(ctx context.Context, id string) (*secondary.PassageRecord, error) {
	record, err := r.scanPassage(r.db.QueryRowContext(ctx,
		"SELECT "+passageColumns+passageFrom+" WHERE p.id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("passage %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get passage: %w", err)
	}

	return record, nil
}

// GetByDate retrieves the passage studied on a date.
func (r *PassageRepository) GetByDate(ctx context.Context, date string) (*secondary.PassageRecord, error) {
	record, err := r.scanPassage(r.db.QueryRowContext(ctx,
		"SELECT "+passageColumns+passageFrom+" WHERE p.date = ?", date,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no passage on %s", date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get passage: %w", err)
	}

	return record, nil
}

// ListBySeries retrieves a series' passages in date order.
func (r *PassageRepository) ListBySeries(ctx context.Context, seriesID string) ([]*secondary.PassageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+passageColumns+passageFrom+" WHERE p.series_id = ? ORDER BY p.date", seriesID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list passages: %w", err)
	}
	defer rows.Close()

	var passages []*secondary.PassageRecord
	for rows.Next() {
		record, err := r.scanPassage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan passage: %w", err)
		}
		passages = append(passages, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list passages: %w", err)
	}

	return passages, nil
}

// NextAfter retrieves the first passage dated strictly after date.
func (r *PassageRepository) NextAfter(ctx context.Context, date string) (*secondary.PassageRecord, error) {
	record, err := r.scanPassage(r.db.QueryRowContext(ctx,
		"SELECT "+passageColumns+passageFrom+" WHERE p.date > ? ORDER BY p.date LIMIT 1", date,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no passage scheduled after %s", date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get passage: %w", err)
	}

	return record, nil
}

// GetNextID returns the next available passage ID.
// Uses core function for ID format to keep business logic in the functional core.
func (r *PassageRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM passages",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next passage ID: %w", err)
	}

	return coreseries.GeneratePassageID(maxID), nil
}

func (r *PassageRepository) scanPassage(row rowScanner) (*secondary.PassageRecord, error) {
	var createdAt time.Time

	record := &secondary.PassageRecord{}
	err := row.Scan(&record.ID, &record.SeriesID, &record.SeriesTitle, &record.Title, &record.Reference, &record.Date, &createdAt)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Ensure PassageRepository implements the interface
var _ secondary.PassageRepository = (*PassageRepository)(nil)
