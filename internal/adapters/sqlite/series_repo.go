package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	coreseries "github.com/Elsie-Muhumuza/kambari/internal/core/series"
	coresession "github.com/Elsie-Muhumuza/kambari/internal/core/session"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// SeriesRepository implements secondary.SeriesRepository with SQLite.
type SeriesRepository struct {
	db *sql.DB
}

// NewSeriesRepository creates a new SQLite series repository.
func NewSeriesRepository(db *sql.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

// Create persists a new series.
// The series record must have ID and Status pre-populated by the service layer.
func (r *SeriesRepository) Create(ctx context.Context, series *secondary.SeriesRecord) error {
	if series.ID == "" {
		return fmt.Errorf("series ID must be pre-populated by service layer")
	}
	if series.Status == "" {
		return fmt.Errorf("series Status must be pre-populated by service layer")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO series (id, title, theme, start_date, status) VALUES (?, ?, ?, ?, ?)",
		series.ID, series.Title, series.Theme, series.StartDate, series.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create series: %w", err)
	}

	return nil
}

// CreateLayout persists a series, its passages, and a planned session per
// free meeting date in one transaction. IDs are assigned here so partial
// inserts cannot leak; a mid-layout failure rolls everything back.
func (r *SeriesRepository) CreateLayout(ctx context.Context, series *secondary.SeriesRecord, passages []*secondary.PassageRecord) (*secondary.SeriesLayoutResult, error) {
	if series.ID == "" {
		return nil, fmt.Errorf("series ID must be pre-populated by service layer")
	}
	if series.Status == "" {
		return nil, fmt.Errorf("series Status must be pre-populated by service layer")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO series (id, title, theme, start_date, status) VALUES (?, ?, ?, ?, ?)",
		series.ID, series.Title, series.Theme, series.StartDate, series.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create series: %w", err)
	}

	var maxPassage int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM passages",
	).Scan(&maxPassage)
	if err != nil {
		return nil, fmt.Errorf("failed to get next passage ID: %w", err)
	}
	var maxSession int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM sessions",
	).Scan(&maxSession)
	if err != nil {
		return nil, fmt.Errorf("failed to get next session ID: %w", err)
	}

	result := &secondary.SeriesLayoutResult{}
	for _, passage := range passages {
		passage.ID = coreseries.GeneratePassageID(maxPassage)
		maxPassage++

		_, err = tx.ExecContext(ctx,
			"INSERT INTO passages (id, series_id, title, reference, date) VALUES (?, ?, ?, ?, ?)",
			passage.ID, series.ID, passage.Title, passage.Reference, passage.Date,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create passage: %w", err)
		}

		var sessionID string
		var linked sql.NullString
		err = tx.QueryRowContext(ctx,
			"SELECT id, passage_id FROM sessions WHERE date = ?", passage.Date,
		).Scan(&sessionID, &linked)
		switch {
		case err == sql.ErrNoRows:
			newID := coresession.GenerateSessionID(maxSession)
			maxSession++
			_, err = tx.ExecContext(ctx,
				"INSERT INTO sessions (id, date, passage_id, status) VALUES (?, ?, ?, 'planned')",
				newID, passage.Date, passage.ID,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create session: %w", err)
			}
			result.SessionsCreated++
		case err != nil:
			return nil, fmt.Errorf("failed to check date: %w", err)
		case !linked.Valid || linked.String == "":
			_, err = tx.ExecContext(ctx,
				"UPDATE sessions SET passage_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
				passage.ID, sessionID,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to link passage: %w", err)
			}
			result.LinkedDates = append(result.LinkedDates, passage.Date)
		default:
			result.SkippedDates = append(result.SkippedDates, passage.Date)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit series: %w", err)
	}

	return result, nil
}

// GetByID retrieves a series by its ID.
func (r *SeriesRepository) GetByID(ctx context.Context, id string) (*secondary.SeriesRecord, error) {
	var createdAt time.Time

	record := &secondary.SeriesRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title, theme, start_date, status, created_at FROM series WHERE id = ?",
		id,
	).Scan(&record.ID, &record.Title, &record.Theme, &record.StartDate, &record.Status, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("series %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// List retrieves series matching the given filters.
func (r *SeriesRepository) List(ctx context.Context, filters secondary.SeriesFilters) ([]*secondary.SeriesRecord, error) {
	query := "SELECT id, title, theme, start_date, status, created_at FROM series"
	args := []any{}

	if filters.Status != "" {
		query += " WHERE status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY start_date"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer rows.Close()

	var result []*secondary.SeriesRecord
	for rows.Next() {
		var createdAt time.Time

		record := &secondary.SeriesRecord{}
		err := rows.Scan(&record.ID, &record.Title, &record.Theme, &record.StartDate, &record.Status, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan series: %w", err)
		}

		record.CreatedAt = createdAt.Format(time.RFC3339)

		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}

	return result, nil
}

// GetNextID returns the next available series ID.
// Uses core function for ID format to keep business logic in the functional core.
func (r *SeriesRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM series",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next series ID: %w", err)
	}

	return coreseries.GenerateSeriesID(maxID), nil
}

// Ensure SeriesRepository implements the interface
var _ secondary.SeriesRepository = (*SeriesRepository)(nil)
