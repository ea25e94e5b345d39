package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	coresession "github.com/Elsie-Muhumuza/kambari/internal/core/session"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// SessionRepository implements secondary.SessionRepository with SQLite.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create persists a new session.
// The session record must have ID and Status pre-populated by the service layer.
func (r *SessionRepository) Create(ctx context.Context, session *secondary.SessionRecord) error {
	if session.ID == "" {
		return fmt.Errorf("session ID must be pre-populated by service layer")
	}
	if session.Status == "" {
		return fmt.Errorf("session Status must be pre-populated by service layer")
	}

	var passageID sql.NullString
	if session.PassageID != "" {
		passageID = sql.NullString{String: session.PassageID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sessions (id, date, passage_id, status) VALUES (?, ?, ?, ?)",
		session.ID, session.Date, passageID, session.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*secondary.SessionRecord, error) {
	record, err := r.scanSession(r.db.QueryRowContext(ctx,
		"SELECT id, date, passage_id, status, completed_at, cancelled_at, created_at, updated_at FROM sessions WHERE id = ?",
		id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return record, nil
}

// GetByDate retrieves the session held on a date.
func (r *SessionRepository) GetByDate(ctx context.Context, date string) (*secondary.SessionRecord, error) {
	record, err := r.scanSession(r.db.QueryRowContext(ctx,
		"SELECT id, date, passage_id, status, completed_at, cancelled_at, created_at, updated_at FROM sessions WHERE date = ?",
		date,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no session on %s", date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return record, nil
}

// ExistsOnDate reports whether a session already holds this date.
func (r *SessionRepository) ExistsOnDate(ctx context.Context, date string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sessions WHERE date = ?", date,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check date: %w", err)
	}
	return count > 0, nil
}

// List retrieves sessions matching the given filters.
func (r *SessionRepository) List(ctx context.Context, filters secondary.SessionFilters) ([]*secondary.SessionRecord, error) {
	query := "SELECT id, date, passage_id, status, completed_at, cancelled_at, created_at, updated_at FROM sessions"
	args := []any{}
	conditions := []string{}

	if filters.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filters.Status)
	}
	if filters.From != "" {
		conditions = append(conditions, "date >= ?")
		args = append(args, filters.From)
	}
	if filters.To != "" {
		conditions = append(conditions, "date <= ?")
		args = append(args, filters.To)
	}

	for i, condition := range conditions {
		if i == 0 {
			query += " WHERE " + condition
		} else {
			query += " AND " + condition
		}
	}

	query += " ORDER BY date"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*secondary.SessionRecord
	for rows.Next() {
		record, err := r.scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

// Update updates an existing session.
// The service layer is responsible for setting CompletedAt and CancelledAt
// when the status changes.
func (r *SessionRepository) Update(ctx context.Context, session *secondary.SessionRecord) error {
	query := "UPDATE sessions SET updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if session.Status != "" {
		query += ", status = ?"
		args = append(args, session.Status)
	}

	if session.PassageID != "" {
		query += ", passage_id = ?"
		args = append(args, session.PassageID)
	}

	if session.CompletedAt != "" {
		completedTime, err := time.Parse(time.RFC3339, session.CompletedAt)
		if err == nil {
			query += ", completed_at = ?"
			args = append(args, sql.NullTime{Time: completedTime, Valid: true})
		}
	}

	if session.CancelledAt != "" {
		cancelledTime, err := time.Parse(time.RFC3339, session.CancelledAt)
		if err == nil {
			query += ", cancelled_at = ?"
			args = append(args, sql.NullTime{Time: cancelledTime, Valid: true})
		}
	}

	query += " WHERE id = ?"
	args = append(args, session.ID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("session %s not found", session.ID)
	}

	return nil
}

// GetNextID returns the next available session ID.
// Uses core function for ID format to keep business logic in the functional core.
func (r *SessionRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM sessions",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next session ID: %w", err)
	}

	return coresession.GenerateSessionID(maxID), nil
}

func (r *SessionRepository) scanSession(row rowScanner) (*secondary.SessionRecord, error) {
	var (
		passageID   sql.NullString
		completedAt sql.NullTime
		cancelledAt sql.NullTime
		createdAt   time.Time
		updatedAt   time.Time
	)

	record := &secondary.SessionRecord{}
	err := row.Scan(&record.ID, &record.Date, &passageID, &record.Status, &completedAt, &cancelledAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.PassageID = passageID.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	if completedAt.Valid {
		record.CompletedAt = completedAt.Time.Format(time.RFC3339)
	}
	if cancelledAt.Valid {
		record.CancelledAt = cancelledAt.Time.Format(time.RFC3339)
	}

	return record, nil
}

// Ensure SessionRepository implements the interface
var _ secondary.SessionRepository = (*SessionRepository)(nil)
