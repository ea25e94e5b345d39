package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// AvailabilityRepository implements secondary.AvailabilityRepository with SQLite.
type AvailabilityRepository struct {
	db *sql.DB
}

// NewAvailabilityRepository creates a new SQLite availability repository.
func NewAvailabilityRepository(db *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// Set inserts or updates one member's availability for a date.
func (r *AvailabilityRepository) Set(ctx context.Context, record *secondary.AvailabilityRecord) error {
	var reason sql.NullString
	if record.Reason != "" {
		reason = sql.NullString{String: record.Reason, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO member_availability (member_id, date, available, reason)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(member_id, date) DO UPDATE SET available = excluded.available, reason = excluded.reason`,
		record.MemberID, record.Date, record.Available, reason,
	)
	if err != nil {
		return fmt.Errorf("failed to set availability: %w", err)
	}

	return nil
}

// ListForMember retrieves a member's overrides from a date onwards.
func (r *AvailabilityRepository) ListForMember(ctx context.Context, memberID string, from string) ([]*secondary.AvailabilityRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT member_id, date, available, reason, created_at FROM member_availability WHERE member_id = ? AND date >= ? ORDER BY date",
		memberID, from,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListForDate retrieves every override recorded for a date.
func (r *AvailabilityRepository) ListForDate(ctx context.Context, date string) ([]*secondary.AvailabilityRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT member_id, date, available, reason, created_at FROM member_availability WHERE date = ? ORDER BY member_id",
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *AvailabilityRepository) collect(rows *sql.Rows) ([]*secondary.AvailabilityRecord, error) {
	var records []*secondary.AvailabilityRecord
	for rows.Next() {
		var (
			reason    sql.NullString
			createdAt time.Time
		)

		record := &secondary.AvailabilityRecord{}
		err := rows.Scan(&record.MemberID, &record.Date, &record.Available, &reason, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}

		record.Reason = reason.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}

	return records, nil
}

// Ensure AvailabilityRepository implements the interface
var _ secondary.AvailabilityRepository = (*AvailabilityRepository)(nil)
