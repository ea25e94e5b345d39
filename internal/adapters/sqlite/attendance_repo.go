package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Elsie-Muhumuza/kambari/internal/core/roster"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// AttendanceRepository implements secondary.AttendanceRepository with SQLite.
type AttendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new SQLite attendance repository.
func NewAttendanceRepository(db *sql.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// RecordAndComplete persists the attendance rows for one session and
// marks the session completed in the same transaction. The session's
// status is re-checked here so a concurrent completion or cancellation
// rolls everything back instead of stranding the attendance.
func (r *AttendanceRepository) RecordAndComplete(ctx context.Context, sessionID string, records []*secondary.AttendanceRecord, completedAt string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		"SELECT status FROM sessions WHERE id = ?", sessionID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return &roster.ConcurrentModificationError{SessionID: sessionID, Reason: "session no longer exists"}
	}
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if status != "planned" {
		return &roster.ConcurrentModificationError{SessionID: sessionID, Reason: fmt.Sprintf("session is %s", status)}
	}

	for _, record := range records {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO attendance (session_id, member_id, present) VALUES (?, ?, ?)",
			sessionID, record.MemberID, record.Present,
		)
		if err != nil {
			return fmt.Errorf("failed to record attendance: %w", err)
		}
	}

	var completed sql.NullTime
	if completedAt != "" {
		t, err := time.Parse(time.RFC3339, completedAt)
		if err != nil {
			return fmt.Errorf("invalid completed timestamp: %w", err)
		}
		completed = sql.NullTime{Time: t, Valid: true}
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE sessions SET status = 'completed', completed_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		completed, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit attendance: %w", err)
	}

	return nil
}

// ListBySession retrieves a session's attendance with member names.
func (r *AttendanceRepository) ListBySession(ctx context.Context, sessionID string) ([]*secondary.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT at.session_id, s.date, at.member_id, m.name, at.present, at.recorded_at
		FROM attendance at
		JOIN sessions s ON s.id = at.session_id
		JOIN members m ON m.id = at.member_id
		WHERE at.session_id = ?
		ORDER BY at.member_id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListForDateRange retrieves attendance for sessions in [from, to].
func (r *AttendanceRepository) ListForDateRange(ctx context.Context, from, to string) ([]*secondary.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT at.session_id, s.date, at.member_id, m.name, at.present, at.recorded_at
		FROM attendance at
		JOIN sessions s ON s.id = at.session_id
		JOIN members m ON m.id = at.member_id
		WHERE s.date >= ? AND s.date <= ?
		ORDER BY s.date, at.member_id`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// CountForMember returns how many sessions a member attended.
func (r *AttendanceRepository) CountForMember(ctx context.Context, memberID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM attendance WHERE member_id = ? AND present = 1",
		memberID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	return count, nil
}

func (r *AttendanceRepository) collect(rows *sql.Rows) ([]*secondary.AttendanceRecord, error) {
	var records []*secondary.AttendanceRecord
	for rows.Next() {
		var recordedAt time.Time

		record := &secondary.AttendanceRecord{}
		err := rows.Scan(&record.SessionID, &record.SessionDate, &record.MemberID, &record.MemberName, &record.Present, &recordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}

		record.RecordedAt = recordedAt.Format(time.RFC3339)

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return records, nil
}

// Ensure AttendanceRepository implements the interface
var _ secondary.AttendanceRepository = (*AttendanceRepository)(nil)
