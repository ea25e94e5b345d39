package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Elsie-Muhumuza/kambari/internal/core/roster"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// AssignmentRepository implements secondary.AssignmentRepository with SQLite.
type AssignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository creates a new SQLite assignment repository.
func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// SaveSession persists a complete assignment set for one session.
// The plan was computed from a snapshot outside this transaction, so the
// preconditions are re-checked here before anything is written. On any
// mismatch nothing is written and a roster.ConcurrentModificationError
// is returned so the caller can recompute.
func (r *AssignmentRepository) SaveSession(ctx context.Context, sessionID string, assignments []*secondary.AssignmentRecord) error {
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

	var existing int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM assignments WHERE session_id = ?", sessionID,
	).Scan(&existing)
	if err != nil {
		return fmt.Errorf("failed to check assignments: %w", err)
	}
	if existing > 0 {
		return &roster.ConcurrentModificationError{SessionID: sessionID, Reason: "assignments already exist"}
	}

	for _, assignment := range assignments {
		var active bool
		err = tx.QueryRowContext(ctx,
			"SELECT active FROM members WHERE id = ?", assignment.MemberID,
		).Scan(&active)
		if err == sql.ErrNoRows {
			return &roster.ConcurrentModificationError{SessionID: sessionID, Reason: fmt.Sprintf("member %s no longer exists", assignment.MemberID)}
		}
		if err != nil {
			return fmt.Errorf("failed to check member: %w", err)
		}
		if !active {
			return &roster.ConcurrentModificationError{SessionID: sessionID, Reason: fmt.Sprintf("member %s is no longer active", assignment.MemberID)}
		}

		var eligible int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM member_roles WHERE member_id = ? AND role = ?",
			assignment.MemberID, assignment.Role,
		).Scan(&eligible)
		if err != nil {
			return fmt.Errorf("failed to check eligibility: %w", err)
		}
		if eligible == 0 {
			return &roster.ConcurrentModificationError{SessionID: sessionID, Reason: fmt.Sprintf("member %s is no longer eligible for %s", assignment.MemberID, assignment.Role)}
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO assignments (session_id, member_id, role) VALUES (?, ?, ?)",
			sessionID, assignment.MemberID, assignment.Role,
		)
		if err != nil {
			return fmt.Errorf("failed to store assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}

	return nil
}

// ListBySession retrieves a session's assignments with member names.
func (r *AssignmentRepository) ListBySession(ctx context.Context, sessionID string) ([]*secondary.AssignmentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.session_id, s.date, a.member_id, m.name, a.role, a.assigned_at
		FROM assignments a
		JOIN sessions s ON s.id = a.session_id
		JOIN members m ON m.id = a.member_id
		WHERE a.session_id = ?
		ORDER BY a.role`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListByMember retrieves a member's most recent assignments.
func (r *AssignmentRepository) ListByMember(ctx context.Context, memberID string, limit int) ([]*secondary.AssignmentRecord, error) {
	query := `
		SELECT a.session_id, s.date, a.member_id, m.name, a.role, a.assigned_at
		FROM assignments a
		JOIN sessions s ON s.id = a.session_id
		JOIN members m ON m.id = a.member_id
		WHERE a.member_id = ?
		ORDER BY s.date DESC`
	args := []any{memberID}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListForDateRange retrieves assignments for sessions in [from, to].
func (r *AssignmentRepository) ListForDateRange(ctx context.Context, from, to string) ([]*secondary.AssignmentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.session_id, s.date, a.member_id, m.name, a.role, a.assigned_at
		FROM assignments a
		JOIN sessions s ON s.id = a.session_id
		JOIN members m ON m.id = a.member_id
		WHERE s.date >= ? AND s.date <= ?
		ORDER BY s.date, a.role`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// History retrieves the role holders of past non-cancelled sessions
// strictly before the given date, oldest first. A positive limit keeps
// only the most recent sessions of the range.
func (r *AssignmentRepository) History(ctx context.Context, before string, limit int) ([]*secondary.SessionHoldersRecord, error) {
	query := `
		SELECT s.id, s.date, a.role, a.member_id
		FROM sessions s
		JOIN assignments a ON a.session_id = s.id
		WHERE s.date < ? AND s.status != 'cancelled'
		ORDER BY s.date`
	args := []any{before}

	if limit > 0 {
		query = `
		SELECT s.id, s.date, a.role, a.member_id
		FROM (
			SELECT id, date FROM sessions
			WHERE date < ? AND status != 'cancelled'
			ORDER BY date DESC LIMIT ?
		) s
		JOIN assignments a ON a.session_id = s.id
		ORDER BY s.date`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var history []*secondary.SessionHoldersRecord
	bySession := map[string]*secondary.SessionHoldersRecord{}
	for rows.Next() {
		var sessionID, date, role, memberID string
		if err := rows.Scan(&sessionID, &date, &role, &memberID); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}

		record, ok := bySession[sessionID]
		if !ok {
			record = &secondary.SessionHoldersRecord{
				SessionID: sessionID,
				Date:      date,
				Holders:   map[string]string{},
			}
			bySession[sessionID] = record
			history = append(history, record)
		}
		record.Holders[role] = memberID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return history, nil
}

func (r *AssignmentRepository) collect(rows *sql.Rows) ([]*secondary.AssignmentRecord, error) {
	var assignments []*secondary.AssignmentRecord
	for rows.Next() {
		var assignedAt time.Time

		record := &secondary.AssignmentRecord{}
		err := rows.Scan(&record.SessionID, &record.SessionDate, &record.MemberID, &record.MemberName, &record.Role, &assignedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}

		record.AssignedAt = assignedAt.Format(time.RFC3339)

		assignments = append(assignments, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, nil
}

// Ensure AssignmentRepository implements the interface
var _ secondary.AssignmentRepository = (*AssignmentRepository)(nil)
