// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	coremember "github.com/Elsie-Muhumuza/kambari/internal/core/member"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// MemberRepository implements secondary.MemberRepository with SQLite.
type MemberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new SQLite member repository.
func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create persists a new member with their eligibility set.
// The member record must have ID and JoinedAt pre-populated by the service layer.
func (r *MemberRepository) Create(ctx context.Context, member *secondary.MemberRecord) error {
	if member.ID == "" {
		return fmt.Errorf("member ID must be pre-populated by service layer")
	}
	if member.JoinedAt == "" {
		return fmt.Errorf("member JoinedAt must be pre-populated by service layer")
	}

	var phone, email sql.NullString
	if member.Phone != "" {
		phone = sql.NullString{String: member.Phone, Valid: true}
	}
	if member.Email != "" {
		email = sql.NullString{String: member.Email, Valid: true}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO members (id, name, phone, email, active, joined_at) VALUES (?, ?, ?, ?, 1, ?)",
		member.ID, member.Name, phone, email, member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	for _, role := range member.Roles {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO member_roles (member_id, role) VALUES (?, ?)",
			member.ID, role,
		)
		if err != nil {
			return fmt.Errorf("failed to store eligibility: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit member: %w", err)
	}

	return nil
}

// GetByID retrieves a member by ID, eligibility included.
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*secondary.MemberRecord, error) {
	record, err := r.scanMember(r.db.QueryRowContext(ctx,
		"SELECT id, name, phone, email, active, joined_at, created_at, updated_at FROM members WHERE id = ?",
		id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	record.Roles, err = r.loadRoles(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// List retrieves members matching the given filters.
func (r *MemberRepository) List(ctx context.Context, filters secondary.MemberFilters) ([]*secondary.MemberRecord, error) {
	query := "SELECT id, name, phone, email, active, joined_at, created_at, updated_at FROM members"
	args := []any{}
	where := ""

	if filters.ActiveOnly {
		where = " WHERE active = 1"
	}

	if filters.Role != "" {
		if where == "" {
			where = " WHERE"
		} else {
			where += " AND"
		}
		where += " id IN (SELECT member_id FROM member_roles WHERE role = ?)"
		args = append(args, filters.Role)
	}

	query += where + " ORDER BY id"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*secondary.MemberRecord
	for rows.Next() {
		record, err := r.scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	for _, record := range members {
		record.Roles, err = r.loadRoles(ctx, record.ID)
		if err != nil {
			return nil, err
		}
	}

	return members, nil
}

// SetActive flips a member's active flag. The eligibility set is
// kept so reactivation restores it.
func (r *MemberRepository) SetActive(ctx context.Context, id string, active bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE members SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		active, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("member %s not found", id)
	}

	return nil
}

// ReplaceRoles replaces a member's eligibility set.
func (r *MemberRepository) ReplaceRoles(ctx context.Context, id string, roles []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM member_roles WHERE member_id = ?", id); err != nil {
		return fmt.Errorf("failed to clear eligibility: %w", err)
	}

	for _, role := range roles {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO member_roles (member_id, role) VALUES (?, ?)",
			id, role,
		)
		if err != nil {
			return fmt.Errorf("failed to store eligibility: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE members SET updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("member %s not found", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit eligibility: %w", err)
	}

	return nil
}

// ListEligible retrieves the active members eligible for a role and
// available on the given date, ordered by ID.
func (r *MemberRepository) ListEligible(ctx context.Context, role string, date string) ([]*secondary.MemberRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.name, m.phone, m.email, m.active, m.joined_at, m.created_at, m.updated_at
		FROM members m
		JOIN member_roles mr ON mr.member_id = m.id AND mr.role = ?
		WHERE m.active = 1
		  AND NOT EXISTS (
			SELECT 1 FROM member_availability ma
			WHERE ma.member_id = m.id AND ma.date = ? AND ma.available = 0
		  )
		ORDER BY m.id`,
		role, date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible members: %w", err)
	}
	defer rows.Close()

	var members []*secondary.MemberRecord
	for rows.Next() {
		record, err := r.scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list eligible members: %w", err)
	}

	return members, nil
}

// PhoneExists reports whether any member already has this phone.
func (r *MemberRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM members WHERE phone = ?", phone,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check phone: %w", err)
	}
	return count > 0, nil
}

// EmailExists reports whether any member already has this email.
func (r *MemberRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM members WHERE email = ?", email,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// GetNextID returns the next available member ID.
// Uses core function for ID format to keep business logic in the functional core.
func (r *MemberRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM members",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next member ID: %w", err)
	}

	return coremember.GenerateMemberID(maxID), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *MemberRepository) scanMember(row rowScanner) (*secondary.MemberRecord, error) {
	var (
		phone     sql.NullString
		email     sql.NullString
		active    bool
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.MemberRecord{}
	err := row.Scan(&record.ID, &record.Name, &phone, &email, &active, &record.JoinedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.Phone = phone.String
	record.Email = email.String
	record.Active = active
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

func (r *MemberRepository) loadRoles(ctx context.Context, memberID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT role FROM member_roles WHERE member_id = ? ORDER BY role", memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligibility: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("failed to scan eligibility: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load eligibility: %w", err)
	}

	return roles, nil
}

// Ensure MemberRepository implements the interface
var _ secondary.MemberRepository = (*MemberRepository)(nil)
