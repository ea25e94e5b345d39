// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema instead of hardcoded CREATE TABLE statements.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Elsie-Muhumuza/kambari/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedMember inserts a test member with the given eligibility and returns the ID.
func seedMember(t *testing.T, db *sql.DB, id, name, phone string, roles ...string) string {
	t.Helper()
	if id == "" {
		id = "MBR-001"
	}
	if name == "" {
		name = "Test Member"
	}
	if phone == "" {
		phone = "0712000001"
	}
	_, err := db.Exec("INSERT INTO members (id, name, phone, active, joined_at) VALUES (?, ?, ?, 1, '2026-01-01')", id, name, phone)
	if err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	for _, role := range roles {
		if _, err := db.Exec("INSERT INTO member_roles (member_id, role) VALUES (?, ?)", id, role); err != nil {
			t.Fatalf("failed to seed eligibility: %v", err)
		}
	}
	return id
}

// seedSession inserts a test session and returns its ID.
func seedSession(t *testing.T, db *sql.DB, id, date, status string) string {
	t.Helper()
	if id == "" {
		id = "SES-001"
	}
	if date == "" {
		date = "2026-09-03"
	}
	if status == "" {
		status = "planned"
	}
	_, err := db.Exec("INSERT INTO sessions (id, date, status) VALUES (?, ?, ?)", id, date, status)
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return id
}

// seedSeries inserts a test series and returns its ID.
func seedSeries(t *testing.T, db *sql.DB, id, title string) string {
	t.Helper()
	if id == "" {
		id = "SER-001"
	}
	if title == "" {
		title = "Parables of Jesus"
	}
	_, err := db.Exec("INSERT INTO series (id, title, theme, start_date, status) VALUES (?, ?, 'parables', '2026-09-03', 'active')", id, title)
	if err != nil {
		t.Fatalf("failed to seed series: %v", err)
	}
	return id
}

// seedPassage inserts a test passage and returns its ID.
func seedPassage(t *testing.T, db *sql.DB, id, seriesID, reference, date string) string {
	t.Helper()
	if id == "" {
		id = "PAS-001"
	}
	if seriesID == "" {
		seriesID = "SER-001"
	}
	if reference == "" {
		reference = "Luke 15:11-32"
	}
	if date == "" {
		date = "2026-09-03"
	}
	_, err := db.Exec("INSERT INTO passages (id, series_id, title, reference, date) VALUES (?, ?, 'The Prodigal Son', ?, ?)", id, seriesID, reference, date)
	if err != nil {
		t.Fatalf("failed to seed passage: %v", err)
	}
	return id
}

// seedAssignment inserts one assignment row.
func seedAssignment(t *testing.T, db *sql.DB, sessionID, memberID, role string) {
	t.Helper()
	_, err := db.Exec("INSERT INTO assignments (session_id, member_id, role) VALUES (?, ?, ?)", sessionID, memberID, role)
	if err != nil {
		t.Fatalf("failed to seed assignment: %v", err)
	}
}
