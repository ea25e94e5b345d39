package db

// SchemaSQL is the complete schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the single source of truth for the database schema. Tests use it
// via GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so any
// repository code referencing a column that does not exist here fails
// immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Members (the group roster)
CREATE TABLE IF NOT EXISTS members (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	phone TEXT UNIQUE,
	email TEXT UNIQUE,
	active INTEGER NOT NULL DEFAULT 1,
	joined_at TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Member eligibility (which roles each member can hold).
-- Role names are configuration-driven, so no CHECK constraint here.
CREATE TABLE IF NOT EXISTS member_roles (
	member_id TEXT NOT NULL,
	role TEXT NOT NULL,
	PRIMARY KEY (member_id, role),
	FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
);

-- Per-date availability overrides. Absence of a row means available.
CREATE TABLE IF NOT EXISTS member_availability (
	member_id TEXT NOT NULL,
	date TEXT NOT NULL,
	available INTEGER NOT NULL DEFAULT 0,
	reason TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (member_id, date),
	FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
);

-- Study series (an ordered run of passages under one theme)
CREATE TABLE IF NOT EXISTS series (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	theme TEXT NOT NULL,
	start_date TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('active', 'archived')) DEFAULT 'active',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Passages (one scheduled reading within a series)
CREATE TABLE IF NOT EXISTS passages (
	id TEXT PRIMARY KEY,
	series_id TEXT NOT NULL,
	title TEXT NOT NULL,
	reference TEXT NOT NULL,
	date TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (series_id) REFERENCES series(id) ON DELETE CASCADE
);

-- Sessions (one meeting of the group)
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL UNIQUE,
	passage_id TEXT,
	status TEXT NOT NULL CHECK(status IN ('planned', 'completed', 'cancelled')) DEFAULT 'planned',
	completed_at DATETIME,
	cancelled_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (passage_id) REFERENCES passages(id) ON DELETE SET NULL
);

-- Role assignments. One holder per role per session, and no member
-- holds two roles in the same session.
CREATE TABLE IF NOT EXISTS assignments (
	session_id TEXT NOT NULL,
	member_id TEXT NOT NULL,
	role TEXT NOT NULL,
	assigned_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (session_id, role),
	UNIQUE (session_id, member_id),
	FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE,
	FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
);

-- Attendance (who showed up to a session)
CREATE TABLE IF NOT EXISTS attendance (
	session_id TEXT NOT NULL,
	member_id TEXT NOT NULL,
	present INTEGER NOT NULL,
	recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (session_id, member_id),
	FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE,
	FOREIGN KEY (member_id) REFERENCES members(id) ON DELETE CASCADE
);

-- Generated study materials, one guide per passage
CREATE TABLE IF NOT EXISTS materials (
	id TEXT PRIMARY KEY,
	passage_id TEXT NOT NULL UNIQUE,
	questions TEXT NOT NULL,
	file_path TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (passage_id) REFERENCES passages(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_members_active ON members(active);
CREATE INDEX IF NOT EXISTS idx_passages_series ON passages(series_id);
CREATE INDEX IF NOT EXISTS idx_passages_date ON passages(date);
CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);
CREATE INDEX IF NOT EXISTS idx_assignments_member ON assignments(member_id);
CREATE INDEX IF NOT EXISTS idx_attendance_member ON attendance(member_id);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Fresh install - create the schema directly and mark every
		// migration as applied so they never run against it.
		_, err = db.Exec(SchemaSQL)
		if err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for _, migration := range migrations {
			_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
			if err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
