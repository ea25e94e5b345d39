// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// MemberRepository defines the secondary port for member persistence.
type MemberRepository interface {
	// Create persists a new member with their eligibility set.
	Create(ctx context.Context, member *MemberRecord) error

	// GetByID retrieves a member by ID, eligibility included.
	GetByID(ctx context.Context, id string) (*MemberRecord, error)

	// List retrieves members matching the given filters.
	List(ctx context.Context, filters MemberFilters) ([]*MemberRecord, error)

	// SetActive flips a member's active flag. The eligibility set is
	// kept so reactivation restores it.
	SetActive(ctx context.Context, id string, active bool) error

	// ReplaceRoles replaces a member's eligibility set.
	ReplaceRoles(ctx context.Context, id string, roles []string) error

	// ListEligible retrieves the active members eligible for a role and
	// available on the given date, ordered by ID.
	ListEligible(ctx context.Context, role string, date string) ([]*MemberRecord, error)

	// PhoneExists reports whether any member already has this phone.
	PhoneExists(ctx context.Context, phone string) (bool, error)

	// EmailExists reports whether any member already has this email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// GetNextID returns the next available member ID.
	GetNextID(ctx context.Context) (string, error)
}

// MemberRecord represents a member as stored in persistence.
type MemberRecord struct {
	ID        string
	Name      string
	Phone     string // Empty string means null
	Email     string // Empty string means null
	Active    bool
	JoinedAt  string   // YYYY-MM-DD
	Roles     []string // eligibility set
	CreatedAt string
	UpdatedAt string
}

// MemberFilters contains filter options for querying members.
type MemberFilters struct {
	ActiveOnly bool
	Role       string // only members eligible for this role
	Limit      int
}

// AvailabilityRepository defines the secondary port for per-date
// availability overrides. Members are available by default.
type AvailabilityRepository interface {
	// Set inserts or updates one member's availability for a date.
	Set(ctx context.Context, record *AvailabilityRecord) error

	// ListForMember retrieves a member's overrides from a date onwards.
	ListForMember(ctx context.Context, memberID string, from string) ([]*AvailabilityRecord, error)

	// ListForDate retrieves every override recorded for a date.
	ListForDate(ctx context.Context, date string) ([]*AvailabilityRecord, error)
}

// AvailabilityRecord represents one availability override.
type AvailabilityRecord struct {
	MemberID  string
	Date      string // YYYY-MM-DD
	Available bool
	Reason    string // Empty string means null
	CreatedAt string
}

// SessionRepository defines the secondary port for session persistence.
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *SessionRecord) error

	// GetByID retrieves a session by its ID.
	GetByID(ctx context.Context, id string) (*SessionRecord, error)

	// GetByDate retrieves the session held on a date.
	GetByDate(ctx context.Context, date string) (*SessionRecord, error)

	// ExistsOnDate reports whether a session already holds this date.
	ExistsOnDate(ctx context.Context, date string) (bool, error)

	// List retrieves sessions matching the given filters.
	List(ctx context.Context, filters SessionFilters) ([]*SessionRecord, error)

	// Update updates an existing session.
	Update(ctx context.Context, session *SessionRecord) error

	// GetNextID returns the next available session ID.
	GetNextID(ctx context.Context) (string, error)
}

// SessionRecord represents a session as stored in persistence.
type SessionRecord struct {
	ID          string
	Date        string // YYYY-MM-DD
	PassageID   string // Empty string means null
	Status      string
	CreatedAt   string
	UpdatedAt   string
	CompletedAt string // Empty string means null
	CancelledAt string // Empty string means null
}

// SessionFilters contains filter options for querying sessions.
type SessionFilters struct {
	Status string
	From   string // inclusive YYYY-MM-DD lower bound
	To     string // inclusive YYYY-MM-DD upper bound
	Limit  int
}

// AssignmentRepository defines the secondary port for role assignments.
// Assignment rows are append-only; a session's set is written in one
// transaction or not at all.
type AssignmentRepository interface {
	// SaveSession persists a complete assignment set for one session.
	// Inside the transaction it re-validates that the session is still
	// planned and unassigned and that every member is still active and
	// eligible; on any mismatch nothing is written and a
	// roster.ConcurrentModificationError is returned.
	SaveSession(ctx context.Context, sessionID string, assignments []*AssignmentRecord) error

	// ListBySession retrieves a session's assignments with member names.
	ListBySession(ctx context.Context, sessionID string) ([]*AssignmentRecord, error)

	// ListByMember retrieves a member's most recent assignments.
	ListByMember(ctx context.Context, memberID string, limit int) ([]*AssignmentRecord, error)

	// ListForDateRange retrieves assignments for sessions in [from, to].
	ListForDateRange(ctx context.Context, from, to string) ([]*AssignmentRecord, error)

	// History retrieves the role holders of past non-cancelled sessions
	// strictly before the given date, oldest first, at most limit entries.
	History(ctx context.Context, before string, limit int) ([]*SessionHoldersRecord, error)
}

// AssignmentRecord represents one role assignment as stored in persistence.
type AssignmentRecord struct {
	SessionID   string
	SessionDate string // populated on reads
	MemberID    string
	MemberName  string // populated on reads
	Role        string
	AssignedAt  string
}

// SessionHoldersRecord groups one past session's role holders for
// fairness history.
type SessionHoldersRecord struct {
	SessionID string
	Date      string
	Holders   map[string]string // role -> member ID
}

// AttendanceRepository defines the secondary port for attendance records.
type AttendanceRepository interface {
	// RecordAndComplete persists the attendance rows for one session and
	// marks the session completed, in one transaction. Inside the
	// transaction it re-validates that the session is still planned; on
	// mismatch nothing is written and a
	// roster.ConcurrentModificationError is returned. completedAt is an
	// RFC3339 timestamp.
	RecordAndComplete(ctx context.Context, sessionID string, records []*AttendanceRecord, completedAt string) error

	// ListBySession retrieves a session's attendance with member names.
	ListBySession(ctx context.Context, sessionID string) ([]*AttendanceRecord, error)

	// ListForDateRange retrieves attendance for sessions in [from, to].
	ListForDateRange(ctx context.Context, from, to string) ([]*AttendanceRecord, error)

	// CountForMember returns how many sessions a member attended.
	CountForMember(ctx context.Context, memberID string) (int, error)
}

// AttendanceRecord represents one member's presence at one session.
type AttendanceRecord struct {
	SessionID   string
	SessionDate string // populated on reads
	MemberID    string
	MemberName  string // populated on reads
	Present     bool
	RecordedAt  string
}

// SeriesRepository defines the secondary port for series persistence.
type SeriesRepository interface {
	// Create persists a new series.
	Create(ctx context.Context, series *SeriesRecord) error

	// CreateLayout persists a series, its passages, and a planned session
	// per free meeting date in one transaction. Passage and session IDs
	// are assigned inside the transaction; each passage record's ID is
	// filled in on success. A date whose existing session has no passage
	// yet gets this passage linked to it; a date whose session already
	// studies something is reported as skipped. On any failure nothing
	// is written.
	CreateLayout(ctx context.Context, series *SeriesRecord, passages []*PassageRecord) (*SeriesLayoutResult, error)

	// GetByID retrieves a series by its ID.
	GetByID(ctx context.Context, id string) (*SeriesRecord, error)

	// List retrieves series matching the given filters.
	List(ctx context.Context, filters SeriesFilters) ([]*SeriesRecord, error)

	// GetNextID returns the next available series ID.
	GetNextID(ctx context.Context) (string, error)
}

// SeriesRecord represents a series as stored in persistence.
type SeriesRecord struct {
	ID        string
	Title     string
	Theme     string
	StartDate string // YYYY-MM-DD
	Status    string
	CreatedAt string
}

// SeriesLayoutResult reports what CreateLayout did per meeting date.
type SeriesLayoutResult struct {
	SessionsCreated int
	LinkedDates     []string // dates whose existing session got the passage
	SkippedDates    []string // dates whose existing session kept its own passage
}

// SeriesFilters contains filter options for querying series.
type SeriesFilters struct {
	Status string
	Limit  int
}

// PassageRepository defines the secondary port for passage persistence.
type PassageRepository interface {
	// Create persists a new passage.
	Create(ctx context.Context, passage *PassageRecord) error

	// GetByID retrieves a passage by its ID.
	GetByID(ctx context.Context, id string) (*PassageRecord, error)

	// GetByDate retrieves the passage studied on a date.
	GetByDate(ctx context.Context, date string) (*PassageRecord, error)

	// ListBySeries retrieves a series' passages in date order.
	ListBySeries(ctx context.Context, seriesID string) ([]*PassageRecord, error)

	// NextAfter retrieves the first passage dated strictly after date.
	NextAfter(ctx context.Context, date string) (*PassageRecord, error)

	// GetNextID returns the next available passage ID.
	GetNextID(ctx context.Context) (string, error)
}

// PassageRecord represents a passage as stored in persistence.
type PassageRecord struct {
	ID          string
	SeriesID    string
	SeriesTitle string // populated on reads
	Title       string
	Reference   string
	Date        string // YYYY-MM-DD
	CreatedAt   string
}

// MaterialRepository defines the secondary port for generated materials.
type MaterialRepository interface {
	// Create persists a generated guide for a passage.
	Create(ctx context.Context, material *MaterialRecord) error

	// Replace persists a regenerated guide, overwriting the passage's
	// existing one if any.
	Replace(ctx context.Context, material *MaterialRecord) error

	// GetByPassage retrieves the guide generated for a passage.
	GetByPassage(ctx context.Context, passageID string) (*MaterialRecord, error)

	// ExistsForPassage reports whether a passage already has a guide.
	ExistsForPassage(ctx context.Context, passageID string) (bool, error)

	// ListBySeries retrieves the guides of a series' passages.
	ListBySeries(ctx context.Context, seriesID string) ([]*MaterialRecord, error)

	// GetNextID returns the next available material ID.
	GetNextID(ctx context.Context) (string, error)
}

// MaterialRecord represents a generated guide as stored in persistence.
// Questions holds the guide JSON as written to the export file.
type MaterialRecord struct {
	ID        string
	PassageID string
	Questions string // guide JSON
	FilePath  string // Empty string means no export written
	CreatedAt string
}
