package app

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"time"

	"github.com/Elsie-Muhumuza/kambari/internal/core/roster"
	coresession "github.com/Elsie-Muhumuza/kambari/internal/core/session"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// RosterConfig carries the fairness settings the scheduler runs with.
type RosterConfig struct {
	Roles          []string // priority order, first role is hardest to fill
	Lookback       int      // sessions considered for scoring
	MinGap         int      // preferred sessions between two tenures of a role; 0 disables
	TieBreak       string   // by_id or seeded_random
	MeetingWeekday time.Weekday
}

// SessionServiceImpl implements the SessionService interface.
type SessionServiceImpl struct {
	sessionRepo    secondary.SessionRepository
	assignmentRepo secondary.AssignmentRepository
	memberRepo     secondary.MemberRepository
	passageRepo    secondary.PassageRepository
	config         RosterConfig
}

// NewSessionService creates a new SessionService with injected dependencies.
func NewSessionService(
	sessionRepo secondary.SessionRepository,
	assignmentRepo secondary.AssignmentRepository,
	memberRepo secondary.MemberRepository,
	passageRepo secondary.PassageRepository,
	config RosterConfig,
) *SessionServiceImpl {
	return &SessionServiceImpl{
		sessionRepo:    sessionRepo,
		assignmentRepo: assignmentRepo,
		memberRepo:     memberRepo,
		passageRepo:    passageRepo,
		config:         config,
	}
}

// CreateSession schedules a session on a date. At most one session per
// calendar date.
func (s *SessionServiceImpl) CreateSession(ctx context.Context, req primary.CreateSessionRequest) (*primary.CreateSessionResponse, error) {
	// 1. An empty date means the next meeting date
	date := req.Date
	if date == "" {
		date = coresession.NextMeetingDate(time.Now(), s.config.MeetingWeekday).Format(coresession.DateLayout)
	}

	// 2. Pre-fetch the date collision for the guard
	_, dateValid := coresession.ParseDate(date)
	dateTaken := false
	if dateValid {
		var err error
		dateTaken, err = s.sessionRepo.ExistsOnDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("failed to check date: %w", err)
		}
	}

	// 3. Check guard
	guardCtx := coresession.CreateContext{
		Date:      date,
		DateValid: dateValid,
		DateTaken: dateTaken,
	}
	if result := coresession.CanCreate(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	// 4. Link the scheduled passage, explicit request wins
	passageID := req.PassageID
	if passageID == "" {
		if passage, err := s.passageRepo.GetByDate(ctx, date); err == nil {
			passageID = passage.ID
		}
	} else {
		if _, err := s.passageRepo.GetByID(ctx, passageID); err != nil {
			return nil, fmt.Errorf("passage not found: %w", err)
		}
	}

	// 5. Generate ID using core business rule
	nextID, err := s.sessionRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	// 6. Create session record with pre-populated ID and initial status from core
	record := &secondary.SessionRecord{
		ID:        nextID,
		Date:      date,
		PassageID: passageID,
		Status:    string(coresession.InitialStatus()),
	}

	if err := s.sessionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// 7. Return response
	return &primary.CreateSessionResponse{
		SessionID: record.ID,
		Session:   s.recordToSession(ctx, record, nil),
	}, nil
}

// GetSession retrieves a session with its assignments.
func (s *SessionServiceImpl) GetSession(ctx context.Context, sessionID string) (*primary.Session, error) {
	record, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	assignments, err := s.assignmentRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return s.recordToSession(ctx, record, assignments), nil
}

// GetSessionByDate retrieves the session held on a date.
func (s *SessionServiceImpl) GetSessionByDate(ctx context.Context, date string) (*primary.Session, error) {
	record, err := s.sessionRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListBySession(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return s.recordToSession(ctx, record, assignments), nil
}

// ListSessions lists sessions with optional filters. Assignments are
// not attached here, GetSession loads them.
func (s *SessionServiceImpl) ListSessions(ctx context.Context, filters primary.SessionFilters) ([]*primary.Session, error) {
	records, err := s.sessionRepo.List(ctx, secondary.SessionFilters{
		Status: filters.Status,
		From:   filters.From,
		To:     filters.To,
		Limit:  filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*primary.Session, len(records))
	for i, r := range records {
		sessions[i] = s.recordToSession(ctx, r, nil)
	}
	return sessions, nil
}

// ComputeAssignments runs the fairness engine for a planned session and
// persists the complete plan atomically.
func (s *SessionServiceImpl) ComputeAssignments(ctx context.Context, req primary.ComputeAssignmentsRequest) (*primary.ComputeAssignmentsResponse, error) {
	// 1. Fetch session to check state
	record, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// 2. A session that already has a plan returns it unchanged
	existing, err := s.assignmentRepo.ListBySession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	if len(existing) > 0 {
		return &primary.ComputeAssignmentsResponse{
			SessionID:   req.SessionID,
			Assignments: s.toAssignments(existing),
			Existing:    true,
		}, nil
	}

	// 3. Check guard
	guardCtx := coresession.TransitionContext{
		SessionID: record.ID,
		Status:    coresession.Status(record.Status),
	}
	if result := coresession.CanAssign(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	// 4. Snapshot the candidate pools and the fairness history
	roleOrder := make([]roster.Role, len(s.config.Roles))
	eligible := make(map[roster.Role][]roster.Member, len(s.config.Roles))
	for i, role := range s.config.Roles {
		roleOrder[i] = roster.Role(role)

		candidates, err := s.memberRepo.ListEligible(ctx, role, record.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to list eligible members: %w", err)
		}
		if len(candidates) == 0 {
			return nil, &roster.NoEligibleMembersError{Role: roster.Role(role), Date: record.Date}
		}
		pool := make([]roster.Member, len(candidates))
		for j, c := range candidates {
			pool[j] = roster.Member{ID: c.ID, Name: c.Name}
		}
		eligible[roster.Role(role)] = pool
	}

	historyRecords, err := s.assignmentRepo.History(ctx, record.Date, s.config.Lookback)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	history := make([]roster.HistoryEntry, len(historyRecords))
	for i, h := range historyRecords {
		holders := make(map[roster.Role]string, len(h.Holders))
		for role, memberID := range h.Holders {
			holders[roster.Role(role)] = memberID
		}
		history[i] = roster.HistoryEntry{SessionID: h.SessionID, Holders: holders}
	}

	// 5. Run the planner (pure function)
	plan, err := roster.PlanAssignments(roster.PlanInput{
		SessionID: record.ID,
		RoleOrder: roleOrder,
		Eligible:  eligible,
		History:   history,
		Lookback:  s.config.Lookback,
		MinGap:    s.config.MinGap,
		TieBreak:  roster.TieBreak(s.config.TieBreak),
		Seed:      planSeed(record.ID, record.Date),
	})
	if err != nil {
		return nil, err
	}

	// 6. Persist atomically, the repository re-validates the snapshot
	records := make([]*secondary.AssignmentRecord, len(plan.Picks))
	for i, pick := range plan.Picks {
		records[i] = &secondary.AssignmentRecord{
			SessionID: record.ID,
			MemberID:  pick.Member.ID,
			Role:      string(pick.Role),
		}
	}
	if err := s.assignmentRepo.SaveSession(ctx, record.ID, records); err != nil {
		return nil, err
	}
	slog.Info("assigned roles", "session", record.ID, "date", record.Date, "roles", len(records))

	// 7. Return the stored plan
	stored, err := s.assignmentRepo.ListBySession(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return &primary.ComputeAssignmentsResponse{
		SessionID:   record.ID,
		Assignments: s.toAssignments(stored),
	}, nil
}

// CancelSession cancels a planned session. Its assignments are kept but
// stop counting toward fairness history.
func (s *SessionServiceImpl) CancelSession(ctx context.Context, sessionID string) error {
	// 1. Fetch session to check state
	record, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}

	// 2. Check guard
	guardCtx := coresession.TransitionContext{
		SessionID: record.ID,
		Status:    coresession.Status(record.Status),
	}
	if result := coresession.CanCancel(guardCtx); !result.Allowed {
		return result.Error()
	}

	// 3. Apply status transition using core business logic
	transition := coresession.ApplyStatusTransition(coresession.StatusCancelled, time.Now())
	record.Status = string(transition.NewStatus)
	if transition.CancelledAt != nil {
		record.CancelledAt = transition.CancelledAt.Format(time.RFC3339)
	}

	return s.sessionRepo.Update(ctx, record)
}

// NextMeetingDate returns the next configured meeting date strictly
// after today.
func (s *SessionServiceImpl) NextMeetingDate(ctx context.Context) (string, error) {
	return coresession.NextMeetingDate(time.Now(), s.config.MeetingWeekday).Format(coresession.DateLayout), nil
}

// Helper methods

func (s *SessionServiceImpl) recordToSession(ctx context.Context, r *secondary.SessionRecord, assignments []*secondary.AssignmentRecord) *primary.Session {
	session := &primary.Session{
		ID:          r.ID,
		Date:        r.Date,
		PassageID:   r.PassageID,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
		CancelledAt: r.CancelledAt,
		Assignments: s.toAssignments(assignments),
	}

	if r.PassageID != "" {
		if passage, err := s.passageRepo.GetByID(ctx, r.PassageID); err == nil {
			session.PassageTitle = passage.Title
			session.Reference = passage.Reference
		}
	}

	return session
}

func (s *SessionServiceImpl) toAssignments(records []*secondary.AssignmentRecord) []*primary.Assignment {
	assignments := make([]*primary.Assignment, len(records))
	for i, r := range records {
		assignments[i] = &primary.Assignment{
			Role:       r.Role,
			MemberID:   r.MemberID,
			MemberName: r.MemberName,
			AssignedAt: r.AssignedAt,
		}
	}
	return assignments
}

// planSeed derives a stable per-session seed so a seeded tie-break
// reproduces the same plan when an assignment run is retried.
func planSeed(sessionID, date string) int64 {
	h := fnv.New64a()
	h.Write([]byte(sessionID))
	h.Write([]byte(date))
	return int64(h.Sum64())
}

// Ensure SessionServiceImpl implements the interface
var _ primary.SessionService = (*SessionServiceImpl)(nil)
