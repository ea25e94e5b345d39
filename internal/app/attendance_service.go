package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	coresession "github.com/Elsie-Muhumuza/kambari/internal/core/session"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// AttendanceServiceImpl implements the AttendanceService interface.
type AttendanceServiceImpl struct {
	attendanceRepo secondary.AttendanceRepository
	sessionRepo    secondary.SessionRepository
	assignmentRepo secondary.AssignmentRepository
	memberRepo     secondary.MemberRepository
}

// NewAttendanceService creates a new AttendanceService with injected dependencies.
func NewAttendanceService(
	attendanceRepo secondary.AttendanceRepository,
	sessionRepo secondary.SessionRepository,
	assignmentRepo secondary.AssignmentRepository,
	memberRepo secondary.MemberRepository,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		sessionRepo:    sessionRepo,
		assignmentRepo: assignmentRepo,
		memberRepo:     memberRepo,
	}
}

// RecordAttendance stores who attended a planned session and marks it
// completed. Recording twice is rejected.
func (s *AttendanceServiceImpl) RecordAttendance(ctx context.Context, req primary.RecordAttendanceRequest) (*primary.RecordAttendanceResponse, error) {
	// 1. Fetch session to check state
	record, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// 2. One attendance take per session
	existing, err := s.attendanceRepo.ListBySession(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("attendance already recorded for session %s", req.SessionID)
	}

	// 3. Check guard, recording completes the session
	guardCtx := coresession.TransitionContext{
		SessionID: record.ID,
		Status:    coresession.Status(record.Status),
	}
	if result := coresession.CanComplete(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	// 4. Every active member gets a row, listed members are present
	active, err := s.memberRepo.List(ctx, secondary.MemberFilters{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	present := make(map[string]bool, len(req.PresentMemberIDs))
	for _, memberID := range req.PresentMemberIDs {
		present[memberID] = true
	}

	rows := make([]*secondary.AttendanceRecord, 0, len(active))
	covered := make(map[string]bool, len(active))
	for _, member := range active {
		rows = append(rows, &secondary.AttendanceRecord{
			SessionID: record.ID,
			MemberID:  member.ID,
			Present:   present[member.ID],
		})
		covered[member.ID] = true
	}

	// A visitor from the inactive list still counts when named
	for _, memberID := range req.PresentMemberIDs {
		if covered[memberID] {
			continue
		}
		if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
			return nil, fmt.Errorf("member not found: %w", err)
		}
		rows = append(rows, &secondary.AttendanceRecord{
			SessionID: record.ID,
			MemberID:  memberID,
			Present:   true,
		})
		covered[memberID] = true
	}

	// 5. Apply status transition using core business logic, then persist
	// the rows and the completion in one transaction
	transition := coresession.ApplyStatusTransition(coresession.StatusCompleted, time.Now())
	completedAt := ""
	if transition.CompletedAt != nil {
		completedAt = transition.CompletedAt.Format(time.RFC3339)
	}
	if err := s.attendanceRepo.RecordAndComplete(ctx, record.ID, rows, completedAt); err != nil {
		return nil, fmt.Errorf("failed to record attendance: %w", err)
	}
	slog.Info("session completed", "session", record.ID, "date", record.Date, "present", len(req.PresentMemberIDs))

	// 6. Flag role holders who did not show
	assignments, err := s.assignmentRepo.ListBySession(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	var absent []*primary.Assignment
	for _, assignment := range assignments {
		if present[assignment.MemberID] {
			continue
		}
		absent = append(absent, &primary.Assignment{
			Role:       assignment.Role,
			MemberID:   assignment.MemberID,
			MemberName: assignment.MemberName,
			AssignedAt: assignment.AssignedAt,
		})
	}

	return &primary.RecordAttendanceResponse{
		SessionID:       record.ID,
		Recorded:        len(rows),
		AbsentAssignees: absent,
	}, nil
}

// GetSessionAttendance retrieves the attendance of one session.
func (s *AttendanceServiceImpl) GetSessionAttendance(ctx context.Context, sessionID string) ([]*primary.AttendanceEntry, error) {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	records, err := s.attendanceRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	entries := make([]*primary.AttendanceEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.AttendanceEntry{
			SessionID:  r.SessionID,
			MemberID:   r.MemberID,
			MemberName: r.MemberName,
			Present:    r.Present,
		}
	}
	return entries, nil
}

// MemberStats returns one member's attendance count.
func (s *AttendanceServiceImpl) MemberStats(ctx context.Context, memberID string) (*primary.MemberAttendanceStats, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, fmt.Errorf("member not found: %w", err)
	}

	count, err := s.attendanceRepo.CountForMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}

	return &primary.MemberAttendanceStats{
		MemberID:        memberID,
		SessionsPresent: count,
	}, nil
}

// Ensure AttendanceServiceImpl implements the interface
var _ primary.AttendanceService = (*AttendanceServiceImpl)(nil)
