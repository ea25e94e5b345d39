package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Elsie-Muhumuza/kambari/internal/core/roster"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
)

// mockSessionService implements primary.SessionService for testing
type mockSessionService struct {
	createSessionFn      func(ctx context.Context, req primary.CreateSessionRequest) (*primary.CreateSessionResponse, error)
	getSessionFn         func(ctx context.Context, sessionID string) (*primary.Session, error)
	computeAssignmentsFn func(ctx context.Context, req primary.ComputeAssignmentsRequest) (*primary.ComputeAssignmentsResponse, error)
	cancelSessionFn      func(ctx context.Context, sessionID string) error
}

func (m *mockSessionService) CreateSession(ctx context.Context, req primary.CreateSessionRequest) (*primary.CreateSessionResponse, error) {
	if m.createSessionFn != nil {
		return m.createSessionFn(ctx, req)
	}
	return &primary.CreateSessionResponse{
		SessionID: "SES-001",
		Session:   &primary.Session{ID: "SES-001", Date: req.Date, Status: "planned"},
	}, nil
}

func (m *mockSessionService) GetSession(ctx context.Context, sessionID string) (*primary.Session, error) {
	if m.getSessionFn != nil {
		return m.getSessionFn(ctx, sessionID)
	}
	return &primary.Session{ID: sessionID, Date: "2026-09-03", Status: "planned"}, nil
}

func (m *mockSessionService) GetSessionByDate(ctx context.Context, date string) (*primary.Session, error) {
	return &primary.Session{ID: "SES-001", Date: date, Status: "planned"}, nil
}

func (m *mockSessionService) ListSessions(ctx context.Context, filters primary.SessionFilters) ([]*primary.Session, error) {
	return []*primary.Session{}, nil
}

func (m *mockSessionService) ComputeAssignments(ctx context.Context, req primary.ComputeAssignmentsRequest) (*primary.ComputeAssignmentsResponse, error) {
	if m.computeAssignmentsFn != nil {
		return m.computeAssignmentsFn(ctx, req)
	}
	return &primary.ComputeAssignmentsResponse{SessionID: req.SessionID}, nil
}

func (m *mockSessionService) CancelSession(ctx context.Context, sessionID string) error {
	if m.cancelSessionFn != nil {
		return m.cancelSessionFn(ctx, sessionID)
	}
	return nil
}

func (m *mockSessionService) NextMeetingDate(ctx context.Context) (string, error) {
	return "2026-09-03", nil
}

func TestSessionAdapter_Create(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSessionAdapter(&mockSessionService{}, &buf)

	err := adapter.Create(context.Background(), "2026-09-03", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "✓ Created session SES-001 on 2026-09-03") {
		t.Errorf("expected confirmation, got %q", buf.String())
	}
}

func TestSessionAdapter_AssignPrintsTeam(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockSessionService{
		computeAssignmentsFn: func(ctx context.Context, req primary.ComputeAssignmentsRequest) (*primary.ComputeAssignmentsResponse, error) {
			return &primary.ComputeAssignmentsResponse{
				SessionID: req.SessionID,
				Assignments: []*primary.Assignment{
					{Role: "prayer_lead", MemberID: "MEM-001", MemberName: "Alice"},
					{Role: "scripture_reader", MemberID: "MEM-002", MemberName: "Bob"},
				},
			}, nil
		},
	}
	adapter := NewSessionAdapter(mock, &buf)

	err := adapter.Assign(context.Background(), "SES-001")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "✓ Assigned roles for session SES-001") {
		t.Errorf("expected confirmation, got %q", out)
	}
	if !strings.Contains(out, "Prayer Lead") || !strings.Contains(out, "Alice") {
		t.Errorf("expected role labels and names, got %q", out)
	}
}

func TestSessionAdapter_AssignExistingPlan(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockSessionService{
		computeAssignmentsFn: func(ctx context.Context, req primary.ComputeAssignmentsRequest) (*primary.ComputeAssignmentsResponse, error) {
			return &primary.ComputeAssignmentsResponse{
				SessionID: req.SessionID,
				Assignments: []*primary.Assignment{
					{Role: "prayer_lead", MemberID: "MEM-001", MemberName: "Alice"},
				},
				Existing: true,
			}, nil
		},
	}
	adapter := NewSessionAdapter(mock, &buf)

	if err := adapter.Assign(context.Background(), "SES-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "already has a plan") {
		t.Errorf("expected existing-plan message, got %q", buf.String())
	}
}

func TestSessionAdapter_AssignUnfillableRolePropagates(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockSessionService{
		computeAssignmentsFn: func(ctx context.Context, req primary.ComputeAssignmentsRequest) (*primary.ComputeAssignmentsResponse, error) {
			return nil, &roster.UnfillableRoleError{SessionID: req.SessionID, Roles: []roster.Role{"sharing_lead"}}
		},
	}
	adapter := NewSessionAdapter(mock, &buf)

	err := adapter.Assign(context.Background(), "SES-001")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "sharing_lead") {
		t.Errorf("expected unfillable role named, got %v", err)
	}
}

func TestSessionAdapter_ShowWithoutAssignments(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSessionAdapter(&mockSessionService{}, &buf)

	if err := adapter.Show(context.Background(), "SES-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No roles assigned yet") {
		t.Errorf("expected hint for unassigned session, got %q", buf.String())
	}
}

func TestSessionAdapter_Cancel(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSessionAdapter(&mockSessionService{}, &buf)

	if err := adapter.Cancel(context.Background(), "SES-001"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "✓ Session SES-001 cancelled") {
		t.Errorf("expected confirmation, got %q", buf.String())
	}
}
