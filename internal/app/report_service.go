package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	corereminder "github.com/Elsie-Muhumuza/kambari/internal/core/reminder"
	corereport "github.com/Elsie-Muhumuza/kambari/internal/core/report"
	coresession "github.com/Elsie-Muhumuza/kambari/internal/core/session"
	"github.com/Elsie-Muhumuza/kambari/internal/core/studyguide"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	sessionRepo    secondary.SessionRepository
	assignmentRepo secondary.AssignmentRepository
	attendanceRepo secondary.AttendanceRepository
	memberRepo     secondary.MemberRepository
	passageRepo    secondary.PassageRepository
	seriesRepo     secondary.SeriesRepository
	materialRepo   secondary.MaterialRepository
	minutes        secondary.MinutesWriter
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(
	sessionRepo secondary.SessionRepository,
	assignmentRepo secondary.AssignmentRepository,
	attendanceRepo secondary.AttendanceRepository,
	memberRepo secondary.MemberRepository,
	passageRepo secondary.PassageRepository,
	seriesRepo secondary.SeriesRepository,
	materialRepo secondary.MaterialRepository,
	minutes secondary.MinutesWriter,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		sessionRepo:    sessionRepo,
		assignmentRepo: assignmentRepo,
		attendanceRepo: attendanceRepo,
		memberRepo:     memberRepo,
		passageRepo:    passageRepo,
		seriesRepo:     seriesRepo,
		materialRepo:   materialRepo,
		minutes:        minutes,
	}
}

// MonthlyReport summarises one month's sessions and participation.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req primary.MonthlyReportRequest) (*primary.MonthlyReportResponse, error) {
	// 1. Zero values default to the previous calendar month
	year, month := req.Year, req.Month
	if year == 0 || month == 0 {
		year, month = corereport.PreviousMonth(time.Now())
	}
	if !corereport.ValidMonth(month) {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	from, to := corereport.MonthRange(year, month)

	// 2. Fetch the month's sessions, assignments and attendance
	sessions, err := s.sessionRepo.List(ctx, secondary.SessionFilters{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	assignments, err := s.assignmentRepo.ListForDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	attendance, err := s.attendanceRepo.ListForDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	// 3. One report line per session, with its serving team
	participantsBySession := map[string][]string{}
	for _, a := range assignments {
		line := fmt.Sprintf("%s (%s)", a.MemberName, a.Role)
		participantsBySession[a.SessionID] = append(participantsBySession[a.SessionID], line)
	}

	response := &primary.MonthlyReportResponse{Period: corereport.Period(year, month)}
	for _, session := range sessions {
		line := &primary.ReportSession{
			Date:         session.Date,
			Status:       session.Status,
			Participants: participantsBySession[session.ID],
		}
		if session.PassageID != "" {
			if passage, err := s.passageRepo.GetByID(ctx, session.PassageID); err == nil {
				line.PassageTitle = passage.Title
				line.Reference = passage.Reference
			}
		}
		response.Sessions = append(response.Sessions, line)

		switch coresession.Status(session.Status) {
		case coresession.StatusCompleted:
			response.SessionsHeld++
		case coresession.StatusCancelled:
			response.SessionsCancelled++
		}
	}

	// 4. Per-member attendance and role counts
	type tally struct {
		id       string
		name     string
		attended int
		roles    []string
	}
	tallies := map[string]*tally{}
	order := []string{}
	track := func(id, name string) *tally {
		if _, ok := tallies[id]; !ok {
			tallies[id] = &tally{id: id, name: name}
			order = append(order, id)
		}
		return tallies[id]
	}

	for _, row := range attendance {
		t := track(row.MemberID, row.MemberName)
		if row.Present {
			t.attended++
		}
	}
	for _, a := range assignments {
		t := track(a.MemberID, a.MemberName)
		seen := false
		for _, role := range t.roles {
			if role == a.Role {
				seen = true
				break
			}
		}
		if !seen {
			t.roles = append(t.roles, a.Role)
		}
	}

	for _, id := range order {
		t := tallies[id]
		response.MemberStats = append(response.MemberStats, &primary.MemberMonthStats{
			MemberID:       t.id,
			Name:           t.name,
			Attended:       t.attended,
			AttendanceRate: corereport.AttendanceRate(t.attended, response.SessionsHeld),
			RolesTaken:     len(t.roles),
			Roles:          t.roles,
		})
	}
	sort.SliceStable(response.MemberStats, func(i, j int) bool {
		a, b := response.MemberStats[i], response.MemberStats[j]
		if a.Attended != b.Attended {
			return a.Attended > b.Attended
		}
		if a.RolesTaken != b.RolesTaken {
			return a.RolesTaken > b.RolesTaken
		}
		return a.Name < b.Name
	})

	// 5. Active members who never held a role that month
	active, err := s.memberRepo.List(ctx, secondary.MemberFilters{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	assigned := map[string]bool{}
	for _, a := range assignments {
		assigned[a.MemberID] = true
	}
	for _, member := range active {
		if !assigned[member.ID] {
			response.NeverAssigned = append(response.NeverAssigned, member.Name)
		}
	}

	return response, nil
}

// MeetingMinutes renders the minutes document for one session and
// writes it next to the study guides. Date wins when both identifiers
// are set.
func (s *ReportServiceImpl) MeetingMinutes(ctx context.Context, req primary.MeetingMinutesRequest) (*primary.MeetingMinutesResponse, error) {
	// 1. Resolve the session
	var record *secondary.SessionRecord
	var err error
	switch {
	case req.Date != "":
		record, err = s.sessionRepo.GetByDate(ctx, req.Date)
	case req.SessionID != "":
		record, err = s.sessionRepo.GetByID(ctx, req.SessionID)
	default:
		return nil, fmt.Errorf("a session ID or date is required")
	}
	if err != nil {
		return nil, err
	}

	input := corereport.MinutesInput{Date: record.Date}

	// 2. The serving team, in role order
	assignments, err := s.assignmentRepo.ListBySession(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	for _, a := range assignments {
		input.Assignees = append(input.Assignees, corereport.MinutesAssignee{
			RoleLabel:  corereminder.RoleLabel(a.Role),
			MemberName: a.MemberName,
		})
	}

	// 3. Who was there
	attendance, err := s.attendanceRepo.ListBySession(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	for _, row := range attendance {
		if row.Present {
			input.Present = append(input.Present, row.MemberName)
		} else {
			input.Absent = append(input.Absent, row.MemberName)
		}
	}

	// 4. Passage, series and guide questions, all best-effort
	if record.PassageID != "" {
		if passage, err := s.passageRepo.GetByID(ctx, record.PassageID); err == nil {
			input.Passage = passageLine(passage)
			input.SeriesTitle = passage.SeriesTitle
			if series, err := s.seriesRepo.GetByID(ctx, passage.SeriesID); err == nil {
				input.Theme = series.Theme
			}
		}
		if material, err := s.materialRepo.GetByPassage(ctx, record.PassageID); err == nil {
			var guide studyguide.Guide
			if err := json.Unmarshal([]byte(material.Questions), &guide); err == nil {
				input.Discussion = guide.Discussion
				input.Reflection = guide.Reflection
			}
		}
	}

	// 5. Preview the next planned session
	if date, ok := coresession.ParseDate(record.Date); ok {
		after := date.AddDate(0, 0, 1).Format(coresession.DateLayout)
		upcoming, err := s.sessionRepo.List(ctx, secondary.SessionFilters{
			Status: string(coresession.StatusPlanned),
			From:   after,
			Limit:  1,
		})
		if err == nil && len(upcoming) > 0 {
			input.NextDate = upcoming[0].Date
			if upcoming[0].PassageID != "" {
				if passage, err := s.passageRepo.GetByID(ctx, upcoming[0].PassageID); err == nil {
					input.NextPassage = passageLine(passage)
				}
			}
		}
	}

	// 6. Render and export
	markdown := corereport.BuildMinutes(input)
	path, err := s.minutes.WriteMinutes(ctx, corereport.MinutesFileName(record.Date), []byte(markdown))
	if err != nil {
		return nil, fmt.Errorf("failed to write minutes: %w", err)
	}

	return &primary.MeetingMinutesResponse{
		SessionID: record.ID,
		Date:      record.Date,
		Markdown:  markdown,
		FilePath:  path,
	}, nil
}

// passageLine renders a passage as "Title (Reference)", falling back to
// whichever part is present.
func passageLine(passage *secondary.PassageRecord) string {
	switch {
	case passage.Title != "" && passage.Reference != "":
		return fmt.Sprintf("%s (%s)", passage.Title, passage.Reference)
	case passage.Title != "":
		return passage.Title
	default:
		return passage.Reference
	}
}

// Ensure ReportServiceImpl implements the interface
var _ primary.ReportService = (*ReportServiceImpl)(nil)
