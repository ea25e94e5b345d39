package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	corereminder "github.com/Elsie-Muhumuza/kambari/internal/core/reminder"
	coresession "github.com/Elsie-Muhumuza/kambari/internal/core/session"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// ReminderServiceImpl implements the ReminderService interface.
type ReminderServiceImpl struct {
	sessionRepo    secondary.SessionRepository
	assignmentRepo secondary.AssignmentRepository
	memberRepo     secondary.MemberRepository
	passageRepo    secondary.PassageRepository
	sender         secondary.MessageSender
	countryPrefix  string
	meetingWeekday time.Weekday
}

// NewReminderService creates a new ReminderService with injected dependencies.
func NewReminderService(
	sessionRepo secondary.SessionRepository,
	assignmentRepo secondary.AssignmentRepository,
	memberRepo secondary.MemberRepository,
	passageRepo secondary.PassageRepository,
	sender secondary.MessageSender,
	countryPrefix string,
	meetingWeekday time.Weekday,
) *ReminderServiceImpl {
	return &ReminderServiceImpl{
		sessionRepo:    sessionRepo,
		assignmentRepo: assignmentRepo,
		memberRepo:     memberRepo,
		passageRepo:    passageRepo,
		sender:         sender,
		countryPrefix:  countryPrefix,
		meetingWeekday: meetingWeekday,
	}
}

// SendReminders composes and delivers a personal reminder to every
// assignee of the session on the given date. Delivery failures are
// reported per recipient, never as a fatal error.
func (s *ReminderServiceImpl) SendReminders(ctx context.Context, req primary.SendRemindersRequest) (*primary.SendRemindersResponse, error) {
	// 1. An empty date means the next meeting date
	date := req.Date
	if date == "" {
		date = coresession.NextMeetingDate(time.Now(), s.meetingWeekday).Format(coresession.DateLayout)
	}

	// 2. Fetch the session and its plan
	session, err := s.sessionRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	if len(assignments) == 0 {
		return nil, fmt.Errorf("session %s has no assignments to remind about", session.ID)
	}

	// 3. Look up what the group is studying that evening
	passageText := ""
	seriesTitle := ""
	if session.PassageID != "" {
		if passage, err := s.passageRepo.GetByID(ctx, session.PassageID); err == nil {
			passageText = passage.Reference
			seriesTitle = passage.SeriesTitle
		}
	}

	// 4. One reminder per member, double duty folds into one message
	memberOrder := []string{}
	rolesByMember := map[string][]string{}
	for _, assignment := range assignments {
		if _, seen := rolesByMember[assignment.MemberID]; !seen {
			memberOrder = append(memberOrder, assignment.MemberID)
		}
		rolesByMember[assignment.MemberID] = append(rolesByMember[assignment.MemberID], assignment.Role)
	}

	results := make([]*primary.ReminderResult, 0, len(memberOrder))
	for _, memberID := range memberOrder {
		member, err := s.memberRepo.GetByID(ctx, memberID)
		if err != nil {
			return nil, fmt.Errorf("member not found: %w", err)
		}
		if !member.Active {
			continue
		}

		result := &primary.ReminderResult{
			MemberID:   member.ID,
			MemberName: member.Name,
			Phone:      member.Phone,
			Roles:      rolesByMember[memberID],
		}
		results = append(results, result)

		if member.Phone == "" {
			result.Error = "no phone on file"
			continue
		}

		body := corereminder.Compose(corereminder.MessageInput{
			MemberName:  member.Name,
			Roles:       rolesByMember[memberID],
			Date:        date,
			Passage:     passageText,
			SeriesTitle: seriesTitle,
		})
		result.Link = corereminder.Link(member.Phone, body, s.countryPrefix)

		message := &secondary.ReminderMessage{
			MemberID:   member.ID,
			MemberName: member.Name,
			Phone:      member.Phone,
			Body:       body,
			Link:       result.Link,
		}
		if err := s.sender.Send(ctx, message); err != nil {
			slog.Warn("reminder delivery failed",
				"member", member.ID, "date", date, "error", err)
			result.Error = err.Error()
			continue
		}
		result.Delivered = true
	}

	return &primary.SendRemindersResponse{
		Date:    date,
		Results: results,
	}, nil
}

// Ensure ReminderServiceImpl implements the interface
var _ primary.ReminderService = (*ReminderServiceImpl)(nil)
