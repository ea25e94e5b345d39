// Package app contains the application services that drive the
// functional core and the secondary ports.
package app

import (
	"context"
	"fmt"
	"time"

	coremember "github.com/Elsie-Muhumuza/kambari/internal/core/member"
	coresession "github.com/Elsie-Muhumuza/kambari/internal/core/session"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

// MemberServiceImpl implements the MemberService interface.
type MemberServiceImpl struct {
	memberRepo       secondary.MemberRepository
	availabilityRepo secondary.AvailabilityRepository
	roles            []string // configured role names
}

// NewMemberService creates a new MemberService with injected dependencies.
func NewMemberService(
	memberRepo secondary.MemberRepository,
	availabilityRepo secondary.AvailabilityRepository,
	roles []string,
) *MemberServiceImpl {
	return &MemberServiceImpl{
		memberRepo:       memberRepo,
		availabilityRepo: availabilityRepo,
		roles:            roles,
	}
}

// AddMember registers a new member with an eligibility set.
func (s *MemberServiceImpl) AddMember(ctx context.Context, req primary.AddMemberRequest) (*primary.AddMemberResponse, error) {
	// 1. An empty request means eligible for everything
	roles := req.Roles
	if len(roles) == 0 {
		roles = append([]string{}, s.roles...)
	}

	// 2. Pre-fetch uniqueness for the guard
	var phoneTaken, emailTaken bool
	var err error
	if req.Phone != "" {
		phoneTaken, err = s.memberRepo.PhoneExists(ctx, req.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to check phone: %w", err)
		}
	}
	if req.Email != "" {
		emailTaken, err = s.memberRepo.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	// 3. Check guard
	guardCtx := coremember.CreateContext{
		Name:       req.Name,
		Phone:      req.Phone,
		PhoneTaken: phoneTaken,
		Email:      req.Email,
		EmailTaken: emailTaken,
		Roles:      roles,
		KnownRoles: s.roles,
	}
	if result := coremember.CanCreate(guardCtx); !result.Allowed {
		return nil, result.Error()
	}

	// 4. Generate ID using core business rule
	nextID, err := s.memberRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate member ID: %w", err)
	}

	// 5. Create member record with pre-populated ID
	record := &secondary.MemberRecord{
		ID:       nextID,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Active:   true,
		JoinedAt: time.Now().Format(coresession.DateLayout),
		Roles:    roles,
	}

	if err := s.memberRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	// 6. Return response
	return &primary.AddMemberResponse{
		MemberID: record.ID,
		Member:   s.recordToMember(record),
	}, nil
}

// GetMember retrieves a member by ID.
func (s *MemberServiceImpl) GetMember(ctx context.Context, memberID string) (*primary.Member, error) {
	record, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("member not found: %w", err)
	}
	return s.recordToMember(record), nil
}

// ListMembers lists members with optional filters.
func (s *MemberServiceImpl) ListMembers(ctx context.Context, filters primary.MemberFilters) ([]*primary.Member, error) {
	records, err := s.memberRepo.List(ctx, secondary.MemberFilters{
		ActiveOnly: filters.ActiveOnly,
		Role:       filters.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]*primary.Member, len(records))
	for i, r := range records {
		members[i] = s.recordToMember(r)
	}
	return members, nil
}

// DeactivateMember takes a member out of the rotation. History and
// existing assignments are kept.
func (s *MemberServiceImpl) DeactivateMember(ctx context.Context, memberID string) error {
	// 1. Fetch member to check state
	record, err := s.memberRepo.GetByID(ctx, memberID)
	memberExists := err == nil

	// 2. Check guard
	guardCtx := coremember.ActivationContext{
		MemberID: memberID,
		Exists:   memberExists,
		Active:   memberExists && record.Active,
	}
	if result := coremember.CanDeactivate(guardCtx); !result.Allowed {
		return result.Error()
	}

	// 3. Flip the flag, eligibility stays for reactivation
	return s.memberRepo.SetActive(ctx, memberID, false)
}

// ReactivateMember puts a member back into the rotation with their
// prior eligibility set.
func (s *MemberServiceImpl) ReactivateMember(ctx context.Context, memberID string) error {
	record, err := s.memberRepo.GetByID(ctx, memberID)
	memberExists := err == nil

	guardCtx := coremember.ActivationContext{
		MemberID: memberID,
		Exists:   memberExists,
		Active:   memberExists && record.Active,
	}
	if result := coremember.CanReactivate(guardCtx); !result.Allowed {
		return result.Error()
	}

	return s.memberRepo.SetActive(ctx, memberID, true)
}

// UpdateEligibility replaces a member's eligible-role set.
func (s *MemberServiceImpl) UpdateEligibility(ctx context.Context, req primary.UpdateEligibilityRequest) error {
	// 1. Fetch member to check state
	record, err := s.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		return fmt.Errorf("member not found: %w", err)
	}

	// 2. Check guard
	guardCtx := coremember.EligibilityContext{
		MemberID:   req.MemberID,
		Active:     record.Active,
		Roles:      req.Roles,
		KnownRoles: s.roles,
	}
	if result := coremember.CanUpdateEligibility(guardCtx); !result.Allowed {
		return result.Error()
	}

	// 3. Replace the set
	return s.memberRepo.ReplaceRoles(ctx, req.MemberID, req.Roles)
}

// SetAvailability records a per-date availability override.
func (s *MemberServiceImpl) SetAvailability(ctx context.Context, req primary.SetAvailabilityRequest) error {
	if _, err := s.memberRepo.GetByID(ctx, req.MemberID); err != nil {
		return fmt.Errorf("member not found: %w", err)
	}

	if _, ok := coresession.ParseDate(req.Date); !ok {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", req.Date)
	}

	record := &secondary.AvailabilityRecord{
		MemberID:  req.MemberID,
		Date:      req.Date,
		Available: req.Available,
		Reason:    req.Reason,
	}
	return s.availabilityRepo.Set(ctx, record)
}

// GetAvailability lists a member's overrides from a date onwards.
func (s *MemberServiceImpl) GetAvailability(ctx context.Context, memberID string, from string) ([]*primary.Availability, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		return nil, fmt.Errorf("member not found: %w", err)
	}

	records, err := s.availabilityRepo.ListForMember(ctx, memberID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}

	overrides := make([]*primary.Availability, len(records))
	for i, r := range records {
		overrides[i] = &primary.Availability{
			MemberID:  r.MemberID,
			Date:      r.Date,
			Available: r.Available,
			Reason:    r.Reason,
		}
	}
	return overrides, nil
}

// Helper methods

func (s *MemberServiceImpl) recordToMember(r *secondary.MemberRecord) *primary.Member {
	return &primary.Member{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Active:    r.Active,
		JoinedAt:  r.JoinedAt,
		Roles:     r.Roles,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure MemberServiceImpl implements the interface
var _ primary.MemberService = (*MemberServiceImpl)(nil)
