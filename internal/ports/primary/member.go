// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import "context"

// MemberService defines the primary port for member registry operations.
type MemberService interface {
	// AddMember registers a new member with an eligibility set.
	AddMember(ctx context.Context, req AddMemberRequest) (*AddMemberResponse, error)

	// GetMember retrieves a member by ID.
	GetMember(ctx context.Context, memberID string) (*Member, error)

	// ListMembers lists members with optional filters.
	ListMembers(ctx context.Context, filters MemberFilters) ([]*Member, error)

	// DeactivateMember takes a member out of the rotation. History and
	// existing assignments are kept.
	DeactivateMember(ctx context.Context, memberID string) error

	// ReactivateMember puts a member back into the rotation with their
	// prior eligibility set.
	ReactivateMember(ctx context.Context, memberID string) error

	// UpdateEligibility replaces a member's eligible-role set.
	UpdateEligibility(ctx context.Context, req UpdateEligibilityRequest) error

	// SetAvailability records a per-date availability override.
	SetAvailability(ctx context.Context, req SetAvailabilityRequest) error

	// GetAvailability lists a member's overrides from a date onwards.
	GetAvailability(ctx context.Context, memberID string, from string) ([]*Availability, error)
}

// AddMemberRequest contains parameters for registering a member.
type AddMemberRequest struct {
	Name  string
	Phone string
	Email string
	Roles []string // eligibility; defaults to all configured roles when empty
}

// AddMemberResponse contains the result of registering a member.
type AddMemberResponse struct {
	MemberID string
	Member   *Member
}

// UpdateEligibilityRequest contains parameters for an eligibility update.
type UpdateEligibilityRequest struct {
	MemberID string
	Roles    []string
}

// SetAvailabilityRequest contains parameters for an availability override.
type SetAvailabilityRequest struct {
	MemberID  string
	Date      string // YYYY-MM-DD
	Available bool
	Reason    string
}

// Member represents a member entity at the port boundary.
type Member struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Active    bool
	JoinedAt  string
	Roles     []string
	CreatedAt string
}

// Availability represents one availability override at the port boundary.
type Availability struct {
	MemberID  string
	Date      string
	Available bool
	Reason    string
}

// MemberFilters contains filter options for listing members.
type MemberFilters struct {
	ActiveOnly bool
	Role       string
}
