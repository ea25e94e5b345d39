// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Elsie-Muhumuza/kambari/internal/ports/primary"
)

// MemberAdapter is a thin adapter that translates CLI operations to
// MemberService calls.
type MemberAdapter struct {
	service primary.MemberService
	out     io.Writer
}

// NewMemberAdapter creates a new MemberAdapter with the given service.
func NewMemberAdapter(service primary.MemberService, out io.Writer) *MemberAdapter {
	return &MemberAdapter{
		service: service,
		out:     out,
	}
}

// Add registers a new member.
func (a *MemberAdapter) Add(ctx context.Context, name, phone, email string, roles []string) error {
	resp, err := a.service.AddMember(ctx, primary.AddMemberRequest{
		Name:  name,
		Phone: phone,
		Email: email,
		Roles: roles,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Added member %s: %s\n", resp.MemberID, resp.Member.Name)
	fmt.Fprintf(a.out, "  Eligible for: %s\n", strings.Join(resp.Member.Roles, ", "))
	return nil
}

// List lists members, optionally restricted to active ones or a role.
func (a *MemberAdapter) List(ctx context.Context, activeOnly bool, role string) error {
	members, err := a.service.ListMembers(ctx, primary.MemberFilters{
		ActiveOnly: activeOnly,
		Role:       role,
	})
	if err != nil {
		return fmt.Errorf("failed to list members: %w", err)
	}

	if len(members) == 0 {
		fmt.Fprintln(a.out, "No members found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-20s %-8s %s\n", "ID", "NAME", "ACTIVE", "ROLES")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, m := range members {
		active := "yes"
		if !m.Active {
			active = "no"
		}
		fmt.Fprintf(a.out, "%-10s %-20s %-8s %s\n", m.ID, m.Name, active, strings.Join(m.Roles, ", "))
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single member.
func (a *MemberAdapter) Show(ctx context.Context, memberID string) error {
	member, err := a.service.GetMember(ctx, memberID)
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}

	fmt.Fprintf(a.out, "\nMember: %s\n", member.ID)
	fmt.Fprintf(a.out, "Name:   %s\n", member.Name)
	if member.Phone != "" {
		fmt.Fprintf(a.out, "Phone:  %s\n", member.Phone)
	}
	if member.Email != "" {
		fmt.Fprintf(a.out, "Email:  %s\n", member.Email)
	}
	fmt.Fprintf(a.out, "Active: %t\n", member.Active)
	fmt.Fprintf(a.out, "Joined: %s\n", member.JoinedAt)
	fmt.Fprintf(a.out, "Roles:  %s\n", strings.Join(member.Roles, ", "))
	fmt.Fprintln(a.out)

	return nil
}

// Deactivate takes a member out of the rotation.
func (a *MemberAdapter) Deactivate(ctx context.Context, memberID string) error {
	if err := a.service.DeactivateMember(ctx, memberID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Member %s deactivated (history kept)\n", memberID)
	return nil
}

// Reactivate puts a member back into the rotation.
func (a *MemberAdapter) Reactivate(ctx context.Context, memberID string) error {
	if err := a.service.ReactivateMember(ctx, memberID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Member %s reactivated\n", memberID)
	return nil
}

// SetEligibility replaces a member's eligible-role set.
func (a *MemberAdapter) SetEligibility(ctx context.Context, memberID string, roles []string) error {
	err := a.service.UpdateEligibility(ctx, primary.UpdateEligibilityRequest{
		MemberID: memberID,
		Roles:    roles,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Member %s now eligible for: %s\n", memberID, strings.Join(roles, ", "))
	return nil
}

// SetAvailability records a per-date availability override.
func (a *MemberAdapter) SetAvailability(ctx context.Context, memberID, date string, available bool, reason string) error {
	err := a.service.SetAvailability(ctx, primary.SetAvailabilityRequest{
		MemberID:  memberID,
		Date:      date,
		Available: available,
		Reason:    reason,
	})
	if err != nil {
		return err
	}

	state := "available"
	if !available {
		state = "unavailable"
	}
	fmt.Fprintf(a.out, "✓ Member %s marked %s on %s\n", memberID, state, date)
	return nil
}

// ShowAvailability lists a member's overrides from a date onwards.
func (a *MemberAdapter) ShowAvailability(ctx context.Context, memberID, from string) error {
	overrides, err := a.service.GetAvailability(ctx, memberID, from)
	if err != nil {
		return fmt.Errorf("failed to get availability: %w", err)
	}

	if len(overrides) == 0 {
		fmt.Fprintln(a.out, "No overrides recorded; member is available by default")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-12s %-12s %s\n", "DATE", "AVAILABLE", "REASON")
	fmt.Fprintln(a.out, "────────────────────────────────────────")
	for _, o := range overrides {
		state := "yes"
		if !o.Available {
			state = "no"
		}
		fmt.Fprintf(a.out, "%-12s %-12s %s\n", o.Date, state, o.Reason)
	}
	fmt.Fprintln(a.out)

	return nil
}
