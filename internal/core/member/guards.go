// Package member contains the pure business logic for registry members.
// Guards are pure functions that evaluate preconditions without side effects.
package member

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateContext provides context for member creation guards.
// Uniqueness flags are pre-fetched by the caller.
type CreateContext struct {
	Name       string
	Phone      string
	PhoneTaken bool
	Email      string
	EmailTaken bool
	Roles      []string // requested eligibility
	KnownRoles []string // configured role names
}

// CanCreate evaluates whether a member can be added.
// Rules:
// - Name is required
// - Phone and email must be unique when present
// - The eligibility set must be non-empty and contain only known roles
func CanCreate(ctx CreateContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "member name is required",
		}
	}
	if ctx.Phone != "" && ctx.PhoneTaken {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("a member with phone %s already exists", ctx.Phone),
		}
	}
	if ctx.Email != "" && ctx.EmailTaken {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("a member with email %s already exists", ctx.Email),
		}
	}
	return checkEligibilitySet(ctx.Roles, ctx.KnownRoles)
}

// EligibilityContext provides context for eligibility update guards.
type EligibilityContext struct {
	MemberID   string
	Active     bool
	Roles      []string
	KnownRoles []string
}

// CanUpdateEligibility evaluates whether a member's eligibility can change.
// Rule: an active member always keeps at least one eligible role.
func CanUpdateEligibility(ctx EligibilityContext) GuardResult {
	if ctx.Active && len(ctx.Roles) == 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("member %s is active and needs at least one eligible role", ctx.MemberID),
		}
	}
	if len(ctx.Roles) > 0 {
		return checkEligibilitySet(ctx.Roles, ctx.KnownRoles)
	}
	return GuardResult{Allowed: true}
}

// ActivationContext provides context for activation guards.
type ActivationContext struct {
	MemberID string
	Exists   bool
	Active   bool
}

// CanDeactivate evaluates whether a member can be deactivated.
func CanDeactivate(ctx ActivationContext) GuardResult {
	if !ctx.Exists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("member %s not found", ctx.MemberID),
		}
	}
	if !ctx.Active {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("member %s is already inactive", ctx.MemberID),
		}
	}
	return GuardResult{Allowed: true}
}

// CanReactivate evaluates whether a member can be reactivated.
func CanReactivate(ctx ActivationContext) GuardResult {
	if !ctx.Exists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("member %s not found", ctx.MemberID),
		}
	}
	if ctx.Active {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("member %s is already active", ctx.MemberID),
		}
	}
	return GuardResult{Allowed: true}
}

// checkEligibilitySet rejects empty sets and roles outside the configured list.
func checkEligibilitySet(roles, known []string) GuardResult {
	if len(roles) == 0 {
		return GuardResult{
			Allowed: false,
			Reason:  "at least one eligible role is required",
		}
	}
	if unknown := UnknownRoles(roles, known); len(unknown) > 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown role(s) %s, configured roles are %s", strings.Join(unknown, ", "), strings.Join(known, ", ")),
		}
	}
	return GuardResult{Allowed: true}
}

// UnknownRoles returns the roles that are not in the configured list.
func UnknownRoles(roles, known []string) []string {
	allowed := make(map[string]bool, len(known))
	for _, r := range known {
		allowed[r] = true
	}

	var unknown []string
	for _, r := range roles {
		if !allowed[r] {
			unknown = append(unknown, r)
		}
	}
	return unknown
}
