// Package session contains the pure business logic for study sessions.
// Guards are pure functions that evaluate preconditions without side effects.
package session

import "fmt"

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

// CreateContext provides context for session creation guards.
type CreateContext struct {
	Date      string // YYYY-MM-DD
	DateValid bool
	DateTaken bool // another session already holds this date
}

// CanCreate evaluates whether a session can be created.
// Rules:
// - Date must parse as YYYY-MM-DD
// - At most one session per calendar date
func CanCreate(ctx CreateContext) GuardResult {
	if !ctx.DateValid {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid session date %q, expected YYYY-MM-DD", ctx.Date),
		}
	}
	if ctx.DateTaken {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("a session already exists on %s", ctx.Date),
		}
	}
	return GuardResult{Allowed: true}
}

// TransitionContext provides context for session state guards.
type TransitionContext struct {
	SessionID string
	Status    Status
}

// CanComplete evaluates whether a session can be marked completed.
// Rule: only planned sessions complete; completed and cancelled are terminal.
func CanComplete(ctx TransitionContext) GuardResult {
	if ctx.Status != StatusPlanned {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("session %s is %s, only planned sessions can be completed", ctx.SessionID, ctx.Status),
		}
	}
	return GuardResult{Allowed: true}
}

// CanCancel evaluates whether a session can be cancelled.
// Rule: only planned sessions cancel; completed and cancelled are terminal.
func CanCancel(ctx TransitionContext) GuardResult {
	if ctx.Status != StatusPlanned {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("session %s is %s, only planned sessions can be cancelled", ctx.SessionID, ctx.Status),
		}
	}
	return GuardResult{Allowed: true}
}

// CanAssign evaluates whether roles can be assigned for a session.
// Rule: assignments are computed for planned sessions only.
func CanAssign(ctx TransitionContext) GuardResult {
	if ctx.Status != StatusPlanned {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("session %s is %s, roles are only assigned to planned sessions", ctx.SessionID, ctx.Status),
		}
	}
	return GuardResult{Allowed: true}
}
