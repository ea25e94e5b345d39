// Package series contains the pure business logic for study series.
// Guards are pure functions that evaluate preconditions without side effects.
package series

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

// CreateContext provides context for series creation guards.
type CreateContext struct {
	Title          string
	Theme          string
	ThemeKnown     bool // a theme pack exists for Theme
	PackSize       int
	Weeks          int
	Cadence        Cadence
	StartDateValid bool
}

// CanCreate evaluates whether a series can be created.
// Rules:
// - Title is required
// - The theme must have a pack with at least one passage
// - Weeks must be positive and the cadence known
// - The start date must parse as YYYY-MM-DD
func CanCreate(ctx CreateContext) GuardResult {
	if strings.TrimSpace(ctx.Title) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "series title is required",
		}
	}
	if !ctx.ThemeKnown {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown theme %q, no theme pack found", ctx.Theme),
		}
	}
	if ctx.PackSize == 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("theme pack %q has no passages", ctx.Theme),
		}
	}
	if ctx.Weeks < 1 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("weeks must be at least 1, got %d", ctx.Weeks),
		}
	}
	if ctx.Cadence.Days() == 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("unknown cadence %q, expected %s or %s", ctx.Cadence, CadenceWeekly, CadenceBiweekly),
		}
	}
	if !ctx.StartDateValid {
		return GuardResult{
			Allowed: false,
			Reason:  "invalid start date, expected YYYY-MM-DD",
		}
	}
	return GuardResult{Allowed: true}
}
