// Package roster contains the pure fairness logic for rotating service
// roles across members. This is part of the Functional Core - no I/O,
// only pure functions.
package roster

// Role identifies one service duty that must be filled each session.
type Role string

// DefaultRoles returns the built-in role list in assignment priority order.
func DefaultRoles() []Role {
	return []Role{"prayer_lead", "scripture_reader", "sharing_lead"}
}

// DefaultLookback is the number of recent sessions considered when scoring.
const DefaultLookback = 12

// Member is a candidate for role assignment.
type Member struct {
	ID   string
	Name string
}

// HistoryEntry is one past session's role assignments, keyed by role.
// History is ordered oldest to newest and must not contain cancelled
// sessions; the caller filters those out before planning.
type HistoryEntry struct {
	SessionID string
	Holders   map[Role]string // role -> member ID
}

// TieBreak selects how equal fairness scores are resolved.
type TieBreak string

const (
	// TieBreakByID resolves ties by ascending member ID.
	TieBreakByID TieBreak = "by_id"
	// TieBreakSeeded resolves ties by a seeded shuffle. The same seed
	// always produces the same plan.
	TieBreakSeeded TieBreak = "seeded_random"
)
