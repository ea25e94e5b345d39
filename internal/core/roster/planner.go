// Package roster contains the pure fairness logic for rotating service
// roles across members. This file contains the pure planner that fills
// a session's roles.
package roster

import (
	"math/rand"
	"sort"
)

// PlanInput contains everything needed to fill one session's roles.
// All values are pre-fetched by the caller - no I/O in the planner.
type PlanInput struct {
	SessionID string
	RoleOrder []Role            // configured priority order
	Eligible  map[Role][]Member // active, eligible and available candidates per role
	History   []HistoryEntry    // past non-cancelled sessions, oldest first
	Lookback  int               // sessions considered for scoring; DefaultLookback when <= 0
	MinGap    int               // minimum sessions between two tenures of the same role; 0 disables
	TieBreak  TieBreak
	Seed      int64 // used by TieBreakSeeded
}

// Pick is one role filled by the planner.
type Pick struct {
	Role   Role
	Member Member
	Score  Score
}

// Plan is a complete assignment for one session: every requested role
// filled exactly once, no member picked twice.
type Plan struct {
	SessionID string
	Picks     []Pick
}

// MemberFor returns the member picked for a role.
func (p Plan) MemberFor(role Role) (Member, bool) {
	for _, pick := range p.Picks {
		if pick.Role == role {
			return pick.Member, true
		}
	}
	return Member{}, false
}

// PlanAssignments fills every role for a session, preferring the member
// with the lowest fairness score for each role in priority order. It
// returns either a complete plan or an error naming every role it could
// not fill - never a partial plan.
func PlanAssignments(input PlanInput) (Plan, error) {
	lookback := input.Lookback
	if lookback <= 0 {
		lookback = DefaultLookback
	}

	window := input.History
	if len(window) > lookback {
		window = window[len(window)-lookback:]
	}

	var rng *rand.Rand
	if input.TieBreak == TieBreakSeeded {
		rng = rand.New(rand.NewSource(input.Seed))
	}

	plan := Plan{SessionID: input.SessionID}
	taken := make(map[string]bool)
	var unfillable []Role

	for _, role := range input.RoleOrder {
		pool := make([]Member, 0, len(input.Eligible[role]))
		for _, m := range input.Eligible[role] {
			if !taken[m.ID] {
				pool = append(pool, m)
			}
		}

		// The minimum gap is a soft preference: when it would leave the
		// role unfillable it is ignored instead of failing the plan.
		if input.MinGap > 0 {
			rested := make([]Member, 0, len(pool))
			for _, m := range pool {
				d := DistanceSinceRole(m.ID, role, window)
				if d == 0 || d >= input.MinGap {
					rested = append(rested, m)
				}
			}
			if len(rested) > 0 {
				pool = rested
			}
		}

		if len(pool) == 0 {
			unfillable = append(unfillable, role)
			continue
		}

		ranked := rank(role, pool, window, lookback, rng)
		best := ranked[0]
		taken[best.Member.ID] = true
		plan.Picks = append(plan.Picks, best)
	}

	if len(unfillable) > 0 {
		return Plan{}, &UnfillableRoleError{SessionID: input.SessionID, Roles: unfillable}
	}

	return plan, nil
}

// rank orders candidates by ascending score. Ties keep member-ID order,
// or a seeded shuffle order when rng is non-nil.
func rank(role Role, pool []Member, window []HistoryEntry, lookback int, rng *rand.Rand) []Pick {
	picks := make([]Pick, 0, len(pool))
	for _, m := range pool {
		picks = append(picks, Pick{
			Role:   role,
			Member: m,
			Score:  ScoreMember(m.ID, role, window, lookback),
		})
	}

	// Sort by ID first so the seeded shuffle does not depend on the
	// caller's input order.
	sort.Slice(picks, func(i, j int) bool {
		return picks[i].Member.ID < picks[j].Member.ID
	})

	if rng != nil {
		rng.Shuffle(len(picks), func(i, j int) {
			picks[i], picks[j] = picks[j], picks[i]
		})
	}

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].Score.Total() < picks[j].Score.Total()
	})

	return picks
}
