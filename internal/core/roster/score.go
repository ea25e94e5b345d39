// Package roster contains the pure fairness logic for rotating service
// roles across members. This file contains the scoring rules.
package roster

// Score describes how loaded a member is for one role within the
// lookback window. Lower totals are picked first.
type Score struct {
	Count   int     // times the member held the role in the window
	Recency float64 // 1.0 right after holding the role, decaying linearly to 1/lookback at the window edge
}

// Total returns the combined fairness score.
func (s Score) Total() float64 {
	return float64(s.Count) + s.Recency
}

// ScoreMember computes the fairness score of one member for one role.
// The window is ordered oldest to newest and already trimmed to the
// lookback length.
func ScoreMember(memberID string, role Role, window []HistoryEntry, lookback int) Score {
	count := 0
	distance := 0
	for i, entry := range window {
		if entry.Holders[role] == memberID {
			count++
			distance = len(window) - i
		}
	}

	score := Score{Count: count}
	if distance > 0 {
		if units := lookback - distance + 1; units > 0 {
			score.Recency = float64(units) / float64(lookback)
		}
	}
	return score
}

// DistanceSinceRole returns how many sessions ago the member last held
// the role: 1 means the immediately preceding session, 0 means never
// within the window.
func DistanceSinceRole(memberID string, role Role, window []HistoryEntry) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i].Holders[role] == memberID {
			return len(window) - i
		}
	}
	return 0
}
