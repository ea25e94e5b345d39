// Package series contains the pure business logic for study series.
// This is part of the Functional Core - no I/O, only pure functions.
package series

import "time"

// Cadence is how often a series meets.
type Cadence string

const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
)

// Days returns the day step between two sessions of the cadence,
// or 0 for an unknown cadence.
func (c Cadence) Days() int {
	switch c {
	case CadenceWeekly:
		return 7
	case CadenceBiweekly:
		return 14
	}
	return 0
}

// PackPassage is one entry of a theme pack.
type PackPassage struct {
	Title     string `json:"title"`
	Reference string `json:"reference"`
}

// PlanInput contains the inputs needed to lay out a series.
// All values are pre-fetched by the caller - no I/O in the planner.
type PlanInput struct {
	StartDate time.Time
	Weeks     int
	Cadence   Cadence
	Pack      []PackPassage
}

// PlannedPassage is one passage placed on a session date.
type PlannedPassage struct {
	Title     string
	Reference string
	Date      time.Time
}

// PlanPassages lays the pack's passages onto session dates, one per
// meeting, cycling through the pack when weeks exceed its size.
func PlanPassages(input PlanInput) []PlannedPassage {
	step := input.Cadence.Days()
	if step == 0 {
		step = CadenceWeekly.Days()
	}

	planned := make([]PlannedPassage, 0, input.Weeks)
	for i := 0; i < input.Weeks; i++ {
		pack := input.Pack[i%len(input.Pack)]
		planned = append(planned, PlannedPassage{
			Title:     pack.Title,
			Reference: pack.Reference,
			Date:      input.StartDate.AddDate(0, 0, i*step),
		})
	}
	return planned
}
