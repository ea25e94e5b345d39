// Package series contains the pure business logic for study series.
// This is part of the Functional Core - no I/O, only pure functions.
package series

import "fmt"

// GenerateSeriesID generates a series ID from the current max number.
// The format is SER-XXX where XXX is a zero-padded 3-digit number.
func GenerateSeriesID(currentMax int) string {
	return fmt.Sprintf("SER-%03d", currentMax+1)
}

// GeneratePassageID generates a passage ID from the current max number.
// The format is PAS-XXX where XXX is a zero-padded 3-digit number.
func GeneratePassageID(currentMax int) string {
	return fmt.Sprintf("PAS-%03d", currentMax+1)
}

// ParseSeriesNumber extracts the numeric portion from a series ID.
// Returns -1 if the ID format is invalid.
func ParseSeriesNumber(id string) int {
	var num int
	_, err := fmt.Sscanf(id, "SER-%d", &num)
	if err != nil {
		return -1
	}
	return num
}

// ParsePassageNumber extracts the numeric portion from a passage ID.
// Returns -1 if the ID format is invalid.
func ParsePassageNumber(id string) int {
	var num int
	_, err := fmt.Sscanf(id, "PAS-%d", &num)
	if err != nil {
		return -1
	}
	return num
}
