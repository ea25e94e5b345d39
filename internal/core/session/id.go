// Package session contains the pure business logic for study sessions.
// This is part of the Functional Core - no I/O, only pure functions.
package session

import "fmt"

// GenerateSessionID generates a session ID from the current max number.
// The format is SES-XXX where XXX is a zero-padded 3-digit number.
func GenerateSessionID(currentMax int) string {
	return fmt.Sprintf("SES-%03d", currentMax+1)
}

// ParseSessionNumber extracts the numeric portion from a session ID.
// Returns -1 if the ID format is invalid.
func ParseSessionNumber(id string) int {
	var num int
	_, err := fmt.Sscanf(id, "SES-%d", &num)
	if err != nil {
		return -1
	}
	return num
}
