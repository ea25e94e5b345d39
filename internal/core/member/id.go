// Package member contains the pure business logic for registry members.
// This is part of the Functional Core - no I/O, only pure functions.
package member

import "fmt"

// GenerateMemberID generates a member ID from the current max number.
// The format is MBR-XXX where XXX is a zero-padded 3-digit number.
func GenerateMemberID(currentMax int) string {
	return fmt.Sprintf("MBR-%03d", currentMax+1)
}

// ParseMemberNumber extracts the numeric portion from a member ID.
// Returns -1 if the ID format is invalid.
func ParseMemberNumber(id string) int {
	var num int
	_, err := fmt.Sscanf(id, "MBR-%d", &num)
	if err != nil {
		return -1
	}
	return num
}
