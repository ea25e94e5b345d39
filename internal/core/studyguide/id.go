package studyguide

import "fmt"

// GenerateMaterialID generates a material ID from the current max number.
// The format is MAT-XXX where XXX is a zero-padded 3-digit number.
func GenerateMaterialID(currentMax int) string {
	return fmt.Sprintf("MAT-%03d", currentMax+1)
}

// ParseMaterialNumber extracts the numeric portion from a material ID.
// Returns -1 if the ID format is invalid.
func ParseMaterialNumber(id string) int {
	var num int
	_, err := fmt.Sscanf(id, "MAT-%d", &num)
	if err != nil {
		return -1
	}
	return num
}
