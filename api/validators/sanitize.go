package validators

import "strings"

// Ids in the dataset are 24 hex characters; anything far longer is not an id.
const maxIDLength = 64

func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

// SanitizeID trims a path or body id and caps its length.
func SanitizeID(input string) string {
	return SanitizeString(input, maxIDLength)
}
