package validators

import "strings"

func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

// Normalize trims the value and collapses the JavaScript serialization
// artifacts "undefined" and "null" to the empty string. Clients routinely
// interpolate missing values into query strings, and those literals must
// never reach a filter or a stored column.
func Normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	switch strings.ToLower(trimmed) {
	case "undefined", "null":
		return ""
	}
	return trimmed
}
