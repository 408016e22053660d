package enums

import "fmt"

// ActivityType represents the canonical activity_type enum in Postgres.
// The variant set is closed: every event recorded against a shop is a call,
// a WhatsApp tap, or a sale, and the ledger dispatches on it exhaustively.
type ActivityType string

const (
	ActivityTypeCall     ActivityType = "call"
	ActivityTypeWhatsApp ActivityType = "whatsapp"
	ActivityTypeSale     ActivityType = "sale"
)

var validActivityTypes = []ActivityType{
	ActivityTypeCall,
	ActivityTypeWhatsApp,
	ActivityTypeSale,
}

// String implements fmt.Stringer.
func (a ActivityType) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ActivityType.
func (a ActivityType) IsValid() bool {
	for _, candidate := range validActivityTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseActivityType converts raw input into an ActivityType.
func ParseActivityType(value string) (ActivityType, error) {
	for _, candidate := range validActivityTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid activity type %q", value)
}
