package enums

import "fmt"

// InteractionType captures how a reviewer interacted with the shop.
type InteractionType string

const (
	InteractionTypeWalkIn         InteractionType = "walk-in"
	InteractionTypeOnlineInquiry  InteractionType = "online-inquiry"
	InteractionTypeRepeatCustomer InteractionType = "repeat-customer"
	InteractionTypeOther          InteractionType = "other"
)

var validInteractionTypes = []InteractionType{
	InteractionTypeWalkIn,
	InteractionTypeOnlineInquiry,
	InteractionTypeRepeatCustomer,
	InteractionTypeOther,
}

// String implements fmt.Stringer.
func (i InteractionType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InteractionType.
func (i InteractionType) IsValid() bool {
	for _, candidate := range validInteractionTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInteractionType converts raw input into an InteractionType.
func ParseInteractionType(value string) (InteractionType, error) {
	for _, candidate := range validInteractionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid interaction type %q", value)
}
