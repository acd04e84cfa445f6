package enums

import "fmt"

// ItemStatus tracks where a single part sits in the custody chain.
type ItemStatus string

const (
	ItemStatusReadyForPickup ItemStatus = "READY_FOR_PICKUP"
	ItemStatusNotPickedUp    ItemStatus = "NOT_PICKED_UP"
	ItemStatusPickedUp       ItemStatus = "PICKED_UP"
	ItemStatusReadyForReturn ItemStatus = "READY_FOR_RETURN"
	ItemStatusReturned       ItemStatus = "RETURNED"
)

var validItemStatuses = []ItemStatus{
	ItemStatusReadyForPickup,
	ItemStatusNotPickedUp,
	ItemStatusPickedUp,
	ItemStatusReadyForReturn,
	ItemStatusReturned,
}

// ItemStatuses returns the declared statuses in canonical order.
func ItemStatuses() []ItemStatus {
	out := make([]ItemStatus, len(validItemStatuses))
	copy(out, validItemStatuses)
	return out
}

// String implements fmt.Stringer.
func (s ItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ItemStatus.
func (s ItemStatus) IsValid() bool {
	for _, candidate := range validItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseItemStatus converts raw input into an ItemStatus.
func ParseItemStatus(value string) (ItemStatus, error) {
	for _, candidate := range validItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item status %q", value)
}
