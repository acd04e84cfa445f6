package enums

import (
	"fmt"
	"strings"
)

// OrderFilter selects which orders the list view shows.
type OrderFilter string

const (
	OrderFilterAll            OrderFilter = "ALL"
	OrderFilterReadyForPickup OrderFilter = "READY_FOR_PICKUP"
	OrderFilterPickedUp       OrderFilter = "PICKED_UP"
	OrderFilterReadyForReturn OrderFilter = "READY_FOR_RETURN"
)

var validOrderFilters = []OrderFilter{
	OrderFilterAll,
	OrderFilterReadyForPickup,
	OrderFilterPickedUp,
	OrderFilterReadyForReturn,
}

// String implements fmt.Stringer.
func (f OrderFilter) String() string {
	return string(f)
}

// IsValid reports whether the value is a known OrderFilter.
func (f OrderFilter) IsValid() bool {
	for _, candidate := range validOrderFilters {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseOrderFilter converts raw input into an OrderFilter. Empty input means ALL.
func ParseOrderFilter(value string) (OrderFilter, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return OrderFilterAll, nil
	}
	for _, candidate := range validOrderFilters {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order filter %q", value)
}
