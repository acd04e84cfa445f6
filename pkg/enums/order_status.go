package enums

import "fmt"

// OrderStatus is the aggregate state of a parts order, derived from its items.
type OrderStatus string

const (
	OrderStatusReadyForPickup    OrderStatus = "READY_FOR_PICKUP"
	OrderStatusPartiallyPickedUp OrderStatus = "PARTIALLY_PICKED_UP"
	OrderStatusPickedUp          OrderStatus = "PICKED_UP"
	OrderStatusReadyForReturn    OrderStatus = "READY_FOR_RETURN"
	OrderStatusReturned          OrderStatus = "RETURNED"
	// OrderStatusOrdered is declared for wire compatibility; derivation never produces it.
	OrderStatusOrdered OrderStatus = "ORDERED"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusReadyForPickup,
	OrderStatusPartiallyPickedUp,
	OrderStatusPickedUp,
	OrderStatusReadyForReturn,
	OrderStatusReturned,
	OrderStatusOrdered,
}

// OrderStatuses returns the declared statuses in canonical order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(validOrderStatuses))
	copy(out, validOrderStatuses)
	return out
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
