package orders

import "github.com/angelmondragon/partcustody/pkg/enums"

// MatchesFilter decides whether an order appears in a filtered list view.
// Partially picked-up orders straddle two states, so they match any filter one
// of their items is in; every other order matches on its own status.
func MatchesFilter(order Order, filter enums.OrderFilter) bool {
	if filter == enums.OrderFilterAll || filter == "" {
		return true
	}
	if order.Status == enums.OrderStatusPartiallyPickedUp {
		for _, item := range order.Items {
			if string(item.Status) == string(filter) {
				return true
			}
		}
		return false
	}
	return string(order.Status) == string(filter)
}

// Filter returns the orders matching filter, preserving order.
func Filter(list []Order, filter enums.OrderFilter) []Order {
	out := make([]Order, 0, len(list))
	for _, order := range list {
		if MatchesFilter(order, filter) {
			out = append(out, order)
		}
	}
	return out
}
