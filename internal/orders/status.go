package orders

import "github.com/angelmondragon/partcustody/pkg/enums"

// DeriveStatus computes an order's status from its item statuses.
// Rules are checked in order and the first match wins:
//
//  1. every item PICKED_UP                      -> PICKED_UP
//  2. some item PICKED_UP and some NOT_PICKED_UP -> PARTIALLY_PICKED_UP
//  3. some item READY_FOR_PICKUP                -> READY_FOR_PICKUP
//  4. some item READY_FOR_RETURN                -> READY_FOR_RETURN
//  5. every item RETURNED                       -> RETURNED
//  6. otherwise                                 -> READY_FOR_PICKUP
//
// An empty list falls through to rule 6, as do lists made only of unknown values.
func DeriveStatus(statuses []enums.ItemStatus) enums.OrderStatus {
	if len(statuses) == 0 {
		return enums.OrderStatusReadyForPickup
	}

	var pickedUp, notPickedUp, readyForPickup, readyForReturn, returned int
	for _, status := range statuses {
		switch status {
		case enums.ItemStatusPickedUp:
			pickedUp++
		case enums.ItemStatusNotPickedUp:
			notPickedUp++
		case enums.ItemStatusReadyForPickup:
			readyForPickup++
		case enums.ItemStatusReadyForReturn:
			readyForReturn++
		case enums.ItemStatusReturned:
			returned++
		}
	}

	switch {
	case pickedUp == len(statuses):
		return enums.OrderStatusPickedUp
	case pickedUp > 0 && notPickedUp > 0:
		return enums.OrderStatusPartiallyPickedUp
	case readyForPickup > 0:
		return enums.OrderStatusReadyForPickup
	case readyForReturn > 0:
		return enums.OrderStatusReadyForReturn
	case returned == len(statuses):
		return enums.OrderStatusReturned
	default:
		return enums.OrderStatusReadyForPickup
	}
}

// DeriveOrderStatus is DeriveStatus over the items' statuses.
func DeriveOrderStatus(items []Item) enums.OrderStatus {
	statuses := make([]enums.ItemStatus, len(items))
	for i, item := range items {
		statuses[i] = item.Status
	}
	return DeriveStatus(statuses)
}
