package enums

import "fmt"

// CustodyAction is the transition a driver records with a photo.
type CustodyAction string

const (
	CustodyActionPickedUp CustodyAction = "PICKED_UP"
	CustodyActionReturned CustodyAction = "RETURNED"
)

var validCustodyActions = []CustodyAction{
	CustodyActionPickedUp,
	CustodyActionReturned,
}

// String implements fmt.Stringer.
func (a CustodyAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known CustodyAction.
func (a CustodyAction) IsValid() bool {
	for _, candidate := range validCustodyActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ItemStatus is the item state the action moves an item into.
func (a CustodyAction) ItemStatus() ItemStatus {
	return ItemStatus(a)
}

// ParseCustodyAction converts raw input into a CustodyAction.
func ParseCustodyAction(value string) (CustodyAction, error) {
	for _, candidate := range validCustodyActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid custody action %q", value)
}
