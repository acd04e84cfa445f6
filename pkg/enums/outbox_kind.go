package enums

import "fmt"

// OutboxKind labels the two record families held by the outbox.
type OutboxKind string

const (
	OutboxKindEvent OutboxKind = "event"
	OutboxKindIssue OutboxKind = "issue"
)

var validOutboxKinds = []OutboxKind{
	OutboxKindEvent,
	OutboxKindIssue,
}

// String implements fmt.Stringer.
func (k OutboxKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known OutboxKind.
func (k OutboxKind) IsValid() bool {
	for _, candidate := range validOutboxKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseOutboxKind converts raw input into an OutboxKind.
func ParseOutboxKind(value string) (OutboxKind, error) {
	for _, candidate := range validOutboxKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid outbox kind %q", value)
}
