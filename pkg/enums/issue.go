package enums

import "fmt"

// IssueType classifies a problem a driver reports against an order.
type IssueType string

const (
	IssueTypeMissingParts  IssueType = "MISSING_PARTS"
	IssueTypeDamagedParts  IssueType = "DAMAGED_PARTS"
	IssueTypeWrongParts    IssueType = "WRONG_PARTS"
	IssueTypeDeliveryIssue IssueType = "DELIVERY_ISSUE"
	IssueTypeOther         IssueType = "OTHER"
)

var validIssueTypes = []IssueType{
	IssueTypeMissingParts,
	IssueTypeDamagedParts,
	IssueTypeWrongParts,
	IssueTypeDeliveryIssue,
	IssueTypeOther,
}

// String implements fmt.Stringer.
func (t IssueType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known IssueType.
func (t IssueType) IsValid() bool {
	for _, candidate := range validIssueTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseIssueType converts raw input into an IssueType.
func ParseIssueType(value string) (IssueType, error) {
	for _, candidate := range validIssueTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid issue type %q", value)
}

// IssueScope says whether an issue covers the whole order or a subset of its parts.
type IssueScope string

const (
	IssueScopeAllParts  IssueScope = "ALL_PARTS"
	IssueScopeSomeParts IssueScope = "SOME_PARTS"
)

var validIssueScopes = []IssueScope{
	IssueScopeAllParts,
	IssueScopeSomeParts,
}

// String implements fmt.Stringer.
func (s IssueScope) String() string {
	return string(s)
}

// IsValid reports whether the value is a known IssueScope.
func (s IssueScope) IsValid() bool {
	for _, candidate := range validIssueScopes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseIssueScope converts raw input into an IssueScope.
func ParseIssueScope(value string) (IssueScope, error) {
	for _, candidate := range validIssueScopes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid issue scope %q", value)
}
