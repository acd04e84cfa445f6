package outbox

import (
	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/types"
)

// ReportedIssue is a problem a driver raised against an order.
// AffectedPartIDs is set only for SOME_PARTS; Description only for OTHER.
type ReportedIssue struct {
	ID              string           `json:"id"`
	PartOrderID     string           `json:"partOrderId"`
	Type            enums.IssueType  `json:"type"`
	Scope           enums.IssueScope `json:"scope"`
	AffectedPartIDs []string         `json:"affectedPartIds,omitempty"`
	Description     string           `json:"description,omitempty"`
	ReportedBy      string           `json:"reportedBy"`
	Timestamp       types.UnixMillis `json:"timestamp"`
	Synced          bool             `json:"synced"`
}

func (i ReportedIssue) clone() ReportedIssue {
	if i.AffectedPartIDs != nil {
		i.AffectedPartIDs = append([]string(nil), i.AffectedPartIDs...)
	}
	return i
}
