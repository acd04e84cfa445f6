package custody

import (
	"github.com/angelmondragon/partcustody/internal/orders"
	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/outbox"
)

// Capture is what the camera and location collaborators hand back for one action.
// PhotoRef is opaque; only its presence is checked.
type Capture struct {
	PhotoRef string      `json:"photoUri" validate:"required"`
	Location *outbox.Geo `json:"geo,omitempty"`
}

// ItemActionInput records one item changing hands.
type ItemActionInput struct {
	ItemID  string              `json:"partOrderItemId" validate:"required"`
	Action  enums.CustodyAction `json:"type" validate:"required,custody_action"`
	Capture Capture             `json:"capture"`
}

// OrderActionInput records several items of one order changing hands together.
type OrderActionInput struct {
	OrderID string              `json:"partOrderId" validate:"required"`
	ItemIDs []string            `json:"partOrderItemIds" validate:"required,min=1,dive,required"`
	Action  enums.CustodyAction `json:"type" validate:"required,custody_action"`
	Capture Capture             `json:"capture"`
}

// ReportIssueInput describes a problem raised against an order.
type ReportIssueInput struct {
	OrderID         string           `json:"partOrderId" validate:"required"`
	Type            enums.IssueType  `json:"type" validate:"required,issue_type"`
	Scope           enums.IssueScope `json:"scope" validate:"required,issue_scope"`
	AffectedPartIDs []string         `json:"affectedPartIds" validate:"omitempty,dive,required"`
	Description     string           `json:"description" validate:"max=2000"`
	ReportedBy      string           `json:"reportedBy" validate:"max=128"`
}

// ActionResult reports what a custody action did. Applied is false when the target
// was unknown; Persisted is false when the snapshot write failed after a local change.
type ActionResult struct {
	Applied   bool
	Persisted bool
	Order     orders.Order
	Event     outbox.PartEvent
}

// IssueResult reports a recorded issue.
type IssueResult struct {
	Applied   bool
	Persisted bool
	Issue     outbox.ReportedIssue
}

// SyncResult counts records flipped to synced by one Sync call.
type SyncResult struct {
	Events    int  `json:"events"`
	Issues    int  `json:"issues"`
	Persisted bool `json:"persisted"`
}

// Summary is the dashboard view of outstanding work.
type Summary struct {
	PendingEvents int                       `json:"pendingEvents"`
	PendingIssues int                       `json:"pendingIssues"`
	Orders        map[enums.OrderStatus]int `json:"orders"`
}
