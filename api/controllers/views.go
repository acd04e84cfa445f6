package controllers

import (
	"github.com/angelmondragon/partcustody/internal/custody"
	"github.com/angelmondragon/partcustody/internal/orders"
	"github.com/angelmondragon/partcustody/pkg/outbox"
)

type orderDetailView struct {
	orders.Order
	Issue *outbox.ReportedIssue `json:"issue,omitempty"`
}

type actionView struct {
	Persisted bool         `json:"persisted"`
	Order     orders.Order `json:"order"`
	Event     outbox.Wire  `json:"event"`
}

type issueView struct {
	Persisted bool                 `json:"persisted"`
	Issue     outbox.ReportedIssue `json:"issue"`
}

type outboxView struct {
	Events  outbox.Events          `json:"events"`
	Issues  []outbox.ReportedIssue `json:"issues"`
	Summary custody.Summary        `json:"summary"`
}

func newActionView(result custody.ActionResult) actionView {
	return actionView{
		Persisted: result.Persisted,
		Order:     result.Order,
		Event:     outbox.Wire{PartEvent: result.Event},
	}
}
