package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/partcustody/api/responses"
	"github.com/angelmondragon/partcustody/api/validators"
	"github.com/angelmondragon/partcustody/internal/custody"
	"github.com/angelmondragon/partcustody/pkg/enums"
	pkgerrors "github.com/angelmondragon/partcustody/pkg/errors"
	"github.com/angelmondragon/partcustody/pkg/logger"
	"github.com/angelmondragon/partcustody/pkg/outbox"
)

type orderActionRequest struct {
	Type     enums.CustodyAction `json:"type"`
	ItemIDs  []string            `json:"partOrderItemIds"`
	PhotoURI string              `json:"photoUri"`
	Geo      *outbox.Geo         `json:"geo,omitempty"`
}

type reportIssueRequest struct {
	Type            enums.IssueType  `json:"type"`
	Scope           enums.IssueScope `json:"scope"`
	AffectedPartIDs []string         `json:"affectedPartIds,omitempty"`
	Description     string           `json:"description,omitempty"`
	ReportedBy      string           `json:"reportedBy,omitempty"`
}

// ListOrders returns the orders matching ?filter=.
func ListOrders(svc custody.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := validators.ParseOrderFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.Orders(filter))
	}
}

// GetOrder returns one order with the first issue reported against it.
func GetOrder(svc custody.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := validators.SanitizeID(chi.URLParam(r, "orderId"))
		order, ok := svc.Order(orderID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		view := orderDetailView{Order: order}
		if issue, found := svc.IssueForOrder(orderID); found {
			view.Issue = &issue
		}
		responses.WriteSuccess(w, view)
	}
}

// RecordOrderAction applies a pickup or return to selected items of an order.
func RecordOrderAction(svc custody.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req orderActionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID := validators.SanitizeID(chi.URLParam(r, "orderId"))
		result, err := svc.RecordOrderAction(r.Context(), custody.OrderActionInput{
			OrderID: orderID,
			ItemIDs: req.ItemIDs,
			Action:  req.Type,
			Capture: custody.Capture{PhotoRef: req.PhotoURI, Location: req.Geo},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !result.Applied {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newActionView(result))
	}
}

// ReportIssue records a problem against an order.
func ReportIssue(svc custody.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reportIssueRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ReportIssue(r.Context(), custody.ReportIssueInput{
			OrderID:         validators.SanitizeID(chi.URLParam(r, "orderId")),
			Type:            req.Type,
			Scope:           req.Scope,
			AffectedPartIDs: req.AffectedPartIDs,
			Description:     req.Description,
			ReportedBy:      req.ReportedBy,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !result.Applied {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, issueView{Persisted: result.Persisted, Issue: result.Issue})
	}
}
