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

type itemActionRequest struct {
	Type     enums.CustodyAction `json:"type"`
	PhotoURI string              `json:"photoUri"`
	Geo      *outbox.Geo         `json:"geo,omitempty"`
}

// RecordItemAction applies a pickup or return to one item.
func RecordItemAction(svc custody.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req itemActionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.RecordItemAction(r.Context(), custody.ItemActionInput{
			ItemID:  validators.SanitizeID(chi.URLParam(r, "itemId")),
			Action:  req.Type,
			Capture: custody.Capture{PhotoRef: req.PhotoURI, Location: req.Geo},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !result.Applied {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "item not found"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newActionView(result))
	}
}
