package controllers

import (
	"net/http"

	"github.com/angelmondragon/partcustody/api/responses"
	"github.com/angelmondragon/partcustody/internal/custody"
	"github.com/angelmondragon/partcustody/pkg/logger"
)

// AdminReset restores the seed dataset. In-memory state is reset even when clearing
// the store fails; the failure is still reported.
func AdminReset(svc custody.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Reset(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"status": "reset",
			"orders": len(svc.Orders("")),
		})
	}
}
