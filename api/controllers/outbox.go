package controllers

import (
	"net/http"

	"github.com/angelmondragon/partcustody/api/responses"
	"github.com/angelmondragon/partcustody/internal/custody"
	"github.com/angelmondragon/partcustody/pkg/logger"
)

// OutboxOverview lists every queued event and issue with the pending counts.
func OutboxOverview(svc custody.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, outboxView{
			Events:  svc.Events(),
			Issues:  svc.Issues(),
			Summary: svc.Summary(),
		})
	}
}

// OutboxSync marks everything pending as uploaded.
func OutboxSync(svc custody.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := svc.Sync(r.Context())
		logg.Info(logg.WithFields(r.Context(), map[string]any{
			"events_synced": result.Events,
			"issues_synced": result.Issues,
		}), "outbox.sync")
		responses.WriteSuccess(w, result)
	}
}
