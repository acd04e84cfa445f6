package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/partcustody/api/controllers"
	"github.com/angelmondragon/partcustody/api/middleware"
	"github.com/angelmondragon/partcustody/internal/custody"
	"github.com/angelmondragon/partcustody/pkg/config"
	"github.com/angelmondragon/partcustody/pkg/logger"
	"github.com/angelmondragon/partcustody/pkg/redis"
)

// NewRouter mounts the custody API. idempotency may be nil, in which case capture
// routes are not deduplicated. metricsHandler is mounted at /metrics when non-nil.
// driver is reported by the readiness check.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	custodyService custody.Service,
	idempotency redis.IdempotencyStore,
	driver string,
	deps map[string]controllers.Pinger,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, driver, deps))
	})

	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	idem := middleware.Idempotency(idempotency, cfg.Redis.IdempotencyTTL, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(custodyService, logg))
			r.Route("/{orderId}", func(r chi.Router) {
				r.Get("/", controllers.GetOrder(custodyService, logg))
				r.With(idem).Post("/actions", controllers.RecordOrderAction(custodyService, logg))
				r.With(idem).Post("/issues", controllers.ReportIssue(custodyService, logg))
			})
		})

		r.With(idem).Post("/items/{itemId}/actions", controllers.RecordItemAction(custodyService, logg))

		r.Route("/outbox", func(r chi.Router) {
			r.Get("/", controllers.OutboxOverview(custodyService))
			r.Post("/sync", controllers.OutboxSync(custodyService, logg))
		})

		if !cfg.App.IsProd() {
			r.Post("/admin/reset", controllers.AdminReset(custodyService, logg))
		}
	})

	return r
}
