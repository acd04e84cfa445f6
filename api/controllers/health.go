package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/partcustody/api/responses"
	"github.com/angelmondragon/partcustody/pkg/config"
	pkgerrors "github.com/angelmondragon/partcustody/pkg/errors"
	"github.com/angelmondragon/partcustody/pkg/logger"
)

const envHeader = "X-PartCustody-Env"

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each named dependency. The memory driver has none, so it is
// always ready. driver names the blob store actually serving snapshots.
func HealthReady(cfg *config.Config, logg *logger.Logger, driver string, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := make(map[string]string, len(deps))
		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable").
					WithDetails(map[string]string{"dependency": name}))
				return
			}
			checks[name] = "ok"
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks, "driver": driver})
	}
}
