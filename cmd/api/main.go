package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/partcustody/api/routes"
	"github.com/angelmondragon/partcustody/internal/cron"
	"github.com/angelmondragon/partcustody/internal/custody"
	"github.com/angelmondragon/partcustody/internal/persistence"
	"github.com/angelmondragon/partcustody/pkg/config"
	"github.com/angelmondragon/partcustody/pkg/env"
	"github.com/angelmondragon/partcustody/pkg/instance"
	"github.com/angelmondragon/partcustody/pkg/logger"
	"github.com/angelmondragon/partcustody/pkg/metrics"
	pkgredis "github.com/angelmondragon/partcustody/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to open storage backend", err)
		os.Exit(1)
	}
	defer backend.close(context.Background(), logg)

	bridge := persistence.NewBridge(backend.store, logg)
	custodyService, err := custody.NewService(custody.ServiceParams{
		Snapshots: bridge,
		Logger:    logg,
		Metrics:   metrics.NewCustodyMetrics(prometheus.DefaultRegisterer),
		Reporter:  cfg.App.Reporter,
	})
	if err != nil {
		logg.Error(ctx, "failed to create custody service", err)
		os.Exit(1)
	}
	// A failed load already installed the seed dataset; serve it rather than exit.
	if err := custodyService.Load(ctx); err != nil {
		logg.Warn(ctx, "serving seed dataset after load failure")
	}

	cronService, err := newCronService(cfg, logg, custodyService, backend.redis)
	if err != nil {
		logg.Error(ctx, "failed to create cron service", err)
		os.Exit(1)
	}

	// A nil *Client stored in the interface would not compare equal to nil.
	var idempotency pkgredis.IdempotencyStore
	if backend.redis != nil {
		idempotency = backend.redis
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"driver":   bridge.Driver(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, custodyService, idempotency, bridge.Driver(), backend.deps, promhttp.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := cronService.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "cron loop stopped unexpectedly", err)
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "api server shutdown failed", err)
	}
	if err := custodyService.Save(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "final snapshot flush failed", err)
	}
	logg.Info(shutdownCtx, "api server shut down gracefully")
}

func newCronService(cfg *config.Config, logg *logger.Logger, svc custody.Service, redisClient *pkgredis.Client) (*cron.Service, error) {
	registry := cron.NewRegistry()

	flushJob, err := cron.NewSnapshotFlushJob(cron.SnapshotFlushJobParams{Logger: logg, Saver: svc})
	if err != nil {
		return nil, err
	}
	registry.RegisterEvery(flushJob, cfg.Sync.FlushInterval)

	if cfg.Sync.AutoInterval > 0 {
		syncJob, err := cron.NewOutboxSyncJob(cron.OutboxSyncJobParams{Logger: logg, Syncer: svc})
		if err != nil {
			return nil, err
		}
		registry.RegisterEvery(syncJob, cfg.Sync.AutoInterval)
	}

	var lock cron.Lock = &cron.LocalLock{}
	if redisClient != nil {
		redisLock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron"), 0)
		if err != nil {
			return nil, err
		}
		lock = redisLock
	}

	return cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Sync.CronInterval,
	})
}
