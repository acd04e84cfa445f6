package main

import (
	"context"
	"fmt"

	"github.com/angelmondragon/partcustody/api/controllers"
	"github.com/angelmondragon/partcustody/pkg/config"
	"github.com/angelmondragon/partcustody/pkg/db"
	"github.com/angelmondragon/partcustody/pkg/enums"
	"github.com/angelmondragon/partcustody/pkg/kv"
	"github.com/angelmondragon/partcustody/pkg/kv/memory"
	"github.com/angelmondragon/partcustody/pkg/kv/s3store"
	"github.com/angelmondragon/partcustody/pkg/kv/sqlstore"
	"github.com/angelmondragon/partcustody/pkg/logger"
	"github.com/angelmondragon/partcustody/pkg/migrate"
	"github.com/angelmondragon/partcustody/pkg/redis"
)

// backend is the opened blob store plus whatever it needs closed on shutdown.
type backend struct {
	store   kv.Store
	redis   *redis.Client
	deps    map[string]controllers.Pinger
	closers []func() error
}

func (b *backend) close(ctx context.Context, logg *logger.Logger) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logg.Error(ctx, "error closing storage backend", err)
		}
	}
}

func openBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*backend, error) {
	b := &backend{deps: map[string]controllers.Pinger{}}

	switch cfg.Storage.DriverKind() {
	case enums.StorageDriverRedis:
		client, err := redis.New(ctx, cfg.Redis, cfg.Storage.Namespace, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		b.closers = append(b.closers, client.Close)
		b.redis = client
		b.store = client.Blobs()
		b.deps["redis"] = client

	case enums.StorageDriverSQL:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
		b.closers = append(b.closers, client.Close)
		if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
			b.close(ctx, logg)
			return nil, fmt.Errorf("run dev migrations: %w", err)
		}
		store, err := sqlstore.New(client)
		if err != nil {
			b.close(ctx, logg)
			return nil, err
		}
		b.store = store
		b.deps["database"] = client

	case enums.StorageDriverS3:
		store, err := s3store.New(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("bootstrap s3: %w", err)
		}
		b.store = store
		b.deps["s3"] = store

	default:
		b.store = memory.New()
	}
	return b, nil
}
