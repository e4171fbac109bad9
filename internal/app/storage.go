package app

import (
	"context"
	"fmt"

	"github.com/paoquentinho/storefront/pkg/config"
	"github.com/paoquentinho/storefront/pkg/db"
	"github.com/paoquentinho/storefront/pkg/logger"
	"github.com/paoquentinho/storefront/pkg/migrate"
	"github.com/paoquentinho/storefront/pkg/redis"
	"github.com/paoquentinho/storefront/pkg/storage"
)

// OpenStore boots the configured storage backend. The returned close
// function releases its connections and is never nil.
func OpenStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (storage.Store, func() error, error) {
	noop := func() error { return nil }

	backend := cfg.Storage.NormalizedBackend()
	ctx = logg.WithField(ctx, "storage_backend", backend)

	switch backend {
	case config.StorageBackendMemory, "":
		logg.Info(ctx, "using in-memory storage; records are lost on restart")
		return storage.NewMemory(), noop, nil

	case config.StorageBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap redis: %w", err)
		}
		return client, client.Close, nil

	case config.StorageBackendSQLite, config.StorageBackendPostgres:
		client, err := db.New(ctx, backend, cfg.DB, logg)
		if err != nil {
			return nil, noop, fmt.Errorf("bootstrap database: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("auto migrate: %w", err)
		}
		return db.NewKVStore(client), client.Close, nil
	}

	return nil, noop, fmt.Errorf("unsupported storage backend %q", backend)
}
