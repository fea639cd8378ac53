// Package bootstrap opens the shared preset store named by the configuration.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PedroPerillo/dndice/internal/config"
	"github.com/PedroPerillo/dndice/internal/database"
	quickRollRepo "github.com/PedroPerillo/dndice/internal/repositories/quick_roll"
	"github.com/redis/go-redis/v9"
)

// Store is an opened remote preset store
type Store struct {
	// Repository serves signed-in callers
	Repository quickRollRepo.Repository

	// Name is the backend name, used as a metrics label
	Name string

	closer func()
}

// Close releases the store's connections
func (s *Store) Close() {
	if s != nil && s.closer != nil {
		s.closer()
	}
}

// OpenStore connects to the backend selected by cfg.StoreBackend
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	switch cfg.StoreBackend {
	case config.StoreRedis:
		return openRedis(cfg)
	case config.StorePostgres:
		return openPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func openRedis(cfg *config.Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	repo, err := quickRollRepo.NewRedis(&quickRollRepo.RedisConfig{
		RedisClient: client,
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to create redis quick roll repository: %w", err)
	}

	slog.Default().Info("connected to redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)

	return &Store{
		Repository: repo,
		Name:       config.StoreRedis,
		closer: func() {
			if err := client.Close(); err != nil {
				slog.Default().Warn("failed to close redis client", "error", err)
			}
		},
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*Store, error) {
	pool, err := database.NewPool(ctx, &database.PoolConfig{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	repo, err := quickRollRepo.NewPostgres(&quickRollRepo.PostgresConfig{Pool: pool})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create postgres quick roll repository: %w", err)
	}

	return &Store{
		Repository: repo,
		Name:       config.StorePostgres,
		closer:     pool.Close,
	}, nil
}
