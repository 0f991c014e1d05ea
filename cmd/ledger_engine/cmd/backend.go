package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/platform/cache"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/internal/repositories/memory"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

// backend owns the storage connections of one process.
type backend struct {
	repos portsrepo.RepositoryProvider
	pool  *pgxpool.Pool
	redis *redis.Client
}

// openBackend connects the configured ledger store and, when withRedis is
// set and REDIS_URL is present, the redis client.
func openBackend(ctx context.Context, cfg *config.Config, withRedis bool) (*backend, error) {
	b := &backend{}

	switch cfg.LedgerStore {
	case config.StoreMemory:
		logger.Warn("Using the in-memory ledger store; data is lost on exit")
		b.repos = memory.NewRepositoryProvider(memory.NewStore())
	default:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		b.pool = pool
		b.repos = pgsql.NewRepositoryProvider(pool)
	}

	if withRedis && cfg.RedisURL != "" {
		client, err := cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		b.redis = client
		logger.Info("Redis connection established")
	}
	return b, nil
}

func (b *backend) Close() {
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}
	database.ClosePgxPool(b.pool, logger)
}

// services builds the service container, caching reports in redis when connected.
func (b *backend) services(cfg *config.Config) *portssvc.ServiceContainer {
	opts := services.ContainerOptions{Roles: cfg.Roles}
	if b.redis != nil {
		opts.ReportCache = cache.NewReportCache(b.redis, cfg.ReportCacheTTL)
	}
	return services.NewServiceContainer(b.repos, opts)
}

func (b *backend) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{}
	if b.pool != nil {
		checks["postgres"] = b.pool.Ping
	}
	if b.redis != nil {
		checks["redis"] = func(ctx context.Context) error { return b.redis.Ping(ctx).Err() }
	}
	return checks
}
