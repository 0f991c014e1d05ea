package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

const (
	reportPrefix  = "ledger:report:"
	generationKey = reportPrefix + "generation"
)

// NewClient parses a redis:// URL and pings the server.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("platform/cache: parse url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("platform/cache: ping: %w", err)
	}

	return client, nil
}

// ReportCache keeps rendered reports in Redis. Keys are namespaced by a
// generation counter; Invalidate bumps the counter so older keys are never
// read again and simply expire.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ portsrepo.ReportCache = (*ReportCache)(nil)

// NewReportCache creates a cache whose entries live for ttl.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

func (c *ReportCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func reportKey(generation int64, key string) string {
	return reportPrefix + strconv.FormatInt(generation, 10) + ":" + key
}

func (c *ReportCache) Get(ctx context.Context, key string, dest any) (int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("read cache generation: %w", err)
	}
	raw, err := c.client.Get(ctx, reportKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return gen, false, nil
	}
	if err != nil {
		return gen, false, fmt.Errorf("read cached report %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return gen, false, fmt.Errorf("decode cached report %s: %w", key, err)
	}
	return gen, true, nil
}

func (c *ReportCache) Set(ctx context.Context, generation int64, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", key, err)
	}
	return c.client.Set(ctx, reportKey(generation, key), raw, c.ttl).Err()
}

func (c *ReportCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}
