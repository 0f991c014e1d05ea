package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	Total decimal.Decimal `json:"total"`
	Label string          `json:"label"`
}

func newTestCache(t *testing.T) (*ReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCache(client, time.Minute), mr
}

func TestReportCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got report
	gen, found, err := c.Get(ctx, "trial-balance:2024-06-30", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, int64(0), gen)

	require.NoError(t, c.Set(ctx, gen, "trial-balance:2024-06-30", report{Total: decimal.RequireFromString("1700.00"), Label: "tb"}))

	_, found, err = c.Get(ctx, "trial-balance:2024-06-30", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tb", got.Label)
	assert.True(t, decimal.RequireFromString("1700").Equal(got.Total))
}

func TestReportCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, "balance-sheet:2024-06-30", report{Label: "old"}))
	require.NoError(t, c.Invalidate(ctx))

	var got report
	gen, found, err := c.Get(ctx, "balance-sheet:2024-06-30", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, int64(1), gen)
}

func TestReportCacheDropsStaleGeneration(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got report
	gen, _, err := c.Get(ctx, "cash-flow", &got)
	require.NoError(t, err)

	// A post lands while the report is being built.
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, gen, "cash-flow", report{Label: "stale"}))

	_, found, err := c.Get(ctx, "cash-flow", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestReportCacheEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, "income", report{Label: "x"}))
	mr.FastForward(2 * time.Minute)

	var got report
	_, found, err := c.Get(ctx, "income", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewClient(context.Background(), "not a url")
	assert.Error(t, err)
}
