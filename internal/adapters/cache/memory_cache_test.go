package cache

import (
	"context"
	"testing"
	"time"

	"github.com/mikey/comm-classifier/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEntry(digest string, ttl time.Duration) *core.CacheEntry {
	return &core.CacheEntry{
		Digest:         digest,
		Classification: core.Spam,
		Score:          0.87,
		IsHighRisk:     true,
		LastSeen:       time.Now(),
		ExpiresAt:      time.Now().Add(ttl),
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, newEntry("abc", time.Hour)))

	entry, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, core.Spam, entry.Classification)
	assert.InDelta(t, 0.87, float64(entry.Score), 1e-6)
	assert.True(t, entry.IsHighRisk)
}

func TestMemoryCache_GetMissing(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()

	_, err := c.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_ExpiredEntryNotReturned(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, newEntry("stale", -time.Minute)))

	_, err := c.Get(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, newEntry("abc", time.Hour)))
	require.NoError(t, c.Delete(ctx, "abc"))

	_, err := c.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_Cleanup(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, newEntry("fresh", time.Hour)))
	require.NoError(t, c.Set(ctx, newEntry("stale", -time.Minute)))

	require.NoError(t, c.Cleanup(ctx))

	_, err := c.Get(ctx, "fresh")
	assert.NoError(t, err)

	c.mu.RLock()
	_, stalePresent := c.entries["stale"]
	c.mu.RUnlock()
	assert.False(t, stalePresent)
}
