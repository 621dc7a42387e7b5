package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	now := time.Date(2024, 8, 16, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "/en/matches/a", 1)

	v, ok := store.Get(context.Background(), "/en/matches/a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(59 * time.Second)
	_, ok = store.Get(context.Background(), "/en/matches/a")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = store.Get(context.Background(), "/en/matches/a")
	assert.False(t, ok)
	assert.Empty(t, store.entries, "expired entries are evicted on read")
}

func TestStore_NonPositiveTTLKeepsEntries(t *testing.T) {
	t.Parallel()

	store := NewStore[string](0)
	now := time.Date(2024, 8, 16, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", "report")
	now = now.Add(365 * 24 * time.Hour)

	v, ok := store.Get(context.Background(), "k")
	require.True(t, ok)
	assert.Equal(t, "report", v)
}

func TestStore_IgnoresEmptyKey(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	store.Set(context.Background(), "", "x")

	_, ok := store.Get(context.Background(), "")
	assert.False(t, ok)
	assert.Empty(t, store.entries)
}
