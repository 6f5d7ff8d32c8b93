package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "session:a", "admin", 0))

	v, err := c.Get(ctx, "session:a")
	require.NoError(t, err)
	assert.Equal(t, "admin", v)

	require.NoError(t, c.Delete(ctx, "session:a"))

	v, err = c.Get(ctx, "session:a")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestMemoryCache_MissingKeyReturnsEmpty(t *testing.T) {
	v, err := NewMemoryCache().Get(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestMemoryCache_ExpiresEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	now = now.Add(59 * time.Second)
	v, _ := c.Get(ctx, "k")
	assert.Equal(t, "v", v)

	now = now.Add(time.Second)
	v, _ = c.Get(ctx, "k")
	assert.Equal(t, "", v)
}
