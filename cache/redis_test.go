package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheRoundTrip(t *testing.T) {
	// require REDIS_URL set externally for integration tests
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set; skipping integration test")
	}

	ctx := context.Background()
	c, err := NewRedisCache(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	key := "clubcore:test:" + time.Now().UTC().Format("20060102150405.000000000")
	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, key, "Ada Lovelace", time.Second))
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got)

	assert.Eventually(t, func() bool {
		_, err := c.Get(ctx, key)
		return errors.Is(err, ErrMiss)
	}, 5*time.Second, 100*time.Millisecond)
}
