//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *Cache {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate redis: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	c, err := NewCache(DefaultConfig(fmt.Sprintf("%s:%s", host, port.Port()), "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCacheRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	c := setupRedis(t)
	ctx := context.Background()

	type summary struct {
		AvgRating float64 `json:"avgRating"`
	}

	var got summary
	assert.ErrorIs(t, c.Get(ctx, "reviews:course:1", &got), ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "reviews:course:1", summary{AvgRating: 3.5}, time.Minute))
	require.NoError(t, c.Get(ctx, "reviews:course:1", &got))
	assert.Equal(t, 3.5, got.AvgRating)

	require.NoError(t, c.Delete(ctx, "reviews:course:1"))
	assert.ErrorIs(t, c.Get(ctx, "reviews:course:1", &got), ErrCacheMiss)

	assert.ErrorIs(t, c.Set(ctx, "", summary{}, time.Minute), ErrCacheKeyEmpty)

	n, err := c.Incr(ctx, "reviews:course:1:v")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = c.Incr(ctx, "reviews:course:1:v")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var version int64
	require.NoError(t, c.Get(ctx, "reviews:course:1:v", &version))
	assert.Equal(t, int64(2), version)
}
