package cache_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/tracker/adapters/cache"
	"fittrack/internal/tracker/config"
	ports "fittrack/internal/tracker/ports/cache"
)

func newTestCache(t *testing.T) (ports.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := &config.RedisConfig{
		Host:           mr.Host(),
		Port:           port,
		ConnectTimeout: time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		PoolSize:       2,
		DefaultTTL:     time.Minute,
	}

	c, err := cache.NewRedisCache(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	require.NoError(t, c.Set(ctx, "userlog:1", `{"count":2}`, 0))

	value, err := c.Get(ctx, "userlog:1")
	require.NoError(t, err)
	assert.Equal(t, `{"count":2}`, value)
}

func TestRedisCacheMiss(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	value, err := c.Get(ctx, "userlog:missing")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRedisCacheDefaultTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.NoError(t, c.Set(ctx, "userlog:1", "value", 0))
	assert.Equal(t, time.Minute, mr.TTL("userlog:1"))

	require.NoError(t, c.Set(ctx, "userlog:2", "value", 5*time.Second))
	assert.Equal(t, 5*time.Second, mr.TTL("userlog:2"))
}

func TestRedisCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	require.NoError(t, c.Set(ctx, "userlog:1", "value", 0))
	require.NoError(t, c.Delete(ctx, "userlog:1"))

	value, err := c.Get(ctx, "userlog:1")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRedisCacheConnectionFailure(t *testing.T) {
	cfg := &config.RedisConfig{
		Host:           "localhost",
		Port:           1,
		ConnectTimeout: 100 * time.Millisecond,
	}

	_, err := cache.NewRedisCache(context.Background(), cfg)
	require.Error(t, err)
}
