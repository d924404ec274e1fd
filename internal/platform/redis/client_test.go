package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuspass/internal/platform/config"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("empty url keeps challenges in memory", func(t *testing.T) {
		c, err := New(ctx, config.RedisConfig{})
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("malformed url", func(t *testing.T) {
		_, err := New(ctx, config.RedisConfig{URL: "://nope"})
		assert.ErrorContains(t, err, "parse redis url")
	})

	t.Run("connects and reports health", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c, err := New(ctx, config.RedisConfig{URL: "redis://" + mr.Addr(), PoolSize: 3})
		require.NoError(t, err)
		defer c.Close()

		assert.Equal(t, 3, c.Options().PoolSize)
		assert.NoError(t, c.Health(ctx))

		mr.Close()
		assert.ErrorContains(t, c.Health(ctx), "redis health")
	})

	t.Run("unreachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		_, err := New(ctx, config.RedisConfig{URL: "redis://" + addr, DialTimeout: 200 * time.Millisecond})
		assert.ErrorContains(t, err, "ping redis")
	})
}

func TestApplyPool(t *testing.T) {
	opts := &goredis.Options{PoolSize: 7, ReadTimeout: time.Second}
	applyPool(opts, config.RedisConfig{MinIdleConns: 2})
	assert.Equal(t, 7, opts.PoolSize)
	assert.Equal(t, 2, opts.MinIdleConns)
	assert.Equal(t, time.Second, opts.ReadTimeout)
}
