package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNoopAlwaysMisses(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, c.Delete(ctx, "k"))
	n, err := c.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, c.Close())
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := NewRedisCache(ctx, NewRedisCacheConfig{Address: "127.0.0.1:1"}, zap.NewNop())
	assert.Error(t, err)
}

func TestRedisCacheDeleteWithoutKeys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	c := NewRedisCacheFromClient(client, zap.NewNop())
	defer c.Close()

	assert.NoError(t, c.Delete(context.Background()))
}
