package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curtainraiser/infras/otel/mocks"
	"curtainraiser/shared/cache"
)

type payload struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), server
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	redisCache, server := newCache(t)
	ctx := context.Background()

	t.Run("struct value round trips through json", func(t *testing.T) {
		in := payload{Name: "landing", Items: []string{"a", "b"}}
		require.NoError(t, redisCache.Save(ctx, "site:landing", in, 60))

		var out payload
		require.NoError(t, redisCache.Get(ctx, "site:landing", &out))
		assert.Equal(t, in, out)
		assert.Equal(t, 60*time.Second, server.TTL("site:landing"))
	})

	t.Run("string value is stored raw", func(t *testing.T) {
		require.NoError(t, redisCache.Save(ctx, "raw", "plain", 10))

		var out string
		require.NoError(t, redisCache.Get(ctx, "raw", &out))
		assert.Equal(t, "plain", out)
	})

	t.Run("missing key is a miss", func(t *testing.T) {
		var out payload
		err := redisCache.Get(ctx, "absent", &out)
		require.Error(t, err)
		assert.True(t, cache.IsMiss(err))
	})

	t.Run("corrupt value is not a miss", func(t *testing.T) {
		require.NoError(t, server.Set("broken", "{not json"))

		var out payload
		err := redisCache.Get(ctx, "broken", &out)
		require.Error(t, err)
		assert.False(t, cache.IsMiss(err))
	})
}

func TestRedisCache_DeleteAndClear(t *testing.T) {
	redisCache, server := newCache(t)
	ctx := context.Background()

	for _, key := range []string{"gallery:1", "gallery:2", "services:1"} {
		require.NoError(t, server.Set(key, "x"))
	}

	require.NoError(t, redisCache.Delete(ctx, "services:1"))
	assert.False(t, server.Exists("services:1"))

	require.NoError(t, redisCache.Clear(ctx, "gallery*"))
	assert.False(t, server.Exists("gallery:1"))
	assert.False(t, server.Exists("gallery:2"))
}
