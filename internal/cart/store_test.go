package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_Get(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	t.Run("Empty cart", func(t *testing.T) {
		c, err := store.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, c)
	})

	t.Run("Skips malformed quantities", func(t *testing.T) {
		mr.HSet(cartKey("user-2"), "p1", "2")
		mr.HSet(cartKey("user-2"), "p2_M", "abc")
		mr.HSet(cartKey("user-2"), "p3", "0")

		c, err := store.Get(ctx, "user-2")
		require.NoError(t, err)
		assert.Equal(t, Cart{"p1": 2}, c)
	})

	t.Run("Redis down", func(t *testing.T) {
		mr.SetError("boom")
		defer mr.SetError("")

		_, err := store.Get(ctx, "user-1")
		assert.Error(t, err)
	})
}

func TestRedisStore_Replace(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	mr.HSet(cartKey("user-1"), "old", "9")

	err := store.Replace(ctx, "user-1", Cart{"p1": 1, "p2_XL": 3})
	require.NoError(t, err)

	assert.Equal(t, "", mr.HGet(cartKey("user-1"), "old"))
	assert.Equal(t, "1", mr.HGet(cartKey("user-1"), "p1"))
	assert.Equal(t, "3", mr.HGet(cartKey("user-1"), "p2_XL"))
	assert.True(t, mr.TTL(cartKey("user-1")) > 0)

	t.Run("Empty cart removes the key", func(t *testing.T) {
		require.NoError(t, store.Replace(ctx, "user-1", Cart{}))
		assert.False(t, mr.Exists(cartKey("user-1")))
	})
}

func TestRedisStore_Increment(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	qty, err := store.Increment(ctx, "user-1", "p1_S", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, qty)

	qty, err = store.Increment(ctx, "user-1", "p1_S", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, qty)

	qty, err = store.Increment(ctx, "user-1", "p1_S", -2)
	require.NoError(t, err)
	assert.Equal(t, 0, qty)
	assert.Equal(t, "", mr.HGet(cartKey("user-1"), "p1_S"))
}

func TestRedisStore_RemoveAndClear(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	mr.HSet(cartKey("user-1"), "p1", "2")
	mr.HSet(cartKey("user-1"), "p2", "1")

	require.NoError(t, store.Remove(ctx, "user-1", "p1"))
	assert.ErrorIs(t, store.Remove(ctx, "user-1", "p1"), ErrCartItemNotFound)

	require.NoError(t, store.Clear(ctx, "user-1"))
	assert.False(t, mr.Exists(cartKey("user-1")))

	// clearing an absent cart is not an error
	require.NoError(t, store.Clear(ctx, "user-1"))
}
