package redis

import (
	"context"
	"testing"
	"time"

	"irrigation-dashboard/internal/app/selector"
	"irrigation-dashboard/internal/app/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := NewFromRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("saves and loads a session", func(t *testing.T) {
		client, _ := setupTestClient(t)
		store := NewSessionStore(client)
		expires := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

		err := store.Save(ctx, "abc", session.Data{Token: "tok", Email: "op@farm.br", ExpiresAt: expires}, time.Hour)
		require.NoError(t, err)

		data, err := store.Load(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, "tok", data.Token)
		assert.Equal(t, "op@farm.br", data.Email)
		assert.True(t, expires.Equal(data.ExpiresAt))
	})

	t.Run("missing session", func(t *testing.T) {
		client, _ := setupTestClient(t)
		_, err := NewSessionStore(client).Load(ctx, "nope")
		assert.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("session expires with its TTL", func(t *testing.T) {
		client, mr := setupTestClient(t)
		store := NewSessionStore(client)
		require.NoError(t, store.Save(ctx, "abc", session.Data{Token: "tok"}, time.Minute))

		mr.FastForward(2 * time.Minute)

		_, err := store.Load(ctx, "abc")
		assert.ErrorIs(t, err, session.ErrNoSession)
	})

	t.Run("delete removes the session", func(t *testing.T) {
		client, _ := setupTestClient(t)
		store := NewSessionStore(client)
		require.NoError(t, store.Save(ctx, "abc", session.Data{Token: "tok"}, time.Minute))

		require.NoError(t, store.Delete(ctx, "abc"))

		_, err := store.Load(ctx, "abc")
		assert.ErrorIs(t, err, session.ErrNoSession)
	})
}

func TestOptionCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip with TTL", func(t *testing.T) {
		client, mr := setupTestClient(t)
		cache := NewOptionCache(client)
		opts := []selector.Option{{ID: "7", Label: "Estação Norte"}}

		cache.Set(ctx, "measurements|sensorId|7", opts, 2*time.Minute)

		got, ok := cache.Get(ctx, "measurements|sensorId|7")
		require.True(t, ok)
		assert.Equal(t, opts, got)

		mr.FastForward(3 * time.Minute)
		_, ok = cache.Get(ctx, "measurements|sensorId|7")
		assert.False(t, ok)
	})

	t.Run("corrupt entry is a miss", func(t *testing.T) {
		client, mr := setupTestClient(t)
		require.NoError(t, mr.Set(optionsPrefix+"k", "{not json"))

		_, ok := NewOptionCache(client).Get(ctx, "k")
		assert.False(t, ok)
		assert.False(t, mr.Exists(optionsPrefix+"k"))
	})

	t.Run("unreachable redis is a miss", func(t *testing.T) {
		client, mr := setupTestClient(t)
		cache := NewOptionCache(client)
		cache.Set(ctx, "k", []selector.Option{{ID: "1", Label: "A"}}, time.Minute)
		mr.Close()

		_, ok := cache.Get(ctx, "k")
		assert.False(t, ok)
	})
}

func TestSessionStore_SaveReplacesFields(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestClient(t)
	store := NewSessionStore(client)

	mr.HSet(sessionPrefix+"abc", "stale", "1")
	require.NoError(t, store.Save(ctx, "abc", session.Data{Token: "tok", Email: "op@farm.br"}, time.Hour))

	assert.Empty(t, mr.HGet(sessionPrefix+"abc", "stale"))
	assert.Equal(t, "tok", mr.HGet(sessionPrefix+"abc", "token"))
	assert.Equal(t, time.Hour, mr.TTL(sessionPrefix+"abc"))
}
