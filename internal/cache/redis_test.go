package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), RedisConfig{Addr: mr.Addr(), KeyPrefix: "test:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	assert.True(t, mr.Exists("test:k"))

	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))
	assert.False(t, mr.Exists("test:k"))
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("test:k"))

	mr.FastForward(time.Minute)
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_WithNoteListCache(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	c := NewNoteListCache(store, time.Minute, nil)

	var calls atomic.Int32
	loader := countingLoader(&calls, sampleNote("1", "A"))

	_, err := c.GetOrLoad(ctx, "owner-1", loader)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:notes_owner_owner-1"))

	notes, err := c.GetOrLoad(ctx, "owner-1", loader)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "A", notes[0].Title)

	require.NoError(t, c.Invalidate(ctx, "owner-1"))
	assert.False(t, mr.Exists("test:notes_owner_owner-1"))
}

func TestRedisStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(context.Background(), RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestRedisStore_GetFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)
	c := NewNoteListCache(store, time.Minute, nil)

	mr.SetError("ERR server unavailable")
	var calls atomic.Int32
	notes, err := c.GetOrLoad(ctx, "owner-1", countingLoader(&calls, sampleNote("1", "A")))
	require.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, int32(1), calls.Load())

	assert.Error(t, c.Invalidate(ctx, "owner-1"))
	mr.SetError("")
}
