package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-link-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// failingStore fails the operations whose flags are set
type failingStore struct {
	*MemoryStore
	failGet, failSet, failDelete bool
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.failGet {
		return nil, false, errors.New("get down")
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.failSet {
		return errors.New("set down")
	}
	return f.MemoryStore.Set(ctx, key, value, ttl)
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	if f.failDelete {
		return errors.New("delete down")
	}
	return f.MemoryStore.Delete(ctx, key)
}

// trackedOwners 当前有加载进行中的所有者数量
func (c *NoteListCache) trackedOwners() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.loads)
}

func countingLoader(calls *atomic.Int32, notes ...*domain.Note) Loader {
	return func(context.Context) ([]*domain.Note, error) {
		calls.Add(1)
		return notes, nil
	}
}

func sampleNote(id, title string) *domain.Note {
	updated := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Note{
		ID:        id,
		Title:     title,
		Content:   "see [[Other]]",
		OwnerID:   "owner-1",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: &updated,
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "notes_owner_abc", Key("abc"))
}

func TestNoteListCache_HitSkipsLoader(t *testing.T) {
	ctx := context.Background()
	c := NewNoteListCache(NewMemoryStore(), time.Minute, nil)

	var calls atomic.Int32
	loader := countingLoader(&calls, sampleNote("1", "A"))

	first, err := c.GetOrLoad(ctx, "owner-1", loader)
	require.NoError(t, err)
	second, err := c.GetOrLoad(ctx, "owner-1", loader)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, "see [[Other]]", second[0].Content)
	require.NotNil(t, second[0].UpdatedAt)
	assert.True(t, first[0].UpdatedAt.Equal(*second[0].UpdatedAt))
}

func TestNoteListCache_InvalidateForcesReload(t *testing.T) {
	ctx := context.Background()
	c := NewNoteListCache(NewMemoryStore(), time.Minute, nil)

	var calls atomic.Int32
	loader := countingLoader(&calls)

	_, err := c.GetOrLoad(ctx, "owner-1", loader)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "owner-1"))
	_, err = c.GetOrLoad(ctx, "owner-1", loader)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestNoteListCache_InvalidateIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	c := NewNoteListCache(NewMemoryStore(), time.Minute, nil)

	var a, b atomic.Int32
	_, _ = c.GetOrLoad(ctx, "a", countingLoader(&a))
	_, _ = c.GetOrLoad(ctx, "b", countingLoader(&b))

	require.NoError(t, c.Invalidate(ctx, "a"))
	require.NoError(t, c.Invalidate(ctx, "never-cached"))

	_, _ = c.GetOrLoad(ctx, "a", countingLoader(&a))
	_, _ = c.GetOrLoad(ctx, "b", countingLoader(&b))

	assert.Equal(t, int32(2), a.Load())
	assert.Equal(t, int32(1), b.Load())
}

func TestNoteListCache_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	store := NewMemoryStore().WithClock(clock.Now)
	c := NewNoteListCache(store, 0, nil)
	assert.Equal(t, DefaultTTL, c.TTL())

	var calls atomic.Int32
	loader := countingLoader(&calls)

	_, _ = c.GetOrLoad(ctx, "owner-1", loader)
	clock.Advance(59 * time.Second)
	_, _ = c.GetOrLoad(ctx, "owner-1", loader)
	assert.Equal(t, int32(1), calls.Load())

	clock.Advance(time.Second)
	_, _ = c.GetOrLoad(ctx, "owner-1", loader)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNoteListCache_LoaderErrorNotCached(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := NewNoteListCache(store, time.Minute, nil)

	boom := errors.New("db down")
	_, err := c.GetOrLoad(ctx, "owner-1", func(context.Context) ([]*domain.Note, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())
}

func TestNoteListCache_CoalescesConcurrentMisses(t *testing.T) {
	ctx := context.Background()
	c := NewNoteListCache(NewMemoryStore(), time.Minute, nil)

	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) ([]*domain.Note, error) {
		calls.Add(1)
		<-release
		return []*domain.Note{sampleNote("1", "A")}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			notes, err := c.GetOrLoad(ctx, "owner-1", loader)
			assert.NoError(t, err)
			assert.Len(t, notes, 1)
		}()
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(2))
}

func TestNoteListCache_StaleLoadNotWrittenBack(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := NewNoteListCache(store, time.Minute, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, err := c.GetOrLoad(ctx, "owner-1", func(context.Context) ([]*domain.Note, error) {
			close(started)
			<-release
			return []*domain.Note{sampleNote("old", "Before")}, nil
		})
		assert.NoError(t, err)
	}()

	<-started
	require.NoError(t, c.Invalidate(ctx, "owner-1"))
	close(release)
	<-done

	_, ok, err := store.Get(ctx, Key("owner-1"))
	require.NoError(t, err)
	assert.False(t, ok)

	var calls atomic.Int32
	notes, err := c.GetOrLoad(ctx, "owner-1", countingLoader(&calls, sampleNote("new", "After")))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "new", notes[0].ID)
}

func TestNoteListCache_ForgetsOwnersWithoutLoads(t *testing.T) {
	ctx := context.Background()
	c := NewNoteListCache(NewMemoryStore(), time.Minute, nil)

	var calls atomic.Int32
	for _, owner := range []string{"owner-1", "owner-2", "owner-3"} {
		_, err := c.GetOrLoad(ctx, owner, countingLoader(&calls))
		require.NoError(t, err)
		require.NoError(t, c.Invalidate(ctx, owner))
	}
	assert.Equal(t, 0, c.trackedOwners())

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.GetOrLoad(ctx, "owner-1", func(context.Context) ([]*domain.Note, error) {
			close(started)
			<-release
			return nil, nil
		})
	}()

	<-started
	assert.Equal(t, 1, c.trackedOwners())
	close(release)
	<-done
	assert.Equal(t, 0, c.trackedOwners())
}

func TestNoteListCache_BackendFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("get failure falls back to loader", func(t *testing.T) {
		c := NewNoteListCache(&failingStore{MemoryStore: NewMemoryStore(), failGet: true}, time.Minute, nil)
		var calls atomic.Int32
		notes, err := c.GetOrLoad(ctx, "o", countingLoader(&calls, sampleNote("1", "A")))
		require.NoError(t, err)
		assert.Len(t, notes, 1)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("set failure still returns data", func(t *testing.T) {
		c := NewNoteListCache(&failingStore{MemoryStore: NewMemoryStore(), failSet: true}, time.Minute, nil)
		var calls atomic.Int32
		notes, err := c.GetOrLoad(ctx, "o", countingLoader(&calls, sampleNote("1", "A")))
		require.NoError(t, err)
		assert.Len(t, notes, 1)
	})

	t.Run("delete failure surfaces", func(t *testing.T) {
		c := NewNoteListCache(&failingStore{MemoryStore: NewMemoryStore(), failDelete: true}, time.Minute, nil)
		assert.Error(t, c.Invalidate(ctx, "o"))
	})

	t.Run("corrupt entry reloads", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Set(ctx, Key("o"), []byte("not json"), time.Minute))
		c := NewNoteListCache(store, time.Minute, nil)
		var calls atomic.Int32
		_, err := c.GetOrLoad(ctx, "o", countingLoader(&calls))
		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestMemoryStore_Purge(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	store := NewMemoryStore().WithClock(clock.Now)

	require.NoError(t, store.Set(ctx, "short", []byte("1"), time.Second))
	require.NoError(t, store.Set(ctx, "long", []byte("2"), time.Hour))

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, store.Purge())
	assert.Equal(t, 1, store.Len())

	v, ok, err := store.Get(ctx, "long")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("2"), v)

	require.NoError(t, store.Close())
	assert.Equal(t, 0, store.Len())
}

func TestNewStore(t *testing.T) {
	s, err := NewStore(context.Background(), Config{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = NewStore(context.Background(), Config{Driver: "etcd"})
	assert.Error(t, err)
}
