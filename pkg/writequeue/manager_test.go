package writequeue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SerializesPerKey(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	var running, maxRunning atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Execute(context.Background(), "owner-a", func() error {
				n := running.Add(1)
				for {
					cur := maxRunning.Load()
					if n <= cur || maxRunning.CompareAndSwap(cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				running.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxRunning.Load())
	assert.Equal(t, 1, m.QueueCount())
}

func TestManager_PropagatesError(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	want := errors.New("write failed")
	err := m.Execute(context.Background(), "owner-b", func() error { return want })
	assert.ErrorIs(t, err, want)
}

func TestManager_CancelledContext(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := m.Execute(ctx, "owner-c", func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestManager_ClosedRejects(t *testing.T) {
	m := New(&Config{IdleTimeout: time.Minute}, nil)
	require.NoError(t, m.Shutdown(context.Background()))
	assert.True(t, m.IsClosed())

	err := m.Execute(context.Background(), "owner-d", func() error { return nil })
	assert.ErrorIs(t, err, ErrWriteQueueClosed)
}

func TestManager_IdleCleanup(t *testing.T) {
	m := New(&Config{IdleTimeout: 20 * time.Millisecond}, nil)
	defer m.Shutdown(context.Background())

	require.NoError(t, m.Execute(context.Background(), "owner-e", func() error { return nil }))
	assert.Equal(t, 1, m.QueueCount())

	assert.Eventually(t, func() bool { return m.QueueCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestManager_StartedWriteOutlivesTimeout(t *testing.T) {
	m := New(&Config{WriteTimeout: 20 * time.Millisecond}, nil)
	defer m.Shutdown(context.Background())

	var done atomic.Bool
	err := m.Execute(context.Background(), "owner-f", func() error {
		time.Sleep(100 * time.Millisecond)
		done.Store(true)
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, done.Load())

	want := errors.New("late failure")
	err = m.Execute(context.Background(), "owner-f", func() error {
		time.Sleep(100 * time.Millisecond)
		return want
	})
	assert.ErrorIs(t, err, want)
}

func TestManager_StartedWriteOutlivesCancel(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	go func() {
		<-started
		cancel()
	}()

	var done atomic.Bool
	err := m.Execute(ctx, "owner-g", func() error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		done.Store(true)
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, done.Load())
}

func TestManager_QueuedWriteAbandonedOnTimeout(t *testing.T) {
	m := New(&Config{WriteTimeout: 20 * time.Millisecond}, nil)
	defer m.Shutdown(context.Background())

	release := make(chan struct{})
	blocking := make(chan error, 1)
	go func() {
		blocking <- m.Execute(context.Background(), "owner-h", func() error {
			<-release
			return nil
		})
	}()
	// 等待第一个写操作占住 worker
	time.Sleep(10 * time.Millisecond)

	var ran atomic.Bool
	err := m.Execute(context.Background(), "owner-h", func() error {
		ran.Store(true)
		return nil
	})
	assert.ErrorIs(t, err, ErrWriteTimeout)

	close(release)
	require.NoError(t, <-blocking)
	require.NoError(t, m.Execute(context.Background(), "owner-h", func() error { return nil }))
	assert.False(t, ran.Load())
}
