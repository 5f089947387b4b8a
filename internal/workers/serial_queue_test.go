package workers

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

func startedQueue(t *testing.T) *SerialQueue {
	t.Helper()
	q := NewSerialQueue()
	q.Start(context.Background())
	t.Cleanup(q.Stop)
	return q
}

func TestSerialQueue_ReturnsTaskError(t *testing.T) {
	q := startedQueue(t)
	want := errors.New("boom")

	err := q.Do(context.Background(), func(context.Context) error { return want })
	assert.ErrorIs(t, err, want)

	err = q.Do(context.Background(), func(context.Context) error { return nil })
	assert.NoError(t, err)
}

// Задачи никогда не выполняются параллельно.
func TestSerialQueue_NoOverlap(t *testing.T) {
	q := startedQueue(t)

	var running, maxRunning atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Do(context.Background(), func(context.Context) error {
				n := running.Add(1)
				for {
					m := maxRunning.Load()
					if n <= m || maxRunning.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				running.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestSerialQueue_RecoversPanic(t *testing.T) {
	q := startedQueue(t)

	err := q.Do(context.Background(), func(context.Context) error { panic("bad") })
	assert.ErrorIs(t, err, ErrTaskPanicked)

	// очередь продолжает работать после паники
	assert.NoError(t, q.Do(context.Background(), func(context.Context) error { return nil }))
}

func TestSerialQueue_StoppedQueueRejects(t *testing.T) {
	q := NewSerialQueue()
	q.Start(context.Background())
	q.Stop()

	err := q.Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrQueueStopped)
}

func TestSerialQueue_ContextCancelledBeforeAccept(t *testing.T) {
	q := startedQueue(t)

	release := make(chan struct{})
	busy := make(chan struct{})
	go func() {
		_ = q.Do(context.Background(), func(context.Context) error {
			close(busy)
			<-release
			return nil
		})
	}()
	<-busy

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := q.Do(ctx, func(context.Context) error { return nil })
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestSerialQueue_StartIsIdempotent(t *testing.T) {
	q := NewSerialQueue()
	q.Start(context.Background())
	q.Start(context.Background())
	defer q.Stop()

	assert.NoError(t, q.Do(context.Background(), func(context.Context) error { return nil }))
}
