package async

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_Go(t *testing.T) {
	tests := []struct {
		name         string
		jobs         []Job
		wantFailures int
	}{
		{
			name: "successful jobs",
			jobs: []Job{
				func(ctx context.Context) error { return nil },
				func(ctx context.Context) error { return nil },
			},
		},
		{
			name: "errors are counted and not retried",
			jobs: []Job{
				func(ctx context.Context) error { return fmt.Errorf("503 service unavailable") },
				func(ctx context.Context) error { return nil },
			},
			wantFailures: 1,
		},
		{
			name: "panics are recovered",
			jobs: []Job{
				func(ctx context.Context) error { panic("boom") },
			},
			wantFailures: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(2)
			var calls atomic.Int32
			for i, job := range tt.jobs {
				require.NoError(t, d.Go(fmt.Sprintf("job-%d", i), func(ctx context.Context) error {
					calls.Add(1)
					return job(ctx)
				}))
			}
			d.Wait()

			assert.Equal(t, int32(len(tt.jobs)), calls.Load())
			assert.Equal(t, tt.wantFailures, d.Failures())
		})
	}
}

func TestDispatcher_GoDoesNotBlock(t *testing.T) {
	d := NewDispatcher(1)
	release := make(chan struct{})
	var running sync.WaitGroup
	running.Add(1)

	require.NoError(t, d.Go("blocking", func(ctx context.Context) error {
		running.Done()
		<-release
		return nil
	}))
	running.Wait()

	returned := make(chan struct{})
	go func() {
		_ = d.Go("queued", func(ctx context.Context) error { return nil })
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Go blocked while the only slot was busy")
	}
	close(release)
	d.Wait()
}

func TestDispatcher_Close(t *testing.T) {
	t.Run("waits for running jobs and rejects new ones", func(t *testing.T) {
		d := NewDispatcher(1)
		var finished atomic.Bool
		require.NoError(t, d.Go("slow", func(ctx context.Context) error {
			time.Sleep(10 * time.Millisecond)
			finished.Store(true)
			return nil
		}))

		require.NoError(t, d.Close(context.Background()))
		assert.True(t, finished.Load())
		assert.ErrorIs(t, d.Go("late", func(ctx context.Context) error { return nil }), ErrClosed)
	})

	t.Run("cancels jobs after the deadline", func(t *testing.T) {
		d := NewDispatcher(1)
		require.NoError(t, d.Go("stuck", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
		assert.Equal(t, 1, d.Failures())
	})

	t.Run("drops queued group jobs and their follow-up", func(t *testing.T) {
		d := NewDispatcher(1)
		group := d.Group()
		for i := 0; i < 4; i++ {
			require.NoError(t, group.Go(fmt.Sprintf("status-%d", i), func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			}))
		}
		var followed atomic.Bool
		require.NoError(t, group.Then("refresh", func(ctx context.Context) error {
			followed.Store(true)
			return nil
		}))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		closed := make(chan error, 1)
		go func() { closed <- d.Close(ctx) }()

		select {
		case err := <-closed:
			assert.ErrorIs(t, err, context.DeadlineExceeded)
		case <-time.After(time.Second):
			t.Fatal("Close did not return after the deadline")
		}
		assert.False(t, followed.Load())
		assert.Equal(t, 5, d.Failures())
	})
}

func TestGroup_Then(t *testing.T) {
	// A single slot must not deadlock the follow-up job
	d := NewDispatcher(1)
	group := d.Group()

	var mu sync.Mutex
	var order []string
	record := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, name)
	}

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, group.Go(name, func(ctx context.Context) error {
			time.Sleep(time.Millisecond)
			record(name)
			if name == "b" {
				return fmt.Errorf("failed")
			}
			return nil
		}))
	}
	require.NoError(t, group.Then("after", func(ctx context.Context) error {
		record("after")
		return nil
	}))
	d.Wait()

	require.Len(t, order, 4)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, order[:3])
	assert.Equal(t, "after", order[3])
	assert.Equal(t, 1, d.Failures())
}
