// Package async runs fire-and-forget background calls such as status
// uploads. Each call runs once; failures are logged and never retried.
package async

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var ErrClosed = errors.New("dispatcher is closed")

// Job is a unit of background work.
type Job func(ctx context.Context) error

// Dispatcher runs jobs on their own goroutines with at most a fixed number
// running at the same time. Go never blocks the caller.
type Dispatcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	slots  chan struct{}

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup

	failures int
}

// NewDispatcher creates a Dispatcher running up to workers jobs at once.
// Jobs receive a context that is only cancelled by Close.
func NewDispatcher(workers int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		ctx:    ctx,
		cancel: cancel,
		slots:  make(chan struct{}, workers),
	}
}

// Go schedules job and returns immediately. name identifies the job in logs.
func (d *Dispatcher) Go(name string, job Job) error {
	return d.goAfter(name, nil, nil, job)
}

// goAfter schedules job once wait returns. onDone runs when the goroutine
// ends, whether job ran or was dropped by Close.
func (d *Dispatcher) goAfter(name string, wait, onDone func(), job Job) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		slog.Default().Warn("dispatcher is closed, dropping job", slog.String("job", name))
		return ErrClosed
	}
	d.pending.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.pending.Done()
		if onDone != nil {
			defer onDone()
		}
		if wait != nil {
			wait()
		}
		if err := d.ctx.Err(); err != nil {
			d.fail(name, err)
			return
		}

		select {
		case d.slots <- struct{}{}:
		case <-d.ctx.Done():
			d.fail(name, d.ctx.Err())
			return
		}
		defer func() { <-d.slots }()

		if err := d.run(job); err != nil {
			d.fail(name, err)
			return
		}
		slog.Default().Debug("background job finished", slog.String("job", name))
	}()
	return nil
}

func (d *Dispatcher) run(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return job(d.ctx)
}

func (d *Dispatcher) fail(name string, err error) {
	d.mu.Lock()
	d.failures++
	d.mu.Unlock()
	slog.Default().Warn("background job failed",
		slog.String("job", name),
		slog.Any("error", err),
	)
}

// Failures returns how many jobs have failed so far.
func (d *Dispatcher) Failures() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.failures
}

// Wait blocks until every scheduled job has finished.
func (d *Dispatcher) Wait() {
	d.pending.Wait()
}

// Close stops accepting jobs and waits for running ones until ctx is done,
// after which the jobs' context is cancelled.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return fmt.Errorf("wait for background jobs: %w", ctx.Err())
	}
}
