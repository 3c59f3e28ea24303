// Package bootstrap runs a command with shutdown hooks.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"
)

const DefaultShutdownTimeout = 10 * time.Second

type hook struct {
	name string
	fn   func(ctx context.Context) error
}

// App runs a command and then its shutdown hooks, whether the command
// finished on its own or was interrupted.
type App struct {
	timeout time.Duration

	mu    sync.Mutex
	hooks []hook
}

// New creates an App whose hooks share timeout. A non-positive timeout uses
// DefaultShutdownTimeout.
func New(timeout time.Duration) *App {
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	return &App{timeout: timeout}
}

// AddShutdownHook registers fn. Hooks run in reverse order (LIFO).
func (a *App) AddShutdownHook(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, hook{name: name, fn: fn})
}

// Run calls run with a context cancelled on interrupt, waits for it to
// return and runs the shutdown hooks. Errors of run and of the hooks are
// joined.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
		slog.Default().Info("interrupted, shutting down")
		select {
		case runErr = <-errCh:
		case <-time.After(a.timeout):
			runErr = fmt.Errorf("command did not stop within %s", a.timeout)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.timeout)
	defer shutdownCancel()
	return errors.Join(runErr, a.shutdown(shutdownCtx))
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	hooks := a.hooks
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i].fn(ctx); err != nil {
			slog.Default().Warn("shutdown hook failed",
				slog.String("hook", hooks[i].name),
				slog.Any("error", err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", hooks[i].name, err))
		}
	}
	return errors.Join(errs...)
}
