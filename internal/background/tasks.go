// Package background runs fire-and-forget continuations of request handling.
// Once the HTTP response is produced, remaining engine work is handed here:
// it runs to completion, its failures are logged, and nothing it does can
// reach an HTTP consumer or crash the process.
package background

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hookbridge/hookbridge/internal/logger"
)

// Group tracks detached tasks so the host can drain them before shutdown.
type Group struct {
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewGroup creates a task group reporting through the given logger.
func NewGroup(log *slog.Logger) *Group {
	if log == nil {
		log = slog.Default()
	}
	return &Group{logger: log}
}

// Go runs fn on its own goroutine. Errors and panics are logged with the
// task name and terminate only the task; they are never propagated.
func (g *Group) Go(ctx context.Context, name string, fn func(context.Context) error) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		log := logger.DeriveRequestLogger(ctx, g.logger)
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("background task panicked", "task", name, "panic", rec)
			}
		}()

		if err := fn(ctx); err != nil {
			log.Error("background task failed", "task", name, "error", err)
		}
	}()
}

// Drain waits for all in-flight tasks to settle, or gives up when the
// context expires. Tasks keep running after a failed drain; they are only
// abandoned, never cancelled.
func (g *Group) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
