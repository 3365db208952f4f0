package background

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() (*slog.Logger, *bytes.Buffer) {
	var buf syncBuffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf.Buffer
}

// syncBuffer guards the buffer since tasks log from their own goroutines.
type syncBuffer struct {
	mu sync.Mutex
	bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Buffer.Write(p)
}

func TestGroupRunsTasksToCompletion(t *testing.T) {
	log, _ := testLogger()
	g := NewGroup(log)

	done := make(chan struct{})
	g.Go(context.Background(), "work", func(_ context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
	require.NoError(t, g.Drain(context.Background()))
}

func TestGroupLogsTaskErrors(t *testing.T) {
	log, buf := testLogger()
	g := NewGroup(log)

	g.Go(context.Background(), "failing task", func(_ context.Context) error {
		return errors.New("post-response failure")
	})
	require.NoError(t, g.Drain(context.Background()))

	assert.Contains(t, buf.String(), "background task failed")
	assert.Contains(t, buf.String(), "post-response failure")
}

func TestGroupRecoversPanics(t *testing.T) {
	log, buf := testLogger()
	g := NewGroup(log)

	g.Go(context.Background(), "panicking task", func(_ context.Context) error {
		panic("boom")
	})
	require.NoError(t, g.Drain(context.Background()))

	assert.Contains(t, buf.String(), "background task panicked")
	assert.Contains(t, buf.String(), "boom")
}

func TestDrainTimesOutOnHeldTasks(t *testing.T) {
	log, _ := testLogger()
	g := NewGroup(log)

	release := make(chan struct{})
	g.Go(context.Background(), "held task", func(_ context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := g.Drain(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, g.Drain(context.Background()))
}
