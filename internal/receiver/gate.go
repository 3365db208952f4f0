package receiver

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/hookbridge/hookbridge/internal/errors"
)

// ackState tracks the lifecycle of one event's acknowledgment.
// Pending is the only non-terminal state.
type ackState int

const (
	ackPending ackState = iota
	ackAcknowledged
	ackTimedOut
)

// ackOutcome is the settled result of a gate: the ack value, or the error
// that settled it (timeout or cancellation).
type ackOutcome struct {
	value any
	err   error
}

// gate is the single-use, time-boxed completion signal that reconciles the
// engine's asynchronous ack call with the synchronous HTTP response. The
// first ack wins and cancels the deadline timer; the deadline firing while
// still pending settles the response with a timeout. Both outcomes are
// terminal: any ack after either one fails loudly rather than succeeding
// silently. Requests may be served on parallel goroutines, so transitions
// are a locked check-and-set, not a bare flag.
type gate struct {
	mu    sync.Mutex
	state ackState
	timer *time.Timer
	done  chan ackOutcome
}

// armGate starts the deadline timer and returns the armed gate. The returned
// gate's Ack method is handed to the engine through the event; Wait is held
// by the HTTP leg.
func armGate(timeout time.Duration) *gate {
	g := &gate{
		done: make(chan ackOutcome, 1),
	}
	g.timer = time.AfterFunc(timeout, g.expire)
	return g
}

// Ack settles the gate with the given value. It fails with a
// multiple-acknowledgment error if the gate has already been acknowledged or
// timed out; that failure is surfaced to the caller of ack, never to the
// HTTP consumer, whose response was settled by the first outcome.
func (g *gate) Ack(value any) error {
	g.mu.Lock()
	if g.state != ackPending {
		g.mu.Unlock()
		return apperrors.ErrMultipleAck(
			"ack called on an event that was already acknowledged or timed out")
	}
	g.state = ackAcknowledged
	g.timer.Stop()
	g.mu.Unlock()

	g.done <- ackOutcome{value: value}
	return nil
}

// expire fires when the deadline elapses. The timer is stopped on ack, but a
// concurrent fire can still race past the stop, so the state check decides.
func (g *gate) expire() {
	g.mu.Lock()
	if g.state != ackPending {
		g.mu.Unlock()
		return
	}
	g.state = ackTimedOut
	g.mu.Unlock()

	g.done <- ackOutcome{err: apperrors.ErrRequestTimeout(nil)}
}

// Wait blocks until the gate settles or the request context is done.
// Context cancellation counts as a timeout outcome: the gate leaves the
// pending state so a later ack still fails.
func (g *gate) Wait(ctx context.Context) (any, error) {
	select {
	case outcome := <-g.done:
		return outcome.value, outcome.err
	case <-ctx.Done():
		g.mu.Lock()
		if g.state == ackPending {
			g.state = ackTimedOut
			g.timer.Stop()
			g.mu.Unlock()
			return nil, apperrors.ErrRequestTimeout(ctx.Err())
		}
		g.mu.Unlock()

		// Already settled; the outcome is in flight or buffered.
		outcome := <-g.done
		return outcome.value, outcome.err
	}
}
