package receiver

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	apperrors "github.com/hookbridge/hookbridge/internal/errors"
)

// Handler wraps a Receiver with its engine and memoizes the engine's
// one-time startup across invocations of a stateless function instance. The
// first request to arrive runs Engine.Init; a success is cached for the
// lifetime of the instance, a failure is not, so the next request retries
// startup from scratch. The state cell lives on the Handler, not in a
// package global, so independent receivers and tests stay isolated.
type Handler struct {
	receiver *Receiver
	engine   Engine

	mu          sync.Mutex
	initialized bool
}

// NewHandler binds the engine to the receiver and returns the memoizing
// request handler.
func NewHandler(engine Engine, rcv *Receiver) *Handler {
	rcv.Init(engine)
	return &Handler{
		receiver: rcv,
		engine:   engine,
	}
}

// ensureInitialized runs the engine's startup routine exactly once. The lock
// is held across the attempt so concurrent first requests serialize on the
// same outcome instead of racing to initialize twice.
func (h *Handler) ensureInitialized(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.initialized {
		return nil
	}
	if err := h.engine.Init(ctx); err != nil {
		return err
	}
	h.initialized = true
	return nil
}

// HandleRequest initializes the engine on first use and delegates to the
// receiver. A startup failure produces the fixed handler-error response and
// leaves initialization uncached for the next attempt.
func (h *Handler) HandleRequest(ctx context.Context, req *Request) *Response {
	if err := h.ensureInitialized(ctx); err != nil {
		// The receiver's own logger may not be usable if startup failed this
		// early; report through the default channel.
		slog.Default().Error("engine initialization failed", "error", err)
		return synthesizeError(apperrors.ErrHandler(err))
	}

	return h.receiver.HandleRequest(ctx, req)
}

// ServeHTTP bridges the standard library request shape onto the handler,
// reading the body exactly once.
func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	inbound, err := FromHTTP(req)
	if err != nil {
		synthesizeError(apperrors.ErrUnexpected(err)).Write(w)
		return
	}

	h.HandleRequest(req.Context(), inbound).Write(w)
}
