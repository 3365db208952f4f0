package receiver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/hookbridge/hookbridge/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, engine Engine) *Handler {
	t.Helper()

	r := newTestReceiver(t, nil, Options{DisableSignatureVerification: true})
	return NewHandler(engine, r)
}

func TestHandlerInitializesEngineOnce(t *testing.T) {
	engine := &fakeEngine{}
	h := newTestHandler(t, engine)

	for range 3 {
		resp := h.HandleRequest(context.Background(), jsonRequest(`{"type":"event_callback"}`))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, int32(1), engine.initCalls.Load(), "startup must run exactly once")
	assert.Equal(t, int32(3), engine.processCalls.Load())
}

func TestHandlerRetriesFailedInitialization(t *testing.T) {
	engine := &fakeEngine{initErr: errors.New("transient startup failure")}
	h := newTestHandler(t, engine)

	resp := h.HandleRequest(context.Background(), jsonRequest(`{"type":"event_callback"}`))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeErrorBody(t, resp)
	assert.Equal(t, "Internal Server Error", body.Error)
	assert.Equal(t, apperrors.ErrCodeHandler, body.Type)
	assert.Zero(t, engine.processCalls.Load())

	// The failed attempt is not cached; the next request retries startup.
	engine.initErr = nil
	resp = h.HandleRequest(context.Background(), jsonRequest(`{"type":"event_callback"}`))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), engine.initCalls.Load())

	// And a success is cached from then on.
	resp = h.HandleRequest(context.Background(), jsonRequest(`{"type":"event_callback"}`))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), engine.initCalls.Load())
}

func TestHandlerServeHTTP(t *testing.T) {
	engine := &fakeEngine{
		process: func(_ context.Context, event *Event) error {
			return event.Ack(map[string]any{"ok": true})
		},
	}
	h := newTestHandler(t, engine)

	req := httptest.NewRequest(http.MethodPost, "/slack/events",
		strings.NewReader(`{"type":"event_callback"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}
