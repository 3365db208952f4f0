// Package server exposes the receiver over HTTP: a chi router with the
// webhook endpoint, a health endpoint, and request-scoped logging middleware.
// The same router serves the local development server and, through algnhsa,
// the Lambda deployment.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/hookbridge/hookbridge/internal/constants"
	apperrors "github.com/hookbridge/hookbridge/internal/errors"
	"github.com/hookbridge/hookbridge/internal/receiver"

	"github.com/go-chi/chi/v5"
)

// Router wires the receiver handler into an HTTP mux.
type Router struct {
	router  *chi.Mux
	handler *receiver.Handler
	logger  *slog.Logger
}

// NewRouter creates a chi router with the webhook and health routes
// configured. A positive requestTimeout adds per-request deadline middleware;
// zero leaves timeouts to the environment (Lambda enforces its own).
func NewRouter(handler *receiver.Handler, log *slog.Logger, requestTimeout time.Duration) *Router {
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	router := &Router{
		router:  r,
		handler: handler,
		logger:  log,
	}

	r.Use(router.requestIDMiddleware)
	r.Use(router.requestLoggingMiddleware)
	if requestTimeout > 0 {
		r.Use(router.requestTimeoutMiddleware(requestTimeout))
	}

	r.Get("/health", router.handleHealth)
	r.Post(constants.EventsPath, router.handleEvents)

	return router
}

// handleEvents forwards the inbound webhook to the receiver and renders
// whatever response it synthesized.
func (r *Router) handleEvents(w http.ResponseWriter, req *http.Request) {
	inbound, err := receiver.FromHTTP(req)
	if err != nil {
		log := r.GetLoggerFromContext(req.Context())
		log.Error("failed to read request body", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError,
			"Internal server error", apperrors.ErrCodeUnexpected)
		return
	}

	r.handler.HandleRequest(req.Context(), inbound).Write(w)
}

// handleHealth returns a simple health check response.
func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": *constants.GetVersion(),
	})
}

// writeErrorResponse writes the receiver's standard JSON error shape.
func writeErrorResponse(w http.ResponseWriter, statusCode int, message, kind string) {
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"type":  kind,
	})
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Handler returns an http.Handler for the router.
func (r *Router) Handler() http.Handler {
	return r.router
}
