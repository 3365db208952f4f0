package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/hookbridge/hookbridge/internal/constants"
	loggerPkg "github.com/hookbridge/hookbridge/internal/logger"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// generateRequestID generates a random request ID using crypto/rand.
func generateRequestID() string {
	b := make([]byte, constants.RequestIDByteSize)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}

// requestIDMiddleware extracts the request ID from the context (if present) or generates a random one.
// Priority: 1) Existing request ID in context, 2) Lambda request ID, 3) Generated random ID.
func (r *Router) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := loggerPkg.GetRequestID(req.Context())

		if requestID == "" {
			if lc, ok := lambdacontext.FromContext(req.Context()); ok && lc.AwsRequestID != "" {
				requestID = lc.AwsRequestID
			}
		}

		if requestID == "" {
			requestID = generateRequestID()
		}

		ctx := loggerPkg.WithRequestID(req.Context(), requestID)
		log := r.logger.With("requestID", requestID)
		ctx = context.WithValue(ctx, loggerContextKey, log)

		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// requestTimeoutMiddleware creates a context with timeout for each request.
// The timeout starts when the request is received, ensuring each request has
// a fair timeout regardless of connection reuse.
func (r *Router) requestTimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx, cancel := context.WithTimeout(req.Context(), timeout)
			defer cancel()

			req = req.WithContext(ctx)

			next.ServeHTTP(w, req)

			if ctx.Err() == context.DeadlineExceeded {
				log := r.GetLoggerFromContext(req.Context())
				log.Warn("request timeout exceeded", "request", map[string]any{
					"method":  req.Method,
					"path":    req.URL.Path,
					"timeout": timeout,
				})
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// requestLoggingMiddleware logs incoming requests and their responses.
// Uses logger from context (includes request ID if available).
func (r *Router) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log := r.GetLoggerFromContext(req.Context())
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		log.Info("processing incoming request", "request", map[string]string{
			"method":     req.Method,
			"path":       req.URL.Path,
			"remoteAddr": req.RemoteAddr,
		})

		next.ServeHTTP(wrapped, req)
		duration := time.Since(start)

		log.Info("response sent", "response", map[string]any{
			"status":   wrapped.statusCode,
			"duration": duration.String(),
		})
	})
}

// GetLoggerFromContext extracts the logger from request context.
// Returns the request-scoped logger (with request ID if available) or falls
// back to the router's logger.
func (r *Router) GetLoggerFromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok && log != nil {
		return log
	}

	return r.logger
}
