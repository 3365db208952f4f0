// Package receiver bridges the event platform's webhook delivery to the
// request/response contract of a serverless HTTP endpoint. It verifies
// request authenticity, normalizes payloads, and reconciles the engine's
// asynchronous acknowledgment with the synchronous HTTP answer the platform
// expects, letting the remaining engine work continue after the response.
package receiver

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Request is the platform-boundary view of one inbound webhook invocation:
// the method, a case-insensitive header map, and the raw body exactly as it
// arrived. The body string is what signatures are computed over, so it must
// never be a re-serialized form of the parsed payload.
type Request struct {
	Method  string
	Headers http.Header
	Body    string
}

// Header returns the first value of the named header, case-insensitively.
func (r *Request) Header(name string) string {
	return r.Headers.Get(name)
}

// FromHTTP captures an http.Request into a Request, reading the body exactly
// once. The underlying body does not support re-reading.
func FromHTTP(req *http.Request) (*Request, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	return &Request{
		Method:  req.Method,
		Headers: req.Header,
		Body:    string(body),
	}, nil
}

// AckFunc completes the pending HTTP response for one event. It may be called
// at most once; any later call returns a multiple-acknowledgment error, even
// after the deadline has already answered the platform with a timeout.
// The value may be nil (empty 200), a string (returned verbatim), or any
// JSON-serializable value (returned as a JSON body).
type AckFunc func(value any) error

// Event is the unit of work handed to the event-processing engine.
type Event struct {
	// Body is the normalized payload decoded from the request.
	Body map[string]any
	// Ack completes the HTTP response. The engine must call it exactly once.
	Ack AckFunc
	// RetryNum counts platform redeliveries of this event, 0 for the first.
	RetryNum int
	// RetryReason names why the platform is redelivering, empty for the first.
	RetryReason string
	// CustomProperties carries values produced by the configured
	// PropertiesExtractor, never nil.
	CustomProperties map[string]any
}

// Engine is the external event-processing collaborator. The receiver calls
// Init once per function instance and ProcessEvent once per delivered event;
// it implements neither.
type Engine interface {
	Init(ctx context.Context) error
	ProcessEvent(ctx context.Context, event *Event) error
}

// PropertiesExtractor derives extra event properties from the raw request,
// e.g. tracing headers. It runs once per request before event construction;
// an error aborts the request with an internal error response.
type PropertiesExtractor func(req *Request) (map[string]any, error)
