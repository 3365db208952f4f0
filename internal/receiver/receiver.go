package receiver

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hookbridge/hookbridge/internal/background"
	"github.com/hookbridge/hookbridge/internal/constants"
	apperrors "github.com/hookbridge/hookbridge/internal/errors"
	"github.com/hookbridge/hookbridge/internal/logger"
)

// Options configures a Receiver. The zero value is usable for local
// development except that SigningSecret is required while signature
// verification is enabled.
type Options struct {
	// SigningSecret is the shared secret requests are signed with.
	SigningSecret string

	// DisableSignatureVerification skips authenticity checks entirely.
	// Intended for local development or trusted-network deployments; the
	// zero value keeps verification on.
	DisableSignatureVerification bool

	// AckTimeout bounds how long the HTTP leg waits for the engine's ack.
	// Zero selects the default (3001ms, just past the platform's 3s budget).
	AckTimeout time.Duration

	// PropertiesExtractor optionally derives Event.CustomProperties from the
	// raw request.
	PropertiesExtractor PropertiesExtractor

	// Logger is the structured logger; nil falls back to slog.Default().
	Logger *slog.Logger
}

// Receiver is the handler façade: it composes signature verification, body
// normalization, the acknowledgment gate, and response synthesis into a
// single request-to-response function, and exposes the lifecycle hooks the
// engine's receiver contract expects.
type Receiver struct {
	signingSecret       string
	disableVerification bool
	ackTimeout          time.Duration
	extractProperties   PropertiesExtractor
	logger              *slog.Logger
	tasks               *background.Group

	// now is the clock used for freshness checks, swapped in tests.
	now func() time.Time

	mu     sync.RWMutex
	engine Engine
}

// New creates a Receiver from the given options.
func New(opts Options) *Receiver {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	ackTimeout := opts.AckTimeout
	if ackTimeout <= 0 {
		ackTimeout = constants.DefaultAckTimeout
	}

	return &Receiver{
		signingSecret:       opts.SigningSecret,
		disableVerification: opts.DisableSignatureVerification,
		ackTimeout:          ackTimeout,
		extractProperties:   opts.PropertiesExtractor,
		logger:              log,
		tasks:               background.NewGroup(log),
		now:                 time.Now,
	}
}

// Init binds the event-processing engine. It is idempotent; the last call
// wins.
func (r *Receiver) Init(engine Engine) {
	r.mu.Lock()
	r.engine = engine
	r.mu.Unlock()
}

// Start implements the engine's receiver lifecycle contract. The receiver
// has no listener of its own (the hosting platform drives it), so Start only
// checks that the wiring is complete.
func (r *Receiver) Start(_ context.Context) error {
	if r.boundEngine() == nil {
		return apperrors.ErrNotInitialized("receiver started before an engine was bound")
	}
	return nil
}

// Stop releases receiver resources, draining in-flight background
// continuations until the context expires.
func (r *Receiver) Stop(ctx context.Context) error {
	return r.tasks.Drain(ctx)
}

func (r *Receiver) boundEngine() Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.engine
}

// HandleRequest turns one inbound request into its HTTP response. The engine
// is dispatched without waiting for it to finish: the response is settled by
// the first ack or by the gate's deadline, and any remaining engine work
// continues detached in the background.
func (r *Receiver) HandleRequest(ctx context.Context, req *Request) *Response {
	log := logger.DeriveRequestLogger(ctx, r.logger)

	if !r.disableVerification {
		if err := r.verifyRequest(req, r.now()); err != nil {
			log.Warn("request verification failed", "error", err)
			return synthesizeError(err)
		}
	}

	payload, err := parsePayload(req.Header(constants.ContentTypeHeader), req.Body, log)
	if err != nil {
		log.Warn("request body parsing failed", "error", err)
		return synthesizeError(err)
	}

	// The endpoint verification handshake and ssl_check probes are answered
	// at the boundary; the engine never sees them.
	if eventType, _ := payload["type"].(string); eventType == constants.ChallengeEventType {
		log.Debug("answering url_verification challenge")
		return synthesizeChallenge(payload["challenge"])
	}
	if _, ok := payload[constants.SSLCheckField]; ok {
		log.Debug("acknowledging ssl_check probe")
		return &Response{StatusCode: http.StatusOK}
	}

	engine := r.boundEngine()
	if engine == nil {
		err := apperrors.ErrNotInitialized("receiver handled a request before an engine was bound")
		log.Error("receiver not initialized", "error", err)
		return synthesizeError(err)
	}

	properties := map[string]any{}
	if r.extractProperties != nil {
		properties, err = r.extractProperties(req)
		if err != nil {
			log.Error("custom properties extractor failed", "error", err)
			return synthesizeError(apperrors.ErrUnexpected(err))
		}
		if properties == nil {
			properties = map[string]any{}
		}
	}

	g := armGate(r.ackTimeout)
	event := &Event{
		Body:             payload,
		Ack:              g.Ack,
		RetryNum:         retryNum(req),
		RetryReason:      req.Header(constants.RetryReasonHeader),
		CustomProperties: properties,
	}

	// The engine outlives the HTTP leg: detach it from request cancellation
	// but keep request-scoped values (request ID) for its log lines. An
	// engine failure before ack is logged here; the gate's deadline is the
	// backstop that settles the response in that case.
	r.tasks.Go(context.WithoutCancel(ctx), "process event", func(taskCtx context.Context) error {
		return engine.ProcessEvent(taskCtx, event)
	})

	value, err := g.Wait(ctx)
	if err != nil {
		log.Error("event was not acknowledged before the deadline",
			"error", err, "timeout", r.ackTimeout)
		return synthesizeError(err)
	}

	return synthesizeAck(value)
}

func retryNum(req *Request) int {
	header := strings.TrimSpace(req.Header(constants.RetryNumHeader))
	if header == "" {
		return 0
	}
	n, err := strconv.Atoi(header)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
