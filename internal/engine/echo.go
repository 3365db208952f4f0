// Package engine contains reference implementations of the event-processing
// collaborator the receiver dispatches to. Real deployments bind their own
// engine; Echo exists for local development and smoke tests.
package engine

import (
	"context"
	"log/slog"

	"github.com/hookbridge/hookbridge/internal/receiver"
)

// Echo acknowledges every event immediately with an empty body and logs what
// it saw.
type Echo struct {
	logger *slog.Logger
}

// NewEcho creates an Echo engine reporting through the given logger.
func NewEcho(log *slog.Logger) *Echo {
	if log == nil {
		log = slog.Default()
	}
	return &Echo{logger: log}
}

// Init implements the engine startup routine. Echo has nothing to set up.
func (e *Echo) Init(_ context.Context) error {
	e.logger.Debug("echo engine initialized")
	return nil
}

// ProcessEvent logs the event and acks with an empty body.
func (e *Echo) ProcessEvent(ctx context.Context, event *receiver.Event) error {
	eventType, _ := event.Body["type"].(string)
	e.logger.Info("event received",
		"type", eventType,
		"retryNum", event.RetryNum,
		"retryReason", event.RetryReason,
	)

	return event.Ack(nil)
}
