// Package lambdaapi provides Lambda handler creation for AWS Lambda Function
// URLs, integrating the receiver with the HTTP router through the algnhsa
// adapter.
package lambdaapi

import (
	"log/slog"
	"time"

	"github.com/hookbridge/hookbridge/internal/receiver"
	"github.com/hookbridge/hookbridge/internal/server"

	"github.com/akrylysov/algnhsa"
	"github.com/aws/aws-lambda-go/lambda"
)

// NewHandler creates a Lambda handler serving the receiver. The request
// timeout is passed to the router's timeout middleware; zero leaves timeouts
// to Lambda itself.
func NewHandler(handler *receiver.Handler, log *slog.Logger, requestTimeout time.Duration) lambda.Handler {
	router := server.NewRouter(handler, log, requestTimeout)
	return algnhsa.New(router.Handler(), nil)
}
