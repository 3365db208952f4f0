// Lambda entry point for the receiver behind an AWS Lambda Function URL.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hookbridge/hookbridge/internal/config"
	"github.com/hookbridge/hookbridge/internal/constants"
	"github.com/hookbridge/hookbridge/internal/engine"
	"github.com/hookbridge/hookbridge/internal/lambdaapi"
	"github.com/hookbridge/hookbridge/internal/logger"
	"github.com/hookbridge/hookbridge/internal/receiver"
	"github.com/hookbridge/hookbridge/internal/secrets"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.Initialize(constants.Production, logger.ParseLevel(cfg.LogLevel))

	signingSecret := cfg.SigningSecret
	if signingSecret == "" && cfg.SigningSecretParameter != "" {
		resolver, err := secrets.NewResolverFromConfig(ctx, log)
		if err != nil {
			log.Error("failed to create secrets resolver", "error", err)
			os.Exit(1)
		}
		signingSecret, err = resolver.SigningSecret(ctx, cfg.SigningSecretParameter)
		if err != nil {
			log.Error("failed to resolve signing secret", "error", err)
			os.Exit(1)
		}
	}

	rcv := receiver.New(receiver.Options{
		SigningSecret:                signingSecret,
		DisableSignatureVerification: !cfg.SignatureVerification,
		AckTimeout:                   cfg.AckTimeout,
		Logger:                       log,
	})
	handler := receiver.NewHandler(engine.NewEcho(log), rcv)

	lambda.Start(lambdaapi.NewHandler(handler, log, cfg.RequestTimeout))
}
