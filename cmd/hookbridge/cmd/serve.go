package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hookbridge/hookbridge/internal/config"
	"github.com/hookbridge/hookbridge/internal/constants"
	"github.com/hookbridge/hookbridge/internal/engine"
	"github.com/hookbridge/hookbridge/internal/logger"
	"github.com/hookbridge/hookbridge/internal/output"
	"github.com/hookbridge/hookbridge/internal/receiver"
	"github.com/hookbridge/hookbridge/internal/secrets"
	"github.com/hookbridge/hookbridge/internal/server"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownGracePeriod = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the receiver as a local HTTP server",
	Long: `Run the receiver locally for development. Events posted to ` + constants.EventsPath + `
are verified, normalized, and dispatched to the echo engine, which
acknowledges immediately and logs what it received.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		output.Error("failed to load configuration: %v", err)
		return err
	}

	log := logger.Initialize(cfg.Env, logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	signingSecret := cfg.SigningSecret
	if signingSecret == "" && cfg.SigningSecretParameter != "" {
		resolver, err := secrets.NewResolverFromConfig(ctx, log)
		if err != nil {
			return err
		}
		signingSecret, err = resolver.SigningSecret(ctx, cfg.SigningSecretParameter)
		if err != nil {
			return err
		}
	}

	rcv := receiver.New(receiver.Options{
		SigningSecret:                signingSecret,
		DisableSignatureVerification: !cfg.SignatureVerification,
		AckTimeout:                   cfg.AckTimeout,
		Logger:                       log,
	})
	handler := receiver.NewHandler(engine.NewEcho(log), rcv)
	router := server.NewRouter(handler, log, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	output.Info("starting local server on :%d (Ctrl+C to stop)", cfg.Port)
	output.Info("events endpoint: http://localhost:%d%s", cfg.Port, constants.EventsPath)
	if !cfg.SignatureVerification {
		output.Info("signature verification is disabled")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		output.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return rcv.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		output.Error("server error: %v", err)
		return err
	}

	output.Success("server stopped")
	return nil
}
