// Package cmd implements the hookbridge CLI commands.
package cmd

import (
	"log/slog"
	"os"

	"github.com/hookbridge/hookbridge/internal/constants"
	"github.com/hookbridge/hookbridge/internal/logger"

	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   constants.ProjectName,
	Short: "Serverless receiver bridge for event webhooks",
	Long: constants.ProjectName + ` receives event webhooks, verifies their authenticity,
and bridges them to an event-processing engine behind a serverless HTTP
endpoint. The serve command runs the receiver locally for development.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}
		logger.Initialize(constants.CLI, logLevel)
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}
