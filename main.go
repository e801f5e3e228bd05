// package main is the entry point for the stale-pr-reporter tool
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alan/stale-pr-reporter/cmd"
	configcmd "github.com/alan/stale-pr-reporter/cmd/config"
	reportcmd "github.com/alan/stale-pr-reporter/cmd/report"
	"github.com/alan/stale-pr-reporter/cmd/status"
	"github.com/alan/stale-pr-reporter/internal/config"
)

func main() {
	var configFile string
	var envFile string
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:   "stale-pr-reporter",
		Short: "Report open pull requests that have gone stale to Slack",
		Long: `stale-pr-reporter lists the open pull requests of a GitHub repository, finds the ones
that have not been updated within a threshold, and posts a summary plus per-PR detail
cards with an AI-generated review suggestion to Slack.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			setupLogger(logLevel, logFormat)
			return config.LoadDotEnv(envFile)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", cmd.DefaultConfigFile, "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", ".env", "Dotenv file with credentials (ignored if missing)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "f", "text", "Log format (text, json)")

	rootCmd.AddCommand(configcmd.NewConfigCmd(&configFile, config.LoadConfig, config.SaveConfig))
	rootCmd.AddCommand(reportcmd.NewReportCmd(&configFile, config.Load))
	rootCmd.AddCommand(status.NewStatusCmd(&configFile, config.Load))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func setupLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	// stdout carries the report preview and status table
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}

	slog.SetDefault(slog.New(handler).With("run_id", uuid.NewString()))
}
