package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/maple/internal/logger"
	"github.com/oshokin/maple/internal/version"
)

var (
	// configPath to the optional configuration YAML file.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base maple command.
	rootCmd = &cobra.Command{
		Use:           "maple",
		Short:         "Companion binary of vim-clap.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the maple CLI and exits with non-zero status on error.
func Execute() {
	if err := execute(context.Background()); err != nil {
		os.Exit(1)
	}
}

// execute runs the root command and logs the error it fails with.
func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logger.ErrorKV(logger.WithName(ctx, "maple"), "Command failed", "error", err)
	}

	return err
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	version.AttachCobraVersionCommand(rootCmd)
}
