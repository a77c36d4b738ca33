package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/maple/internal/config"
	"github.com/oshokin/maple/internal/logger"
	"github.com/oshokin/maple/internal/repository/github"
	"github.com/oshokin/maple/internal/version"
)

// errUnknownLogLevel is returned when the log level override cannot be parsed.
var errUnknownLogLevel = errors.New("unknown log level")

// Options are inputs accepted by the check-release entry point.
type Options struct {
	// ConfigPath is the optional path to a settings YAML file.
	ConfigPath string
	// LogLevel overrides the configured log level when set.
	LogLevel string
	// Download installs a differing release instead of only reporting it.
	Download bool
	// LocalTag is the tag of the running build; defaults to version.Short().
	LocalTag string
	// Output receives progress lines; defaults to os.Stdout.
	Output io.Writer
	// Executable locates the running binary; defaults to os.Executable.
	Executable func() (string, error)
}

// Run executes one release check and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "check-release")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if err = applyLogLevel(cfg, opts.LogLevel); err != nil {
		return err
	}

	up := newUpdaterFromOptions(cfg, opts)

	localTag := opts.LocalTag
	if localTag == "" {
		localTag = version.Short()
	}

	outcome, err := up.CheckForUpdate(ctx, localTag, opts.Download)
	if err != nil {
		return err
	}

	logger.DebugKV(ctx, "Release check completed",
		"status", outcome.Status.String(), "remote_tag", outcome.RemoteTag, "downgrade", outcome.Downgrade)

	return nil
}

// newUpdaterFromOptions wires the release client and fetcher for the host platform.
func newUpdaterFromOptions(cfg *config.Config, opts *Options) *Updater {
	platform := DetectPlatform()

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	updaterOptions := []Option{
		WithPlatform(platform),
		WithOutput(output),
	}

	if opts.Executable != nil {
		updaterOptions = append(updaterOptions, WithExecutable(opts.Executable))
	}

	return NewUpdater(
		github.NewClient(cfg, github.WithTimeout(cfg.Timeout)),
		NewFetcher(cfg, platform),
		updaterOptions...,
	)
}

// applyLogLevel sets the global level from the override or the configuration.
func applyLogLevel(cfg *config.Config, override string) error {
	name := cfg.LogLevel
	if override != "" {
		name = override
	}

	level, ok := logger.ParseLogLevel(name)
	if !ok {
		return fmt.Errorf("%q: %w", name, errUnknownLogLevel)
	}

	logger.SetLevel(level)

	return nil
}
