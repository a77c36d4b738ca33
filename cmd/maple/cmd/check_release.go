package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/maple/internal/service/updater"
)

var (
	// download installs a differing release instead of only reporting it.
	download bool

	// checkReleaseCmd compares the running build with the latest release.
	checkReleaseCmd = &cobra.Command{
		Use:   "check-release",
		Short: "Check for a new maple release and optionally install it.",
		Long: `Compare the version of this maple binary with the latest vim-clap release.

When the versions differ, print the download URL of the prebuilt binary for
this platform. With --download the binary is downloaded next to the current
one and moved over vim-clap/bin/maple in a single rename. This only works for
the prebuilt binary living in a directory named bin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &updater.Options{
				ConfigPath: configPath,
				LogLevel:   logLevel,
				Download:   download,
				Output:     cmd.OutOrStdout(),
			}

			return updater.Run(ctx, options)
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	checkReleaseCmd.Flags().BoolVar(&download, "download", false,
		"download and install the latest release if the local version mismatches")

	rootCmd.AddCommand(checkReleaseCmd)
}
