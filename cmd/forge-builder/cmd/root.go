package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/release-forge/internal/logger"
	"github.com/oshokin/release-forge/internal/service/builder"
	"github.com/oshokin/release-forge/internal/version"
)

var (
	// logLevel controls the verbosity of the run.
	logLevel string

	// dryRun logs every tool invocation without executing anything.
	dryRun bool

	// skipInstall leaves out the package install step.
	skipInstall bool

	// rootCmd represents the base command running the release pipeline.
	rootCmd = &cobra.Command{
		Use:   "forge-builder [manifest]",
		Short: "Run the release build pipeline described by a manifest",
		Long: "Run the release build pipeline: activate the named environment, install the package, " +
			"produce console and windowless bundles, merge them into one distributable folder, " +
			"compile the installer and record a checksummed release description.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &builder.Options{
				DryRun:      dryRun,
				SkipInstall: skipInstall,
			}
			if len(args) > 0 {
				options.ConfigPath = args[0]
			}

			return builder.Run(ctx, options)
		},
	}
)

// Execute runs the forge-builder CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "logging level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log tool invocations without executing them")
	rootCmd.Flags().BoolVar(&skipInstall, "skip-install", false, "skip the package install step")
}
