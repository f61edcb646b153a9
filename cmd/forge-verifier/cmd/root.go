package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/release-forge/internal/logger"
	"github.com/oshokin/release-forge/internal/service/verifier"
	"github.com/oshokin/release-forge/internal/version"
)

var (
	// logLevel controls the verbosity of the run.
	logLevel string

	// rootCmd represents the base command checking artifacts against a release description.
	rootCmd = &cobra.Command{
		Use:   "forge-verifier [description]",
		Short: "Verify distribution artifacts against a release description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &verifier.Options{}
			if len(args) > 0 {
				options.DescriptionPath = args[0]
			}

			return verifier.Run(ctx, options)
		},
	}
)

// Execute runs the forge-verifier CLI and exits with non-zero status on error.
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
}
