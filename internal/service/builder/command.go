package builder

import (
	"context"
	"fmt"

	"github.com/oshokin/release-forge/internal/config"
	"github.com/oshokin/release-forge/internal/logger"
)

// Options contains inputs for the builder entry point.
type Options struct {
	// ConfigPath is an optional path to the build manifest (defaults to forge.yaml).
	ConfigPath string
	// DryRun logs every tool invocation without executing anything.
	DryRun bool
	// SkipInstall leaves out the package install step.
	SkipInstall bool
}

// Run executes the whole build pipeline described by the manifest.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "forge-builder")

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigFilename
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	b, err := newBuilder(ctx, configPath, cfg, opts)
	if err != nil {
		return fmt.Errorf("initialize builder: %w", err)
	}

	defer b.cleanup(ctx)

	if err = b.Run(ctx); err != nil {
		logger.ErrorKV(ctx, "Build failed", "error", err)
		return err
	}

	logger.Info(ctx, "Build completed successfully")

	return nil
}
