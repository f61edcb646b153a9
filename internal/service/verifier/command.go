package verifier

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/oshokin/release-forge/internal/logger"
	"github.com/oshokin/release-forge/internal/release"
)

// Options contains inputs for the verifier entry point.
type Options struct {
	// DescriptionPath is an optional path to the release description
	// (defaults to forge-release.yaml).
	DescriptionPath string
}

// Run re-hashes every artifact listed in the release description and fails
// on the first sign of tampering or loss.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "forge-verifier")

	descriptionPath := opts.DescriptionPath
	if descriptionPath == "" {
		descriptionPath = release.DefaultFilename
	}

	desc, err := release.Load(descriptionPath)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Verifying release",
		"project", desc.Project,
		"version", desc.VersionNumber,
		"run_id", desc.RunID,
		"artifacts", len(desc.Files))

	if err = verify(ctx, filepath.Dir(descriptionPath), desc); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	logger.Info(ctx, "All artifacts match the release description")

	return nil
}
