package builder

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/oshokin/release-forge/internal/config"
	"github.com/oshokin/release-forge/internal/executor"
	"github.com/oshokin/release-forge/internal/logger"
	"github.com/oshokin/release-forge/internal/pipeline"
)

// builder holds the state of one pipeline run.
// It is unexported—callers should use Run, which encapsulates setup and the marker guard.
type builder struct {
	// cfg is the validated build manifest.
	cfg *config.Config
	// exec runs the external tools.
	exec *executor.Executor
	// baseDir is the manifest's directory; every relative path resolves against it.
	baseDir string
	// markerPath guards against concurrent builds in the same directory.
	markerPath string
	// environ is the activated environment handed to every tool; nil inherits the process environment.
	environ []string
	// skipInstall leaves out the install step when set.
	skipInstall bool
}

// newBuilder prepares the run and writes a marker to avoid concurrent builds.
func newBuilder(ctx context.Context, configPath string, cfg *config.Config, opts *Options) (*builder, error) {
	baseDir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, err
	}

	b := &builder{
		cfg:         cfg,
		exec:        executor.New(opts.DryRun),
		baseDir:     baseDir,
		markerPath:  filepath.Join(baseDir, MarkerFilename),
		skipInstall: opts.SkipInstall,
	}

	if IsBuildRunningNow(ctx, b.markerPath) {
		return nil, errBuildRunning
	}

	if err = createMarker(b.markerPath); err != nil {
		return nil, err
	}

	return b, nil
}

// Run executes the pipeline steps in order and logs a summary.
func (b *builder) Run(ctx context.Context) error {
	report, err := pipeline.Run(ctx, b.steps())
	b.printSummary(ctx, report)

	return err
}

// cleanup removes the build marker.
func (b *builder) cleanup(ctx context.Context) {
	removeMarker(ctx, b.markerPath)
}

// steps assembles the ordered pipeline from the manifest.
func (b *builder) steps() []pipeline.Step {
	return []pipeline.Step{
		{Name: "activate-environment", Run: b.activateEnvironment},
		{Name: "install", Run: b.timed(b.install)},
		{Name: "bundle-console", Run: b.timed(b.bundleConsole)},
		{Name: "bundle-windowless", Run: b.timed(b.bundleWindowless)},
		{Name: "merge-artifacts", Run: b.mergeArtifacts},
		{Name: "compile-installer", Run: b.timed(b.compileInstaller)},
		{Name: "deactivate-environment", Run: b.deactivateEnvironment},
		{Name: "write-release-description", Run: b.writeReleaseDescription},
	}
}

// timed applies the manifest's per-step ceiling to a step that runs external tools.
func (b *builder) timed(step func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
		defer cancel()

		return step(ctx)
	}
}

// path resolves a manifest-relative path against the manifest's directory.
func (b *builder) path(parts ...string) string {
	joined := filepath.Join(parts...)
	if filepath.IsAbs(joined) {
		return joined
	}

	return filepath.Join(b.baseDir, joined)
}

// outputDir returns the distribution folder the packaging tool produces for a name.
func (b *builder) outputDir(name string) string {
	return b.path(b.cfg.Bundle.OutputDir, name)
}

// printSummary logs per-step outcomes after the pipeline finishes or aborts.
func (b *builder) printSummary(ctx context.Context, report *pipeline.Report) {
	if report == nil || len(report.Results) == 0 {
		return
	}

	var sb strings.Builder

	sb.WriteString("Pipeline summary:")

	for _, result := range report.Results {
		sb.WriteString("\n")
		sb.WriteString(result.Name)
		sb.WriteString(": ")

		if result.Err != nil {
			sb.WriteString("failed after ")
		} else {
			sb.WriteString("ok in ")
		}

		sb.WriteString(result.Duration.Round(timeRounding).String())
	}

	logger.Info(ctx, sb.String())
}
