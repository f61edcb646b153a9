package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/release-forge/internal/envfile"
	"github.com/oshokin/release-forge/internal/executor"
	"github.com/oshokin/release-forge/internal/logger"
	"github.com/oshokin/release-forge/internal/release"
	"github.com/oshokin/release-forge/internal/scm"
)

const (
	// overwriteFlag tells the packaging tool to replace previous output without confirmation.
	overwriteFlag = "-y"

	// noConsoleFlag produces the windowless executable variant.
	noConsoleFlag = "--noconsole"

	// hiddenImportFlag hints a module the tool's static scanner cannot discover.
	hiddenImportFlag = "--hidden-import="

	// manifestSuffix is appended to an executable name to form its manifest file name.
	manifestSuffix = ".manifest"

	// timeRounding is the precision used when logging step durations.
	timeRounding = time.Millisecond
)

// activateEnvironment resolves the named environment into an overlay
// applied to every subsequent tool invocation.
func (b *builder) activateEnvironment(ctx context.Context) error {
	name := b.cfg.Environment.Name
	if name == "" {
		logger.Info(ctx, "No environment configured, using the process environment")
		return nil
	}

	overlay, err := envfile.Load(b.path(b.cfg.Environment.Dir), name)
	if err != nil {
		return err
	}

	b.environ = envfile.Merge(os.Environ(), overlay)

	logger.InfoKV(ctx, "Activated environment", "environment", name, "variables", len(overlay))

	return nil
}

// install runs the package install command from the repository root.
func (b *builder) install(ctx context.Context) error {
	if b.skipInstall {
		logger.Info(ctx, "Install skipped by request")
		return nil
	}

	command := b.cfg.Install.Command

	return b.exec.Run(ctx, executor.Command{
		Name: command[0],
		Args: command[1:],
		Dir:  b.path(b.cfg.Install.Dir),
		Env:  b.environ,
	})
}

// bundleConsole produces the console-mode executable.
func (b *builder) bundleConsole(ctx context.Context) error {
	return b.bundle(ctx, b.cfg.Bundle.ConsoleName, false)
}

// bundleWindowless produces the windowless executable.
func (b *builder) bundleWindowless(ctx context.Context) error {
	return b.bundle(ctx, b.cfg.Bundle.WindowlessName, true)
}

// bundle invokes the packaging tool for one output variant and
// checks the expected executable actually appeared.
func (b *builder) bundle(ctx context.Context, name string, windowless bool) error {
	err := b.exec.Run(ctx, executor.Command{
		Name: b.cfg.Bundle.Tool,
		Args: b.bundleArgs(name, windowless),
		Dir:  b.baseDir,
		Env:  b.environ,
	})
	if err != nil {
		return err
	}

	if b.exec.DryRun {
		return nil
	}

	// A tool exiting zero without producing the executable is still a failure.
	produced := filepath.Join(b.outputDir(name), executableName(name))
	if _, err = os.Stat(produced); err != nil {
		return fmt.Errorf("bundle output missing: %w", err)
	}

	return nil
}

// bundleArgs assembles the packaging tool's argument vector for one variant.
func (b *builder) bundleArgs(name string, windowless bool) []string {
	args := make([]string, 0, len(b.cfg.Bundle.HiddenImports)+5)
	args = append(args, overwriteFlag)

	for _, hidden := range b.cfg.Bundle.HiddenImports {
		args = append(args, hiddenImportFlag+hidden)
	}

	args = append(args, "--name", name)

	if windowless {
		args = append(args, noConsoleFlag)
	}

	return append(args, b.path(b.cfg.Bundle.EntryScript))
}

// mergeArtifacts copies the windowless executable and its manifest into the
// console distribution folder so one folder carries both entry points.
// A missing windowless executable aborts the pipeline.
func (b *builder) mergeArtifacts(ctx context.Context) error {
	if b.exec.DryRun {
		logger.Info(ctx, "Dry run, not merging artifacts")
		return nil
	}

	sourceDir := b.outputDir(b.cfg.Bundle.WindowlessName)
	targetDir := b.outputDir(b.cfg.Bundle.ConsoleName)
	executable := executableName(b.cfg.Bundle.WindowlessName)

	err := b.placeFile(ctx, filepath.Join(sourceDir, executable), filepath.Join(targetDir, executable))
	if err != nil {
		return err
	}

	manifest := executable + manifestSuffix
	source := filepath.Join(sourceDir, manifest)

	if _, err = os.Stat(source); errors.Is(err, os.ErrNotExist) {
		// The packaging tool emits a side-by-side manifest only on Windows.
		logger.InfoKV(ctx, "No manifest produced, nothing to merge", "file", manifest)
		return nil
	} else if err != nil {
		return err
	}

	return b.placeFile(ctx, source, filepath.Join(targetDir, manifest))
}

// placeFile copies an artifact into the target path, verifying the written
// bytes against the source checksum and rolling back on mismatch.
func (b *builder) placeFile(ctx context.Context, sourcePath, targetPath string) error {
	logger.InfoKV(ctx, "Placing artifact", "source", sourcePath, "target", targetPath)

	data, err := os.ReadFile(filepath.Clean(sourcePath))
	if err != nil {
		return err
	}

	checksum, err := release.FileChecksum(sourcePath)
	if err != nil {
		return err
	}

	if _, err = os.Stat(targetPath); errors.Is(err, os.ErrNotExist) {
		var target *os.File

		if target, err = os.Create(filepath.Clean(targetPath)); err != nil {
			return err
		}

		if err = target.Close(); err != nil {
			return err
		}
	}

	options := &goupdate.Options{
		TargetPath: targetPath,
		TargetMode: release.DefaultFileMode,
		Checksum:   checksum,
		Hash:       release.DefaultChecksumFunction,
	}

	if err = goupdate.Apply(bytes.NewReader(data), *options); err != nil {
		return fmt.Errorf("place %s: %w", filepath.Base(targetPath), err)
	}

	// Apply keeps the previous file under .old; drop it.
	oldName := targetPath + ".old"
	if _, err = os.Stat(oldName); err == nil {
		_ = os.Remove(oldName)
	}

	return nil
}

// compileInstaller invokes the installer compiler against the packaging
// script and checks the setup executable actually appeared.
func (b *builder) compileInstaller(ctx context.Context) error {
	err := b.exec.Run(ctx, executor.Command{
		Name: b.cfg.Installer.Tool,
		Args: []string{b.path(b.cfg.Installer.Script)},
		Dir:  b.baseDir,
		Env:  b.environ,
	})
	if err != nil {
		return err
	}

	if b.exec.DryRun {
		return nil
	}

	produced := b.path(b.cfg.Installer.Output)
	if _, err = os.Stat(produced); err != nil {
		return fmt.Errorf("installer output missing: %w", err)
	}

	return nil
}

// deactivateEnvironment drops the environment overlay. The overlay never
// leaks into the parent process, so this is bookkeeping plus a log line.
func (b *builder) deactivateEnvironment(ctx context.Context) error {
	if b.environ == nil {
		logger.Debug(ctx, "No environment overlay to deactivate")
		return nil
	}

	b.environ = nil

	logger.InfoKV(ctx, "Deactivated environment", "environment", b.cfg.Environment.Name)

	return nil
}

// writeReleaseDescription records the produced artifacts and their checksums.
func (b *builder) writeReleaseDescription(ctx context.Context) error {
	if b.exec.DryRun {
		logger.Info(ctx, "Dry run, not writing a release description")
		return nil
	}

	desc := release.NewDescription(b.cfg.Project)

	info, err := scm.Detect(b.baseDir)
	if err != nil {
		logger.WarnKV(ctx, "Unable to detect source checkout", "error", err)
	} else if info != nil {
		desc.Commit = info.Commit
		desc.Dirty = info.Dirty
	}

	// The console distribution folder is the distributable: after the merge it
	// carries both entry points. The compiled installer is the third artifact.
	consoleFolder := filepath.Join(b.cfg.Bundle.OutputDir, b.cfg.Bundle.ConsoleName)
	artifacts := []string{
		filepath.Join(consoleFolder, executableName(b.cfg.Bundle.ConsoleName)),
		filepath.Join(consoleFolder, executableName(b.cfg.Bundle.WindowlessName)),
		filepath.FromSlash(b.cfg.Installer.Output),
	}

	for _, artifact := range artifacts {
		if err = desc.AddFile(artifact, b.path(artifact)); err != nil {
			return err
		}
	}

	descriptionPath := filepath.Join(b.baseDir, release.DefaultFilename)
	if err = release.Save(descriptionPath, desc); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Release description written",
		"path", descriptionPath,
		"run_id", desc.RunID,
		"artifacts", len(desc.Files))

	return nil
}

// executableName appends the platform extension to an output name.
func executableName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}

	return name
}
