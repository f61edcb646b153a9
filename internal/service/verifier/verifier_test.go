package verifier

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/release-forge/internal/release"
)

// writeDescription builds a description over real files and saves it.
func writeDescription(t *testing.T, dir string, artifacts map[string]string) string {
	t.Helper()

	desc := release.NewDescription("picasso")

	for name, contents := range artifacts {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o755))
		require.NoError(t, desc.AddFile(name, path))
	}

	path := filepath.Join(dir, release.DefaultFilename)
	require.NoError(t, release.Save(path, desc))

	return path
}

// TestRunMatchingArtifacts passes when nothing changed since the build.
func TestRunMatchingArtifacts(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeDescription(t, dir, map[string]string{
		"picasso":  "console binary",
		"picassow": "windowless binary",
	})

	err := Run(context.Background(), &Options{DescriptionPath: path})
	require.NoError(t, err)
}

// TestRunDetectsTampering reports a changed artifact by name.
func TestRunDetectsTampering(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeDescription(t, dir, map[string]string{
		"picasso":  "console binary",
		"picassow": "windowless binary",
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "picassow"), []byte("patched"), 0o755))

	err := Run(context.Background(), &Options{DescriptionPath: path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "picassow")
	require.Contains(t, err.Error(), "checksum mismatch")
}

// TestRunDetectsMissingArtifact reports a vanished artifact.
func TestRunDetectsMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeDescription(t, dir, map[string]string{
		"picasso": "console binary",
	})

	require.NoError(t, os.Remove(filepath.Join(dir, "picasso")))

	err := Run(context.Background(), &Options{DescriptionPath: path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing")
}

// TestRunMissingDescription fails when there is nothing to verify against.
func TestRunMissingDescription(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), &Options{
		DescriptionPath: filepath.Join(t.TempDir(), "ghost.yaml"),
	})
	require.Error(t, err)
}
