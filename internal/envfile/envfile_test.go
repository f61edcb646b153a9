package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoad reads a named environment file and returns its variables.
func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	contents := "PYTHON_HOME=/opt/envs/picasso\nEXTRA_FLAG=1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "picasso.env"), []byte(contents), 0o600))

	values, err := Load(dir, "picasso")
	require.NoError(t, err)
	require.Equal(t, "/opt/envs/picasso", values["PYTHON_HOME"])
	require.Equal(t, "1", values["EXTRA_FLAG"])
}

// TestLoadErrors covers the empty name and missing file cases.
func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Load(dir, "")
	require.Error(t, err)

	_, err = Load(dir, "ghost")
	require.Error(t, err)
}

// TestMerge verifies in-place replacement and deterministic appends.
func TestMerge(t *testing.T) {
	t.Parallel()

	base := []string{"PATH=/usr/bin", "HOME=/home/build", "LANG=C"}
	overlay := map[string]string{
		"PATH":   "/opt/envs/picasso/bin:/usr/bin",
		"ZED":    "last",
		"ANCHOR": "first",
	}

	merged := Merge(base, overlay)
	require.Equal(t, []string{
		"PATH=/opt/envs/picasso/bin:/usr/bin",
		"HOME=/home/build",
		"LANG=C",
		"ANCHOR=first",
		"ZED=last",
	}, merged)

	// Nil overlay keeps the base untouched.
	require.Equal(t, base, Merge(base, nil))
}
