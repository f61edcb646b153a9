package executor

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// skipOnWindows skips tests that rely on POSIX shell tooling.
func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("test relies on /bin/sh")
	}
}

// TestRunSuccess executes a trivial shell command.
func TestRunSuccess(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	e := New(false)
	err := e.Run(context.Background(), Command{
		Name: "/bin/sh",
		Args: []string{"-c", "echo building"},
	})
	require.NoError(t, err)
}

// TestRunFailure surfaces non-zero exits as errors naming the tool.
func TestRunFailure(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	e := New(false)
	err := e.Run(context.Background(), Command{
		Name: "/bin/sh",
		Args: []string{"-c", "exit 3"},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "/bin/sh")
}

// TestRunUsesWorkingDir runs the command from the requested working directory.
func TestRunUsesWorkingDir(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	dir := t.TempDir()

	e := New(false)
	err := e.Run(context.Background(), Command{
		Name: "/bin/sh",
		Args: []string{"-c", "touch here.txt"},
		Dir:  dir,
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "here.txt"))
	require.NoError(t, err)
}

// TestRunEmptyCommand rejects a command without a binary name.
func TestRunEmptyCommand(t *testing.T) {
	t.Parallel()

	e := New(false)
	require.Error(t, e.Run(context.Background(), Command{}))
}

// TestDryRun succeeds without executing anything, even for a missing binary.
func TestDryRun(t *testing.T) {
	t.Parallel()

	e := New(true)
	err := e.Run(context.Background(), Command{
		Name: "definitely-not-installed-anywhere",
		Args: []string{"--version"},
	})
	require.NoError(t, err)
}

// TestRunCanceledContext aborts a long-running command.
func TestRunCanceledContext(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(false)
	err := e.Run(ctx, Command{
		Name: "/bin/sh",
		Args: []string{"-c", "sleep 30"},
	})
	require.Error(t, err)
}
