package builder

import (
	"context"
	"errors"
	"os"
	"runtime"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/release-forge/internal/logger"
)

// MarkerFilename marks that a build is running right now to avoid parallel execution.
const MarkerFilename = "forge-build-marker.bin"

// errBuildRunning indicates another builder instance already owns this directory.
var errBuildRunning = errors.New("a build is already running in this directory")

// IsBuildRunningNow checks presence of a build marker. A marker left behind by
// a dead builder process is treated as stale and removed.
func IsBuildRunningNow(ctx context.Context, markerPath string) bool {
	logger.Debug(ctx, "Checking for the presence of a build marker")

	_, err := os.Stat(markerPath)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}

	if err != nil {
		logger.Infof(ctx, "Unable to read build marker: %v", err)
		return false
	}

	if builderProcessExists() {
		return true
	}

	logger.Info(ctx, "Found a stale build marker, removing it")

	if err = os.Remove(markerPath); err != nil {
		return true
	}

	return false
}

// builderProcessExists reports whether another builder process is alive.
func builderProcessExists() bool {
	processList, err := ps.Processes()
	if err != nil {
		// Cannot tell; assume the marker owner is alive.
		return true
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() == builderExecutableName() {
			return true
		}
	}

	return false
}

// builderExecutableName returns the builder binary name for the current platform.
func builderExecutableName() string {
	if runtime.GOOS == "windows" {
		return "forge-builder.exe"
	}

	return "forge-builder"
}

// createMarker writes the build marker.
func createMarker(markerPath string) error {
	marker, err := os.Create(markerPath) //nolint:gosec // Path is derived from the manifest location.
	if err != nil {
		return err
	}

	return marker.Close()
}

// removeMarker deletes the build marker, logging failures instead of failing the run.
func removeMarker(ctx context.Context, markerPath string) {
	if err := os.Remove(markerPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WarnKV(ctx, "Unable to remove build marker", "error", err)
	}
}
