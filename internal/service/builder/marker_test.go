package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMarkerLifecycle covers creation, stale detection and removal.
func TestMarkerLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	markerPath := filepath.Join(t.TempDir(), MarkerFilename)

	// No marker: nothing is running.
	require.False(t, IsBuildRunningNow(ctx, markerPath))

	require.NoError(t, createMarker(markerPath))

	// The marker exists but no forge-builder process does, so it is stale
	// and gets cleaned up.
	require.False(t, IsBuildRunningNow(ctx, markerPath))

	_, err := os.Stat(markerPath)
	require.ErrorIs(t, err, os.ErrNotExist)

	// Removing a missing marker is quiet.
	removeMarker(ctx, markerPath)
}
