package verifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oshokin/release-forge/internal/logger"
	"github.com/oshokin/release-forge/internal/release"
)

var (
	// errArtifactMissing marks an artifact that disappeared since the build.
	errArtifactMissing = errors.New("artifact is missing")
	// errChecksumMismatch marks an artifact whose content changed since the build.
	errChecksumMismatch = errors.New("checksum mismatch")
)

// verify walks the description's artifact list in stable order and collects
// every problem before failing, so one run reports the full damage.
// Relative artifact names resolve against baseDir, the description's directory.
func verify(ctx context.Context, baseDir string, desc *release.Description) error {
	names := make([]string, 0, len(desc.Files))
	for name := range desc.Files {
		names = append(names, name)
	}

	sort.Strings(names)

	var problems []string

	for _, name := range names {
		if err := verifyArtifact(ctx, baseDir, name, desc.Files[name]); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; ")) //nolint:err113 // Aggregated report message.
	}

	return nil
}

// verifyArtifact re-hashes one artifact and compares it to the recorded checksum.
func verifyArtifact(ctx context.Context, baseDir, name, encoded string) error {
	logger.DebugKV(ctx, "Checking artifact", "file", name)

	expected, err := release.DecodeChecksum(encoded)
	if err != nil {
		return err
	}

	path := filepath.FromSlash(name)
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	actual, err := release.FileChecksum(path)
	if errors.Is(err, os.ErrNotExist) {
		return errArtifactMissing
	}

	if err != nil {
		return err
	}

	if !bytes.Equal(expected, actual) {
		return errChecksumMismatch
	}

	return nil
}
