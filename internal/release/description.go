package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/release-forge/internal/version"
)

const (
	// DefaultFilename stores the release description next to the build manifest.
	DefaultFilename = "forge-release.yaml"

	// DefaultFileMode is used when producing artifacts for distribution.
	DefaultFileMode os.FileMode = 0o755

	// descriptionFileMode is used for the release description itself.
	descriptionFileMode os.FileMode = 0o644

	// defaultMapCapacity is the default initial capacity for maps.
	defaultMapCapacity = 16
)

var (
	// errDescriptionIsNotSet is returned when a nil description is saved.
	errDescriptionIsNotSet = errors.New("release description is not set")
	// errNoFiles is returned when a loaded description lists no artifacts.
	errNoFiles = errors.New("release description lists no files")
)

// Description records what one pipeline run produced.
type Description struct {
	// Project is the application name from the build manifest.
	Project string `yaml:"project"`
	// VersionNumber is the semantic version of this release.
	VersionNumber string `yaml:"version"`
	// RunID uniquely identifies the pipeline run that produced the artifacts.
	RunID string `yaml:"run_id"`
	// Commit is the source commit the build was produced from, when known.
	Commit string `yaml:"commit,omitempty"`
	// Dirty reports uncommitted changes in the source checkout at build time.
	Dirty bool `yaml:"dirty,omitempty"`
	// BuiltAt is the UTC completion time of the pipeline.
	BuiltAt time.Time `yaml:"built_at"`
	// Files maps artifact paths to their base64-encoded checksums.
	Files map[string]string `yaml:"files"`
}

// NewDescription produces a Description initialized for the current run.
func NewDescription(project string) *Description {
	return &Description{
		Project:       project,
		VersionNumber: version.Short(),
		RunID:         uuid.NewString(),
		BuiltAt:       time.Now().UTC(),
		Files:         make(map[string]string, defaultMapCapacity),
	}
}

// AddFile hashes the artifact at path and records it under name.
// Names are slash-separated and relative to the description's own location,
// so the description stays valid when the folder is moved as a whole.
func (d *Description) AddFile(name, path string) error {
	checksum, err := FileChecksum(path)
	if err != nil {
		return err
	}

	d.Files[filepath.ToSlash(name)] = EncodeChecksum(checksum)

	return nil
}

// Save writes the description to the provided path.
func Save(path string, d *Description) error {
	if d == nil {
		return errDescriptionIsNotSet
	}

	if path == "" {
		path = DefaultFilename
	}

	contents, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal release description: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), contents, descriptionFileMode); err != nil {
		return fmt.Errorf("write release description: %w", err)
	}

	return nil
}

// Load reads a description from the provided path and checks it lists artifacts.
func Load(path string) (*Description, error) {
	if path == "" {
		path = DefaultFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read release description: %w", err)
	}

	var d Description
	if err := yaml.Unmarshal(contents, &d); err != nil {
		return nil, fmt.Errorf("unmarshal release description: %w", err)
	}

	if len(d.Files) == 0 {
		return nil, errNoFiles
	}

	return &d, nil
}
