package version

import "fmt"

var (
	// Version is the semantic version stamped into release descriptions.
	// Overridden via ldflags on release builds.
	Version = "1.0.0"
	// Commit is the short git SHA of the forge binaries themselves (or "none").
	Commit = "none"
	// BuildTime is the UTC timestamp the binaries were built at.
	BuildTime = "unknown"
)

// Short returns only the semantic version string, the form recorded in
// release descriptions.
func Short() string {
	return Version
}

// Full renders version, commit and build time for CLI output.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}
