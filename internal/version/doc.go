// Package version exposes build metadata for the forge binaries.
//
// Version, Commit and BuildTime are injected via Go ldflags and default to
// local-build values. Short is what release descriptions record; Full is
// what the `version` subcommand prints.
package version
