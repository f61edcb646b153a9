// Package release defines the release description written after a successful
// pipeline run and the checksum helpers shared with the verifier.
//
// The Description type records the project, version, run ID, source commit
// and a map of produced artifacts to SHA-512 checksums. The resulting YAML
// is what forge-verifier checks distribution folders against.
package release
