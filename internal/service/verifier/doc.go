// Package verifier checks distribution artifacts against a release
// description, re-hashing every listed file and reporting all mismatches.
package verifier
