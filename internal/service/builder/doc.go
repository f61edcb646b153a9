// Package builder runs the release pipeline: environment activation, package
// install, console and windowless bundling, artifact merge, installer
// compilation and the release description.
//
// Steps run strictly in order; the first failure aborts the rest. A marker
// file next to the manifest prevents two builds from racing over the same
// distribution folders.
package builder
