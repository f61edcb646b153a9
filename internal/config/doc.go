// Package config defines the build manifest consumed by forge-builder and
// provides helpers to load, validate and save it in YAML format.
//
// The Config type describes one release pipeline run: the isolated
// environment, the install command, both bundle variants and the installer
// compilation. Validation applies defaults for optional fields.
package config
