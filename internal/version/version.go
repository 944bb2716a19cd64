// Package version carries the release string printed by --version.
package version

// Version is overridden at build time with -ldflags "-X deltafilter/internal/version.Version=...".
var Version = "1.0.0"
