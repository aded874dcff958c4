// Package version holds the application version, overridable at build time
// with -ldflags "-X .../internal/version.Version=v1.2.3".
package version

// Version is the reported application version.
var Version = "dev"
