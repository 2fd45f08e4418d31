// Package version exposes the cargobump tool's own version string.
package version

// current is overridable at build time via -ldflags.
var current = "0.1.0"

// GetVersion returns the tool version.
func GetVersion() string {
	return current
}
