package manifest

import "errors"

// ManifestFile is the manifest file name searched for during location.
const ManifestFile = "Cargo.toml"

// LockFile is the lockfile name expected alongside the manifest.
const LockFile = "Cargo.lock"

var (
	// ErrManifestNotFound is returned when no manifest exists at the
	// explicit path or anywhere between the working directory and the
	// filesystem root.
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrVersionFieldNotFound is returned when the [package] table has no
	// top-level version key.
	ErrVersionFieldNotFound = errors.New("no version field found in [package] table")

	// ErrPackageNotFound is returned when a lockfile has no entry matching
	// the package name and current version. Callers treat it as a no-op.
	ErrPackageNotFound = errors.New("package entry not found in lockfile")
)

// Span identifies a byte range within a raw document. Start is inclusive,
// End exclusive. For version fields the span covers the quoted literal
// including both quote characters.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Handle bundles the resolved manifest path with its optional sibling
// lockfile. LockfilePath is empty when no lockfile exists.
type Handle struct {
	ManifestPath string
	LockfilePath string
}

// HasLockfile reports whether a lockfile was found next to the manifest.
func (h Handle) HasLockfile() bool { return h.LockfilePath != "" }

// Package holds the fields cargobump needs from the [package] table.
type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// document mirrors the top-level manifest structure for the cross-check
// parse; everything outside [package] is ignored.
type document struct {
	Package Package `toml:"package"`
}
