// Package core defines the shared abstractions used across cargobump:
// the filesystem seam, the git and build process seams, and common
// file permission constants. Production implementations live next to
// the interfaces; mocks are provided for tests.
package core

import (
	"context"
	"io/fs"
)

// File permission constants used for files created by cargobump.
const (
	// PermOwnerRW is owner read/write (0600), used for files that may
	// carry user-local configuration.
	PermOwnerRW fs.FileMode = 0o600

	// PermFile is the default permission for rewritten project files (0644).
	PermFile fs.FileMode = 0o644
)

// FileSystem abstracts file access so operations can be tested without
// touching the real filesystem.
type FileSystem interface {
	// ReadFile returns the full contents of the file at path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile replaces the contents of the file at path. Implementations
	// must write atomically (write to a temporary file in the same
	// directory, then rename) so a failed write never leaves a partially
	// written file behind.
	WriteFile(ctx context.Context, path string, data []byte, perm fs.FileMode) error

	// Stat returns file info for path.
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
}

// GitOperations abstracts the git invocations performed after a bump.
type GitOperations interface {
	// StageFiles runs `git add` for the given paths.
	StageFiles(files ...string) error

	// Commit creates a commit with the given message.
	Commit(message string) error

	// CreateAnnotatedTag creates an annotated tag with a message.
	CreateAnnotatedTag(name, message string) error

	// CreateLightweightTag creates a plain tag without a message.
	CreateLightweightTag(name string) error

	// TagExists reports whether a tag with the given name already exists.
	TagExists(name string) (bool, error)
}

// BuildRunner abstracts the external build invocation used to verify the
// project still builds after the version rewrite.
type BuildRunner interface {
	// RunBuild runs the project build in dir and returns an error when the
	// build fails.
	RunBuild(ctx context.Context, dir string) error
}
