package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/indaco/cargobump/internal/core"
)

// EnvManifestPath is an environment variable overriding the manifest
// location. It takes precedence over the upward search but not over an
// explicit --manifest-path flag.
const EnvManifestPath = "CARGOBUMP_MANIFEST"

// Locate resolves the manifest to operate on. When explicit is non-empty
// it must point at an existing, readable manifest file. Otherwise the
// CARGOBUMP_MANIFEST environment variable is consulted, and failing that
// the search walks upward from the working directory until a Cargo.toml
// is found or the filesystem root is reached.
//
// The returned handle carries the lockfile path when a Cargo.lock sits
// next to the manifest; a missing lockfile is not an error.
func Locate(ctx context.Context, fs core.FileSystem, explicit string) (Handle, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvManifestPath)
	}

	if explicit != "" {
		path, err := filepath.Abs(explicit)
		if err != nil {
			return Handle{}, fmt.Errorf("failed to resolve manifest path %q: %w", explicit, err)
		}
		if _, err := fs.Stat(ctx, path); err != nil {
			return Handle{}, fmt.Errorf("%w: %q: %s", ErrManifestNotFound, explicit, err)
		}
		return withLockfile(ctx, fs, path), nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return Handle{}, fmt.Errorf("failed to determine working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ManifestFile)
		if _, err := fs.Stat(ctx, candidate); err == nil {
			return withLockfile(ctx, fs, candidate), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Handle{}, fmt.Errorf("%w: no %s between the working directory and the filesystem root", ErrManifestNotFound, ManifestFile)
		}
		dir = parent
	}
}

// withLockfile builds a Handle for manifestPath, attaching the sibling
// lockfile when present.
func withLockfile(ctx context.Context, fs core.FileSystem, manifestPath string) Handle {
	h := Handle{ManifestPath: manifestPath}
	lock := filepath.Join(filepath.Dir(manifestPath), LockFile)
	if _, err := fs.Stat(ctx, lock); err == nil {
		h.LockfilePath = lock
	}
	return h
}
