// Package operations implements the bump pipeline: locate the manifest,
// read and parse the current version, compute the next one, and rewrite
// manifest and lockfile in place.
package operations

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/cargobump/internal/core"
	"github.com/indaco/cargobump/internal/manifest"
	"github.com/indaco/cargobump/internal/semver"
)

// Request describes a single bump invocation. Exactly one of Kind or
// Explicit must be set.
type Request struct {
	// Kind is the increment to apply (major, minor, patch).
	Kind semver.BumpKind

	// Explicit, when non-nil, is used as the new version verbatim. No
	// monotonicity check is applied: downgrades and re-releases are
	// accepted.
	Explicit *semver.SemVersion

	// PreRelease, when non-empty, is attached to the computed version.
	PreRelease string

	// Build, when non-empty, is attached to the computed version.
	Build string

	// ManifestPath overrides manifest location; empty means search upward.
	ManifestPath string

	// IgnoreLockfile skips the Cargo.lock update.
	IgnoreLockfile bool

	// DryRun computes the result without writing any file.
	DryRun bool
}

// Result reports what a bump did (or, for a dry run, would do).
type Result struct {
	Package         string
	Previous        semver.SemVersion
	New             semver.SemVersion
	ManifestPath    string
	LockfilePath    string
	LockfileUpdated bool
	DryRun          bool
}

// BumpOperation performs a version bump against a manifest.
type BumpOperation struct {
	fs  core.FileSystem
	req Request
}

// NewBumpOperation creates a new bump operation.
func NewBumpOperation(fs core.FileSystem, req Request) *BumpOperation {
	return &BumpOperation{fs: fs, req: req}
}

// Execute runs the pipeline. Steps before the manifest write perform no
// side effects, so any failure there leaves both files untouched. A
// lockfile write failure does not roll back a completed manifest write;
// the error reports which file failed.
func (op *BumpOperation) Execute(ctx context.Context) (*Result, error) {
	handle, err := manifest.Locate(ctx, op.fs, op.req.ManifestPath)
	if err != nil {
		return nil, err
	}

	raw, err := op.fs.ReadFile(ctx, handle.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", handle.ManifestPath, err)
	}

	currentStr, span, err := manifest.ReadVersionField(raw)
	if err != nil {
		return nil, fmt.Errorf("in %q: %w", handle.ManifestPath, err)
	}

	pkg, err := manifest.ParsePackage(raw, currentStr)
	if err != nil {
		return nil, fmt.Errorf("in %q: %w", handle.ManifestPath, err)
	}

	current, err := semver.ParseVersion(currentStr)
	if err != nil {
		return nil, fmt.Errorf("manifest %q has invalid version: %w", handle.ManifestPath, err)
	}

	next, err := op.computeNewVersion(current)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Package:      pkg.Name,
		Previous:     current,
		New:          next,
		ManifestPath: handle.ManifestPath,
		LockfilePath: handle.LockfilePath,
		DryRun:       op.req.DryRun,
	}

	if op.req.DryRun {
		result.LockfileUpdated = op.wouldUpdateLockfile(ctx, handle, pkg.Name, currentStr)
		return result, nil
	}

	updated, err := manifest.WriteVersionField(raw, span, next.String())
	if err != nil {
		return nil, fmt.Errorf("in %q: %w", handle.ManifestPath, err)
	}
	if err := op.fs.WriteFile(ctx, handle.ManifestPath, updated, core.PermFile); err != nil {
		return nil, fmt.Errorf("failed to write manifest %q: %w", handle.ManifestPath, err)
	}

	if handle.HasLockfile() && !op.req.IgnoreLockfile {
		lockUpdated, err := op.updateLockfile(ctx, handle.LockfilePath, pkg.Name, currentStr, next.String())
		if err != nil {
			return nil, err
		}
		result.LockfileUpdated = lockUpdated
	}

	return result, nil
}

// computeNewVersion applies the requested bump and attaches any supplied
// pre-release/build metadata.
func (op *BumpOperation) computeNewVersion(current semver.SemVersion) (semver.SemVersion, error) {
	var next semver.SemVersion
	if op.req.Explicit != nil {
		next = *op.req.Explicit
	} else {
		bumped, err := current.Bump(op.req.Kind)
		if err != nil {
			return semver.SemVersion{}, err
		}
		next = bumped
	}

	if op.req.PreRelease != "" {
		next = next.WithPreRelease(op.req.PreRelease)
	}
	if op.req.Build != "" {
		next = next.WithBuild(op.req.Build)
	}
	return next, nil
}

// updateLockfile rewrites the package's own entry in the lockfile.
// A missing entry is not an error: the lockfile is left byte-identical
// and false is returned.
func (op *BumpOperation) updateLockfile(ctx context.Context, path, name, oldVersion, newVersion string) (bool, error) {
	raw, err := op.fs.ReadFile(ctx, path)
	if err != nil {
		return false, fmt.Errorf("failed to read lockfile %q: %w", path, err)
	}

	updated, err := manifest.ReplacePackageVersion(raw, name, oldVersion, newVersion)
	if err != nil {
		if errors.Is(err, manifest.ErrPackageNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("in %q: %w", path, err)
	}

	if err := op.fs.WriteFile(ctx, path, updated, core.PermFile); err != nil {
		return false, fmt.Errorf("failed to write lockfile %q: %w", path, err)
	}
	return true, nil
}

// wouldUpdateLockfile reports whether a non-dry run would touch the
// lockfile, without writing anything.
func (op *BumpOperation) wouldUpdateLockfile(ctx context.Context, handle manifest.Handle, name, oldVersion string) bool {
	if !handle.HasLockfile() || op.req.IgnoreLockfile {
		return false
	}
	raw, err := op.fs.ReadFile(ctx, handle.LockfilePath)
	if err != nil {
		return false
	}
	_, err = manifest.FindPackageVersionSpan(raw, name, oldVersion)
	return err == nil
}
