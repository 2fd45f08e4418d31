// Package release runs the post-bump hooks: optional build verification
// via cargo and optional git commit + tag creation. Hook failures never
// roll back the manifest/lockfile writes performed by the bump pipeline;
// they surface as a distinct error class so callers can report "version
// was bumped but the release step failed".
package release

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh/spinner"
	"github.com/indaco/cargobump/internal/core"
	"github.com/indaco/cargobump/internal/operations"
)

var (
	// ErrBuildFailed marks a required build that did not succeed.
	ErrBuildFailed = errors.New("build failed")

	// ErrTag marks a failure while staging, committing, or tagging.
	ErrTag = errors.New("git release step failed")
)

// IsReleaseFailure reports whether err comes from the release hook, as
// opposed to the bump pipeline. Callers map this to a distinct exit code.
func IsReleaseFailure(err error) bool {
	return errors.Is(err, ErrBuildFailed) || errors.Is(err, ErrTag)
}

// Config controls the release hook.
type Config struct {
	// RequireBuild runs `cargo build` and aborts the hook on failure.
	RequireBuild bool

	// GitTag enables the commit + tag step.
	GitTag bool

	// TagPrefix is prepended to the version in the tag name.
	TagPrefix string

	// Annotate creates an annotated tag; false creates a lightweight one.
	Annotate bool

	// CommitMessage is the commit message template ({version}, {tag}).
	CommitMessage string

	// TagMessage is the annotated tag message template ({version}, {tag}).
	TagMessage string

	// Interactive shows a spinner while the external build runs.
	Interactive bool
}

// Hook executes the configured release steps for a completed bump.
type Hook struct {
	cfg   Config
	git   core.GitOperations
	build core.BuildRunner
}

// NewHook creates a release hook for the repository containing the
// bumped manifest. Nil git/build fall back to the OS implementations.
func NewHook(cfg Config, git core.GitOperations, build core.BuildRunner) *Hook {
	return &Hook{cfg: cfg, git: git, build: build}
}

// NewOSHook creates a hook wired to the real git and cargo binaries,
// rooted at the manifest's directory.
func NewOSHook(cfg Config, manifestPath string) *Hook {
	dir := filepath.Dir(manifestPath)
	return NewHook(cfg, NewOSGit(dir), NewCargoBuild())
}

// Run executes the hook for the given bump result. The build step runs
// first when required; the git step only runs after a successful build.
// Nothing here unwinds the file writes already performed.
func (h *Hook) Run(ctx context.Context, result *operations.Result) error {
	if h.cfg.RequireBuild {
		if err := h.runBuild(ctx, filepath.Dir(result.ManifestPath)); err != nil {
			return fmt.Errorf("%w: %s", ErrBuildFailed, err)
		}
	}

	if h.cfg.GitTag || h.cfg.TagPrefix != "" {
		if err := h.commitAndTag(result); err != nil {
			return fmt.Errorf("%w: %s", ErrTag, err)
		}
	}

	return nil
}

// runBuild invokes the external build, behind a spinner when interactive.
func (h *Hook) runBuild(ctx context.Context, dir string) error {
	if !h.cfg.Interactive {
		return h.build.RunBuild(ctx, dir)
	}

	var buildErr error
	err := spinner.New().
		Title("Running cargo build...").
		Action(func() {
			buildErr = h.build.RunBuild(ctx, dir)
		}).
		Run()
	if err != nil {
		return err
	}
	return buildErr
}

// commitAndTag stages the rewritten files, commits, and creates the tag.
func (h *Hook) commitAndTag(result *operations.Result) error {
	tagName := result.New.TagName(h.cfg.TagPrefix)

	exists, err := h.git.TagExists(tagName)
	if err != nil {
		return fmt.Errorf("failed to check tag existence: %s", err)
	}
	if exists {
		return fmt.Errorf("tag %s already exists", tagName)
	}

	files := []string{result.ManifestPath}
	if result.LockfileUpdated {
		files = append(files, result.LockfilePath)
	}
	if err := h.git.StageFiles(files...); err != nil {
		return fmt.Errorf("failed to stage files: %s", err)
	}

	if err := h.git.Commit(h.formatMessage(h.cfg.CommitMessage, result, tagName)); err != nil {
		return fmt.Errorf("failed to commit: %s", err)
	}

	if h.cfg.Annotate {
		if err := h.git.CreateAnnotatedTag(tagName, h.formatMessage(h.cfg.TagMessage, result, tagName)); err != nil {
			return fmt.Errorf("failed to create annotated tag: %s", err)
		}
	} else {
		if err := h.git.CreateLightweightTag(tagName); err != nil {
			return fmt.Errorf("failed to create tag: %s", err)
		}
	}

	return nil
}

// formatMessage expands the {version} and {tag} placeholders.
func (h *Hook) formatMessage(template string, result *operations.Result, tagName string) string {
	msg := template
	if msg == "" {
		msg = "Version {version}"
	}
	msg = strings.ReplaceAll(msg, "{version}", result.New.String())
	msg = strings.ReplaceAll(msg, "{tag}", tagName)
	return msg
}
