package release

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/indaco/cargobump/internal/core"
)

// OSGit implements core.GitOperations using the git binary. All commands
// run in the configured directory (the manifest's directory) so cargobump
// works from anywhere inside the repository.
type OSGit struct {
	dir         string
	execCommand func(name string, arg ...string) *exec.Cmd
}

// Verify OSGit implements core.GitOperations.
var _ core.GitOperations = (*OSGit)(nil)

// NewOSGit creates git operations rooted at dir.
func NewOSGit(dir string) *OSGit {
	return &OSGit{
		dir:         dir,
		execCommand: exec.Command,
	}
}

// run executes a git command, surfacing stderr in the returned error.
func (g *OSGit) run(args ...string) error {
	cmd := g.execCommand("git", args...)
	cmd.Dir = g.dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return fmt.Errorf("%s: %w", stderrMsg, err)
		}
		return fmt.Errorf("git %s failed: %w", args[0], err)
	}
	return nil
}

// StageFiles implements core.GitOperations.
func (g *OSGit) StageFiles(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	return g.run(args...)
}

// Commit implements core.GitOperations.
func (g *OSGit) Commit(message string) error {
	return g.run("commit", "-m", message)
}

// CreateAnnotatedTag implements core.GitOperations.
func (g *OSGit) CreateAnnotatedTag(name, message string) error {
	return g.run("tag", "-a", name, "-m", message)
}

// CreateLightweightTag implements core.GitOperations.
func (g *OSGit) CreateLightweightTag(name string) error {
	return g.run("tag", name)
}

// TagExists implements core.GitOperations.
func (g *OSGit) TagExists(name string) (bool, error) {
	cmd := g.execCommand("git", "tag", "-l", name)
	cmd.Dir = g.dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return false, fmt.Errorf("failed to list tags: %w", err)
	}

	// If the tag exists, git tag -l outputs the tag name.
	return strings.TrimSpace(stdout.String()) == name, nil
}
