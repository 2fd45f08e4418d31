package release

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/indaco/cargobump/internal/core"
)

// CargoBuild implements core.BuildRunner by invoking `cargo build`.
type CargoBuild struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// Verify CargoBuild implements core.BuildRunner.
var _ core.BuildRunner = (*CargoBuild)(nil)

// NewCargoBuild creates a build runner using the cargo binary.
func NewCargoBuild() *CargoBuild {
	return &CargoBuild{
		execCommand: exec.CommandContext,
	}
}

// RunBuild implements core.BuildRunner. The build is waited on to
// completion; no timeout is imposed beyond the caller's context.
func (b *CargoBuild) RunBuild(ctx context.Context, dir string) error {
	cmd := b.execCommand(ctx, "cargo", "build")
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return fmt.Errorf("%s: %w", stderrMsg, err)
		}
		return fmt.Errorf("cargo build failed: %w", err)
	}
	return nil
}
