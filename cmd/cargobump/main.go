package main

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/cargobump/internal/cli"
	"github.com/indaco/cargobump/internal/config"
	"github.com/indaco/cargobump/internal/printer"
	"github.com/indaco/cargobump/internal/release"
)

// Exit codes: bump-stage failures mean nothing was released; release-stage
// failures mean the version was already bumped on disk.
const (
	exitBumpFailed    = 1
	exitReleaseFailed = 2
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, printer.Error(err.Error()))
		if release.IsReleaseFailure(err) {
			os.Exit(exitReleaseFailed)
		}
		os.Exit(exitBumpFailed)
	}
}

// runCLI loads configuration and dispatches to the command tree.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return err
	}
	return cli.New(cfg).Run(context.Background(), args)
}
