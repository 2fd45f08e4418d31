// Package cli builds the cargobump command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/indaco/cargobump/internal/config"
	"github.com/indaco/cargobump/internal/operations"
	"github.com/indaco/cargobump/internal/printer"
	"github.com/indaco/cargobump/internal/semver"
	"github.com/indaco/cargobump/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command, configuring all
// subcommands and flags for the cargobump cli.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "cargobump",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Bump the version in Cargo.toml following semantic versioning",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "manifest-path",
				Usage:       "Path to Cargo.toml",
				DefaultText: "searched upward from the working directory",
			},
			&urfavecli.StringFlag{
				Name:    "pre-release",
				Aliases: []string{"p"},
				Usage:   "Add pre-release part to the new version, e.g. 'beta'",
			},
			&urfavecli.StringFlag{
				Name:    "build",
				Aliases: []string{"b"},
				Usage:   "Add build metadata to the new version, e.g. 'dirty'",
			},
			&urfavecli.BoolFlag{
				Name:    "git-tag",
				Aliases: []string{"g"},
				Usage:   "Commit the updated version and create a git tag",
			},
			&urfavecli.BoolFlag{
				Name:    "run-build",
				Aliases: []string{"r"},
				Usage:   "Require `cargo build` to succeed before running git actions",
			},
			&urfavecli.StringFlag{
				Name:    "tag-prefix",
				Aliases: []string{"t"},
				Usage:   "Prefix for the git tag, e.g. 'v' (implies --git-tag)",
			},
			&urfavecli.BoolFlag{
				Name:  "ignore-lockfile",
				Usage: "Don't update Cargo.lock",
			},
			&urfavecli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would change without writing any file",
			},
			&urfavecli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the interactive confirmation",
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			if noColorFlag {
				printer.SetNoColor(true)
			}
			return ctx, nil
		},
		// Bare invocations mirror the classic surface: a bump kind token
		// (major, minor, patch) or an explicit version string.
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			arg := cmd.Args().First()
			if arg == "" {
				return urfavecli.ShowAppHelp(cmd)
			}
			if kind, err := semver.ParseBumpKind(arg); err == nil {
				return runBump(ctx, cmd, cfg, operations.Request{Kind: kind})
			}
			explicit, err := semver.ParseVersion(StripTagPrefix(arg))
			if err != nil {
				return fmt.Errorf("expected major, minor, patch, or a semantic version string: %w", err)
			}
			return runBump(ctx, cmd, cfg, operations.Request{Explicit: &explicit})
		},
		Commands: []*urfavecli.Command{
			majorCmd(cfg),
			minorCmd(cfg),
			patchCmd(cfg),
			setCmd(cfg),
			showCmd(cfg),
		},
	}
}
