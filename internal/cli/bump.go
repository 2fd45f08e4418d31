package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/indaco/cargobump/internal/config"
	"github.com/indaco/cargobump/internal/core"
	"github.com/indaco/cargobump/internal/operations"
	"github.com/indaco/cargobump/internal/printer"
	"github.com/indaco/cargobump/internal/release"
	"github.com/indaco/cargobump/internal/semver"
	"github.com/indaco/cargobump/internal/tui"
	"github.com/urfave/cli/v3"
)

// majorCmd returns the "major" command.
func majorCmd(cfg *config.Config) *cli.Command {
	return bumpKindCmd(cfg, semver.BumpMajor, "Bump the major version (1.2.3 -> 2.0.0)")
}

// minorCmd returns the "minor" command.
func minorCmd(cfg *config.Config) *cli.Command {
	return bumpKindCmd(cfg, semver.BumpMinor, "Bump the minor version (1.2.3 -> 1.3.0)")
}

// patchCmd returns the "patch" command.
func patchCmd(cfg *config.Config) *cli.Command {
	return bumpKindCmd(cfg, semver.BumpPatch, "Bump the patch version (1.2.3 -> 1.2.4)")
}

func bumpKindCmd(cfg *config.Config, kind semver.BumpKind, usage string) *cli.Command {
	return &cli.Command{
		Name:  string(kind),
		Usage: usage,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runBump(ctx, cmd, cfg, operations.Request{Kind: kind})
		},
	}
}

// setCmd returns the "set" command for explicit target versions.
func setCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set an explicit version (accepted as-is, no monotonicity check)",
		UsageText: "cargobump set <version> [--flags]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			arg := cmd.Args().First()
			if arg == "" {
				return fmt.Errorf("missing version argument: expected a semantic version string")
			}
			explicit, err := semver.ParseVersion(StripTagPrefix(arg))
			if err != nil {
				return err
			}
			return runBump(ctx, cmd, cfg, operations.Request{Explicit: &explicit})
		},
	}
}

// runBump merges flags and config into the request, executes the bump
// pipeline, and runs the release hook.
func runBump(ctx context.Context, cmd *cli.Command, cfg *config.Config, req operations.Request) error {
	eff := effectiveConfig(cmd, cfg)

	req.PreRelease = cmd.String("pre-release")
	req.Build = cmd.String("build")
	req.ManifestPath = eff.ManifestPath
	req.IgnoreLockfile = eff.IgnoreLockfile
	req.DryRun = cmd.Bool("dry-run")

	fs := core.NewOSFileSystem()
	interactive := tui.IsInteractive()

	if !req.DryRun && interactive && !cmd.Bool("yes") {
		ok, err := confirmBump(ctx, fs, req)
		if err != nil {
			return err
		}
		if !ok {
			printer.PrintWarning("Aborted; nothing was written")
			return nil
		}
	}

	result, err := operations.NewBumpOperation(fs, req).Execute(ctx)
	if err != nil {
		return err
	}

	reportResult(result)

	if result.DryRun {
		return nil
	}

	hook := release.NewOSHook(release.Config{
		RequireBuild:  eff.RunBuild,
		GitTag:        eff.GitTag,
		TagPrefix:     eff.TagPrefix,
		Annotate:      eff.Annotate,
		CommitMessage: eff.CommitMessage,
		TagMessage:    eff.TagMessage,
		Interactive:   interactive,
	}, result.ManifestPath)
	if err := hook.Run(ctx, result); err != nil {
		return err
	}

	if eff.GitTag || eff.TagPrefix != "" {
		printer.PrintSuccess(fmt.Sprintf("Created tag %s", result.New.TagName(eff.TagPrefix)))
	}
	return nil
}

// confirmBump computes the would-be result without writing and asks the
// user to confirm it.
func confirmBump(ctx context.Context, fs core.FileSystem, req operations.Request) (bool, error) {
	preview := req
	preview.DryRun = true
	result, err := operations.NewBumpOperation(fs, preview).Execute(ctx)
	if err != nil {
		return false, err
	}

	proceed := true
	err = huh.NewConfirm().
		Title(fmt.Sprintf("Bump %s from %s to %s?", result.Package, result.Previous, result.New)).
		Affirmative("Yes").
		Negative("No").
		Value(&proceed).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return proceed, nil
}

// reportResult prints the outcome of a bump.
func reportResult(result *operations.Result) {
	line := fmt.Sprintf("%s: %s -> %s", result.Package, result.Previous, result.New)
	if result.DryRun {
		printer.PrintInfo("[dry-run] " + line)
		if result.LockfileUpdated {
			printer.PrintFaint("[dry-run] Cargo.lock entry would be updated")
		}
		return
	}

	printer.PrintSuccess(line)
	if result.LockfileUpdated {
		printer.PrintFaint("Updated Cargo.lock")
	}
}

// StripTagPrefix removes a single leading non-digit character from a
// version string, accepting inputs like "v1.2.3". The semver model
// itself never strips prefixes.
func StripTagPrefix(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= '0' && s[0] <= '9' {
		return s
	}
	return s[1:]
}
