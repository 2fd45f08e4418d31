package cli

import (
	"github.com/indaco/cargobump/internal/config"
	"github.com/urfave/cli/v3"
)

// effectiveConfig merges command-line flags over the file-based defaults.
// Flags win whenever they are set; boolean flags can only enable behavior
// (mirroring the original command surface, which has no --no-* forms).
func effectiveConfig(cmd *cli.Command, cfg *config.Config) config.Config {
	eff := *cfg

	if v := cmd.String("manifest-path"); v != "" {
		eff.ManifestPath = v
	}
	if v := cmd.String("tag-prefix"); v != "" {
		eff.TagPrefix = v
		eff.GitTag = true
	}
	if cmd.Bool("git-tag") {
		eff.GitTag = true
	}
	if cmd.Bool("run-build") {
		eff.RunBuild = true
	}
	if cmd.Bool("ignore-lockfile") {
		eff.IgnoreLockfile = true
	}

	return eff
}
