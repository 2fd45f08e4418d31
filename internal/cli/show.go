package cli

import (
	"context"
	"fmt"

	"github.com/indaco/cargobump/internal/config"
	"github.com/indaco/cargobump/internal/core"
	"github.com/indaco/cargobump/internal/manifest"
	"github.com/urfave/cli/v3"
)

// showCmd returns the "show" command, printing the current manifest version.
func showCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the current version from Cargo.toml",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			eff := effectiveConfig(cmd, cfg)
			fs := core.NewOSFileSystem()

			handle, err := manifest.Locate(ctx, fs, eff.ManifestPath)
			if err != nil {
				return err
			}
			raw, err := fs.ReadFile(ctx, handle.ManifestPath)
			if err != nil {
				return fmt.Errorf("failed to read manifest %q: %w", handle.ManifestPath, err)
			}
			current, _, err := manifest.ReadVersionField(raw)
			if err != nil {
				return fmt.Errorf("in %q: %w", handle.ManifestPath, err)
			}

			fmt.Println(current)
			return nil
		},
	}
}
