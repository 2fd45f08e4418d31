// Package config loads optional project defaults for cargobump from a
// .cargobump.yaml file in the working directory. Command-line flags
// always take precedence over file values.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ConfigFile is the optional per-project configuration file name.
const ConfigFile = ".cargobump.yaml"

// Config is the main configuration structure for cargobump.
type Config struct {
	// ManifestPath points at the Cargo.toml to operate on. Empty means
	// locate it by walking upward from the working directory.
	ManifestPath string `yaml:"manifest-path,omitempty"`

	// TagPrefix is prepended to the version in git tag names, e.g. "v".
	// A non-empty prefix implies GitTag.
	TagPrefix string `yaml:"tag-prefix,omitempty"`

	// GitTag enables committing the rewritten files and creating a tag.
	GitTag bool `yaml:"git-tag,omitempty"`

	// RunBuild requires `cargo build` to succeed before git actions run.
	RunBuild bool `yaml:"run-build,omitempty"`

	// IgnoreLockfile disables the Cargo.lock update.
	IgnoreLockfile bool `yaml:"ignore-lockfile,omitempty"`

	// Annotate creates annotated tags instead of lightweight tags.
	Annotate bool `yaml:"annotate,omitempty"`

	// CommitMessage is a template for the release commit message.
	// Supports the {version} and {tag} placeholders.
	CommitMessage string `yaml:"commit-message,omitempty"`

	// TagMessage is a template for the annotated tag message.
	// Supports the {version} and {tag} placeholders.
	TagMessage string `yaml:"tag-message,omitempty"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Annotate:      true,
		CommitMessage: "Version {version}",
		TagMessage:    "Release {tag}",
	}
}

// LoadConfigFn loads the configuration; it is a variable so tests can
// substitute a fixture loader.
var LoadConfigFn = loadConfig

func loadConfig() (*Config, error) {
	data, err := os.ReadFile(ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
	}

	// A tag prefix only makes sense when tagging.
	if cfg.TagPrefix != "" {
		cfg.GitTag = true
	}

	return cfg, nil
}
