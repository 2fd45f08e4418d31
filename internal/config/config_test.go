package config

import (
	"os"
	"strings"
	"testing"
)

// chdir switches the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfigFn()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Annotate {
		t.Error("expected Annotate default true")
	}
	if cfg.GitTag || cfg.RunBuild || cfg.IgnoreLockfile {
		t.Errorf("unexpected non-zero defaults: %+v", cfg)
	}
	if cfg.CommitMessage == "" || cfg.TagMessage == "" {
		t.Error("expected message templates to have defaults")
	}
}

func TestLoadConfig_FileValues(t *testing.T) {
	tmp := t.TempDir()
	content := strings.Join([]string{
		"tag-prefix: v",
		"run-build: true",
		"ignore-lockfile: true",
		"commit-message: 'chore(release): {tag}'",
	}, "\n")
	if err := os.WriteFile(tmp+"/"+ConfigFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, tmp)

	cfg, err := LoadConfigFn()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TagPrefix != "v" {
		t.Errorf("got prefix %q", cfg.TagPrefix)
	}
	if !cfg.GitTag {
		t.Error("tag-prefix must imply git-tag")
	}
	if !cfg.RunBuild || !cfg.IgnoreLockfile {
		t.Errorf("flags not loaded: %+v", cfg)
	}
	if cfg.CommitMessage != "chore(release): {tag}" {
		t.Errorf("got commit message %q", cfg.CommitMessage)
	}
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(tmp+"/"+ConfigFile, []byte("\n"), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, tmp)

	cfg, err := LoadConfigFn()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Annotate {
		t.Error("expected defaults for empty file")
	}
}

func TestLoadConfig_UnknownKeyRejected(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(tmp+"/"+ConfigFile, []byte("no-such-key: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	chdir(t, tmp)

	if _, err := LoadConfigFn(); err == nil {
		t.Fatal("expected strict decoding to reject unknown keys")
	}
}
