package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lookbusy1344/c8asm/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	if cfg.Diagnostics.WarningsAsErrors {
		t.Error("expected WarningsAsErrors=false by default")
	}
	if cfg.Diagnostics.Quiet {
		t.Error("expected Quiet=false by default")
	}
	if cfg.Format.IndentWidth != 1 {
		t.Errorf("IndentWidth = %d, want 1", cfg.Format.IndentWidth)
	}
	if !cfg.Format.AlignComments {
		t.Error("expected AlignComments=true by default")
	}
	if !cfg.Lint.WarnUnusedLabels || !cfg.Lint.WarnUnusedSprites {
		t.Error("expected both lint warnings enabled by default")
	}
}

func TestLoad_MissingPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error for a missing config file: %v", err)
	}
	if cfg.Format.IndentWidth != 1 {
		t.Errorf("expected defaults when the file doesn't exist, got %+v", cfg)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error for an empty path: %v", err)
	}
	if cfg.Lint.WarnUnusedLabels != true {
		t.Errorf("expected defaults for an empty path, got %+v", cfg)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[diagnostics]
warnings_as_errors = true
quiet = true

[format]
indent_width = 4
align_comments = false

[lint]
warn_unused_labels = false
warn_unused_sprites = false
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write fixture config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}
	if !cfg.Diagnostics.WarningsAsErrors || !cfg.Diagnostics.Quiet {
		t.Errorf("diagnostics overrides not applied: %+v", cfg.Diagnostics)
	}
	if cfg.Format.IndentWidth != 4 || cfg.Format.AlignComments {
		t.Errorf("format overrides not applied: %+v", cfg.Format)
	}
	if cfg.Lint.WarnUnusedLabels || cfg.Lint.WarnUnusedSprites {
		t.Errorf("lint overrides not applied: %+v", cfg.Lint)
	}
}

func TestResolve_ExplicitPathWins(t *testing.T) {
	t.Setenv(config.EnvVar, "/from/env.toml")
	if got := config.Resolve("/from/flag.toml"); got != "/from/flag.toml" {
		t.Errorf("Resolve = %q, want explicit flag path", got)
	}
}

func TestResolve_FallsBackToEnvVar(t *testing.T) {
	t.Setenv(config.EnvVar, "/from/env.toml")
	if got := config.Resolve(""); got != "/from/env.toml" {
		t.Errorf("Resolve = %q, want env var path", got)
	}
}
