// Package config holds the assembler's process-wide settings: an optional
// TOML file read once at startup, with every field defaulted so the tool
// runs correctly with no config file at all.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
)

// EnvVar names the environment variable that, if set, names a config file
// to load in place of the default.
const EnvVar = "C8ASM_CONFIG"

// Config is the full set of settings the CLI and tools package consult.
type Config struct {
	Diagnostics struct {
		WarningsAsErrors bool `toml:"warnings_as_errors"`
		Quiet            bool `toml:"quiet"`
	} `toml:"diagnostics"`

	Format struct {
		IndentWidth   int  `toml:"indent_width"`
		AlignComments bool `toml:"align_comments"`
	} `toml:"format"`

	Lint struct {
		WarnUnusedLabels  bool `toml:"warn_unused_labels"`
		WarnUnusedSprites bool `toml:"warn_unused_sprites"`
	} `toml:"lint"`
}

// Default returns the zero-config defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.Diagnostics.WarningsAsErrors = false
	cfg.Diagnostics.Quiet = false
	cfg.Format.IndentWidth = 1
	cfg.Format.AlignComments = true
	cfg.Lint.WarnUnusedLabels = true
	cfg.Lint.WarnUnusedSprites = true
	return cfg
}

// Resolve picks the config file path to load: an explicit --config flag
// value takes priority, then the C8ASM_CONFIG environment variable, then no
// file at all (explicit == "" means "not passed").
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return env.Str(EnvVar)
}

// Load reads the config file at path, if path is non-empty and the file
// exists; otherwise it returns the defaults unchanged. A path that's set
// but unreadable or malformed is an error -- the caller asked for that file
// explicitly.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	return cfg, nil
}
