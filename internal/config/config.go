// Package config provides configuration management for the changeset CLI
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.changeset/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/raveheart1/changeset/internal/format"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// CHANGESET_BASE_BRANCH or CHANGESET_FORMAT__LINE_ENDING.
const envPrefix = "CHANGESET_"

// FormatConfig holds the text-formatting options applied to rendered
// changeset documents before writing.
type FormatConfig struct {
	LineEnding        string `koanf:"line_ending"`
	FinalNewline      bool   `koanf:"final_newline"`
	TrimTrailingSpace bool   `koanf:"trim_trailing_space"`
}

// Config represents the changeset CLI configuration.
type Config struct {
	// BaseBranch is the branch HEAD is diffed against to pre-mark changed
	// packages in the add flow. Can be set via CHANGESET_BASE_BRANCH.
	BaseBranch string `koanf:"base_branch"`

	// ChangesetDir is the directory changeset files are written to, relative
	// to the workspace root.
	ChangesetDir string `koanf:"changeset_dir"`

	// AskCategories controls whether the add flow offers the category-of-change
	// selection in multi-package workspaces.
	AskCategories bool `koanf:"ask_categories"`

	// Format configures document normalization before writing.
	Format FormatConfig `koanf:"format"`
}

// FormatOptions converts the configured formatting into format.Options.
func (c *Config) FormatOptions() format.Options {
	return format.Options{
		LineEnding:        c.Format.LineEnding,
		FinalNewline:      c.Format.FinalNewline,
		TrimTrailingSpace: c.Format.TrimTrailingSpace,
	}
}

// ConfigPath returns the project config path under the given workspace root.
func ConfigPath(root string) string {
	return filepath.Join(root, ".changeset", "config.yml")
}

// Load loads configuration for the workspace rooted at root.
// Priority: environment variables > project config > defaults.
func Load(root string) (*Config, error) {
	k := koanf.New(".")

	loadDefaults(k)

	path := ConfigPath(root)
	if fileExists(path) {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading project config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// envTransform maps CHANGESET_FOO__BAR to foo.bar. Double underscores
// separate nesting levels so single underscores survive in key names.
func envTransform(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// validate checks configured values that have a closed domain.
func validate(cfg *Config) error {
	if cfg.BaseBranch == "" {
		return fmt.Errorf("base_branch must not be empty")
	}
	if cfg.ChangesetDir == "" {
		return fmt.Errorf("changeset_dir must not be empty")
	}
	switch cfg.Format.LineEnding {
	case "", format.LineEndingLF, format.LineEndingCRLF:
	default:
		return fmt.Errorf("format.line_ending must be %q or %q, got %q",
			format.LineEndingLF, format.LineEndingCRLF, cfg.Format.LineEnding)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
