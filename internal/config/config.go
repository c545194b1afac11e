// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/xonecas/codelens/internal/constants"
	"github.com/xonecas/codelens/internal/structure"
)

// Config is the root configuration structure.
type Config struct {
	Render RenderConfig `toml:"render"`
	Log    LogConfig    `toml:"log"`
	UI     UIConfig     `toml:"ui"`
}

// RenderConfig holds the project outline defaults.
type RenderConfig struct {
	Zoom             int              `toml:"zoom"`
	TabWidth         int              `toml:"tab_width"`
	MaxDepth         int              `toml:"max_depth"`
	MaxFileBytes     int64            `toml:"max_file_bytes"`
	IncludeTests     bool             `toml:"include_tests"`
	IncludeDocs      bool             `toml:"include_docs"`
	RespectGitignore bool             `toml:"respect_gitignore"`
	Overrides        []OverrideConfig `toml:"overrides"`
}

// OverrideConfig pins one file to its own zoom level.
type OverrideConfig struct {
	Path string `toml:"path"`
	Zoom int    `toml:"zoom"`
}

// LogConfig controls where and how much codelens logs. An empty File logs to
// stderr; otherwise the file is rotated by size.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age"`
	Compress   bool   `toml:"compress"`
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma theme used for highlighted file content.
	SyntaxTheme string `toml:"syntax_theme"`
	// Color is "auto", "always" or "never".
	Color string `toml:"color"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or constants.DefaultSyntaxTheme if unset.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return constants.DefaultSyntaxTheme
	}
	return u.SyntaxTheme
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Zoom:             1,
			TabWidth:         4,
			MaxDepth:         structure.DefaultMaxDepth,
			MaxFileBytes:     structure.DefaultMaxFileBytes,
			RespectGitignore: true,
		},
		Log: LogConfig{
			Level:      "warn",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		UI: UIConfig{Color: "auto"},
	}
}

// Load reads configuration from a TOML file on top of the defaults and applies
// environment variable overrides. An empty path loads DefaultPath if it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if explicit {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			path = ""
		}
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Render.TabWidth <= 0 {
		errs = append(errs, fmt.Errorf("render.tab_width=%d must be positive", c.Render.TabWidth))
	}
	if c.Render.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("render.max_depth=%d must not be negative", c.Render.MaxDepth))
	}
	if c.Render.MaxFileBytes < 0 {
		errs = append(errs, fmt.Errorf("render.max_file_bytes=%d must not be negative", c.Render.MaxFileBytes))
	}
	for i, o := range c.Render.Overrides {
		if o.Path == "" {
			errs = append(errs, fmt.Errorf("render.overrides[%d].path is required", i))
		}
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
	}

	switch c.UI.Color {
	case "", "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("ui.color=%q must be auto, always or never", c.UI.Color))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// StructureOptions converts the render section into walk options.
func (c *Config) StructureOptions() structure.Options {
	opts := structure.Options{
		Filter: structure.FilterConfig{
			IncludeTests:     c.Render.IncludeTests,
			IncludeDocs:      c.Render.IncludeDocs,
			RespectGitignore: c.Render.RespectGitignore,
		},
		TabWidth:     c.Render.TabWidth,
		MaxDepth:     c.Render.MaxDepth,
		MaxFileBytes: c.Render.MaxFileBytes,
	}
	for _, o := range c.Render.Overrides {
		opts.Overrides = append(opts.Overrides, structure.ZoomOverride{Path: o.Path, Level: o.Zoom})
	}
	return opts
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"CODELENS_ZOOM", func(v string) {
			if n, err := strconv.Atoi(v); err == nil {
				cfg.Render.Zoom = n
			}
		}},
		{"CODELENS_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
		{"CODELENS_LOG_FILE", func(v string) {
			if v != "" {
				cfg.Log.File = v
			}
		}},
		{"CODELENS_SYNTAX_THEME", func(v string) {
			if v != "" {
				cfg.UI.SyntaxTheme = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the codelens config directory (~/.config/codelens).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "codelens"), nil
}

// DefaultPath returns ~/.config/codelens/config.toml.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
