// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jongio/toolenv/resolver"
	"github.com/jongio/toolenv/security"
)

// Environment variables that override file settings.
const (
	EnvTool        = "TOOLENV_TOOL"
	EnvTimeout     = "TOOLENV_TIMEOUT"
	EnvConcurrency = "TOOLENV_CONCURRENCY"
)

// DefaultCacheTTL is how long a cached selection stays valid.
const DefaultCacheTTL = 24 * time.Hour

// ErrInvalidConfig indicates a setting has an unusable value.
var ErrInvalidConfig = errors.New("invalid config")

// ExtraDir is an additional directory probed before the defaults.
type ExtraDir struct {
	Dir  string `yaml:"dir"`
	Kind string `yaml:"kind,omitempty"`
}

// CacheConfig controls the selection cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
	Dir     string        `yaml:"dir,omitempty"`
}

// Config holds resolver settings.
type Config struct {
	Tool        string        `yaml:"tool"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
	VersionArgs []string      `yaml:"versionArgs,omitempty"`
	ExtraDirs   []ExtraDir    `yaml:"extraDirs,omitempty"`
	BundledDir  string        `yaml:"bundledDir,omitempty"`
	OverrideEnv string        `yaml:"overrideEnv,omitempty"`
	Cache       CacheConfig   `yaml:"cache"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tool:        resolver.DefaultTool,
		Timeout:     resolver.DefaultTimeout,
		Concurrency: resolver.DefaultConcurrency,
		VersionArgs: append([]string(nil), resolver.DefaultVersionArgs...),
		Cache:       CacheConfig{TTL: DefaultCacheTTL},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/toolenv/config.yaml, falling back to
// the platform user config directory.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "toolenv", "config.yaml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "toolenv", "config.yaml"), nil
}

// Load reads the YAML file at path over the defaults. A missing file yields
// the defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304 -- path is user configuration
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillDefaults restores defaults for fields the file set to zero values.
func (c *Config) fillDefaults() {
	d := Default()
	if c.Tool == "" {
		c.Tool = d.Tool
	}
	if c.Timeout == 0 {
		c.Timeout = d.Timeout
	}
	if c.Concurrency == 0 {
		c.Concurrency = d.Concurrency
	}
	if len(c.VersionArgs) == 0 {
		c.VersionArgs = d.VersionArgs
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = d.Cache.TTL
	}
}

// ApplyEnv overrides settings from TOOLENV_* variables and revalidates.
func (c *Config) ApplyEnv() error {
	if tool, ok := os.LookupEnv(EnvTool); ok && tool != "" {
		c.Tool = tool
	}
	if raw, ok := os.LookupEnv(EnvTimeout); ok && raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvTimeout, err)
		}
		c.Timeout = timeout
	}
	if raw, ok := os.LookupEnv(EnvConcurrency); ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvConcurrency, err)
		}
		c.Concurrency = n
	}
	return c.Validate()
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if err := security.ValidateToolName(c.Tool); err != nil {
		return fmt.Errorf("%w: tool: %w", ErrInvalidConfig, err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConfig, c.Concurrency)
	}
	for i, extra := range c.ExtraDirs {
		if strings.TrimSpace(extra.Dir) == "" {
			return fmt.Errorf("%w: extraDirs[%d]: empty dir", ErrInvalidConfig, i)
		}
		if _, err := extra.kind(); err != nil {
			return fmt.Errorf("%w: extraDirs[%d]: %w", ErrInvalidConfig, i, err)
		}
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache.ttl must not be negative", ErrInvalidConfig)
	}
	return nil
}

// kind returns the install kind of an extra directory; unset means user-local.
func (e ExtraDir) kind() (resolver.InstallKind, error) {
	if e.Kind == "" {
		return resolver.KindUserLocal, nil
	}
	return resolver.ParseInstallKind(e.Kind)
}

// OverrideEnvName returns the variable Which consults before discovery:
// the configured name, or the tool name upper-cased with "_PATH" appended
// (CLAUDE_PATH for claude).
func (c *Config) OverrideEnvName() string {
	if c.OverrideEnv != "" {
		return c.OverrideEnv
	}
	name := strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, strings.ToUpper(c.Tool))
	return name + "_PATH"
}

// ResolverOptions converts the configuration into resolver options. Home
// may be empty to use the current user's home directory.
func (c *Config) ResolverOptions(home string) resolver.Options {
	var extra []resolver.Location
	for _, e := range c.ExtraDirs {
		kind, err := e.kind()
		if err != nil {
			continue
		}
		extra = append(extra, resolver.Location{Dir: expandHome(e.Dir, home), Kind: kind})
	}

	return resolver.Options{
		Tool:           c.Tool,
		Home:           home,
		VersionArgs:    c.VersionArgs,
		Timeout:        c.Timeout,
		Concurrency:    c.Concurrency,
		ExtraLocations: extra,
		BundledDir:     expandHome(c.BundledDir, home),
		OverrideEnv:    c.OverrideEnvName(),
	}
}

// expandHome replaces a leading "~" with home.
func expandHome(path, home string) string {
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			home = h
		}
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}
	return path
}
