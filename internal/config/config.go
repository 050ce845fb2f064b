// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for gsearch-tui.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location (in order of precedence):
//   - $GSEARCH_CONFIG_DIR/config.toml
//   - ~/.gsearch/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete gsearch-tui configuration.
type Config struct {
	// Server settings (the gsearch backend)
	Server ServerConfig `toml:"server" json:"server"`

	// Search and paging settings
	Search SearchConfig `toml:"search" json:"search"`

	// Result ranking settings
	Ranking RankingConfig `toml:"ranking" json:"ranking"`

	// UI settings
	UI UIConfig `toml:"ui" json:"ui"`
}

// ServerConfig locates the gsearch backend.
type ServerConfig struct {
	// URL is the base URL of the gsearch server (no trailing slash)
	URL string `toml:"url" json:"url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// SearchConfig controls result paging.
type SearchConfig struct {
	// PageSize is the number of results per page (the backend returns 10)
	PageSize int `toml:"page_size" json:"page_size"`
	// Autoload fetches the next page when the feed is scrolled near its end.
	// The guard bookkeeping runs even when this is false.
	Autoload bool `toml:"autoload" json:"autoload"`
	// MaxPages caps automatic paging per query
	MaxPages int `toml:"max_pages" json:"max_pages"`
	// PagesPerSecond rate-limits automatic page fetches
	PagesPerSecond float64 `toml:"pages_per_second" json:"pages_per_second"`
}

// PriorityEntry pins results from a host substring to a fixed score.
// Entries are applied in declaration order; when several entries match
// the same result, the one declared last wins.
type PriorityEntry struct {
	// Host is matched as a substring of the result URL's hostname
	Host string `toml:"host" json:"host"`
	// Score replaces the positional score; lower sorts first
	Score int `toml:"score" json:"score"`
}

// RankingConfig contains the client-side re-ranking table.
type RankingConfig struct {
	// Priority is the ordered host-priority table
	Priority []PriorityEntry `toml:"priority" json:"priority"`
}

// UIConfig contains display configuration.
type UIConfig struct {
	// Markdown renders server responses flagged markdown through glamour.
	// When false everything is shown as literal text.
	Markdown bool `toml:"markdown" json:"markdown"`
	// WordWrap is the rendering width for markdown output
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
	// SnippetWidth truncates result snippets to this display width (0 = none)
	SnippetWidth int `toml:"snippet_width" json:"snippet_width"`
}

// =============================================================================
// DEFAULTS AND PATHS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:         "http://localhost:8080",
			TimeoutSecs: 20,
		},
		Search: SearchConfig{
			PageSize:       10,
			Autoload:       true,
			MaxPages:       5,
			PagesPerSecond: 2,
		},
		Ranking: RankingConfig{
			Priority: []PriorityEntry{
				{Host: "wikipedia.org", Score: 1},
				{Host: "stackoverflow.com", Score: 2},
				{Host: "github.com", Score: 3},
				{Host: "reddit.com", Score: 4},
			},
		},
		UI: UIConfig{
			Markdown:     true,
			WordWrap:     80,
			SnippetWidth: 0,
		},
	}
}

// ConfigDir returns the gsearch-tui configuration directory, creating it
// if necessary. $GSEARCH_CONFIG_DIR overrides the default ~/.gsearch.
func ConfigDir() (string, error) {
	if dir := os.Getenv("GSEARCH_CONFIG_DIR"); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", fmt.Errorf("failed to create config directory: %w", err)
		}
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".gsearch")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// ConfigPath returns the TOML config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file, applies environment overrides, fills
// defaults, and validates. A missing config file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads TOML configuration from path into cfg.
func LoadTOML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	return nil
}

// ApplyEnvOverrides applies GSEARCH_* environment variables over cfg.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("GSEARCH_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("GSEARCH_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Server.TimeoutSecs = n
		}
	}
	if v := os.Getenv("GSEARCH_MARKDOWN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.Markdown = b
		}
	}
	if v := os.Getenv("GSEARCH_AUTOLOAD"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Search.Autoload = b
		}
	}
}

// SetDefaults fills zero values resulting from a sparse config file.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Server.URL == "" {
		c.Server.URL = d.Server.URL
	}
	if c.Server.TimeoutSecs <= 0 {
		c.Server.TimeoutSecs = d.Server.TimeoutSecs
	}
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = d.Search.PageSize
	}
	if c.Search.MaxPages <= 0 {
		c.Search.MaxPages = d.Search.MaxPages
	}
	if c.Search.PagesPerSecond <= 0 {
		c.Search.PagesPerSecond = d.Search.PagesPerSecond
	}
	if c.UI.WordWrap <= 0 {
		c.UI.WordWrap = d.UI.WordWrap
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.url %q is not a valid URL", c.Server.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.url scheme %q must be http or https", u.Scheme)
	}
	for i, p := range c.Ranking.Priority {
		if p.Host == "" {
			return fmt.Errorf("ranking.priority[%d]: host must not be empty", i)
		}
	}
	return nil
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalMu         sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first use.
// A load failure falls back to defaults; callers that need the error use
// Load directly.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalMu.Lock()
		globalConfig = cfg
		globalMu.Unlock()
	})
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process-wide configuration. Used by the config
// watcher on reload and by tests.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
}

// ResetGlobal clears the cached global configuration so the next Global
// call reloads it. Test helper.
func ResetGlobal() {
	globalMu.Lock()
	globalConfig = nil
	globalMu.Unlock()
	globalConfigOnce = sync.Once{}
}
