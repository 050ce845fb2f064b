// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
[server]
url = "http://search.example:9090"
timeout_secs = 5

[search]
autoload = false

[[ranking.priority]]
host = "example.org"
score = 7
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		t.Fatalf("LoadTOML() error = %v", err)
	}
	if cfg.Server.URL != "http://search.example:9090" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSecs != 5 {
		t.Errorf("Server.TimeoutSecs = %d, want 5", cfg.Server.TimeoutSecs)
	}
	if cfg.Search.Autoload {
		t.Error("Search.Autoload = true, want false")
	}
	// The file's table replaces the default table entirely.
	if len(cfg.Ranking.Priority) != 1 || cfg.Ranking.Priority[0].Host != "example.org" {
		t.Errorf("Ranking.Priority = %+v", cfg.Ranking.Priority)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GSEARCH_SERVER_URL", "https://env.example")
	t.Setenv("GSEARCH_MARKDOWN", "false")
	t.Setenv("GSEARCH_TIMEOUT_SECS", "nonsense")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.URL != "https://env.example" {
		t.Errorf("Server.URL = %q", cfg.Server.URL)
	}
	if cfg.UI.Markdown {
		t.Error("UI.Markdown = true, want false")
	}
	if cfg.Server.TimeoutSecs != Default().Server.TimeoutSecs {
		t.Errorf("invalid env timeout applied: %d", cfg.Server.TimeoutSecs)
	}
}

func TestValidateRejectsBadURL(t *testing.T) {
	tests := []string{"", "not a url", "ftp://files.example", "http://"}
	for _, u := range tests {
		cfg := Default()
		cfg.Server.URL = u
		if err := cfg.Validate(); err == nil {
			t.Errorf("Validate() with url %q = nil, want error", u)
		}
	}
}

func TestSetDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	if cfg.Search.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.Search.PageSize)
	}
	if cfg.UI.WordWrap != 80 {
		t.Errorf("WordWrap = %d, want 80", cfg.UI.WordWrap)
	}
}
