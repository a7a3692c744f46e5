// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// TestConfig_ConcurrentAccess tests that Global() and SetGlobal() can be
// safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()
	SetGlobal(Default())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if cfg := Global(); cfg == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()
	if cfg.UI.Theme != "dark" {
		t.Errorf("default theme = %q, want dark", cfg.UI.Theme)
	}
	if cfg.Render.DefaultZoom != 1.0 {
		t.Errorf("default zoom = %v, want 1.0", cfg.Render.DefaultZoom)
	}
	if cfg.Sampling.Points != 200 {
		t.Errorf("default sampling points = %d, want 200", cfg.Sampling.Points)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"light theme", func(c *Config) { c.UI.Theme = "light" }, false},
		{"unknown theme", func(c *Config) { c.UI.Theme = "sepia" }, true},
		{"zoom too small", func(c *Config) { c.Render.DefaultZoom = 0.1 }, true},
		{"zoom too large", func(c *Config) { c.Render.DefaultZoom = 5 }, true},
		{"one sample point", func(c *Config) { c.Sampling.Points = 1 }, true},
		{"huge surface grid", func(c *Config) { c.Sampling.SurfaceGrid = 10000 }, true},
		{"unknown format", func(c *Config) { c.Output.Format = "pdf" }, true},
		{"html format", func(c *Config) { c.Output.Format = "html" }, false},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMs = -1 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_SetDefaultsFillsPartial(t *testing.T) {
	cfg := &Config{UI: UIConfig{Theme: "light"}}
	cfg.SetDefaults()
	if cfg.UI.Theme != "light" {
		t.Error("explicit theme should survive")
	}
	if cfg.Sampling.Points != 200 || cfg.Output.Format != "svg" {
		t.Error("omitted fields should default")
	}
}

func TestConfig_TOMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.UI.Theme = "light"
	cfg.Sampling.Points = 64
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	loaded := Default()
	if err := LoadTOML(loaded, path); err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if loaded.UI.Theme != "light" || loaded.Sampling.Points != 64 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestConfig_JSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.Output.Format = "html"
	if err := SaveJSON(cfg, path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	loaded := Default()
	if err := LoadJSON(loaded, path); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if loaded.Output.Format != "html" {
		t.Errorf("round trip lost format: %+v", loaded.Output)
	}
}

func TestConfig_LoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	data := "[ui]\ntheme = \"light\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.UI.Theme)
	}
	// Omitted sections pick up defaults.
	if cfg.Sampling.Points != 200 {
		t.Errorf("sampling points = %d, want 200", cfg.Sampling.Points)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CHALKVIZ_THEME", "LIGHT")
	t.Setenv("CHALKVIZ_SAMPLES", "99")
	t.Setenv("CHALKVIZ_FORMAT", "json")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", cfg.UI.Theme)
	}
	if cfg.Sampling.Points != 99 {
		t.Errorf("sampling points = %d, want 99", cfg.Sampling.Points)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Output.Format)
	}
}

func TestConfig_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if !cfg.UI.NoColor {
		t.Error("NO_COLOR presence should disable color even when empty")
	}
}
