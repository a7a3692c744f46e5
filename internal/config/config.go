// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// chalkviz.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.chalkviz/config.toml
//   - ~/.chalkviz/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/chalkviz/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chalkviz configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Render configuration
	Render RenderConfig `toml:"render" json:"render"`

	// Sampling configuration
	Sampling SamplingConfig `toml:"sampling" json:"sampling"`

	// Output configuration
	Output OutputConfig `toml:"output" json:"output"`

	// Watch configuration
	Watch WatchConfig `toml:"watch" json:"watch"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// Theme selects the color theme: "light" or "dark"
	Theme string `toml:"theme" json:"theme"`
	// NoColor disables all terminal styling
	NoColor bool `toml:"no_color" json:"no_color"`
	// ShowJSON opens the preview with the JSON pane already visible
	ShowJSON bool `toml:"show_json" json:"show_json"`
}

// RenderConfig contains SVG rendering configuration.
type RenderConfig struct {
	// DefaultZoom is the initial preview zoom factor
	DefaultZoom float64 `toml:"default_zoom" json:"default_zoom"`
	// CompactLabels truncates node labels to the thumbnail budget
	CompactLabels bool `toml:"compact_labels" json:"compact_labels"`
}

// SamplingConfig contains expression sampling configuration.
// Zero values fall back to the compiler defaults.
type SamplingConfig struct {
	// Points is the sample count for 1D traces
	Points int `toml:"points" json:"points"`
	// SurfaceGrid is the per-axis grid size for surfaces
	SurfaceGrid int `toml:"surface_grid" json:"surface_grid"`
	// FieldGrid is the per-axis grid size for phase planes
	FieldGrid int `toml:"field_grid" json:"field_grid"`
}

// OutputConfig contains render-to-file configuration.
type OutputConfig struct {
	// Dir is the directory rendered files land in
	Dir string `toml:"dir" json:"dir"`
	// Format is the default output format: "svg", "html", or "json"
	Format string `toml:"format" json:"format"`
}

// WatchConfig contains file-watching configuration.
type WatchConfig struct {
	// DebounceMs batches rapid file events before re-rendering
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		Version: "1",
		UI: UIConfig{
			Theme: "dark",
		},
		Render: RenderConfig{
			DefaultZoom: 1.0,
		},
		Sampling: SamplingConfig{
			Points:      200,
			SurfaceGrid: 40,
			FieldGrid:   20,
		},
		Output: OutputConfig{
			Dir:    ".",
			Format: "svg",
		},
		Watch: WatchConfig{
			DebounceMs: 200,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the chalkviz configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chalkviz"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load TOML config: %w", err)
			}
			return finishLoad(cfg)
		}
	}

	if path, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadJSON(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load JSON config: %w", err)
			}
			return finishLoad(cfg)
		}
	}

	return finishLoad(cfg)
}

func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from an explicit path, dispatching on
// extension. Used by the --config flag.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = LoadJSON(cfg, path)
	} else {
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}
	return finishLoad(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML path.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# chalkviz configuration file")
	fmt.Fprintln(file, "# Generated by chalkviz - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid config field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.UI.Theme {
	case "light", "dark":
	default:
		return ValidationError{Field: "ui.theme", Message: fmt.Sprintf("unknown theme %q (want light or dark)", c.UI.Theme)}
	}

	if c.Render.DefaultZoom < 0.5 || c.Render.DefaultZoom > 3.0 {
		return ValidationError{Field: "render.default_zoom", Message: "must be between 0.5 and 3.0"}
	}

	if c.Sampling.Points < 2 || c.Sampling.Points > 10000 {
		return ValidationError{Field: "sampling.points", Message: "must be between 2 and 10000"}
	}
	if c.Sampling.SurfaceGrid < 2 || c.Sampling.SurfaceGrid > 500 {
		return ValidationError{Field: "sampling.surface_grid", Message: "must be between 2 and 500"}
	}
	if c.Sampling.FieldGrid < 2 || c.Sampling.FieldGrid > 200 {
		return ValidationError{Field: "sampling.field_grid", Message: "must be between 2 and 200"}
	}

	switch c.Output.Format {
	case "svg", "html", "json":
	default:
		return ValidationError{Field: "output.format", Message: fmt.Sprintf("unknown format %q (want svg, html, or json)", c.Output.Format)}
	}

	if c.Watch.DebounceMs < 0 || c.Watch.DebounceMs > 10000 {
		return ValidationError{Field: "watch.debounce_ms", Message: "must be between 0 and 10000"}
	}

	return nil
}

// SetDefaults fills zero-valued fields with defaults. Partial config files
// only override what they mention.
func (c *Config) SetDefaults() {
	def := Default()
	if c.Version == "" {
		c.Version = def.Version
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	if c.Render.DefaultZoom == 0 {
		c.Render.DefaultZoom = def.Render.DefaultZoom
	}
	if c.Sampling.Points == 0 {
		c.Sampling.Points = def.Sampling.Points
	}
	if c.Sampling.SurfaceGrid == 0 {
		c.Sampling.SurfaceGrid = def.Sampling.SurfaceGrid
	}
	if c.Sampling.FieldGrid == 0 {
		c.Sampling.FieldGrid = def.Sampling.FieldGrid
	}
	if c.Output.Dir == "" {
		c.Output.Dir = def.Output.Dir
	}
	if c.Output.Format == "" {
		c.Output.Format = def.Output.Format
	}
	if c.Watch.DebounceMs == 0 {
		c.Watch.DebounceMs = def.Watch.DebounceMs
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CHALKVIZ_THEME: overrides ui.theme
//   - CHALKVIZ_NO_COLOR / NO_COLOR: disables terminal styling
//   - CHALKVIZ_OUTPUT_DIR: overrides output.dir
//   - CHALKVIZ_FORMAT: overrides output.format
//   - CHALKVIZ_SAMPLES: overrides sampling.points
func (c *Config) ApplyEnvOverrides() {
	if theme := os.Getenv("CHALKVIZ_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if nc := os.Getenv("CHALKVIZ_NO_COLOR"); nc != "" {
		c.UI.NoColor = nc == "1" || strings.ToLower(nc) == "true"
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.UI.NoColor = true
	}
	if dir := os.Getenv("CHALKVIZ_OUTPUT_DIR"); dir != "" {
		c.Output.Dir = dir
	}
	if format := os.Getenv("CHALKVIZ_FORMAT"); format != "" {
		c.Output.Format = strings.ToLower(format)
	}
	if samples := os.Getenv("CHALKVIZ_SAMPLES"); samples != "" {
		if n, err := strconv.Atoi(samples); err == nil {
			c.Sampling.Points = n
		}
	}
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Fall back to defaults rather than refusing to start.
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
