// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// chalkviz.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - UIConfig: Theme and terminal styling settings
//   - SamplingConfig: Expression sampling resolutions
//   - OutputConfig: Render-to-file defaults
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CHALKVIZ_*)
//   - ~/.chalkviz/config.toml
//   - ~/.chalkviz/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	theme := cfg.UI.Theme
//	samples := cfg.Sampling.Points
package config
