// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// common.go - Shared helpers for chalkviz command handlers.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/chalkviz/internal/config"
	"github.com/jeranaias/chalkviz/internal/model"
	"github.com/jeranaias/chalkviz/internal/svg"
)

// LoadConfig loads configuration, honoring --config and --theme overrides.
func LoadConfig(args Args) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, NewCommandError("config", "load", "could not load configuration", err)
	}
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadTranscript reads and parses the input file named by args.File.
func loadTranscript(args Args) (*model.Conversation, error) {
	if args.File == "" {
		return nil, &ValidationError{
			Field:   "file",
			Reason:  "an input transcript is required",
			Example: "chalkviz view lesson.md",
		}
	}
	conv, err := model.LoadTranscript(args.File)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// svgTheme maps the config theme name onto the SVG palette.
func svgTheme(cfg *config.Config) svg.Theme {
	if cfg.UI.Theme == "light" {
		return svg.ThemeLight
	}
	return svg.ThemeDark
}

// infof prints progress output unless --quiet is set.
func infof(args Args, format string, a ...any) {
	if args.Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", a...)
}
