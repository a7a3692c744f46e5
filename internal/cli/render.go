// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// render.go - Render command implementation for chalkviz.
//
// Command: render <file>
// Short:   Render transcript blocks to files
// Aliases: export
//
// Writes one SVG (or figure JSON, for 3D graphs) per renderable block, plus
// a standalone HTML page of the whole transcript with inline SVG and
// Plotly/KaTeX includes.
//
// Flags:
//   --out DIR               Output directory (default: .)
//   --format svg|html|all   What to write (default: all)
//
// Examples:
//   chalkviz render lesson.md --out dist
//   chalkviz render lesson.md --format html
package cli

import (
	"github.com/jeranaias/chalkviz/internal/config"
	"github.com/jeranaias/chalkviz/internal/export"
	"github.com/jeranaias/chalkviz/internal/model"
	"github.com/jeranaias/chalkviz/internal/svg"
)

// HandleRender handles the "render" command.
func HandleRender(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	conv, err := loadTranscript(args)
	if err != nil {
		return err
	}

	return renderOnce(args, cfg, conv)
}

// renderOnce performs one render pass. It is shared with the watch command.
func renderOnce(args Args, cfg *config.Config, conv *model.Conversation) error {
	format := args.Format
	if format == "" || format == "all" {
		format = "all"
	}

	if format != "svg" && format != "html" && format != "all" {
		return &ValidationError{
			Field:   "format",
			Value:   args.Format,
			Reason:  "must be svg, html, or all",
			Example: "chalkviz render lesson.md --format html",
		}
	}

	outDir := args.Output
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	if outDir == "" {
		outDir = "."
	}

	opts := svg.Options{
		Theme:   svgTheme(cfg),
		Compact: cfg.Render.CompactLabels,
	}

	if format == "svg" || format == "all" {
		paths, err := export.WriteBlockFiles(conv.Combined(), outDir, opts)
		if err != nil {
			return NewCommandError("render", "blocks", "writing block files", err)
		}
		for _, p := range paths {
			infof(args, "wrote %s", p)
		}
		if len(paths) == 0 {
			infof(args, "no renderable blocks in %s", args.File)
		}
	}

	if format == "html" || format == "all" {
		exportOpts := export.DefaultOptions()
		exportOpts.OutputDir = outDir
		exportOpts.Theme = cfg.UI.Theme
		path, err := export.ExportHTML(conv, exportOpts)
		if err != nil {
			return NewCommandError("render", "html", "writing HTML page", err)
		}
		infof(args, "wrote %s", path)
	}

	return nil
}
