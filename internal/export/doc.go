// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export turns parsed transcripts into shareable artifacts.
//
// This package sits at the top of the rendering pipeline: it is the only
// place that sees the tokenizers, the layout engines, the SVG renderers,
// and the Plotly figure builder all at once, and it wires them together
// behind the goldmark node renderer for rich-content blocks.
//
// # Key Types
//
//   - Exporter: common interface over the format-specific exporters
//   - Options: export configuration (output directory, theme, metadata)
//   - RenderedBlock: one extracted block with its renderable forms
//
// # Supported Formats
//
//   - HTML: standalone page with inline SVG, Plotly figures, and KaTeX math
//   - Markdown: transcript form that re-parses through the loader
//   - JSON: machine-readable with full conversation data
//
// # Usage
//
// Export a conversation to HTML:
//
//	path, err := export.ExportHTML(conv, &export.Options{
//	    OutputDir: "out",
//	    Theme:     "light",
//	})
//
// Render every spec block in a document to its own file:
//
//	paths, err := export.WriteBlockFiles(src, "out", svg.Options{})
package export
