// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// view.go - View command implementation for chalkviz.
//
// Command: view <file>
// Short:   Open the interactive terminal preview
// Aliases: preview
//
// The preview walks the rich-content blocks extracted from the transcript
// one at a time: box-drawing projections for flows, diagrams, and scenes,
// ASCII plots for 2D graphs, and the raw LaTeX payload for math. Zoom, pan,
// and the JSON pane are keyboard and mouse driven; see the in-app status
// bar for shortcuts.
//
// Without a TTY (piped or redirected), view degrades to printing the
// transcript Markdown, glamour-rendered when stdout is still a terminal.
//
// Examples:
//   chalkviz view lesson.md
//   chalkviz view transcript.json --theme light
package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/chalkviz/internal/export"
	"github.com/jeranaias/chalkviz/internal/model"
	"github.com/jeranaias/chalkviz/internal/ui/preview"
)

// HandleView handles the "view" command.
func HandleView(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	conv, err := loadTranscript(args)
	if err != nil {
		return err
	}

	if !IsTTY() {
		return printTranscript(conv)
	}

	return preview.Run(conv.Title, conv.Combined(), cfg)
}

// printTranscript is the non-interactive fallback: the transcript as
// Markdown, glamour-rendered when stdout is still a terminal so the text
// stays clean when piped.
func printTranscript(conv *model.Conversation) error {
	opts := export.DefaultOptions()
	opts.IncludeMetadata = false
	opts.IncludeTimestamps = false

	data, err := export.NewMarkdownExporter(opts).Export(conv)
	if err != nil {
		return NewCommandError("view", "fallback", "formatting transcript", err)
	}

	if IsStdoutTTY() {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(GetTerminalWidth()),
		)
		if err == nil {
			if rendered, err := renderer.Render(string(data)); err == nil {
				fmt.Print(rendered)
				return nil
			}
		}
		// Fall through to plain output if the renderer fails.
	}

	fmt.Print(string(data))
	return nil
}
