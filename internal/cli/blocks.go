// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// blocks.go - Blocks command implementation for chalkviz.
//
// Command: blocks <file>
// Short:   List extracted rich-content blocks as JSON
// Aliases: list
//
// Emits one JSON entry per extracted block: kind, byte span, parse error
// if any, the LaTeX payload for math blocks, and the compiled Plotly
// figure for graph blocks. Useful for debugging upstream generators that
// emit malformed spec payloads.
//
// Flags:
//   --output FILE    Write JSON to a file instead of stdout
//
// Examples:
//   chalkviz blocks lesson.md
//   chalkviz blocks lesson.md --output blocks.json
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/chalkviz/internal/export"
	"github.com/jeranaias/chalkviz/internal/util"
)

// HandleBlocks handles the "blocks" command.
func HandleBlocks(args Args) error {
	conv, err := loadTranscript(args)
	if err != nil {
		return err
	}

	data, err := export.MarshalBlocks(conv.Combined())
	if err != nil {
		return NewCommandError("blocks", "marshal", "encoding block list", err)
	}

	if args.Output != "" {
		if err := util.AtomicWriteFileWithDir(args.Output, data, 0644, 0755); err != nil {
			return NewCommandError("blocks", "write", "writing output file", err)
		}
		infof(args, "wrote %s", args.Output)
		return nil
	}

	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
