// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution.
//
// This package implements all CLI commands for the chalkviz tool,
// providing both interactive (preview TUI) and non-interactive
// (render/blocks/watch) modes.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//   - ArgParser: Unified flag/positional parsing shared by the handlers
//
// # Usage
//
// Parse and execute commands:
//
//	cmd, args := cli.Parse(os.Args[1:])
//	switch cmd {
//	case cli.CmdView:
//	    err = cli.HandleView(args)
//	case cli.CmdRender:
//	    err = cli.HandleRender(args)
//	// ... other commands
//	}
//
// # Commands Overview
//
//   - view: Interactive terminal preview of extracted blocks
//   - render: Write per-block SVG/figure JSON files and an HTML page
//   - blocks: List extracted blocks as JSON for debugging
//   - watch: Debounced re-render whenever the transcript changes
//   - version, help
package cli
