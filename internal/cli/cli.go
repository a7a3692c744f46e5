// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for chalkviz.
package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdView Command = iota
	CmdRender
	CmdBlocks
	CmdWatch
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet      bool
	Verbose    bool
	JSON       bool // Output in JSON format
	Theme      string
	ConfigPath string

	// Command-specific
	File   string // Input transcript path
	Output string // Output directory or file
	Format string // render format: svg, html, all

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `chalkviz - rich-content renderer for tutoring transcripts

Chalkviz extracts flow, diagram, scene, graph, and math blocks embedded in
chat transcripts and renders them as SVG, Plotly figure JSON, terminal
previews, and standalone HTML pages.

Usage:
  chalkviz view <file>            Open the interactive terminal preview
  chalkviz render <file>          Render blocks to files
  chalkviz blocks <file>          List extracted blocks as JSON
  chalkviz watch <file>           Re-render whenever the file changes
  chalkviz version                Show version information
  chalkviz help                   Show this help

Render Options:
  chalkviz render <file>
    --out DIR                     Output directory (default: .)
    --format svg|html|all         What to write (default: all)
                                  svg:  one SVG/JSON file per block
                                  html: a standalone HTML page
                                  all:  both

Blocks Options:
  chalkviz blocks <file>
    --output FILE                 Write JSON to a file instead of stdout

Watch Options:
  chalkviz watch <file>
    --out DIR                     Output directory (default: .)
    --format svg|html|all         What to write on each change

Global Flags:
  -q, --quiet     Minimal output
  -v, --verbose   Debug output
  --json          Machine-readable output where supported
  --theme NAME    Color theme: dark or light (overrides config)
  --config PATH   Load configuration from an alternate file

Transcript Formats:
  .json           Serialized conversation (chalkviz export format)
  .md, other      Markdown; "### You" / "### Tutor" headings split messages,
                  a markerless file becomes a single message

Examples:
  chalkviz view lesson.md               Preview blocks in the terminal
  chalkviz render lesson.md --out dist  Write SVGs, figure JSON, and HTML
  chalkviz render lesson.md --format html
  chalkviz blocks lesson.md --json      Inspect extraction results
  chalkviz watch lesson.md --out dist   Live re-render while editing
  chalkviz view lesson.md --theme light

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("chalkviz version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments and returns the command and args.
func Parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdHelp, parsedArgs
	}

	first := remaining[0]
	cmd := strings.ToLower(first)
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "view", "preview":
		parseFileArgs(&parsedArgs, remaining)
		return CmdView, parsedArgs

	case "render", "export":
		parseRenderArgs(&parsedArgs, remaining)
		return CmdRender, parsedArgs

	case "blocks", "list":
		parseBlocksArgs(&parsedArgs, remaining)
		return CmdBlocks, parsedArgs

	case "watch":
		parseRenderArgs(&parsedArgs, remaining)
		return CmdWatch, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: treat a bare path as "view <file>".
		parsedArgs.File = first
		return CmdView, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--theme":
			if i+1 < len(args) {
				i++
				parsedArgs.Theme = args[i]
			}
		case "--config":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--theme="):
				parsedArgs.Theme = strings.TrimPrefix(arg, "--theme=")
			case strings.HasPrefix(arg, "--config="):
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseFileArgs takes the first positional arg as the input file.
func parseFileArgs(args *Args, remaining []string) {
	parser := NewArgParser(remaining)
	args.File = parser.Positional(0)
}

// parseRenderArgs parses render/watch command specific arguments.
func parseRenderArgs(args *Args, remaining []string) {
	parser := NewArgParser(remaining)
	args.File = parser.Positional(0)
	args.Output = parser.FlagOrDefault("out", ".")
	args.Format = parser.FlagOrDefault("format", "all")
}

// parseBlocksArgs parses blocks command specific arguments.
func parseBlocksArgs(args *Args, remaining []string) {
	parser := NewArgParser(remaining)
	args.File = parser.Positional(0)
	args.Output = parser.Flag("output")
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		fmt.Printf("{\"version\":%q,\"git_commit\":%q,\"build_date\":%q,\"go_version\":%q}\n",
			Version, GitCommit, BuildDate, runtime.Version())
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
