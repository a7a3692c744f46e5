// chalkviz - Rich-content rendering for tutoring chat transcripts.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/jeranaias/chalkviz/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	var err error
	switch cmd {
	case cli.CmdView:
		err = cli.HandleView(args)
	case cli.CmdRender:
		err = cli.HandleRender(args)
	case cli.CmdBlocks:
		err = cli.HandleBlocks(args)
	case cli.CmdWatch:
		err = cli.HandleWatch(args)
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	}

	if err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}
}
