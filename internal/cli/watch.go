// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch.go - Watch command implementation for chalkviz.
//
// Command: watch <file>
// Short:   Re-render whenever the transcript changes
//
// Watches the transcript's directory rather than the file itself: most
// editors save via rename-replace, which drops an inode-level watch. Rapid
// event bursts are debounced (watch.debounce_ms) so one save triggers one
// render pass.
//
// Flags:
//   --out DIR               Output directory (default: .)
//   --format svg|html|all   What to write on each change
//
// Examples:
//   chalkviz watch lesson.md --out dist
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// HandleWatch handles the "watch" command.
func HandleWatch(args Args) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	conv, err := loadTranscript(args)
	if err != nil {
		return err
	}

	// Initial render before waiting for changes.
	if err := renderOnce(args, cfg, conv); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return NewCommandError("watch", "init", "creating file watcher", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(args.File)
	if err := watcher.Add(dir); err != nil {
		return NewCommandError("watch", "add", fmt.Sprintf("watching %s", dir), err)
	}

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	target, err := filepath.Abs(args.File)
	if err != nil {
		target = args.File
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	infof(args, "watching %s (ctrl+c to stop)", args.File)

	// A stopped timer whose channel we select on. Each relevant event
	// resets it, so the render fires one debounce window after the last
	// event of a burst.
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !eventTouches(event, target) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			conv, err := loadTranscript(args)
			if err != nil {
				// The file may be mid-save; report and keep watching.
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			if err := renderOnce(args, cfg, conv); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sig:
			infof(args, "stopping")
			return nil
		}
	}
}

// eventTouches reports whether a directory event refers to the watched file.
func eventTouches(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil {
		name = event.Name
	}
	return name == target
}
