// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// keys.go - Keyboard bindings for the preview shell, with help text
// surfaced through the status bar.
package preview

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the preview shell.
type KeyMap struct {
	NextBlock  key.Binding
	PrevBlock  key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	PanUp      key.Binding
	PanDown    key.Binding
	PanLeft    key.Binding
	PanRight   key.Binding
	ToggleJSON key.Binding
	ScrollJSON key.Binding
	Reset      key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings for the preview shell.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextBlock: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n", "next block"),
		),
		PrevBlock: key.NewBinding(
			key.WithKeys("p", "pgup"),
			key.WithHelp("p", "previous block"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "zoom out"),
		),
		PanUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "pan up"),
		),
		PanDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "pan down"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "pan right"),
		),
		ToggleJSON: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle json pane"),
		),
		ScrollJSON: key.NewBinding(
			key.WithKeys("j", "k"),
			key.WithHelp("j/k", "scroll json"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r", "0"),
			key.WithHelp("r", "reset view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
