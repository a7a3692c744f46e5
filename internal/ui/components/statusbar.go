// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the chalkviz TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chalkviz/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - bottom status bar of the preview shell
// =============================================================================

// StatusBar shows the preview state: which block is focused, the current
// zoom and pan, and the active key shortcuts.
type StatusBar struct {
	Width         int     // Available width
	BlockIndex    int     // 1-based index of the focused block
	BlockCount    int     // Total number of blocks
	BlockKind     string  // Kind of the focused block
	BlockOK       bool    // Whether the focused block parsed
	Zoom          float64 // Current zoom factor
	PanX, PanY    int     // Current pan offset in cells
	ShowJSON      bool    // JSON pane visible
	ShowShortcuts bool    // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width:         80,
		BlockIndex:    0,
		BlockCount:    0,
		Zoom:          1.0,
		BlockOK:       true,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetBlock updates the focused-block display.
func (s *StatusBar) SetBlock(index, count int, kind string, ok bool) {
	s.BlockIndex = index
	s.BlockCount = count
	s.BlockKind = kind
	s.BlockOK = ok
}

// View renders the status bar.
func (s *StatusBar) View() string {
	// Choose layout based on width
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals.
// Format: [KIND] 2/5 150%
func (s *StatusBar) viewNarrow() string {
	parts := []string{
		s.renderBlockBadge(),
		s.renderCounter(),
		s.renderZoom(),
	}
	bar := strings.Join(parts, " ")
	return s.theme.StatusBar.Width(s.Width).Render(bar)
}

// viewWide renders the full status bar with pan state and shortcuts.
func (s *StatusBar) viewWide() string {
	left := strings.Join([]string{
		s.renderBlockBadge(),
		s.renderCounter(),
		s.renderZoom(),
		s.renderPan(),
	}, " ")

	right := ""
	if s.ShowShortcuts {
		right = s.renderShortcuts()
	}

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return s.theme.StatusBar.Width(s.Width).Render(bar)
}

// renderBlockBadge renders the focused block's kind badge.
func (s *StatusBar) renderBlockBadge() string {
	if s.BlockCount == 0 {
		return s.theme.StatusBadge.Render("NO BLOCKS")
	}
	label := strings.ToUpper(strings.TrimSuffix(s.BlockKind, "_spec"))
	if !s.BlockOK {
		return s.theme.BlockBadgeError.Render(label)
	}
	return s.theme.StatusBadge.Render(label)
}

// renderCounter renders "index/count".
func (s *StatusBar) renderCounter() string {
	if s.BlockCount == 0 {
		return ""
	}
	return s.theme.BlockCounter.Render(fmt.Sprintf("%d/%d", s.BlockIndex, s.BlockCount))
}

// renderZoom renders the zoom factor as a percentage.
func (s *StatusBar) renderZoom() string {
	return s.theme.BlockCounter.Render(fmt.Sprintf("%.0f%%", s.Zoom*100))
}

// renderPan renders the pan offset, hidden at the origin.
func (s *StatusBar) renderPan() string {
	if s.PanX == 0 && s.PanY == 0 {
		return ""
	}
	return s.theme.BlockCounter.Render(fmt.Sprintf("pan %+d%+d", s.PanX, s.PanY))
}

// renderShortcuts renders the active key hints.
func (s *StatusBar) renderShortcuts() string {
	type hint struct{ key, desc string }
	hints := []hint{
		{"n/p", "block"},
		{"+/-", "zoom"},
		{"arrows", "pan"},
		{"tab", "json"},
		{"r", "reset"},
		{"q", "quit"},
	}
	if s.ShowJSON {
		hints[3].desc = "hide json"
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			s.theme.ShortcutKey.Render(h.key)+" "+s.theme.ShortcutDesc.Render(h.desc))
	}
	return strings.Join(parts, "  ")
}
