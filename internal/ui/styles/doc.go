// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the chalkviz TUI.

This package defines the color palette and theme used by the preview shell.
All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Purple - Primary accent for block badges and selections
  - Cyan - Brand color for info, key hints, and math
  - Emerald - Success states and valid blocks
  - Amber - Warnings
  - Rose - Errors and malformed blocks

Surface and text colors form a layered system (Surface, SurfaceDim, Overlay,
TextPrimary, TextSecondary, TextMuted) shared by every component.

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}

# Status Indicators

ASCII indicators supplement color for colorblind accessibility:

	StatusIndicators.Success   - [OK]
	StatusIndicators.Error     - [X]
	StatusIndicators.Warning   - [!]
	StatusIndicators.Info      - [i]
*/
package styles
