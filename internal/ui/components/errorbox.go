// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/chalkviz/internal/ui/styles"
	"github.com/jeranaias/chalkviz/internal/util"
)

// =============================================================================
// ERROR BOX COMPONENT
// =============================================================================

// ErrorBox is a styled inline error for a block that failed to parse or
// compile. Malformed input renders as data, so the box is a normal part of
// the preview rather than a modal state.
type ErrorBox struct {
	Kind    string // Block kind, e.g. "flow_spec"
	Message string // Parse or compile error
	Excerpt string // Start of the offending payload
	Width   int
	theme   *styles.Theme
}

// NewErrorBox creates an error box for a failed block.
func NewErrorBox(theme *styles.Theme, kind, message, payload string) ErrorBox {
	return ErrorBox{
		Kind:    kind,
		Message: message,
		Excerpt: util.FirstLine(util.TruncateRunes(payload, 60)),
		Width:   80,
		theme:   theme,
	}
}

// SetWidth sets the rendering width.
func (e *ErrorBox) SetWidth(width int) {
	e.Width = width
}

// View renders the error box.
func (e ErrorBox) View() string {
	var sb strings.Builder

	title := styles.StatusIndicators.Error + " Invalid " + e.Kind + " block"
	sb.WriteString(e.theme.ErrorTitle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(e.theme.ErrorMessage.Render(e.Message))
	if e.Excerpt != "" {
		sb.WriteString("\n")
		sb.WriteString(e.theme.ErrorTip.Render(e.Excerpt))
	}

	maxWidth := e.Width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}
	return e.theme.ErrorBox.MaxWidth(maxWidth).Render(sb.String())
}
