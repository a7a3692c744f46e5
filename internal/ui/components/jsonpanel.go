// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/chalkviz/internal/ui/styles"
)

// =============================================================================
// JSON PANEL COMPONENT
// =============================================================================

// JSONPanel shows the focused block's payload (or figure JSON) with syntax
// highlighting. It is the right-hand pane of the preview's split view.
type JSONPanel struct {
	Width  int
	Height int

	raw       string
	rendered  []string // highlighted lines, cached per SetContent
	scrollOff int
	theme     *styles.Theme
}

// NewJSONPanel creates an empty JSON panel.
func NewJSONPanel(theme *styles.Theme) *JSONPanel {
	return &JSONPanel{
		Width:  40,
		Height: 20,
		theme:  theme,
	}
}

// SetSize updates the panel dimensions.
func (p *JSONPanel) SetSize(width, height int) {
	p.Width = width
	p.Height = height
	if p.Width < 10 {
		p.Width = 10
	}
}

// SetContent replaces the panel content. The input is re-indented when it
// is valid JSON and shown verbatim otherwise, so math payloads and broken
// blocks still display.
func (p *JSONPanel) SetContent(raw string) {
	p.raw = raw
	p.scrollOff = 0

	pretty := raw
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err == nil {
		pretty = buf.String()
	}
	p.rendered = strings.Split(highlightJSON(pretty), "\n")
}

// ScrollBy moves the view window, clamped to the content.
func (p *JSONPanel) ScrollBy(delta int) {
	p.scrollOff += delta
	max := len(p.rendered) - p.contentHeight()
	if max < 0 {
		max = 0
	}
	if p.scrollOff > max {
		p.scrollOff = max
	}
	if p.scrollOff < 0 {
		p.scrollOff = 0
	}
}

// contentHeight is the line budget below the header.
func (p *JSONPanel) contentHeight() int {
	h := p.Height - 1
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the panel.
func (p *JSONPanel) View() string {
	var sb strings.Builder
	sb.WriteString(p.theme.JSONHeader.Render("JSON"))
	sb.WriteString("\n")

	end := p.scrollOff + p.contentHeight()
	if end > len(p.rendered) {
		end = len(p.rendered)
	}
	start := p.scrollOff
	if start > end {
		start = end
	}
	sb.WriteString(strings.Join(p.rendered[start:end], "\n"))

	return p.theme.JSONPane.Width(p.Width).Render(sb.String())
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightJSON applies JSON syntax highlighting using the chroma library.
// Returns the input unchanged if highlighting fails.
func highlightJSON(src string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return src
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return src
	}
	return buf.String()
}
