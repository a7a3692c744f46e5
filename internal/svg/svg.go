// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package svg renders laid-out diagrams and sampled graphs into SVG markup
// strings. Renderers are pure string builders re-invoked on every input
// change; there is no retained scene graph. The testable contract is the
// geometric content of the output, not the string-building mechanism.
package svg

import (
	"fmt"
	"strings"

	"github.com/jeranaias/chalkviz/internal/util"
)

// =============================================================================
// RENDER OPTIONS
// =============================================================================

// Options controls one render pass. The theme is an injected input, never
// read from any global state, so a theme flip is just a re-render with a
// different Options value.
type Options struct {
	// Theme selects the color palette.
	Theme Theme
	// Zoom drives label budgets and inverse text scaling. Zero means 1.0.
	Zoom float64
	// Compact selects the thumbnail rendering: tighter label budgets.
	Compact bool
}

// zoom returns the effective zoom factor.
func (o Options) zoom() float64 {
	if o.Zoom <= 0 {
		return 1.0
	}
	return o.Zoom
}

// labelBudget is the character budget for node labels: a fixed budget in
// the compact thumbnail, a zoom-proportional one in the full preview so
// longer labels become readable as the user zooms in.
func (o Options) labelBudget() int {
	if o.Compact {
		return 8
	}
	return int(14 * o.zoom())
}

// fontSize returns the label font size scaled inversely with zoom so text
// keeps a constant apparent size on the zoomed canvas.
func (o Options) fontSize(base float64) float64 {
	return base / o.zoom()
}

// truncateLabel applies the label budget with an ellipsis.
func (o Options) truncateLabel(s string) string {
	return util.TruncateRunes(s, o.labelBudget())
}

// =============================================================================
// MARKUP HELPERS
// =============================================================================

// escape makes a string safe for SVG text and attribute content.
func escape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return r.Replace(s)
}

// num formats a coordinate with fixed precision so identical inputs always
// produce byte-identical markup.
func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// openSVG writes the document element with a viewBox and background.
func openSVG(sb *strings.Builder, width, height float64, pal Palette) {
	fmt.Fprintf(sb, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s">`,
		num(width), num(height))
	fmt.Fprintf(sb, `<rect x="0" y="0" width="%s" height="%s" fill="%s"/>`,
		num(width), num(height), pal.Background)
}

// closeSVG terminates the document element.
func closeSVG(sb *strings.Builder) {
	sb.WriteString(`</svg>`)
}

// textEl writes a centered label.
func textEl(sb *strings.Builder, x, y, size float64, fill, s string) {
	fmt.Fprintf(sb,
		`<text x="%s" y="%s" font-size="%s" fill="%s" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif">%s</text>`,
		num(x), num(y), num(size), fill, escape(s))
}

// EmptySVG is a valid, empty document used when a spec has nothing to draw.
func EmptySVG(opts Options) string {
	pal := opts.Theme.Palette()
	var sb strings.Builder
	openSVG(&sb, 80, 80, pal)
	closeSVG(&sb)
	return sb.String()
}
