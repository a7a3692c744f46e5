// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package svg

import "github.com/jeranaias/chalkviz/internal/spec"

// =============================================================================
// THEME AND PALETTES
// =============================================================================

// Theme selects the light or dark palette. It is supplied by the caller
// (terminal detection, config, or the export page's requested theme).
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// Palette holds the color constants for one theme. Node colors are keyed by
// shape, because shape carries the grammatical meaning: green for start/end
// ovals, blue for process boxes, amber for decisions.
type Palette struct {
	Background string
	Text       string
	MutedText  string
	EdgeStroke string
	GridStroke string
	AxisStroke string

	OvalFill       string
	OvalStroke     string
	RectFill       string
	RectStroke     string
	DiamondFill    string
	DiamondStroke  string
	EllipseFill    string
	EllipseStroke  string
	RoundedFill    string
	RoundedStroke  string

	SceneEntityFill   string
	SceneEntityStroke string
	RelationStroke    string
	AnnotationText    string

	TraceColors []string
	ArrowStroke string
}

// Palette returns the color set for the theme.
func (t Theme) Palette() Palette {
	if t == ThemeDark {
		return Palette{
			Background: "#1E1E2E",
			Text:       "#CDD6F4",
			MutedText:  "#6C7086",
			EdgeStroke: "#A6ADC8",
			GridStroke: "#313244",
			AxisStroke: "#6C7086",

			OvalFill:      "#064E3B",
			OvalStroke:    "#34D399",
			RectFill:      "#164E63",
			RectStroke:    "#22D3EE",
			DiamondFill:   "#78350F",
			DiamondStroke: "#FBBF24",
			EllipseFill:   "#064E3B",
			EllipseStroke: "#34D399",
			RoundedFill:   "#4C1D95",
			RoundedStroke: "#A78BFA",

			SceneEntityFill:   "#313244",
			SceneEntityStroke: "#A6ADC8",
			RelationStroke:    "#FBBF24",
			AnnotationText:    "#A6ADC8",

			TraceColors: []string{"#22D3EE", "#A78BFA", "#34D399", "#FBBF24", "#FB7185"},
			ArrowStroke: "#22D3EE",
		}
	}
	return Palette{
		Background: "#FFFFFF",
		Text:       "#1F2937",
		MutedText:  "#9CA3AF",
		EdgeStroke: "#6B7280",
		GridStroke: "#E5E5E5",
		AxisStroke: "#9CA3AF",

		OvalFill:      "#D1FAE5",
		OvalStroke:    "#059669",
		RectFill:      "#DBEAFE",
		RectStroke:    "#0891B2",
		DiamondFill:   "#FEF3C7",
		DiamondStroke: "#D97706",
		EllipseFill:   "#D1FAE5",
		EllipseStroke: "#059669",
		RoundedFill:   "#EDE9FE",
		RoundedStroke: "#7C3AED",

		SceneEntityFill:   "#F5F5F5",
		SceneEntityStroke: "#6B7280",
		RelationStroke:    "#D97706",
		AnnotationText:    "#6B7280",

		TraceColors: []string{"#0891B2", "#7C3AED", "#059669", "#D97706", "#E11D48"},
		ArrowStroke: "#0891B2",
	}
}

// flowColors returns fill and stroke for a flow shape.
func (p Palette) flowColors(s spec.FlowShape) (fill, stroke string) {
	switch s {
	case spec.FlowOval:
		return p.OvalFill, p.OvalStroke
	case spec.FlowDiamond:
		return p.DiamondFill, p.DiamondStroke
	case spec.FlowRectangle:
		return p.RectFill, p.RectStroke
	default:
		return p.RectFill, p.RectStroke
	}
}

// diagramColors returns fill and stroke for a diagram shape.
func (p Palette) diagramColors(s spec.DiagramShape) (fill, stroke string) {
	switch s {
	case spec.DiagEllipse:
		return p.EllipseFill, p.EllipseStroke
	case spec.DiagDiamond:
		return p.DiamondFill, p.DiamondStroke
	case spec.DiagRoundedRectangle:
		return p.RoundedFill, p.RoundedStroke
	case spec.DiagRectangle:
		return p.RectFill, p.RectStroke
	default:
		return p.RectFill, p.RectStroke
	}
}

// traceColor returns the color for series i, honoring a payload override.
func (p Palette) traceColor(i int, override string) string {
	if override != "" {
		return override
	}
	return p.TraceColors[i%len(p.TraceColors)]
}
