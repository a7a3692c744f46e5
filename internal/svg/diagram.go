// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package svg

import (
	"fmt"
	"strings"

	"github.com/jeranaias/chalkviz/internal/layout"
	"github.com/jeranaias/chalkviz/internal/spec"
)

// =============================================================================
// CONCEPT DIAGRAM RENDERER
// =============================================================================

// RenderDiagram lays out and renders a concept diagram with the balanced
// radial layout.
func RenderDiagram(s *spec.DiagramSpec, opts Options) string {
	res := layout.Balanced(s)
	return renderDiagramWith(s, res, opts)
}

func renderDiagramWith(s *spec.DiagramSpec, res layout.Result, opts Options) string {
	if len(s.Nodes) == 0 {
		return EmptySVG(opts)
	}
	pal := opts.Theme.Palette()
	var sb strings.Builder
	openSVG(&sb, res.Width, res.Height, pal)

	shapes := make(map[string]spec.DiagramShape, len(s.Nodes))
	for _, n := range s.Nodes {
		shapes[n.ID] = n.Shape.Normalize()
	}
	for _, e := range s.Edges {
		from, ok := res.Positions[e.From]
		if !ok {
			continue
		}
		to, ok := res.Positions[e.To]
		if !ok {
			continue
		}
		start, end := layout.EdgeAnchors(from, to,
			diagramAnchorShape(shapes[e.From]), diagramAnchorShape(shapes[e.To]),
			res.NodeW, res.NodeH)
		// Bowed control points keep parallel spokes visually separate.
		c1, c2 := layout.BowedControl(start, end, 18)
		writeEdgePath(&sb, start, c1, c2, end, pal.EdgeStroke, dashPattern(e.Style.Normalize()))

		if e.Label != "" {
			mid := layout.Point{X: (c1.X + c2.X) / 2, Y: (c1.Y + c2.Y) / 2}
			textEl(&sb, mid.X, mid.Y-4, opts.fontSize(11), pal.MutedText, opts.truncateLabel(e.Label))
		}
	}

	for _, n := range s.Nodes {
		p, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		writeDiagramNode(&sb, n, p, res.NodeW, res.NodeH, pal, opts)
	}

	closeSVG(&sb)
	return sb.String()
}

func diagramAnchorShape(s spec.DiagramShape) layout.AnchorShape {
	if s == spec.DiagDiamond {
		return layout.AnchorDiamond
	}
	return layout.AnchorBox
}

// dashPattern maps an edge style to its SVG stroke-dasharray value.
// Solid edges get no pattern at all.
func dashPattern(s spec.EdgeStyle) string {
	switch s {
	case spec.EdgeDashed:
		return "8 4"
	case spec.EdgeDotted:
		return "2 3"
	default:
		return ""
	}
}

func writeDiagramNode(sb *strings.Builder, n spec.DiagramNode, p layout.Point, w, h float64, pal Palette, opts Options) {
	fill, stroke := pal.diagramColors(n.Shape.Normalize())
	switch n.Shape.Normalize() {
	case spec.DiagEllipse:
		fmt.Fprintf(sb, `<ellipse cx="%s" cy="%s" rx="%s" ry="%s" fill="%s" stroke="%s" stroke-width="2"/>`,
			num(p.X), num(p.Y), num(w/2), num(h/2), fill, stroke)
	case spec.DiagDiamond:
		writeDiamond(sb, p, w, h, fill, stroke)
	case spec.DiagRoundedRectangle:
		writeRoundedRect(sb, p, w, h, 14, fill, stroke)
	default:
		writeRoundedRect(sb, p, w, h, 4, fill, stroke)
	}
	label := n.Label
	if label == "" {
		label = n.ID
	}
	textEl(sb, p.X, p.Y, opts.fontSize(13), pal.Text, opts.truncateLabel(label))
}
