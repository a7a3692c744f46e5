// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package svg

import (
	"fmt"
	"math"
	"strings"

	"github.com/jeranaias/chalkviz/internal/layout"
	"github.com/jeranaias/chalkviz/internal/spec"
)

// =============================================================================
// FLOW CHART RENDERER
// =============================================================================

// RenderFlow lays out and renders a flow chart.
func RenderFlow(s *spec.FlowSpec, opts Options) string {
	res := layout.Directional(s)
	return renderFlowWith(s, res, opts)
}

// renderFlowWith renders against a precomputed layout.
func renderFlowWith(s *spec.FlowSpec, res layout.Result, opts Options) string {
	if len(s.Nodes) == 0 {
		return EmptySVG(opts)
	}
	pal := opts.Theme.Palette()
	var sb strings.Builder
	openSVG(&sb, res.Width, res.Height, pal)

	// Edges under nodes.
	shapes := make(map[string]spec.FlowShape, len(s.Nodes))
	for _, n := range s.Nodes {
		shapes[n.ID] = n.Shape.Normalize()
	}
	for _, e := range s.Edges {
		from, ok := res.Positions[e.From]
		if !ok {
			continue // dangling reference: the edge simply does not appear
		}
		to, ok := res.Positions[e.To]
		if !ok {
			continue
		}
		start, end := layout.EdgeAnchors(from, to,
			anchorShapeOf(shapes[e.From]), anchorShapeOf(shapes[e.To]),
			res.NodeW, res.NodeH)
		c1, c2 := layout.BezierControl(start, end)
		writeEdgePath(&sb, start, c1, c2, end, pal.EdgeStroke, "")
		writeArrowHead(&sb, c2, end, pal.EdgeStroke)

		label := e.Label
		if label == "" {
			label = e.Condition
		}
		if label != "" {
			mid := layout.Point{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}
			textEl(&sb, mid.X, mid.Y-6, opts.fontSize(11), pal.MutedText, opts.truncateLabel(label))
		}
	}

	for _, n := range s.Nodes {
		p, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		writeFlowNode(&sb, n, p, res.NodeW, res.NodeH, pal, opts)
	}

	closeSVG(&sb)
	return sb.String()
}

// anchorShapeOf maps a flow shape onto its anchor geometry.
func anchorShapeOf(s spec.FlowShape) layout.AnchorShape {
	switch s {
	case spec.FlowDiamond:
		return layout.AnchorDiamond
	case spec.FlowOval, spec.FlowRectangle:
		return layout.AnchorBox
	default:
		return layout.AnchorBox
	}
}

// writeFlowNode emits the SVG primitive for one node: oval becomes an
// ellipse, rectangle a rounded rect, diamond a four-point polygon.
func writeFlowNode(sb *strings.Builder, n spec.FlowNode, p layout.Point, w, h float64, pal Palette, opts Options) {
	fill, stroke := pal.flowColors(n.Shape.Normalize())
	switch n.Shape.Normalize() {
	case spec.FlowOval:
		fmt.Fprintf(sb, `<ellipse cx="%s" cy="%s" rx="%s" ry="%s" fill="%s" stroke="%s" stroke-width="2"/>`,
			num(p.X), num(p.Y), num(w/2), num(h/2), fill, stroke)
	case spec.FlowDiamond:
		writeDiamond(sb, p, w, h, fill, stroke)
	case spec.FlowRectangle:
		writeRoundedRect(sb, p, w, h, 8, fill, stroke)
	default:
		writeRoundedRect(sb, p, w, h, 8, fill, stroke)
	}
	label := n.Label
	if label == "" {
		label = n.ID
	}
	textEl(sb, p.X, p.Y, opts.fontSize(13), pal.Text, opts.truncateLabel(label))
}

// =============================================================================
// SHARED SHAPE AND EDGE PRIMITIVES
// =============================================================================

func writeRoundedRect(sb *strings.Builder, p layout.Point, w, h, radius float64, fill, stroke string) {
	fmt.Fprintf(sb, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" stroke="%s" stroke-width="2"/>`,
		num(p.X-w/2), num(p.Y-h/2), num(w), num(h), num(radius), fill, stroke)
}

func writeDiamond(sb *strings.Builder, p layout.Point, w, h float64, fill, stroke string) {
	fmt.Fprintf(sb, `<polygon points="%s,%s %s,%s %s,%s %s,%s" fill="%s" stroke="%s" stroke-width="2"/>`,
		num(p.X), num(p.Y-h/2),
		num(p.X+w/2), num(p.Y),
		num(p.X), num(p.Y+h/2),
		num(p.X-w/2), num(p.Y),
		fill, stroke)
}

// writeEdgePath emits a single cubic Bezier with optional dash pattern.
func writeEdgePath(sb *strings.Builder, start, c1, c2, end layout.Point, stroke, dash string) {
	dashAttr := ""
	if dash != "" {
		dashAttr = fmt.Sprintf(` stroke-dasharray="%s"`, dash)
	}
	fmt.Fprintf(sb, `<path d="M %s %s C %s %s, %s %s, %s %s" fill="none" stroke="%s" stroke-width="2"%s/>`,
		num(start.X), num(start.Y),
		num(c1.X), num(c1.Y),
		num(c2.X), num(c2.Y),
		num(end.X), num(end.Y),
		stroke, dashAttr)
}

// writeArrowHead emits the arrow triangle at the path end, oriented along
// the final path tangent.
func writeArrowHead(sb *strings.Builder, beforeEnd, end layout.Point, stroke string) {
	dx := end.X - beforeEnd.X
	dy := end.Y - beforeEnd.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	// Perpendicular for the two back corners.
	px, py := -uy, ux
	const size = 8.0
	bx := end.X - ux*size
	by := end.Y - uy*size
	fmt.Fprintf(sb, `<polygon points="%s,%s %s,%s %s,%s" fill="%s"/>`,
		num(end.X), num(end.Y),
		num(bx+px*size/2), num(by+py*size/2),
		num(bx-px*size/2), num(by-py*size/2),
		stroke)
}

