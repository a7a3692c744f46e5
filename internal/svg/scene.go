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
// SCENE RENDERER
// =============================================================================

// RenderScene lays out and renders a spatial scene: entities, the physical
// relations between them, and text annotations.
func RenderScene(s *spec.SceneSpec, opts Options) string {
	w, h := layout.SceneWidth, layout.SceneHeight
	percent := true
	if s.View != nil && s.View.Width > 0 && s.View.Height > 0 {
		w, h = s.View.Width, s.View.Height
		percent = false
	}
	res := layout.Scene(s, layout.SceneOptions{Width: w, Height: h, PercentSpace: percent})
	return renderSceneWith(s, res, opts)
}

func renderSceneWith(s *spec.SceneSpec, res layout.Result, opts Options) string {
	if len(s.Entities) == 0 {
		return EmptySVG(opts)
	}
	pal := opts.Theme.Palette()
	var sb strings.Builder
	openSVG(&sb, res.Width, res.Height, pal)

	if s.Background != "" {
		fmt.Fprintf(&sb, `<rect x="0" y="0" width="%s" height="%s" fill="%s"/>`,
			num(res.Width), num(res.Height), escape(s.Background))
	}

	// Relations under entities, annotations on top.
	for _, r := range s.Relations {
		writeRelation(&sb, s, r, res, pal, opts)
	}
	for _, e := range s.Entities {
		p, ok := res.Positions[e.ID]
		if !ok {
			continue
		}
		writeEntity(&sb, e, p, res.NodeW, res.NodeH, pal, opts)
	}
	for _, a := range s.Annotations {
		writeAnnotation(&sb, a, res, pal, opts)
	}

	closeSVG(&sb)
	return sb.String()
}

// writeEntity draws one entity. Appearance is advisory: a shape name and a
// color override when present, otherwise a neutral circle.
func writeEntity(sb *strings.Builder, e spec.SceneEntity, p layout.Point, w, h float64, pal Palette, opts Options) {
	fill, stroke := pal.SceneEntityFill, pal.SceneEntityStroke
	shape := "circle"
	if e.Appearance != nil {
		if e.Appearance.Color != "" {
			fill = e.Appearance.Color
		}
		if e.Appearance.Shape != "" {
			shape = e.Appearance.Shape
		}
	}
	r := minFloat(w, h) / 2
	switch shape {
	case "rectangle", "box", "square":
		writeRoundedRect(sb, p, w, h*0.8, 4, fill, stroke)
	case "triangle":
		fmt.Fprintf(sb, `<polygon points="%s,%s %s,%s %s,%s" fill="%s" stroke="%s" stroke-width="2"/>`,
			num(p.X), num(p.Y-r),
			num(p.X+r), num(p.Y+r),
			num(p.X-r), num(p.Y+r),
			fill, stroke)
	default:
		fmt.Fprintf(sb, `<circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="2"/>`,
			num(p.X), num(p.Y), num(r), fill, stroke)
	}
	label := e.Label
	if label == "" {
		label = e.ID
	}
	textEl(sb, p.X, p.Y+r+14, opts.fontSize(12), pal.Text, opts.truncateLabel(label))
}

// writeRelation draws one relation. Entities that do not resolve are
// skipped silently; a half-specified relation is author error, not ours.
func writeRelation(sb *strings.Builder, s *spec.SceneSpec, r spec.SceneRelation, res layout.Result, pal Palette, opts Options) {
	switch r.Type {
	case spec.RelDistance:
		from, okF := res.Positions[r.From]
		to, okT := res.Positions[r.To]
		if !okF || !okT {
			return
		}
		writeRelationLine(sb, from, to, pal.RelationStroke, "6 3")
		label := r.Value
		if r.Label != "" {
			label = r.Label
		}
		if label != "" {
			textEl(sb, (from.X+to.X)/2, (from.Y+to.Y)/2-8, opts.fontSize(11), pal.AnnotationText, opts.truncateLabel(label))
		}
	case spec.RelConnection:
		from, okF := res.Positions[r.From]
		to, okT := res.Positions[r.To]
		if !okF || !okT {
			return
		}
		writeRelationLine(sb, from, to, pal.RelationStroke, "")
		if r.Label != "" {
			textEl(sb, (from.X+to.X)/2, (from.Y+to.Y)/2-8, opts.fontSize(11), pal.AnnotationText, opts.truncateLabel(r.Label))
		}
	case spec.RelMotion, spec.RelForce:
		p, ok := res.Positions[r.Entity]
		if !ok {
			return
		}
		dx, dy := directionVector(r.Direction)
		if dx == 0 && dy == 0 {
			return
		}
		const arrowLen = 50.0
		start := layout.Point{X: p.X + dx*res.NodeW/2, Y: p.Y + dy*res.NodeH/2}
		end := layout.Point{X: start.X + dx*arrowLen, Y: start.Y + dy*arrowLen}
		fmt.Fprintf(sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2"/>`,
			num(start.X), num(start.Y), num(end.X), num(end.Y), pal.ArrowStroke)
		writeArrowHead(sb, start, end, pal.ArrowStroke)
		label := r.Label
		if label == "" {
			label = r.Value
		}
		if label != "" {
			textEl(sb, end.X+dx*10, end.Y+dy*10-4, opts.fontSize(11), pal.AnnotationText, opts.truncateLabel(label))
		}
	case spec.RelAngle:
		p, ok := res.Positions[r.Entity]
		if !ok {
			if p, ok = res.Positions[r.From]; !ok {
				return
			}
		}
		label := r.Value
		if r.Label != "" {
			label = r.Label
		}
		if label != "" {
			textEl(sb, p.X+res.NodeW/2+12, p.Y, opts.fontSize(11), pal.AnnotationText, opts.truncateLabel(label))
		}
	}
}

func writeRelationLine(sb *strings.Builder, from, to layout.Point, stroke, dash string) {
	dashAttr := ""
	if dash != "" {
		dashAttr = fmt.Sprintf(` stroke-dasharray="%s"`, dash)
	}
	fmt.Fprintf(sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1.5"%s/>`,
		num(from.X), num(from.Y), num(to.X), num(to.Y), stroke, dashAttr)
}

// directionVector maps the narrated direction words onto a unit step.
func directionVector(dir string) (float64, float64) {
	switch strings.ToLower(dir) {
	case "up":
		return 0, -1
	case "down":
		return 0, 1
	case "left":
		return -1, 0
	case "right":
		return 1, 0
	default:
		return 0, 0
	}
}

func writeAnnotation(sb *strings.Builder, a spec.SceneAnnotation, res layout.Result, pal Palette, opts Options) {
	p, ok := res.Positions[a.AttachTo]
	if !ok {
		return
	}
	x, y := p.X, p.Y
	switch a.Position.Normalize() {
	case spec.SideTop:
		y -= res.NodeH/2 + 12
	case spec.SideBottom:
		y += res.NodeH/2 + 26
	case spec.SideLeft:
		x -= res.NodeW/2 + 30
	case spec.SideRight:
		x += res.NodeW/2 + 30
	}
	if a.Offset != nil {
		x += a.Offset.X
		y += a.Offset.Y
	}
	size := 11.0
	if a.Type == spec.AnnFormula {
		size = 13
	}
	textEl(sb, x, y, opts.fontSize(size), pal.AnnotationText, opts.truncateLabel(a.Text))
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
