// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package svg

import (
	"fmt"
	"math"
	"strings"

	"github.com/jeranaias/chalkviz/internal/mathexpr"
	"github.com/jeranaias/chalkviz/internal/spec"
)

// =============================================================================
// 2D PLOT RENDERER
// =============================================================================
//
// RenderGraph2D draws compiled 2D graph results: function traces, parametric
// curves, scatter points, and phase-plane vector fields, composed additively
// for composite graphs. 3D results never reach this renderer; they go out
// through the Plotly boundary instead.

const (
	plotWidth    = 640.0
	plotHeight   = 420.0
	marginLeft   = 54.0
	marginRight  = 20.0
	marginTop    = 36.0
	marginBottom = 44.0
	tickCount    = 5
)

// plotFrame maps data space onto the pixel plot area.
type plotFrame struct {
	xmin, xmax float64
	ymin, ymax float64
	left, top  float64
	w, h       float64
}

func (f plotFrame) px(x float64) float64 {
	return f.left + (x-f.xmin)/(f.xmax-f.xmin)*f.w
}

func (f plotFrame) py(y float64) float64 {
	// SVG y grows downward.
	return f.top + (f.ymax-y)/(f.ymax-f.ymin)*f.h
}

// RenderGraph2D renders an evaluated graph into a self-contained SVG.
func RenderGraph2D(res *mathexpr.Result, opts Options) string {
	if res == nil || len(res.Layers) == 0 {
		return EmptySVG(opts)
	}
	pal := opts.Theme.Palette()
	frame, ok := fitFrame(res)
	if !ok {
		return EmptySVG(opts)
	}

	var sb strings.Builder
	openSVG(&sb, plotWidth, plotHeight, pal)
	writeAxes(&sb, frame, res.Axis, pal, opts)

	trace := 0
	for _, layer := range res.Layers {
		style := layer.Style
		switch layer.Type {
		case spec.GraphPhasePlane:
			if layer.Field != nil {
				writeVectorField(&sb, frame, layer.Field, pal)
			}
		case spec.GraphScatter2D, spec.GraphMultiScatter:
			for i, s := range layer.Series2 {
				writeScatter(&sb, frame, s, pal.traceColor(trace, style.Color.At(i)), style.Size.At(i, 4))
				trace++
			}
		default:
			for i, s := range layer.Series2 {
				writeTrace(&sb, frame, s,
					pal.traceColor(trace, style.Color.At(i)),
					style.Width.At(i, 2),
					plotDash(style.Dash.At(i)))
				trace++
			}
		}
	}

	closeSVG(&sb)
	return sb.String()
}

// fitFrame computes the data bounds across all layers with a small pad.
// Returns false only when no finite point exists anywhere.
func fitFrame(res *mathexpr.Result) (plotFrame, bool) {
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	add := func(x, y float64) {
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			return
		}
		xmin = math.Min(xmin, x)
		xmax = math.Max(xmax, x)
		ymin = math.Min(ymin, y)
		ymax = math.Max(ymax, y)
	}
	for _, layer := range res.Layers {
		for _, s := range layer.Series2 {
			for i := range s.Xs {
				if i < len(s.Ys) {
					add(s.Xs[i], s.Ys[i])
				}
			}
		}
		if layer.Field != nil {
			for _, x := range layer.Field.Xs {
				for _, y := range layer.Field.Ys {
					add(x, y)
				}
			}
		}
	}
	if xmin > xmax || ymin > ymax {
		return plotFrame{}, false
	}
	// Degenerate spans (constant functions, single points) get a unit pad so
	// the projection stays finite.
	if xmax == xmin {
		xmin, xmax = xmin-1, xmax+1
	}
	if ymax == ymin {
		ymin, ymax = ymin-1, ymax+1
	}
	padX := (xmax - xmin) * 0.05
	padY := (ymax - ymin) * 0.05
	return plotFrame{
		xmin: xmin - padX, xmax: xmax + padX,
		ymin: ymin - padY, ymax: ymax + padY,
		left: marginLeft, top: marginTop,
		w: plotWidth - marginLeft - marginRight,
		h: plotHeight - marginTop - marginBottom,
	}, true
}

func writeAxes(sb *strings.Builder, f plotFrame, axis *spec.GraphAxis, pal Palette, opts Options) {
	// Grid and tick labels.
	for i := 0; i < tickCount; i++ {
		tx := f.xmin + (f.xmax-f.xmin)*float64(i)/float64(tickCount-1)
		px := f.px(tx)
		fmt.Fprintf(sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`,
			num(px), num(f.top), num(px), num(f.top+f.h), pal.GridStroke)
		textEl(sb, px, f.top+f.h+16, opts.fontSize(10), pal.MutedText, tickLabel(tx))

		ty := f.ymin + (f.ymax-f.ymin)*float64(i)/float64(tickCount-1)
		py := f.py(ty)
		fmt.Fprintf(sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`,
			num(f.left), num(py), num(f.left+f.w), num(py), pal.GridStroke)
		textEl(sb, f.left-22, py+3, opts.fontSize(10), pal.MutedText, tickLabel(ty))
	}

	// Zero axes when the origin is inside the frame.
	if f.xmin < 0 && f.xmax > 0 {
		px := f.px(0)
		fmt.Fprintf(sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1.5"/>`,
			num(px), num(f.top), num(px), num(f.top+f.h), pal.AxisStroke)
	}
	if f.ymin < 0 && f.ymax > 0 {
		py := f.py(0)
		fmt.Fprintf(sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1.5"/>`,
			num(f.left), num(py), num(f.left+f.w), num(py), pal.AxisStroke)
	}

	// Frame border.
	fmt.Fprintf(sb, `<rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="1"/>`,
		num(f.left), num(f.top), num(f.w), num(f.h), pal.AxisStroke)

	if axis == nil {
		return
	}
	if axis.Title != "" {
		textEl(sb, f.left+f.w/2, f.top-14, opts.fontSize(14), pal.Text, axis.Title)
	}
	if axis.XLabel != "" {
		textEl(sb, f.left+f.w/2, f.top+f.h+34, opts.fontSize(11), pal.Text, axis.XLabel)
	}
	if axis.YLabel != "" {
		fmt.Fprintf(sb, `<text x="%s" y="%s" font-size="%s" fill="%s" text-anchor="middle" transform="rotate(-90 %s %s)">%s</text>`,
			num(14), num(f.top+f.h/2), num(opts.fontSize(11)), pal.Text,
			num(14), num(f.top+f.h/2), escape(axis.YLabel))
	}
}

// plotDash maps trace dash names (both the short plotting names and the
// diagram edge names) onto stroke-dasharray values.
func plotDash(name string) string {
	switch name {
	case "dash", "dashed":
		return "8 4"
	case "dot", "dotted":
		return "2 3"
	case "dashdot":
		return "8 4 2 4"
	default:
		return ""
	}
}

// tickLabel formats a tick value compactly.
func tickLabel(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	if av >= 10000 || av < 0.01 {
		return fmt.Sprintf("%.1e", v)
	}
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// writeTrace draws one series as polyline segments. A NaN or infinite sample
// ends the current segment, so evaluation gaps render as breaks in the curve.
func writeTrace(sb *strings.Builder, f plotFrame, s mathexpr.Series2D, color string, width float64, dash string) {
	dashAttr := ""
	if dash != "" {
		dashAttr = fmt.Sprintf(` stroke-dasharray="%s"`, dash)
	}
	var seg []string
	flush := func() {
		if len(seg) >= 2 {
			fmt.Fprintf(sb, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%s"%s/>`,
				strings.Join(seg, " "), color, num(width), dashAttr)
		}
		seg = seg[:0]
	}
	for i := range s.Xs {
		if i >= len(s.Ys) {
			break
		}
		x, y := s.Xs[i], s.Ys[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			flush()
			continue
		}
		seg = append(seg, num(f.px(x))+","+num(f.py(y)))
	}
	flush()
}

// writeScatter draws one series as discrete markers, skipping non-finite
// points.
func writeScatter(sb *strings.Builder, f plotFrame, s mathexpr.Series2D, color string, size float64) {
	for i := range s.Xs {
		if i >= len(s.Ys) {
			break
		}
		x, y := s.Xs[i], s.Ys[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		fmt.Fprintf(sb, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
			num(f.px(x)), num(f.py(y)), num(size), color)
	}
}

// writeVectorField draws unit arrows scaled to the grid cell size.
func writeVectorField(sb *strings.Builder, f plotFrame, field *mathexpr.VectorField, pal Palette) {
	if len(field.Xs) < 2 || len(field.Ys) < 2 {
		return
	}
	// Arrow length is a fraction of the cell so neighbors never overlap.
	cellX := f.px(field.Xs[1]) - f.px(field.Xs[0])
	cellY := f.py(field.Ys[0]) - f.py(field.Ys[1])
	arrowLen := math.Min(math.Abs(cellX), math.Abs(cellY)) * 0.8
	for yi, y := range field.Ys {
		for xi, x := range field.Xs {
			u := field.U[yi][xi]
			v := field.V[yi][xi]
			if u == 0 && v == 0 {
				continue
			}
			x0 := f.px(x)
			y0 := f.py(y)
			x1 := x0 + u*arrowLen
			y1 := y0 - v*arrowLen
			fmt.Fprintf(sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"/>`,
				num(x0), num(y0), num(x1), num(y1), pal.ArrowStroke)
			// Small head at the tip.
			hx := x1 - (x1-x0)*0.3
			hy := y1 - (y1-y0)*0.3
			perpX := -(y1 - y0) * 0.15
			perpY := (x1 - x0) * 0.15
			fmt.Fprintf(sb, `<polyline points="%s,%s %s,%s %s,%s" fill="none" stroke="%s" stroke-width="1"/>`,
				num(hx+perpX), num(hy+perpY), num(x1), num(y1), num(hx-perpX), num(hy-perpY),
				pal.ArrowStroke)
		}
	}
}
