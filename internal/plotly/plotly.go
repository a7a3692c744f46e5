// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plotly builds Plotly-compatible figure JSON from compiled graph
// results. This is the hand-off boundary to the client-side plotting
// library: the exporter embeds the figure object into the HTML page and a
// CDN script renders it. Nothing here draws; it only shapes data.
package plotly

import (
	"encoding/json"
	"math"

	"github.com/jeranaias/chalkviz/internal/mathexpr"
	"github.com/jeranaias/chalkviz/internal/spec"
)

// Trace is one Plotly data trace. Fields are a pragmatic subset of the
// Plotly schema; omitted fields fall back to Plotly defaults client-side.
type Trace struct {
	Type string `json:"type"`
	Mode string `json:"mode,omitempty"`
	Name string `json:"name,omitempty"`

	// Coordinates are untyped because JSON cannot carry NaN: evaluation
	// gaps become nulls, which Plotly renders as trace breaks. Z is a flat
	// list for scatter3d and a row matrix for surface.
	X interface{} `json:"x,omitempty"`
	Y interface{} `json:"y,omitempty"`
	Z interface{} `json:"z,omitempty"`

	Line   *Line   `json:"line,omitempty"`
	Marker *Marker `json:"marker,omitempty"`
}

type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

type Marker struct {
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// AxisTitle nests the way the Plotly layout schema wants it.
type AxisTitle struct {
	Title string `json:"title,omitempty"`
}

// Layout carries titles for the 2D axes and the 3D scene.
type Layout struct {
	Title string     `json:"title,omitempty"`
	XAxis *AxisTitle `json:"xaxis,omitempty"`
	YAxis *AxisTitle `json:"yaxis,omitempty"`
	Scene *SceneAxes `json:"scene,omitempty"`
}

// SceneAxes is the 3D axis block.
type SceneAxes struct {
	XAxis *AxisTitle `json:"xaxis,omitempty"`
	YAxis *AxisTitle `json:"yaxis,omitempty"`
	ZAxis *AxisTitle `json:"zaxis,omitempty"`
}

// Figure is a complete Plotly figure: what Plotly.newPlot consumes.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// JSON serializes the figure. NaN samples are nulled first; raw NaN is not
// valid JSON and Plotly treats null as a gap, which matches how the SVG
// renderer breaks traces.
func (f *Figure) JSON() ([]byte, error) {
	return json.Marshal(f)
}

// FromResult shapes a compiled graph into a figure. Works for every graph
// type; 3D types are the primary consumer since the terminal cannot show
// them.
func FromResult(res *mathexpr.Result) *Figure {
	fig := &Figure{Data: []Trace{}}
	if res == nil {
		return fig
	}
	fig.Layout = layoutFor(res)
	for _, layer := range res.Layers {
		style := layer.Style
		switch layer.Type {
		case spec.GraphFunction3D:
			if layer.Surface != nil {
				fig.Data = append(fig.Data, surfaceTrace(layer.Surface))
			}
		case spec.GraphScatter3D:
			for i, s := range layer.Series3 {
				fig.Data = append(fig.Data, scatter3DTrace(s, "markers", style, i))
			}
		case spec.GraphParametric3D:
			for i, s := range layer.Series3 {
				fig.Data = append(fig.Data, scatter3DTrace(s, "lines", style, i))
			}
		case spec.GraphScatter2D, spec.GraphMultiScatter:
			for i, s := range layer.Series2 {
				fig.Data = append(fig.Data, scatter2DTrace(s, "markers", style, i))
			}
		case spec.GraphPhasePlane:
			if layer.Field != nil {
				fig.Data = append(fig.Data, fieldTrace(layer.Field))
			}
		default:
			for i, s := range layer.Series2 {
				fig.Data = append(fig.Data, scatter2DTrace(s, "lines", style, i))
			}
		}
	}
	return fig
}

func layoutFor(res *mathexpr.Result) Layout {
	var l Layout
	axis := res.Axis
	if axis == nil {
		return l
	}
	l.Title = axis.Title
	if res.Is3D() {
		l.Scene = &SceneAxes{}
		if axis.XLabel != "" {
			l.Scene.XAxis = &AxisTitle{Title: axis.XLabel}
		}
		if axis.YLabel != "" {
			l.Scene.YAxis = &AxisTitle{Title: axis.YLabel}
		}
		if axis.ZLabel != "" {
			l.Scene.ZAxis = &AxisTitle{Title: axis.ZLabel}
		}
		return l
	}
	if axis.XLabel != "" {
		l.XAxis = &AxisTitle{Title: axis.XLabel}
	}
	if axis.YLabel != "" {
		l.YAxis = &AxisTitle{Title: axis.YLabel}
	}
	return l
}

func surfaceTrace(s *mathexpr.Surface) Trace {
	rows := make([][]interface{}, len(s.Zs))
	for i, row := range s.Zs {
		rows[i] = nullNaNs(row)
	}
	return Trace{
		Type: "surface",
		Name: s.Name,
		X:    nullNaNs(s.Xs),
		Y:    nullNaNs(s.Ys),
		Z:    rows,
	}
}

func scatter3DTrace(s mathexpr.Series3D, mode string, style *spec.GraphStyle, i int) Trace {
	t := Trace{
		Type: "scatter3d",
		Mode: mode,
		Name: seriesName(s.Name, style, i),
		X:    nullNaNs(s.Xs),
		Y:    nullNaNs(s.Ys),
		Z:    nullNaNs(s.Zs),
	}
	applyStyle(&t, mode, style, i)
	return t
}

func scatter2DTrace(s mathexpr.Series2D, mode string, style *spec.GraphStyle, i int) Trace {
	t := Trace{
		Type: "scatter",
		Mode: mode,
		Name: seriesName(s.Name, style, i),
		X:    nullNaNs(s.Xs),
		Y:    nullNaNs(s.Ys),
	}
	applyStyle(&t, mode, style, i)
	return t
}

// fieldTrace flattens a vector field into a single null-separated line
// trace: one arrow shaft per grid point, gaps between them.
func fieldTrace(f *mathexpr.VectorField) Trace {
	// Arrow length relative to grid spacing.
	scale := 0.4
	if len(f.Xs) > 1 {
		scale = (f.Xs[1] - f.Xs[0]) * 0.4
	}
	xs := make([]interface{}, 0, len(f.Xs)*len(f.Ys)*3)
	ys := make([]interface{}, 0, len(f.Xs)*len(f.Ys)*3)
	for yi, y := range f.Ys {
		for xi, x := range f.Xs {
			u, v := f.U[yi][xi], f.V[yi][xi]
			if u == 0 && v == 0 {
				continue
			}
			xs = append(xs, x, x+u*scale, nil)
			ys = append(ys, y, y+v*scale, nil)
		}
	}
	return Trace{Type: "scatter", Mode: "lines", X: xs, Y: ys}
}

func seriesName(name string, style *spec.GraphStyle, i int) string {
	if style != nil {
		if n := style.Name.At(i); n != "" {
			return n
		}
	}
	return name
}

func applyStyle(t *Trace, mode string, style *spec.GraphStyle, i int) {
	if style == nil {
		return
	}
	if style.Mode != "" {
		t.Mode = style.Mode
		mode = style.Mode
	}
	color := style.Color.At(i)
	if mode == "markers" {
		size := style.Size.At(i, 0)
		if color != "" || size > 0 {
			t.Marker = &Marker{Color: color, Size: size}
		}
		return
	}
	width := style.Width.At(i, 0)
	dash := style.Dash.At(i)
	if color != "" || width > 0 || dash != "" {
		t.Line = &Line{Color: color, Width: width, Dash: dash}
	}
}

// nullNaNs converts NaN and infinite samples to JSON null.
func nullNaNs(vals []float64) []interface{} {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[i] = nil
		} else {
			out[i] = v
		}
	}
	return out
}
