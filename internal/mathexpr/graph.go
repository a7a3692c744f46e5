// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathexpr

import (
	"fmt"

	"github.com/jeranaias/chalkviz/internal/spec"
)

// =============================================================================
// GRAPH COMPILATION
// =============================================================================
//
// CompileGraph turns a GraphSpec into evaluated numeric series. It is the
// bridge between the payload data model and the two output boundaries (SVG
// plots, Plotly figures): renderers consume a Result, never raw expressions.

// LayerResult is one compiled layer with its resolved style.
type LayerResult struct {
	Type    spec.GraphType
	Series2 []Series2D
	Series3 []Series3D
	Surface *Surface
	Field   *VectorField
	Style   *spec.GraphStyle
}

// Result is the evaluated form of a whole GraphSpec. Composite types carry
// one LayerResult per layer; simple types carry exactly one.
type Result struct {
	Type   spec.GraphType
	Layers []LayerResult
	Axis   *spec.GraphAxis
}

// Is3D reports whether any layer plots into three dimensions.
func (r *Result) Is3D() bool {
	for _, l := range r.Layers {
		if l.Type.Is3D() {
			return true
		}
	}
	return false
}

// CompileGraph evaluates every series a GraphSpec describes. Expression
// compile failures return an error (they are payload defects, reported on
// the token); per-sample evaluation failures become NaN gaps instead.
func CompileGraph(g *spec.GraphSpec) (*Result, error) {
	res := &Result{Type: g.Type, Axis: g.Axis}
	if g.Type.Composite() {
		for i := range g.Layers {
			layer, err := compileLayer(&g.Layers[i])
			if err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
			res.Layers = append(res.Layers, *layer)
		}
		return res, nil
	}
	layer, err := compileLayer(g)
	if err != nil {
		return nil, err
	}
	res.Layers = append(res.Layers, *layer)
	return res, nil
}

func compileLayer(g *spec.GraphSpec) (*LayerResult, error) {
	out := &LayerResult{Type: g.Type, Style: g.StyleOrZero()}
	switch g.Type {
	case spec.GraphFunction2D:
		exprs := g.ExprList()
		if len(exprs) == 0 {
			return nil, fmt.Errorf("function_2d: no expression")
		}
		compiled, err := CompileAll(exprs)
		if err != nil {
			return nil, err
		}
		dom := g.Domain.XRange(DefaultDomain)
		n := g.Sampling.Count(DefaultSamples)
		for _, c := range compiled {
			out.Series2 = append(out.Series2, SampleFunction2D(c, dom, n))
		}

	case spec.GraphParametric2D:
		exprs := g.ExprList()
		if len(exprs) != 2 {
			return nil, fmt.Errorf("parametric_2d: need 2 expressions, got %d", len(exprs))
		}
		compiled, err := CompileAll(exprs)
		if err != nil {
			return nil, err
		}
		dom := g.Domain.TRange(DefaultParamDomain)
		n := g.Sampling.Count(DefaultSamples)
		out.Series2 = append(out.Series2, SampleParametric2D(compiled[0], compiled[1], dom, n))

	case spec.GraphPhasePlane:
		exprs := g.ExprList()
		if len(exprs) != 2 {
			return nil, fmt.Errorf("phase_plane: need 2 components, got %d", len(exprs))
		}
		compiled, err := CompileAll(exprs)
		if err != nil {
			return nil, err
		}
		dom := g.Domain.XRange(DefaultFieldDomain)
		n := g.Sampling.Count(DefaultFieldSamples)
		field := SamplePhasePlane(compiled[0], compiled[1], dom, n)
		out.Field = &field

	case spec.GraphScatter2D:
		if g.Data == nil {
			return nil, fmt.Errorf("scatter_2d: no data")
		}
		out.Series2 = append(out.Series2, Series2D{Xs: g.Data.X, Ys: g.Data.Y})

	case spec.GraphMultiScatter:
		if g.Data == nil || len(g.Data.Sets) == 0 {
			return nil, fmt.Errorf("multi_scatter_2d: no data sets")
		}
		for _, set := range g.Data.Sets {
			out.Series2 = append(out.Series2, Series2D{Xs: set.X, Ys: set.Y})
		}

	case spec.GraphFunction3D:
		exprs := g.ExprList()
		if len(exprs) == 0 {
			return nil, fmt.Errorf("function_3d: no expression")
		}
		c, err := Compile(exprs[0])
		if err != nil {
			return nil, err
		}
		nx, ny := g.Sampling.Grid(DefaultSurfaceSamples)
		surf := SampleSurface(c,
			g.Domain.XRange(DefaultFieldDomain),
			g.Domain.YRange(DefaultFieldDomain),
			nx, ny)
		out.Surface = &surf

	case spec.GraphParametric3D:
		exprs := g.ExprList()
		if len(exprs) != 3 {
			return nil, fmt.Errorf("parametric_3d: need 3 expressions, got %d", len(exprs))
		}
		compiled, err := CompileAll(exprs)
		if err != nil {
			return nil, err
		}
		if g.Domain.HasUV() {
			nu, nv := g.Sampling.Grid(DefaultSurfaceSamples)
			out.Series3 = append(out.Series3, SampleParamSurface(
				compiled[0], compiled[1], compiled[2],
				g.Domain.U, g.Domain.V, nu, nv))
		} else {
			dom := g.Domain.TRange(DefaultParamDomain)
			n := g.Sampling.Count(DefaultSamples)
			out.Series3 = append(out.Series3, SampleParametric3D(
				compiled[0], compiled[1], compiled[2], dom, n))
		}

	case spec.GraphScatter3D:
		if g.Data == nil {
			return nil, fmt.Errorf("scatter_3d: no data")
		}
		out.Series3 = append(out.Series3, Series3D{Xs: g.Data.X, Ys: g.Data.Y, Zs: g.Data.Z})

	case spec.GraphComposite2D, spec.GraphComposite3D:
		return nil, fmt.Errorf("composite layers cannot nest")

	default:
		return nil, fmt.Errorf("unsupported graph type %q", string(g.Type))
	}
	return out, nil
}
