// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mathexpr

import (
	"math"

	"github.com/jeranaias/chalkviz/internal/spec"
)

// =============================================================================
// SAMPLING DEFAULTS
// =============================================================================

const (
	// DefaultSamples is the point count for 1D traces.
	DefaultSamples = 200
	// DefaultSurfaceSamples is the per-axis grid size for surfaces.
	DefaultSurfaceSamples = 40
	// DefaultFieldSamples is the per-axis grid size for vector fields.
	DefaultFieldSamples = 20
)

var (
	// DefaultDomain is the 1D evaluation interval when the payload omits one.
	DefaultDomain = spec.Interval{Min: -10, Max: 10}
	// DefaultFieldDomain is the square phase-plane domain.
	DefaultFieldDomain = spec.Interval{Min: -5, Max: 5}
	// DefaultParamDomain is the parameter interval for parametric traces.
	DefaultParamDomain = spec.Interval{Min: 0, Max: 2 * math.Pi}
)

// =============================================================================
// SERIES TYPES
// =============================================================================

// Series2D is one evaluated 2D trace. NaN values mark evaluation gaps and
// are rendered as breaks, never as points.
type Series2D struct {
	Xs   []float64
	Ys   []float64
	Name string
}

// Series3D is one evaluated 3D trace.
type Series3D struct {
	Xs   []float64
	Ys   []float64
	Zs   []float64
	Name string
}

// Surface is a height matrix z = f(x, y) over a rectangular grid.
// Zs is indexed [yi][xi], matching plotting-library row convention.
type Surface struct {
	Xs   []float64
	Ys   []float64
	Zs   [][]float64
	Name string
}

// VectorField is a unit-normalized 2D vector field sampled on a grid.
// U and V are indexed [yi][xi].
type VectorField struct {
	Xs []float64
	Ys []float64
	U  [][]float64
	V  [][]float64
}

// =============================================================================
// SAMPLING
// =============================================================================

// linspace returns n evenly spaced values across the interval, endpoints
// included. n < 2 collapses to the left endpoint.
func linspace(iv spec.Interval, n int) []float64 {
	if n < 1 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = iv.Min
		return out
	}
	step := (iv.Max - iv.Min) / float64(n-1)
	for i := range out {
		out[i] = iv.Min + float64(i)*step
	}
	return out
}

// SampleFunction2D evaluates y = f(x) at n evenly spaced points.
func SampleFunction2D(c *Compiled, domain spec.Interval, n int) Series2D {
	xs := linspace(domain, n)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = c.EvalX(x)
	}
	return Series2D{Xs: xs, Ys: ys, Name: c.Expr()}
}

// SampleParametric2D evaluates (x(t), y(t)) over a shared parameter.
func SampleParametric2D(fx, fy *Compiled, domain spec.Interval, n int) Series2D {
	ts := linspace(domain, n)
	xs := make([]float64, len(ts))
	ys := make([]float64, len(ts))
	for i, t := range ts {
		vars := map[string]float64{"t": t}
		xs[i] = fx.Eval(vars)
		ys[i] = fy.Eval(vars)
	}
	return Series2D{Xs: xs, Ys: ys, Name: fx.Expr() + ", " + fy.Expr()}
}

// SampleParametric3D evaluates (x(t), y(t), z(t)) over a shared parameter.
func SampleParametric3D(fx, fy, fz *Compiled, domain spec.Interval, n int) Series3D {
	ts := linspace(domain, n)
	xs := make([]float64, len(ts))
	ys := make([]float64, len(ts))
	zs := make([]float64, len(ts))
	for i, t := range ts {
		vars := map[string]float64{"t": t}
		xs[i] = fx.Eval(vars)
		ys[i] = fy.Eval(vars)
		zs[i] = fz.Eval(vars)
	}
	return Series3D{Xs: xs, Ys: ys, Zs: zs}
}

// SampleSurface evaluates z = f(x, y) over a rectangular grid with
// independently sized samplings per axis.
func SampleSurface(c *Compiled, xdom, ydom spec.Interval, nx, ny int) Surface {
	xs := linspace(xdom, nx)
	ys := linspace(ydom, ny)
	zs := make([][]float64, len(ys))
	for yi, y := range ys {
		row := make([]float64, len(xs))
		for xi, x := range xs {
			row[xi] = c.Eval(map[string]float64{"x": x, "y": y})
		}
		zs[yi] = row
	}
	return Surface{Xs: xs, Ys: ys, Zs: zs, Name: c.Expr()}
}

// SampleParamSurface evaluates a parametric surface (x(u,v), y(u,v), z(u,v))
// flattened into grid-ordered traces for the plotting boundary.
func SampleParamSurface(fx, fy, fz *Compiled, udom, vdom spec.Interval, nu, nv int) Series3D {
	us := linspace(udom, nu)
	vs := linspace(vdom, nv)
	n := len(us) * len(vs)
	out := Series3D{
		Xs: make([]float64, 0, n),
		Ys: make([]float64, 0, n),
		Zs: make([]float64, 0, n),
	}
	for _, v := range vs {
		for _, u := range us {
			vars := map[string]float64{"u": u, "v": v}
			out.Xs = append(out.Xs, fx.Eval(vars))
			out.Ys = append(out.Ys, fy.Eval(vars))
			out.Zs = append(out.Zs, fz.Eval(vars))
		}
	}
	return out
}

// SamplePhasePlane evaluates a two-component vector field (dx/dt, dy/dt) on
// an n x n grid over a square domain. Each vector is normalized to unit
// length before display scaling, so arrow length is independent of field
// magnitude and near-singularities do not produce extreme arrows.
func SamplePhasePlane(fu, fv *Compiled, domain spec.Interval, n int) VectorField {
	xs := linspace(domain, n)
	ys := linspace(domain, n)
	field := VectorField{
		Xs: xs,
		Ys: ys,
		U:  make([][]float64, len(ys)),
		V:  make([][]float64, len(ys)),
	}
	for yi, y := range ys {
		urow := make([]float64, len(xs))
		vrow := make([]float64, len(xs))
		for xi, x := range xs {
			vars := map[string]float64{"x": x, "y": y}
			u := fu.Eval(vars)
			v := fv.Eval(vars)
			mag := math.Hypot(u, v)
			if mag > 0 && !math.IsNaN(mag) {
				u /= mag
				v /= mag
			} else {
				u, v = 0, 0
			}
			urow[xi] = u
			vrow[xi] = v
		}
		field.U[yi] = urow
		field.V[yi] = vrow
	}
	return field
}
