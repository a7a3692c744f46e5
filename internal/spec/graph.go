// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package spec

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// GRAPH TYPES
// =============================================================================

// GraphType selects the plotting mode of a GraphSpec.
type GraphType string

const (
	GraphFunction2D    GraphType = "function_2d"
	GraphParametric2D  GraphType = "parametric_2d"
	GraphPhasePlane    GraphType = "phase_plane"
	GraphScatter2D     GraphType = "scatter_2d"
	GraphMultiScatter  GraphType = "multi_scatter_2d"
	GraphFunction3D    GraphType = "function_3d"
	GraphParametric3D  GraphType = "parametric_3d"
	GraphScatter3D     GraphType = "scatter_3d"
	GraphComposite2D   GraphType = "composite_2d"
	GraphComposite3D   GraphType = "composite_3d"
)

// Valid reports whether t is one of the supported graph types.
func (t GraphType) Valid() bool {
	switch t {
	case GraphFunction2D, GraphParametric2D, GraphPhasePlane, GraphScatter2D,
		GraphMultiScatter, GraphFunction3D, GraphParametric3D, GraphScatter3D,
		GraphComposite2D, GraphComposite3D:
		return true
	default:
		return false
	}
}

// Is3D reports whether the type plots into three dimensions.
func (t GraphType) Is3D() bool {
	switch t {
	case GraphFunction3D, GraphParametric3D, GraphScatter3D, GraphComposite3D:
		return true
	default:
		return false
	}
}

// Composite reports whether the type fans out into layers.
func (t GraphType) Composite() bool {
	return t == GraphComposite2D || t == GraphComposite3D
}

// =============================================================================
// FLEXIBLE SCALAR-OR-ARRAY FIELDS
// =============================================================================

// StringList accepts either a single JSON string or an array of strings.
// Style fields use it so multi-curve overlays can be styled in parallel with
// the expressions array.
type StringList []string

// UnmarshalJSON implements scalar-or-array decoding.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or string array: %w", err)
	}
	*l = many
	return nil
}

// At returns the i-th element, repeating the last one when the list is
// shorter than the series it styles. Empty lists return the zero string.
func (l StringList) At(i int) string {
	if len(l) == 0 {
		return ""
	}
	if i >= len(l) {
		return l[len(l)-1]
	}
	return l[i]
}

// FloatList accepts either a single JSON number or an array of numbers.
type FloatList []float64

// UnmarshalJSON implements scalar-or-array decoding.
func (l *FloatList) UnmarshalJSON(data []byte) error {
	var single float64
	if err := json.Unmarshal(data, &single); err == nil {
		*l = FloatList{single}
		return nil
	}
	var many []float64
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected number or number array: %w", err)
	}
	*l = many
	return nil
}

// At returns the i-th element, repeating the last one past the end and
// falling back to def when the list is empty.
func (l FloatList) At(i int, def float64) float64 {
	if len(l) == 0 {
		return def
	}
	if i >= len(l) {
		return l[len(l)-1]
	}
	return l[i]
}

// =============================================================================
// DOMAIN
// =============================================================================

// Interval is a closed numeric range.
type Interval struct {
	Min float64
	Max float64
}

// Set reports whether the interval was supplied by the payload.
func (iv Interval) Set() bool { return iv.Min != 0 || iv.Max != 0 }

// UnmarshalJSON decodes a two-element array.
func (iv *Interval) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("expected [min, max] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("expected 2 elements in interval, got %d", len(pair))
	}
	iv.Min, iv.Max = pair[0], pair[1]
	return nil
}

// Domain is the evaluation region of a graph. Payloads may supply either a
// bare interval ([-10, 10]) or an object with per-variable ranges
// ({"x": [-5,5], "y": [-5,5]} or {"t": [0, 6.283]} or {"u": ..., "v": ...}).
// Parametric surfaces are detected by presence of U/V rather than T.
type Domain struct {
	X Interval
	Y Interval
	T Interval
	U Interval
	V Interval

	// plain is true when the payload supplied a bare [min,max] array; the
	// interval is stored in X and mirrored into T for parametric use.
	plain bool
}

// UnmarshalJSON accepts both domain forms.
func (d *Domain) UnmarshalJSON(data []byte) error {
	var iv Interval
	if err := json.Unmarshal(data, &iv); err == nil {
		d.X = iv
		d.T = iv
		d.plain = true
		return nil
	}
	var obj struct {
		X *Interval `json:"x"`
		Y *Interval `json:"y"`
		T *Interval `json:"t"`
		U *Interval `json:"u"`
		V *Interval `json:"v"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("expected interval or per-variable object: %w", err)
	}
	if obj.X != nil {
		d.X = *obj.X
	}
	if obj.Y != nil {
		d.Y = *obj.Y
	}
	if obj.T != nil {
		d.T = *obj.T
	}
	if obj.U != nil {
		d.U = *obj.U
	}
	if obj.V != nil {
		d.V = *obj.V
	}
	return nil
}

// HasUV reports whether the payload supplied surface parameters.
func (d *Domain) HasUV() bool {
	return d != nil && (d.U.Set() || d.V.Set())
}

// XRange returns the x interval, or def when unset.
func (d *Domain) XRange(def Interval) Interval {
	if d == nil || !d.X.Set() {
		return def
	}
	return d.X
}

// YRange returns the y interval, falling back to the x interval for square
// domains supplied as a bare array, else def.
func (d *Domain) YRange(def Interval) Interval {
	if d == nil {
		return def
	}
	if d.Y.Set() {
		return d.Y
	}
	if d.plain {
		return d.X
	}
	return def
}

// TRange returns the parameter interval, or def when unset.
func (d *Domain) TRange(def Interval) Interval {
	if d == nil || !d.T.Set() {
		return def
	}
	return d.T
}

// =============================================================================
// SAMPLING
// =============================================================================

// Sampling is the number of evaluation points, either one count for all axes
// or independent per-axis counts for surfaces.
type Sampling struct {
	N  int
	NX int
	NY int
}

// UnmarshalJSON accepts a bare count, a [nx, ny] pair, or an object.
func (s *Sampling) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		s.N = n
		return nil
	}
	var pair []int
	if err := json.Unmarshal(data, &pair); err == nil && len(pair) == 2 {
		s.NX, s.NY = pair[0], pair[1]
		return nil
	}
	var obj struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("expected count, [nx, ny] or object: %w", err)
	}
	s.NX, s.NY = obj.X, obj.Y
	return nil
}

// Count returns the single sample count, or def when unset.
func (s *Sampling) Count(def int) int {
	if s == nil || s.N <= 0 {
		return def
	}
	return s.N
}

// Grid returns per-axis counts, using the single count for both axes when
// only it was supplied.
func (s *Sampling) Grid(def int) (nx, ny int) {
	nx, ny = def, def
	if s == nil {
		return nx, ny
	}
	if s.N > 0 {
		return s.N, s.N
	}
	if s.NX > 0 {
		nx = s.NX
	}
	if s.NY > 0 {
		ny = s.NY
	}
	return nx, ny
}

// =============================================================================
// GRAPH SPEC
// =============================================================================

// GraphStyle carries per-series presentation, each field scalar-or-array and
// indexed in parallel with the expressions array.
type GraphStyle struct {
	Color StringList `json:"color,omitempty"`
	Width FloatList  `json:"width,omitempty"`
	Dash  StringList `json:"dash,omitempty"`
	Size  FloatList  `json:"size,omitempty"`
	Name  StringList `json:"name,omitempty"`
	Mode  string     `json:"mode,omitempty"`
}

// GraphAxis carries axis labels and plot title.
type GraphAxis struct {
	Title  string `json:"title,omitempty"`
	XLabel string `json:"x_label,omitempty"`
	YLabel string `json:"y_label,omitempty"`
	ZLabel string `json:"z_label,omitempty"`
}

// GraphData holds literal coordinate arrays for scatter types; passed
// through unchanged, never compiled.
type GraphData struct {
	X []float64 `json:"x,omitempty"`
	Y []float64 `json:"y,omitempty"`
	Z []float64 `json:"z,omitempty"`

	// Sets holds multiple point clouds for multi_scatter_2d.
	Sets []GraphData `json:"sets,omitempty"`
}

// GraphSpec describes one plot. A composite type fans out into Layers, each
// independently typed and styled, composing additively into one figure.
type GraphSpec struct {
	Type        GraphType    `json:"type"`
	Expression  string       `json:"expression,omitempty"`
	Expressions StringList   `json:"expressions,omitempty"`
	Domain      *Domain      `json:"domain,omitempty"`
	Sampling    *Sampling    `json:"sampling,omitempty"`
	Data        *GraphData   `json:"data,omitempty"`
	Layers      []GraphSpec  `json:"layers,omitempty"`
	Style       *GraphStyle  `json:"style,omitempty"`
	Axis        *GraphAxis   `json:"axis,omitempty"`
}

// ExprList returns the expression strings, merging the singular Expression
// field into the plural form.
func (g *GraphSpec) ExprList() []string {
	if len(g.Expressions) > 0 {
		return g.Expressions
	}
	if g.Expression != "" {
		return []string{g.Expression}
	}
	return nil
}

// StyleOrZero returns the style block, never nil.
func (g *GraphSpec) StyleOrZero() *GraphStyle {
	if g.Style == nil {
		return &GraphStyle{}
	}
	return g.Style
}
