// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package spec

import (
	"math"
	"strconv"
	"strings"
	"testing"
)

// =============================================================================
// DECODE TESTS
// =============================================================================

func TestDecodeFlow_Basic(t *testing.T) {
	raw := `{
		"nodes": [
			{"id": "A", "label": "Start", "shape": "oval"},
			{"id": "B", "label": "Work", "shape": "rectangle"}
		],
		"edges": [{"from": "A", "to": "B", "label": "go"}],
		"layout": {"direction": "LR"}
	}`
	s, err := DecodeFlow(raw)
	if err != nil {
		t.Fatalf("DecodeFlow failed: %v", err)
	}
	if len(s.Nodes) != 2 || len(s.Edges) != 1 {
		t.Fatalf("unexpected sizes: %d nodes, %d edges", len(s.Nodes), len(s.Edges))
	}
	if s.Direction() != DirLR {
		t.Errorf("direction = %q, want LR", s.Direction())
	}
}

func TestDecodeFlow_UnknownShapeNormalizes(t *testing.T) {
	s, err := DecodeFlow(`{"nodes": [{"id": "A", "label": "x", "shape": "hexagon"}], "edges": []}`)
	if err != nil {
		t.Fatalf("DecodeFlow failed: %v", err)
	}
	if s.Nodes[0].Shape != FlowRectangle {
		t.Errorf("shape = %q, want default rectangle", s.Nodes[0].Shape)
	}
}

func TestDecodeFlow_MalformedJSON(t *testing.T) {
	if _, err := DecodeFlow(`{"nodes": [`); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestDecodeDiagram_EdgeStyles(t *testing.T) {
	s, err := DecodeDiagram(`{
		"nodes": [{"id": "a", "label": "A", "shape": "ellipse"}],
		"edges": [
			{"from": "a", "to": "a", "style": "dashed"},
			{"from": "a", "to": "a", "style": "wavy"}
		]
	}`)
	if err != nil {
		t.Fatalf("DecodeDiagram failed: %v", err)
	}
	if s.Edges[0].Style != EdgeDashed {
		t.Errorf("style = %q, want dashed", s.Edges[0].Style)
	}
	if s.Edges[1].Style != EdgeSolid {
		t.Errorf("unknown style = %q, want solid fallback", s.Edges[1].Style)
	}
}

func TestDecodeScene_OptionalPosition(t *testing.T) {
	s, err := DecodeScene(`{
		"entities": [
			{"id": "ball", "kind": "object", "label": "Ball", "position": {"x": 20, "y": 60}},
			{"id": "wall", "kind": "object", "label": "Wall"}
		],
		"relations": [{"type": "distance", "from": "ball", "to": "wall", "value": "5 m"}],
		"annotations": [{"type": "value", "text": "v = 3 m/s", "attachTo": "ball", "position": "top"}]
	}`)
	if err != nil {
		t.Fatalf("DecodeScene failed: %v", err)
	}
	if s.Entities[0].Position == nil || s.Entities[1].Position != nil {
		t.Error("position presence not preserved")
	}
	if s.Entity("wall") == nil || s.Entity("ghost") != nil {
		t.Error("Entity lookup wrong")
	}
}

func TestDecodeGraph_SingleAndPluralExpressions(t *testing.T) {
	g, err := DecodeGraph(`{"type": "function_2d", "expression": "x^2"}`)
	if err != nil {
		t.Fatalf("DecodeGraph failed: %v", err)
	}
	if got := g.ExprList(); len(got) != 1 || got[0] != "x^2" {
		t.Errorf("ExprList = %v", got)
	}

	g, err = DecodeGraph(`{"type": "function_2d", "expressions": ["x", "x^2"]}`)
	if err != nil {
		t.Fatalf("DecodeGraph failed: %v", err)
	}
	if got := g.ExprList(); len(got) != 2 {
		t.Errorf("ExprList = %v", got)
	}
}

func TestDecodeGraph_UnknownType(t *testing.T) {
	if _, err := DecodeGraph(`{"type": "pie_chart"}`); err == nil {
		t.Fatal("expected error for unknown graph type")
	}
}

func TestDecodeGraph_CompositeLayers(t *testing.T) {
	g, err := DecodeGraph(`{
		"type": "composite_2d",
		"layers": [
			{"type": "function_2d", "expression": "sin(x)", "style": {"color": "red"}},
			{"type": "scatter_2d", "data": {"x": [1, 2], "y": [3, 4]}}
		]
	}`)
	if err != nil {
		t.Fatalf("DecodeGraph failed: %v", err)
	}
	if !g.Type.Composite() || len(g.Layers) != 2 {
		t.Fatalf("composite not decoded: %+v", g)
	}
	if g.Layers[0].StyleOrZero().Color.At(0) != "red" {
		t.Error("layer style lost")
	}
}

// =============================================================================
// SCALAR-OR-ARRAY NORMALIZATION TESTS
// =============================================================================

func TestStringList_ScalarOrArray(t *testing.T) {
	g, err := DecodeGraph(`{"type": "function_2d", "expressions": ["x", "2*x"], "style": {"color": "blue"}}`)
	if err != nil {
		t.Fatalf("DecodeGraph failed: %v", err)
	}
	st := g.StyleOrZero()
	// A scalar color styles every series in the overlay.
	if st.Color.At(0) != "blue" || st.Color.At(1) != "blue" {
		t.Errorf("color not broadcast: %v", st.Color)
	}
}

func TestFloatList_At(t *testing.T) {
	l := FloatList{1, 2}
	if l.At(0, 9) != 1 || l.At(1, 9) != 2 || l.At(5, 9) != 2 {
		t.Errorf("FloatList.At wrong: %v", l)
	}
	var empty FloatList
	if empty.At(0, 9) != 9 {
		t.Error("empty FloatList should fall back to default")
	}
}

// =============================================================================
// DOMAIN AND SAMPLING TESTS
// =============================================================================

func TestDomain_Forms(t *testing.T) {
	g, err := DecodeGraph(`{"type": "function_2d", "domain": [-2, 2]}`)
	if err != nil {
		t.Fatalf("bare domain: %v", err)
	}
	if r := g.Domain.XRange(Interval{-10, 10}); r.Min != -2 || r.Max != 2 {
		t.Errorf("XRange = %+v", r)
	}

	g, err = DecodeGraph(`{"type": "function_3d", "expression": "x+y", "domain": {"x": [-1, 1], "y": [0, 4]}}`)
	if err != nil {
		t.Fatalf("object domain: %v", err)
	}
	if r := g.Domain.YRange(Interval{-10, 10}); r.Min != 0 || r.Max != 4 {
		t.Errorf("YRange = %+v", r)
	}

	g, err = DecodeGraph(`{"type": "parametric_3d", "expressions": ["cos(u)", "sin(u)", "v"], "domain": {"u": [0, 6], "v": [0, 1]}}`)
	if err != nil {
		t.Fatalf("uv domain: %v", err)
	}
	if !g.Domain.HasUV() {
		t.Error("HasUV should be true")
	}
}

func TestSampling_Forms(t *testing.T) {
	g, err := DecodeGraph(`{"type": "function_2d", "sampling": 50}`)
	if err != nil {
		t.Fatalf("scalar sampling: %v", err)
	}
	if g.Sampling.Count(200) != 50 {
		t.Errorf("Count = %d", g.Sampling.Count(200))
	}

	g, err = DecodeGraph(`{"type": "function_3d", "expression": "x*y", "sampling": [30, 20]}`)
	if err != nil {
		t.Fatalf("pair sampling: %v", err)
	}
	nx, ny := g.Sampling.Grid(40)
	if nx != 30 || ny != 20 {
		t.Errorf("Grid = %d, %d", nx, ny)
	}

	var unset *Sampling
	if unset.Count(200) != 200 {
		t.Error("nil sampling should use default")
	}
}

// =============================================================================
// MATH CONSTANT NORMALIZATION TESTS
// =============================================================================

func TestNormalizeMathConstants_Domain(t *testing.T) {
	g, err := DecodeGraph(`{"type": "parametric_2d", "expressions": ["cos(t)", "sin(t)"], "domain": [0, 2*PI]}`)
	if err != nil {
		t.Fatalf("DecodeGraph failed: %v", err)
	}
	r := g.Domain.TRange(Interval{0, 1})
	if math.Abs(r.Max-2*math.Pi) > 1e-9 {
		t.Errorf("TRange.Max = %v, want 2*pi", r.Max)
	}
}

func TestNormalizeMathConstants_Forms(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"PI", math.Pi},
		{"2*PI", 2 * math.Pi},
		{"PI/2", math.Pi / 2},
		{"0.5*PI", math.Pi / 2},
		{"E", math.E},
	}
	for _, tc := range tests {
		out := NormalizeMathConstants(tc.in)
		got, err := strconv.ParseFloat(out, 64)
		if err != nil {
			t.Errorf("NormalizeMathConstants(%q) = %q, not numeric", tc.in, out)
			continue
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("NormalizeMathConstants(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeMathConstants_ProtectsStrings(t *testing.T) {
	raw := `{"label": "the constant PI", "value": PI}`
	out := NormalizeMathConstants(raw)
	if !strings.Contains(out, `"the constant PI"`) {
		t.Errorf("string literal corrupted: %s", out)
	}
	if strings.Contains(out, `"value": PI`) {
		t.Errorf("bare constant not replaced: %s", out)
	}
}

func TestNormalizeMathConstants_NoConstantsUntouched(t *testing.T) {
	raw := `{"nodes": [{"id": "A"}]}`
	if out := NormalizeMathConstants(raw); out != raw {
		t.Errorf("payload without constants changed: %s", out)
	}
}
