// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package svg

import (
	"strings"
	"testing"

	"github.com/jeranaias/chalkviz/internal/mathexpr"
	"github.com/jeranaias/chalkviz/internal/spec"
)

func mustFlow(t *testing.T, payload string) *spec.FlowSpec {
	t.Helper()
	s, err := spec.DecodeFlow(payload)
	if err != nil {
		t.Fatalf("DecodeFlow: %v", err)
	}
	return s
}

func TestEmptyFlowRendersValidSVG(t *testing.T) {
	out := RenderFlow(&spec.FlowSpec{}, Options{})
	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(out, "</svg>") {
		t.Errorf("empty flow did not produce a valid SVG wrapper: %q", out)
	}
}

func TestFlowShapePrimitives(t *testing.T) {
	s := mustFlow(t, `{
		"nodes": [
			{"id": "a", "label": "Start", "shape": "oval"},
			{"id": "b", "label": "Work", "shape": "rectangle"},
			{"id": "c", "label": "Done?", "shape": "diamond"}
		],
		"edges": [{"from": "a", "to": "b"}, {"from": "b", "to": "c"}]
	}`)
	out := RenderFlow(s, Options{})

	if !strings.Contains(out, "<ellipse ") {
		t.Error("oval node missing ellipse element")
	}
	if !strings.Contains(out, "<rect ") {
		t.Error("rectangle node missing rect element")
	}
	if !strings.Contains(out, "<polygon ") {
		t.Error("diamond node missing polygon element")
	}

	// Colors are keyed off the shape, light theme.
	pal := ThemeLight.Palette()
	for _, c := range []string{pal.OvalFill, pal.RectFill, pal.DiamondFill} {
		if !strings.Contains(out, c) {
			t.Errorf("expected shape color %s in output", c)
		}
	}
}

func TestFlowRenderDeterminism(t *testing.T) {
	s := mustFlow(t, `{
		"nodes": [
			{"id": "a", "label": "A", "shape": "oval"},
			{"id": "b", "label": "B", "shape": "rectangle"},
			{"id": "c", "label": "C", "shape": "diamond"}
		],
		"edges": [{"from": "a", "to": "b"}, {"from": "b", "to": "c"}]
	}`)
	first := RenderFlow(s, Options{Theme: ThemeDark, Zoom: 1.5})
	second := RenderFlow(s, Options{Theme: ThemeDark, Zoom: 1.5})
	if first != second {
		t.Error("identical inputs produced different markup")
	}
}

func TestFlowDanglingEdgeSkipped(t *testing.T) {
	s := mustFlow(t, `{
		"nodes": [{"id": "a", "label": "A"}],
		"edges": [{"from": "a", "to": "ghost"}]
	}`)
	out := RenderFlow(s, Options{})
	if strings.Contains(out, "<path ") {
		t.Error("edge to missing node should not render")
	}
	if !strings.Contains(out, ">A</text>") {
		t.Error("node should still render")
	}
}

func TestFlowEdgeLabelFallsBackToCondition(t *testing.T) {
	s := mustFlow(t, `{
		"nodes": [{"id": "a", "label": "A"}, {"id": "b", "label": "B"}],
		"edges": [{"from": "a", "to": "b", "condition": "yes"}]
	}`)
	out := RenderFlow(s, Options{})
	if !strings.Contains(out, ">yes</text>") {
		t.Error("condition should label the edge when label is absent")
	}
}

func TestDiagramDashPatterns(t *testing.T) {
	s, err := spec.DecodeDiagram(`{
		"nodes": [
			{"id": "a", "label": "A"},
			{"id": "b", "label": "B"},
			{"id": "c", "label": "C"},
			{"id": "d", "label": "D"}
		],
		"edges": [
			{"from": "a", "to": "b", "style": "solid"},
			{"from": "a", "to": "c", "style": "dashed"},
			{"from": "a", "to": "d", "style": "dotted"}
		]
	}`)
	if err != nil {
		t.Fatalf("DecodeDiagram: %v", err)
	}
	out := RenderDiagram(s, Options{})
	if !strings.Contains(out, `stroke-dasharray="8 4"`) {
		t.Error("dashed edge missing dash pattern")
	}
	if !strings.Contains(out, `stroke-dasharray="2 3"`) {
		t.Error("dotted edge missing dot pattern")
	}
	if n := strings.Count(out, "stroke-dasharray"); n != 2 {
		t.Errorf("solid edge should carry no dash pattern, got %d patterned strokes", n)
	}
}

func TestDiagramShapePrimitives(t *testing.T) {
	s, err := spec.DecodeDiagram(`{
		"nodes": [
			{"id": "a", "label": "A", "shape": "ellipse"},
			{"id": "b", "label": "B", "shape": "rounded_rectangle"}
		],
		"edges": []
	}`)
	if err != nil {
		t.Fatalf("DecodeDiagram: %v", err)
	}
	out := RenderDiagram(s, Options{})
	pal := ThemeLight.Palette()
	if !strings.Contains(out, pal.EllipseFill) {
		t.Error("ellipse fill missing")
	}
	if !strings.Contains(out, pal.RoundedFill) {
		t.Error("rounded rectangle fill missing")
	}
}

func TestSceneRelationsAndAnnotations(t *testing.T) {
	s, err := spec.DecodeScene(`{
		"entities": [
			{"id": "block", "label": "Block", "position": {"x": 20, "y": 50}},
			{"id": "wall", "label": "Wall", "position": {"x": 80, "y": 50},
			 "appearance": {"shape": "rectangle", "color": "#FF0000"}}
		],
		"relations": [
			{"type": "distance", "from": "block", "to": "wall", "value": "5 m"},
			{"type": "force", "entity": "block", "direction": "right", "label": "F"}
		],
		"annotations": [
			{"type": "formula", "text": "F = ma", "attachTo": "block", "position": "top"}
		]
	}`)
	if err != nil {
		t.Fatalf("DecodeScene: %v", err)
	}
	out := RenderScene(s, Options{})

	if !strings.Contains(out, ">5 m</text>") {
		t.Error("distance value missing")
	}
	if !strings.Contains(out, `stroke-dasharray="6 3"`) {
		t.Error("distance relation should be dashed")
	}
	if !strings.Contains(out, ">F</text>") {
		t.Error("force arrow label missing")
	}
	if !strings.Contains(out, ">F = ma</text>") {
		t.Error("annotation text missing")
	}
	if !strings.Contains(out, `fill="#FF0000"`) {
		t.Error("appearance color override missing")
	}
}

func TestSceneDanglingReferencesSkipped(t *testing.T) {
	s, err := spec.DecodeScene(`{
		"entities": [{"id": "a", "label": "A"}],
		"relations": [{"type": "distance", "from": "a", "to": "ghost", "value": "2 m"}],
		"annotations": [{"type": "label", "text": "lost", "attachTo": "ghost"}]
	}`)
	if err != nil {
		t.Fatalf("DecodeScene: %v", err)
	}
	out := RenderScene(s, Options{})
	if strings.Contains(out, "2 m") || strings.Contains(out, "lost") {
		t.Error("content referencing missing entities should be skipped")
	}
}

func TestEmptySceneRendersValidSVG(t *testing.T) {
	out := RenderScene(&spec.SceneSpec{}, Options{})
	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(out, "</svg>") {
		t.Errorf("empty scene did not produce a valid SVG wrapper: %q", out)
	}
}

func mustGraph(t *testing.T, payload string) *mathexpr.Result {
	t.Helper()
	g, err := spec.DecodeGraph(payload)
	if err != nil {
		t.Fatalf("DecodeGraph: %v", err)
	}
	res, err := mathexpr.CompileGraph(g)
	if err != nil {
		t.Fatalf("CompileGraph: %v", err)
	}
	return res
}

func TestPlotFunctionTrace(t *testing.T) {
	res := mustGraph(t, `{
		"type": "function_2d",
		"expression": "x^2",
		"domain": [-2, 2],
		"sampling": 5,
		"axis": {"title": "Parabola", "x_label": "x", "y_label": "y"}
	}`)
	out := RenderGraph2D(res, Options{})
	if !strings.Contains(out, "<polyline ") {
		t.Error("function trace missing polyline")
	}
	if !strings.Contains(out, ">Parabola</text>") {
		t.Error("title missing")
	}
	if !strings.Contains(out, ">x</text>") || !strings.Contains(out, ">y</text>") {
		t.Error("axis labels missing")
	}
}

func TestPlotNaNGapBreaksTrace(t *testing.T) {
	// 1/x at x=0 is a gap: two disjoint two-point segments.
	res := mustGraph(t, `{
		"type": "function_2d",
		"expression": "1/x",
		"domain": [-1, 1],
		"sampling": 5
	}`)
	out := RenderGraph2D(res, Options{})
	if n := strings.Count(out, "<polyline "); n != 2 {
		t.Errorf("expected 2 trace segments around the gap, got %d", n)
	}
}

func TestPlotScatterMarkers(t *testing.T) {
	res := mustGraph(t, `{
		"type": "scatter_2d",
		"data": {"x": [1, 2, 3], "y": [2, 4, 6]}
	}`)
	out := RenderGraph2D(res, Options{})
	if n := strings.Count(out, "<circle "); n != 3 {
		t.Errorf("expected 3 markers, got %d", n)
	}
	if strings.Contains(out, "<polyline ") {
		t.Error("scatter should not draw a connecting trace")
	}
}

func TestPlotCompositeOverlay(t *testing.T) {
	res := mustGraph(t, `{
		"type": "composite_2d",
		"layers": [
			{"type": "function_2d", "expression": "x", "domain": [0, 1], "sampling": 3},
			{"type": "scatter_2d", "data": {"x": [0.5], "y": [0.5]}}
		]
	}`)
	out := RenderGraph2D(res, Options{})
	if !strings.Contains(out, "<polyline ") || !strings.Contains(out, "<circle ") {
		t.Error("composite should draw both the trace and the markers")
	}
}

func TestPhasePlaneArrows(t *testing.T) {
	res := mustGraph(t, `{
		"type": "phase_plane",
		"expressions": ["y", "-x"],
		"domain": [-2, 2],
		"sampling": 5
	}`)
	out := RenderGraph2D(res, Options{})
	// Rotation field is nonzero away from the origin: 24 of 25 grid points.
	if n := strings.Count(out, `<polyline points=`); n != 24 {
		t.Errorf("expected 24 arrow heads, got %d", n)
	}
}

func TestPlotDistinctTraceColors(t *testing.T) {
	res := mustGraph(t, `{
		"type": "function_2d",
		"expressions": ["x", "x^2"],
		"domain": [0, 2],
		"sampling": 3
	}`)
	out := RenderGraph2D(res, Options{})
	pal := ThemeLight.Palette()
	if !strings.Contains(out, pal.TraceColors[0]) || !strings.Contains(out, pal.TraceColors[1]) {
		t.Error("overlaid traces should cycle through distinct colors")
	}
}

func TestPlotStyleColorOverride(t *testing.T) {
	res := mustGraph(t, `{
		"type": "function_2d",
		"expression": "x",
		"domain": [0, 1],
		"sampling": 3,
		"style": {"color": "#ABCDEF", "dash": "dashed"}
	}`)
	out := RenderGraph2D(res, Options{})
	if !strings.Contains(out, `stroke="#ABCDEF"`) {
		t.Error("style color override missing")
	}
	if !strings.Contains(out, `stroke-dasharray="8 4"`) {
		t.Error("dash style missing")
	}
}

func TestEmptyGraphRendersValidSVG(t *testing.T) {
	out := RenderGraph2D(&mathexpr.Result{}, Options{})
	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(out, "</svg>") {
		t.Errorf("empty graph did not produce a valid SVG wrapper: %q", out)
	}
}

func TestCompactLabelTruncation(t *testing.T) {
	s := mustFlow(t, `{
		"nodes": [{"id": "a", "label": "An extremely long node label"}],
		"edges": []
	}`)
	out := RenderFlow(s, Options{Compact: true})
	if !strings.Contains(out, "...") {
		t.Error("compact rendering should truncate long labels")
	}
	if strings.Contains(out, "An extremely long node label") {
		t.Error("full label should not survive the compact budget")
	}
}

func TestNumFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.001, "0"},
		{1.5, "1.5"},
		{120, "120"},
		{33.333333, "33.33"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
