// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/jeranaias/chalkviz/internal/spec"
)

func flowABC() *spec.FlowSpec {
	return &spec.FlowSpec{
		Nodes: []spec.FlowNode{
			{ID: "A", Label: "Start", Shape: spec.FlowOval},
			{ID: "B", Label: "Work", Shape: spec.FlowRectangle},
			{ID: "C", Label: "End", Shape: spec.FlowOval},
		},
		Edges: []spec.FlowEdge{
			{From: "A", To: "B"},
			{From: "B", To: "C"},
		},
	}
}

// =============================================================================
// DIRECTIONAL LAYOUT TESTS
// =============================================================================

func TestDirectional_ThreeLevelsTopToBottom(t *testing.T) {
	res := Directional(flowABC())
	if len(res.Positions) != 3 {
		t.Fatalf("got %d positions, want 3", len(res.Positions))
	}
	a, b, c := res.Positions["A"], res.Positions["B"], res.Positions["C"]
	// A strictly above B strictly above C; each level holds one node so the
	// cross-axis coordinates agree.
	if !(a.Y < b.Y && b.Y < c.Y) {
		t.Errorf("level order wrong: A=%v B=%v C=%v", a, b, c)
	}
	if a.X != b.X || b.X != c.X {
		t.Errorf("single-node levels must center identically: %v %v %v", a.X, c.X, b.X)
	}
}

func TestDirectional_DirectionVariants(t *testing.T) {
	s := flowABC()

	s.Layout = &spec.FlowLayout{Direction: spec.DirLR}
	res := Directional(s)
	a, c := res.Positions["A"], res.Positions["C"]
	if !(a.X < c.X) {
		t.Errorf("LR must place A left of C: %v %v", a, c)
	}

	s.Layout = &spec.FlowLayout{Direction: spec.DirBT}
	res = Directional(s)
	a, c = res.Positions["A"], res.Positions["C"]
	if !(a.Y > c.Y) {
		t.Errorf("BT must place A below C: %v %v", a, c)
	}

	s.Layout = &spec.FlowLayout{Direction: spec.DirRL}
	res = Directional(s)
	a, c = res.Positions["A"], res.Positions["C"]
	if !(a.X > c.X) {
		t.Errorf("RL must place A right of C: %v %v", a, c)
	}
}

func TestDirectional_Deterministic(t *testing.T) {
	s := flowABC()
	first := Directional(s)
	second := Directional(s)
	if !reflect.DeepEqual(first.Positions, second.Positions) {
		t.Error("layout must be idempotent for identical input")
	}
}

func TestDirectional_NoDuplicateCoordinates(t *testing.T) {
	s := &spec.FlowSpec{
		Nodes: []spec.FlowNode{
			{ID: "a", Shape: spec.FlowOval},
			{ID: "b", Shape: spec.FlowRectangle},
			{ID: "c", Shape: spec.FlowRectangle},
			{ID: "d", Shape: spec.FlowDiamond},
			{ID: "e", Shape: spec.FlowOval},
		},
		Edges: []spec.FlowEdge{
			{From: "a", To: "b"}, {From: "a", To: "c"},
			{From: "b", To: "d"}, {From: "c", To: "d"},
			{From: "d", To: "e"},
		},
	}
	res := Directional(s)
	seen := make(map[Point]string)
	for id, p := range res.Positions {
		if other, dup := seen[p]; dup {
			t.Errorf("nodes %s and %s share position %v", id, other, p)
		}
		seen[p] = id
	}
	if len(res.Positions) != 5 {
		t.Errorf("every node must receive a position, got %d", len(res.Positions))
	}
}

func TestDirectional_CyclicFallsBackToFirstNode(t *testing.T) {
	s := &spec.FlowSpec{
		Nodes: []spec.FlowNode{
			{ID: "x", Shape: spec.FlowRectangle},
			{ID: "y", Shape: spec.FlowRectangle},
		},
		Edges: []spec.FlowEdge{
			{From: "x", To: "y"},
			{From: "y", To: "x"},
		},
	}
	res := Directional(s)
	if len(res.Positions) != 2 {
		t.Fatalf("cycle dropped nodes: %v", res.Positions)
	}
}

func TestDirectional_UnreachableNodesKept(t *testing.T) {
	s := flowABC()
	// Island cycle unreachable from A.
	s.Nodes = append(s.Nodes,
		spec.FlowNode{ID: "p", Shape: spec.FlowRectangle},
		spec.FlowNode{ID: "q", Shape: spec.FlowRectangle})
	s.Edges = append(s.Edges,
		spec.FlowEdge{From: "p", To: "q"},
		spec.FlowEdge{From: "q", To: "p"})
	res := Directional(s)
	if len(res.Positions) != 5 {
		t.Fatalf("unreachable nodes dropped: got %d positions", len(res.Positions))
	}
}

func TestDirectional_DanglingEdgeTolerated(t *testing.T) {
	s := flowABC()
	s.Edges = append(s.Edges, spec.FlowEdge{From: "A", To: "ghost"})
	res := Directional(s)
	if len(res.Positions) != 3 {
		t.Fatalf("dangling edge changed node count: %d", len(res.Positions))
	}
	if _, ok := res.Positions["ghost"]; ok {
		t.Error("undeclared node must not be placed")
	}
}

func TestDirectional_Empty(t *testing.T) {
	res := Directional(&spec.FlowSpec{})
	if len(res.Positions) != 0 {
		t.Fatalf("empty spec produced positions: %v", res.Positions)
	}
	if res.Width <= 0 || res.Height <= 0 {
		t.Error("empty layout must still report a valid canvas")
	}
}

func TestDirectional_OvalSeedPreferred(t *testing.T) {
	// Two sources; the oval one should lead the first level.
	s := &spec.FlowSpec{
		Nodes: []spec.FlowNode{
			{ID: "proc", Shape: spec.FlowRectangle},
			{ID: "start", Shape: spec.FlowOval},
			{ID: "end", Shape: spec.FlowOval},
		},
		Edges: []spec.FlowEdge{
			{From: "proc", To: "end"},
			{From: "start", To: "end"},
		},
	}
	res := Directional(s)
	// Both seeds share level 0; oval-first ordering puts start at the
	// smaller cross coordinate.
	if !(res.Positions["start"].X < res.Positions["proc"].X) {
		t.Errorf("oval seed not preferred: start=%v proc=%v",
			res.Positions["start"], res.Positions["proc"])
	}
}

// =============================================================================
// BALANCED LAYOUT TESTS
// =============================================================================

func diagramStar() *spec.DiagramSpec {
	return &spec.DiagramSpec{
		Nodes: []spec.DiagramNode{
			{ID: "leaf1", Shape: spec.DiagRectangle},
			{ID: "hub", Shape: spec.DiagEllipse},
			{ID: "leaf2", Shape: spec.DiagRectangle},
			{ID: "leaf3", Shape: spec.DiagRectangle},
			{ID: "leaf4", Shape: spec.DiagRectangle},
		},
		Edges: []spec.DiagramEdge{
			{From: "hub", To: "leaf1"},
			{From: "hub", To: "leaf2"},
			{From: "leaf3", To: "hub"}, // undirected: direction must not matter
			{From: "hub", To: "leaf4"},
		},
	}
}

func TestBalanced_HighestDegreeCentered(t *testing.T) {
	res := Balanced(diagramStar())
	if len(res.Positions) != 5 {
		t.Fatalf("got %d positions, want 5", len(res.Positions))
	}
	hub := res.Positions["hub"]
	// Hub must be (near) equidistant from all leaves on the first ring.
	var dists []float64
	for id, p := range res.Positions {
		if id == "hub" {
			continue
		}
		dists = append(dists, math.Hypot(p.X-hub.X, p.Y-hub.Y))
	}
	for _, d := range dists {
		if math.Abs(d-dists[0]) > 1e-9 {
			t.Errorf("ring radius uneven: %v", dists)
		}
	}
}

func TestBalanced_MarginTranslation(t *testing.T) {
	res := Balanced(diagramStar())
	minX, minY := math.Inf(1), math.Inf(1)
	for _, p := range res.Positions {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
	}
	// Minimum node edge must sit at the fixed margin.
	if math.Abs((minX-res.NodeW/2)-40) > 1e-9 {
		t.Errorf("min x edge = %v, want margin 40", minX-res.NodeW/2)
	}
	if math.Abs((minY-res.NodeH/2)-40) > 1e-9 {
		t.Errorf("min y edge = %v, want margin 40", minY-res.NodeH/2)
	}
}

func TestBalanced_Deterministic(t *testing.T) {
	s := diagramStar()
	if !reflect.DeepEqual(Balanced(s).Positions, Balanced(s).Positions) {
		t.Error("balanced layout must be deterministic")
	}
}

func TestBalanced_ManyNodesFillRings(t *testing.T) {
	s := &spec.DiagramSpec{}
	for i := 0; i < 20; i++ {
		s.Nodes = append(s.Nodes, spec.DiagramNode{ID: string(rune('a' + i)), Shape: spec.DiagRectangle})
	}
	res := Balanced(s)
	if len(res.Positions) != 20 {
		t.Fatalf("got %d positions, want 20", len(res.Positions))
	}
	seen := make(map[Point]bool)
	for _, p := range res.Positions {
		if seen[p] {
			t.Fatal("ring placement produced duplicate coordinates")
		}
		seen[p] = true
	}
}

func TestBalanced_Empty(t *testing.T) {
	res := Balanced(&spec.DiagramSpec{})
	if len(res.Positions) != 0 {
		t.Error("empty diagram must produce no positions")
	}
}

// =============================================================================
// SCENE LAYOUT TESTS
// =============================================================================

func TestScene_ExplicitAndDistributed(t *testing.T) {
	s := &spec.SceneSpec{
		Entities: []spec.SceneEntity{
			{ID: "fixed", Position: &spec.Position{X: 25, Y: 50}},
			{ID: "free1"},
			{ID: "free2"},
		},
	}
	res := Scene(s, SceneOptions{PercentSpace: true})
	fixed := res.Positions["fixed"]
	if fixed.X != 0.25*SceneWidth || fixed.Y != 0.5*SceneHeight {
		t.Errorf("percent position wrong: %v", fixed)
	}
	f1, f2 := res.Positions["free1"], res.Positions["free2"]
	if f1.Y != SceneHeight/2 || f2.Y != SceneHeight/2 {
		t.Error("free entities must sit at vertical center")
	}
	if !(f1.X < f2.X) {
		t.Error("free entities must spread left to right")
	}
	if math.Abs((f2.X-f1.X)-SceneWidth/3) > 1e-9 {
		t.Errorf("distribution uneven: %v %v", f1.X, f2.X)
	}
}

func TestScene_PixelSpace(t *testing.T) {
	s := &spec.SceneSpec{
		Entities: []spec.SceneEntity{{ID: "e", Position: &spec.Position{X: 120, Y: 80}}},
	}
	res := Scene(s, SceneOptions{})
	if p := res.Positions["e"]; p.X != 120 || p.Y != 80 {
		t.Errorf("pixel position altered: %v", p)
	}
}

func TestScene_Empty(t *testing.T) {
	res := Scene(&spec.SceneSpec{}, SceneOptions{})
	if len(res.Positions) != 0 || res.Width <= 0 {
		t.Error("empty scene must return a valid empty result")
	}
}

// =============================================================================
// EDGE GEOMETRY TESTS
// =============================================================================

func TestEdgeAnchors_OnBoundary(t *testing.T) {
	from := Point{X: 100, Y: 100}
	to := Point{X: 100, Y: 300}
	exit, entry := EdgeAnchors(from, to, AnchorBox, AnchorBox, NodeWidth, NodeHeight)
	if !OnBoundary(exit, from, NodeWidth, NodeHeight, 1e-9) {
		t.Errorf("exit %v not on source boundary", exit)
	}
	if !OnBoundary(entry, to, NodeWidth, NodeHeight, 1e-9) {
		t.Errorf("entry %v not on target boundary", entry)
	}
	// Vertical travel exits bottom, enters top.
	if exit.Y != from.Y+NodeHeight/2 || entry.Y != to.Y-NodeHeight/2 {
		t.Errorf("vertical anchors wrong: %v %v", exit, entry)
	}
}

func TestEdgeAnchors_DominantAxis(t *testing.T) {
	from := Point{X: 0, Y: 0}
	to := Point{X: 500, Y: 40}
	exit, entry := EdgeAnchors(from, to, AnchorBox, AnchorBox, NodeWidth, NodeHeight)
	// |dx| > |dy|: horizontal exit/entry.
	if exit.X != NodeWidth/2 || exit.Y != 0 {
		t.Errorf("horizontal exit wrong: %v", exit)
	}
	if entry.X != 500-NodeWidth/2 || entry.Y != 40 {
		t.Errorf("horizontal entry wrong: %v", entry)
	}
}

func TestEdgeAnchors_DiamondFraction(t *testing.T) {
	from := Point{X: 0, Y: 0}
	to := Point{X: 400, Y: 0}
	exit, _ := EdgeAnchors(from, to, AnchorDiamond, AnchorBox, NodeWidth, NodeHeight)
	// Diamond exits inside the bounding box extremity, at the 20% inset.
	want := NodeWidth * (0.5 - 0.2)
	if math.Abs(exit.X-want) > 1e-9 {
		t.Errorf("diamond exit x = %v, want %v", exit.X, want)
	}
}

func TestBezierControls(t *testing.T) {
	start := Point{X: 0, Y: 0}
	end := Point{X: 10, Y: 20}
	c1, c2 := BezierControl(start, end)
	if c1 != c2 || c1.X != 5 || c1.Y != 10 {
		t.Errorf("bezier controls wrong: %v %v", c1, c2)
	}

	b1, _ := BowedControl(start, Point{X: 10, Y: 0}, 15)
	if b1.Y == 0 {
		t.Error("bowed control must leave the chord")
	}
	z1, z2 := BowedControl(start, start, 15)
	if z1 != z2 || z1 != start {
		t.Error("degenerate bow must collapse to the point")
	}
}
