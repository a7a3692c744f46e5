// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout assigns 2D coordinates to diagram nodes. All engines are
// deterministic pure functions: the same spec always produces the same
// position map, and every node id in the input receives exactly one
// position. Diagrams use uniform node sizing, not measured-text sizing.
package layout

// Point is a 2D coordinate in SVG user units.
type Point struct {
	X float64
	Y float64
}

// Result is the computed layout for one diagram.
type Result struct {
	// Positions maps node id to the node's center point.
	Positions map[string]Point
	// NodeW and NodeH are the uniform node dimensions.
	NodeW float64
	NodeH float64
	// Width and Height bound the drawing including margins.
	Width  float64
	Height float64
}

// Uniform node sizing and spacing shared by the graph layouts.
const (
	NodeWidth  = 120.0
	NodeHeight = 50.0

	levelSpacing = 110.0 // distance between consecutive levels
	nodeSpacing  = 160.0 // distance between node centers within a level
	margin       = 40.0
)

// emptyResult is what every engine returns for zero nodes: an empty map and
// a minimal canvas, never nil and never a panic.
func emptyResult() Result {
	return Result{
		Positions: map[string]Point{},
		NodeW:     NodeWidth,
		NodeH:     NodeHeight,
		Width:     2 * margin,
		Height:    2 * margin,
	}
}

// finalize computes the bounding canvas from the placed positions.
func finalize(r *Result) {
	if len(r.Positions) == 0 {
		r.Width = 2 * margin
		r.Height = 2 * margin
		return
	}
	var maxX, maxY float64
	for _, p := range r.Positions {
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	r.Width = maxX + r.NodeW/2 + margin
	r.Height = maxY + r.NodeH/2 + margin
}
