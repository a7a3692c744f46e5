// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import "math"

// =============================================================================
// EDGE GEOMETRY
// =============================================================================
//
// Edges leave and enter nodes at anchor points on the node boundary. The
// dominant axis of travel decides whether the edge exits sideways or
// vertically; diamond silhouettes use different anchor fractions than boxes
// because a midpoint anchor on a diamond's bounding box floats in space.

// AnchorShape selects the anchor geometry of a node silhouette.
type AnchorShape int

const (
	AnchorBox AnchorShape = iota
	AnchorDiamond
)

// diamondAnchorFraction is where along the width a diamond's side anchor
// sits (and mirrored at 1 minus the fraction).
const diamondAnchorFraction = 0.2

// EdgeAnchors returns the exit point on the source boundary and the entry
// point on the target boundary for an edge between two node centers.
func EdgeAnchors(from, to Point, fromShape, toShape AnchorShape, nodeW, nodeH float64) (Point, Point) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	horizontal := math.Abs(dx) > math.Abs(dy)

	exit := anchorPoint(from, fromShape, nodeW, nodeH, horizontal, dx, dy, true)
	entry := anchorPoint(to, toShape, nodeW, nodeH, horizontal, dx, dy, false)
	return exit, entry
}

// anchorPoint computes one boundary anchor. leaving selects the side facing
// the travel direction (source exits forward, target receives backward).
func anchorPoint(center Point, shape AnchorShape, nodeW, nodeH float64, horizontal bool, dx, dy float64, leaving bool) Point {
	sign := 1.0
	if horizontal {
		if (dx < 0) == leaving {
			sign = -1
		}
		x := center.X + sign*nodeW/2
		y := center.Y
		if shape == AnchorDiamond {
			// A diamond's horizontal extremity is a single vertex; anchor
			// slightly inside so the edge meets the sloped side.
			x = center.X + sign*nodeW*(0.5-diamondAnchorFraction)
		}
		return Point{X: x, Y: y}
	}
	if (dy < 0) == leaving {
		sign = -1
	}
	x := center.X
	y := center.Y + sign*nodeH/2
	if shape == AnchorDiamond {
		y = center.Y + sign*nodeH*(0.5-diamondAnchorFraction)
	}
	return Point{X: x, Y: y}
}

// BezierControl returns the control points of the single cubic Bezier used
// for flow edges: both controls sit at the midpoint, giving consistent
// curvature regardless of direction.
func BezierControl(start, end Point) (Point, Point) {
	mid := Point{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}
	return mid, mid
}

// BowedControl returns Bezier control points offset perpendicular to the
// chord, producing the gentle bow that distinguishes relationship edges
// from control-flow edges.
func BowedControl(start, end Point, amount float64) (Point, Point) {
	mid := Point{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}
	dx := end.X - start.X
	dy := end.Y - start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return mid, mid
	}
	// Unit perpendicular.
	px := -dy / length
	py := dx / length
	bow := Point{X: mid.X + px*amount, Y: mid.Y + py*amount}
	return bow, bow
}

// OnBoundary reports whether p lies on the bounding box of a node centered
// at c (within tolerance). Used by tests to assert anchors never start
// inside a node or float outside a generous margin.
func OnBoundary(p, c Point, nodeW, nodeH, tol float64) bool {
	left := c.X - nodeW/2
	right := c.X + nodeW/2
	top := c.Y - nodeH/2
	bottom := c.Y + nodeH/2

	within := func(v, lo, hi float64) bool { return v >= lo-tol && v <= hi+tol }
	onVertical := (math.Abs(p.X-left) <= tol || math.Abs(p.X-right) <= tol) && within(p.Y, top, bottom)
	onHorizontal := (math.Abs(p.Y-top) <= tol || math.Abs(p.Y-bottom) <= tol) && within(p.X, left, right)
	return onVertical || onHorizontal
}
