// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"math"
	"sort"

	"github.com/jeranaias/chalkviz/internal/spec"
)

// =============================================================================
// BALANCED (RING) LAYOUT
// =============================================================================
//
// Structural diagrams have no reading direction; edges are treated as
// bidirectional connectivity. The most-connected node sits at a fixed
// center and the rest fill expanding concentric rings, denser inside and
// sparser outside. This approximates force-directed clustering cheaply,
// without iterative physics; overlap-free placement is best-effort, not
// guaranteed, for dense graphs.

const (
	ringMinimum    = 6     // smallest ring capacity
	ringGrowth     = 6     // capacity added per ring index
	ringSpacing    = 170.0 // radial distance between rings
	balancedCenter = 400.0 // nominal center before translation
)

// Balanced computes the ring layout for a structural diagram.
func Balanced(s *spec.DiagramSpec) Result {
	if len(s.Nodes) == 0 {
		return emptyResult()
	}

	ids := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		ids[n.ID] = true
	}

	// Total degree with edges counted both ways.
	degree := make(map[string]int, len(s.Nodes))
	for _, e := range s.Edges {
		if !ids[e.From] || !ids[e.To] {
			continue
		}
		degree[e.From]++
		degree[e.To]++
	}

	// Rank by degree, most-connected first; declaration order breaks ties
	// so the layout is deterministic.
	order := make([]int, len(s.Nodes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return degree[s.Nodes[order[a]].ID] > degree[s.Nodes[order[b]].ID]
	})

	res := Result{
		Positions: make(map[string]Point, len(s.Nodes)),
		NodeW:     NodeWidth,
		NodeH:     NodeHeight,
	}

	res.Positions[s.Nodes[order[0]].ID] = Point{X: balancedCenter, Y: balancedCenter}

	remaining := order[1:]
	ring := 1
	for len(remaining) > 0 {
		capacity := ringMinimum
		if c := ring * ringGrowth; c > capacity {
			capacity = c
		}
		count := capacity
		if len(remaining) < count {
			count = len(remaining)
		}
		radius := float64(ring) * ringSpacing
		for i := 0; i < count; i++ {
			angle := 2 * math.Pi * float64(i) / float64(count)
			id := s.Nodes[remaining[i]].ID
			res.Positions[id] = Point{
				X: balancedCenter + radius*math.Cos(angle),
				Y: balancedCenter + radius*math.Sin(angle),
			}
		}
		remaining = remaining[count:]
		ring++
	}

	translateToMargin(&res)
	finalize(&res)
	return res
}

// translateToMargin shifts every position so the minimum x/y sits a fixed
// margin from the origin.
func translateToMargin(res *Result) {
	minX, minY := math.Inf(1), math.Inf(1)
	for _, p := range res.Positions {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
	}
	dx := margin + res.NodeW/2 - minX
	dy := margin + res.NodeH/2 - minY
	for id, p := range res.Positions {
		res.Positions[id] = Point{X: p.X + dx, Y: p.Y + dy}
	}
}
