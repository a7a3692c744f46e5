// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"sort"

	"github.com/jeranaias/chalkviz/internal/spec"
)

// =============================================================================
// DIRECTIONAL (FLOW) LAYOUT
// =============================================================================
//
// Control-flow diagrams read in a direction: nodes are assigned to levels by
// a BFS from the source nodes (topological leveling), then levels stack
// along the main axis while nodes within a level center on the cross axis.

// Directional computes the leveled layout for a flow chart.
func Directional(s *spec.FlowSpec) Result {
	if len(s.Nodes) == 0 {
		return emptyResult()
	}
	dir := s.Direction()

	index := make(map[string]int, len(s.Nodes))
	for i, n := range s.Nodes {
		index[n.ID] = i
	}

	// Adjacency and in-degree over declared nodes only; dangling edge
	// references are tolerated by skipping them here.
	adj := make(map[string][]string, len(s.Nodes))
	indeg := make(map[string]int, len(s.Nodes))
	for _, n := range s.Nodes {
		indeg[n.ID] = 0
	}
	for _, e := range s.Edges {
		if _, ok := index[e.From]; !ok {
			continue
		}
		if _, ok := index[e.To]; !ok {
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
		indeg[e.To]++
	}

	levels := levelize(s, adj, indeg, index)

	if dir.Reversed() {
		for i, j := 0, len(levels)-1; i < j; i, j = i+1, j-1 {
			levels[i], levels[j] = levels[j], levels[i]
		}
	}

	res := Result{
		Positions: make(map[string]Point, len(s.Nodes)),
		NodeW:     NodeWidth,
		NodeH:     NodeHeight,
	}

	// Cross-axis extent is set by the widest level so every level can
	// center against it.
	maxLevel := 0
	for _, lv := range levels {
		if len(lv) > maxLevel {
			maxLevel = len(lv)
		}
	}
	crossExtent := float64(maxLevel-1) * nodeSpacing

	for li, lv := range levels {
		main := margin + NodeHeight/2 + float64(li)*levelSpacing
		offset := (crossExtent - float64(len(lv)-1)*nodeSpacing) / 2
		for ni, id := range lv {
			cross := margin + NodeWidth/2 + offset + float64(ni)*nodeSpacing
			if dir.Horizontal() {
				res.Positions[id] = Point{X: main, Y: cross}
			} else {
				res.Positions[id] = Point{X: cross, Y: main}
			}
		}
	}
	finalize(&res)
	return res
}

// levelize performs the BFS leveling. Seeds are all in-degree-zero nodes,
// oval-shaped ones first (tie-break by shape, not by id or declaration
// order); a cyclic spec with no natural source falls back to the first
// node. Nodes unreachable from any seed are appended to the last level so
// no node is ever dropped.
func levelize(s *spec.FlowSpec, adj map[string][]string, indeg map[string]int, index map[string]int) [][]string {
	var seeds []string
	for _, n := range s.Nodes {
		if indeg[n.ID] == 0 {
			seeds = append(seeds, n.ID)
		}
	}
	if len(seeds) == 0 {
		seeds = []string{s.Nodes[0].ID}
	}
	sort.SliceStable(seeds, func(i, j int) bool {
		oi := s.Nodes[index[seeds[i]]].Shape == spec.FlowOval
		oj := s.Nodes[index[seeds[j]]].Shape == spec.FlowOval
		return oi && !oj
	})

	visited := make(map[string]bool, len(s.Nodes))
	frontier := seeds
	for _, id := range frontier {
		visited[id] = true
	}

	var levels [][]string
	for len(frontier) > 0 {
		levels = append(levels, frontier)
		var next []string
		for _, id := range frontier {
			for _, to := range adj[id] {
				if visited[to] {
					continue
				}
				visited[to] = true
				next = append(next, to)
			}
		}
		frontier = next
	}

	// Fallback level for nodes cut off from every seed (cycles reachable
	// only from inside themselves).
	var orphans []string
	for _, n := range s.Nodes {
		if !visited[n.ID] {
			orphans = append(orphans, n.ID)
		}
	}
	if len(orphans) > 0 {
		levels[len(levels)-1] = append(levels[len(levels)-1], orphans...)
	}
	return levels
}
