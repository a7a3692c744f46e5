// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"github.com/jeranaias/chalkviz/internal/spec"
)

// =============================================================================
// SCENE LAYOUT
// =============================================================================
//
// Scene entities describe a narrated spatial arrangement the payload author
// controls, so this engine is intentionally simpler than the graph layouts:
// explicit positions are honored, everything else is spread evenly on one
// horizontal line at vertical center.

// Scene canvas defaults. Explicit positions arrive in percent space and are
// scaled onto the canvas; the thumbnail uses the fixed pixel canvas as-is.
const (
	SceneWidth  = 800.0
	SceneHeight = 400.0
	sceneNodeW  = 90.0
	sceneNodeH  = 70.0
)

// SceneOptions controls position interpretation.
type SceneOptions struct {
	// Width and Height override the canvas size; zero keeps defaults.
	Width  float64
	Height float64
	// PercentSpace scales explicit positions from 0-100 space onto the
	// canvas (used by the full-detail preview); false places them as raw
	// pixels (thumbnail).
	PercentSpace bool
}

// Scene computes entity positions for a scene spec.
func Scene(s *spec.SceneSpec, opts SceneOptions) Result {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = SceneWidth
	}
	if h <= 0 {
		h = SceneHeight
	}
	if s.View != nil {
		if s.View.Width > 0 {
			w = s.View.Width
		}
		if s.View.Height > 0 {
			h = s.View.Height
		}
	}

	res := Result{
		Positions: make(map[string]Point, len(s.Entities)),
		NodeW:     sceneNodeW,
		NodeH:     sceneNodeH,
		Width:     w,
		Height:    h,
	}
	if len(s.Entities) == 0 {
		return res
	}

	// Split placement: explicit positions first, then distribute the rest.
	var free []string
	for _, e := range s.Entities {
		if e.Position == nil {
			free = append(free, e.ID)
			continue
		}
		p := Point{X: e.Position.X, Y: e.Position.Y}
		if opts.PercentSpace {
			p.X = p.X / 100 * w
			p.Y = p.Y / 100 * h
		}
		res.Positions[e.ID] = p
	}

	// Even horizontal distribution at vertical center for the rest.
	step := w / float64(len(free)+1)
	for i, id := range free {
		res.Positions[id] = Point{X: step * float64(i+1), Y: h / 2}
	}
	return res
}
