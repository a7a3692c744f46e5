// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"github.com/jeranaias/chalkviz/internal/markdown"
	"github.com/jeranaias/chalkviz/internal/mathexpr"
	"github.com/jeranaias/chalkviz/internal/plotly"
	"github.com/jeranaias/chalkviz/internal/svg"
)

// =============================================================================
// BLOCK RENDERING
// =============================================================================

// RenderedBlock pairs an extracted block with its renderable forms. SVG is
// set for every block kind the vector renderer can draw (flow, diagram,
// scene, 2D graphs). Figure is set for every graph that compiled; for 3D
// graph types it is the only renderable form. Err carries the first failure
// in the extract-decode-compile chain; a block with a non-empty Err has no
// renderable forms.
type RenderedBlock struct {
	Block  markdown.Block
	SVG    string
	Figure *plotly.Figure
	Err    string
}

// OK reports whether the block produced at least one renderable form.
func (r *RenderedBlock) OK() bool { return r.Err == "" }

// RenderBlock renders a single extracted block. Math blocks pass through
// untouched (typesetting happens client-side); decode and compile failures
// are carried in Err rather than returned so a document with one bad block
// still renders the rest.
func RenderBlock(b markdown.Block, opts svg.Options) RenderedBlock {
	rb := RenderedBlock{Block: b}
	if b.Err != "" {
		rb.Err = b.Err
		return rb
	}

	switch b.Kind {
	case markdown.KindFlow:
		rb.SVG = svg.RenderFlow(b.Flow, opts)
	case markdown.KindDiagram:
		rb.SVG = svg.RenderDiagram(b.Diagram, opts)
	case markdown.KindScene:
		rb.SVG = svg.RenderScene(b.Scene, opts)
	case markdown.KindGraph:
		res, err := mathexpr.CompileGraph(b.Graph)
		if err != nil {
			rb.Err = err.Error()
			return rb
		}
		rb.Figure = plotly.FromResult(res)
		if !res.Is3D() {
			rb.SVG = svg.RenderGraph2D(res, opts)
		}
	case markdown.KindMath:
		// Nothing to pre-render; Raw keeps its delimiters for the client.
	}
	return rb
}

// RenderBlocks extracts and renders every block in a source document.
func RenderBlocks(src string, opts svg.Options) []RenderedBlock {
	blocks := markdown.Extract(src)
	out := make([]RenderedBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, RenderBlock(b, opts))
	}
	return out
}
