// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/chalkviz/internal/layout"
	"github.com/jeranaias/chalkviz/internal/markdown"
	"github.com/jeranaias/chalkviz/internal/mathexpr"
	"github.com/jeranaias/chalkviz/internal/spec"
	"github.com/jeranaias/chalkviz/internal/util"
)

// =============================================================================
// RUNE GRID CANVAS
// =============================================================================
//
// The terminal cannot show the SVG output, so the preview projects the same
// layout results onto a rune grid: box-drawing node outlines, dotted edge
// lines, and runewidth-aware labels. Zoom scales the projection, which makes
// node boxes wider and thereby grows the label budget - the terminal analog
// of the SVG renderer's inverse-zoom text scaling.

// Pixel-to-cell scale at zoom 1.0. Terminal cells are roughly twice as tall
// as they are wide, so the vertical divisor is about double the horizontal.
const (
	cellPxX = 10.0
	cellPxY = 19.0
)

// canvas is a fixed-size rune grid.
type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	cells := make([][]rune, h)
	for i := range cells {
		row := make([]rune, w)
		for j := range row {
			row[j] = ' '
		}
		cells[i] = row
	}
	return &canvas{w: w, h: h, cells: cells}
}

// set places one rune, ignoring out-of-bounds coordinates so panning can
// push content off the edge without bounds checks at every call site.
func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

// text writes a string left-to-right, skipping the continuation cell of
// double-width runes.
func (c *canvas) text(x, y int, s string) {
	for _, r := range s {
		c.set(x, y, r)
		x += runewidth.RuneWidth(r)
	}
}

// box draws a box-drawing rectangle with a truncated, centered label.
func (c *canvas) box(x, y, w, h int, label string) {
	if w < 2 || h < 2 {
		c.set(x, y, '+')
		return
	}
	c.set(x, y, '┌')
	c.set(x+w-1, y, '┐')
	c.set(x, y+h-1, '└')
	c.set(x+w-1, y+h-1, '┘')
	for i := 1; i < w-1; i++ {
		c.set(x+i, y, '─')
		c.set(x+i, y+h-1, '─')
	}
	for j := 1; j < h-1; j++ {
		c.set(x, y+j, '│')
		c.set(x+w-1, y+j, '│')
	}

	budget := w - 2
	if budget < 1 {
		return
	}
	name := util.TruncateWidth(label, budget)
	lx := x + 1 + (budget-runewidth.StringWidth(name))/2
	c.text(lx, y+h/2, name)
}

// line draws a dotted Bresenham line.
func (c *canvas) line(x0, y0, x1, y1 int, r rune) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(x0, y0, r)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the grid with trailing spaces trimmed per row.
func (c *canvas) String() string {
	rows := make([]string, c.h)
	for i, row := range c.cells {
		rows[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(rows, "\n")
}

// =============================================================================
// PROJECTION
// =============================================================================

// projection maps layout pixel coordinates onto grid cells.
type projection struct {
	zoom       float64
	panX, panY int
}

func (p projection) cellX(px float64) int {
	return int(math.Round(px*p.zoom/cellPxX)) + p.panX
}

func (p projection) cellY(px float64) int {
	return int(math.Round(px*p.zoom/cellPxY)) + p.panY
}

// nodeCells returns the cell rectangle of a node centered at pt.
func (p projection) nodeCells(pt layout.Point, nodeW, nodeH float64) (x, y, w, h int) {
	x0 := p.cellX(pt.X - nodeW/2)
	y0 := p.cellY(pt.Y - nodeH/2)
	x1 := p.cellX(pt.X + nodeW/2)
	y1 := p.cellY(pt.Y + nodeH/2)
	w = x1 - x0 + 1
	h = y1 - y0 + 1
	if h < 3 {
		h = 3
	}
	return x0, y0, w, h
}

// =============================================================================
// BLOCK CANVASES
// =============================================================================

// renderBlockCanvas projects one block onto a rune grid of the given cell
// size. Malformed blocks are not handled here; the model shows an ErrorBox
// for those instead.
func renderBlockCanvas(b markdown.Block, w, h int, proj projection) string {
	switch b.Kind {
	case markdown.KindFlow:
		return flowCanvas(b.Flow, w, h, proj)
	case markdown.KindDiagram:
		return diagramCanvas(b.Diagram, w, h, proj)
	case markdown.KindScene:
		return sceneCanvas(b.Scene, w, h, proj)
	case markdown.KindGraph:
		return graphCanvas(b.Graph, w, h, proj)
	case markdown.KindMath:
		return mathCanvas(b, w, h)
	}
	return ""
}

func flowCanvas(s *spec.FlowSpec, w, h int, proj projection) string {
	res := layout.Directional(s)
	c := newCanvas(w, h)
	drawGraphEdges(c, proj, res, edgeList(len(s.Edges), func(i int) (string, string) {
		return s.Edges[i].From, s.Edges[i].To
	}))
	for _, n := range s.Nodes {
		pt, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		x, y, bw, bh := proj.nodeCells(pt, res.NodeW, res.NodeH)
		c.box(x, y, bw, bh, n.Label)
	}
	return c.String()
}

func diagramCanvas(s *spec.DiagramSpec, w, h int, proj projection) string {
	res := layout.Balanced(s)
	c := newCanvas(w, h)
	drawGraphEdges(c, proj, res, edgeList(len(s.Edges), func(i int) (string, string) {
		return s.Edges[i].From, s.Edges[i].To
	}))
	for _, n := range s.Nodes {
		pt, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		x, y, bw, bh := proj.nodeCells(pt, res.NodeW, res.NodeH)
		c.box(x, y, bw, bh, n.Label)
	}
	return c.String()
}

func sceneCanvas(s *spec.SceneSpec, w, h int, proj projection) string {
	res := layout.Scene(s, layout.SceneOptions{PercentSpace: true})
	c := newCanvas(w, h)

	// Relations first so entity boxes draw over the connecting lines.
	for _, rel := range s.Relations {
		from, okF := res.Positions[rel.From]
		to, okT := res.Positions[rel.To]
		if !okF || !okT {
			continue
		}
		c.line(proj.cellX(from.X), proj.cellY(from.Y), proj.cellX(to.X), proj.cellY(to.Y), '·')
		if rel.Value != "" {
			mx := proj.cellX((from.X + to.X) / 2)
			my := proj.cellY((from.Y + to.Y) / 2)
			c.text(mx, my, rel.Value)
		}
	}
	for _, e := range s.Entities {
		pt, ok := res.Positions[e.ID]
		if !ok {
			continue
		}
		x, y, bw, bh := proj.nodeCells(pt, res.NodeW, res.NodeH)
		c.box(x, y, bw, bh, e.Label)
	}
	return c.String()
}

// edgePair is one from-to reference used by the shared edge drawer.
type edgePair struct{ from, to string }

func edgeList(n int, at func(int) (string, string)) []edgePair {
	pairs := make([]edgePair, 0, n)
	for i := 0; i < n; i++ {
		from, to := at(i)
		pairs = append(pairs, edgePair{from, to})
	}
	return pairs
}

// drawGraphEdges draws dotted lines between node centers. Dangling refs are
// skipped, same as the SVG renderers.
func drawGraphEdges(c *canvas, proj projection, res layout.Result, edges []edgePair) {
	for _, e := range edges {
		from, okF := res.Positions[e.from]
		to, okT := res.Positions[e.to]
		if !okF || !okT {
			continue
		}
		c.line(proj.cellX(from.X), proj.cellY(from.Y), proj.cellX(to.X), proj.cellY(to.Y), '·')
	}
}

// =============================================================================
// GRAPH CANVAS
// =============================================================================

// graphCanvas plots compiled 2D series as an ASCII chart. 3D graph types
// have no terminal projection and render a pointer to the HTML export
// instead.
func graphCanvas(g *spec.GraphSpec, w, h int, proj projection) string {
	res, err := mathexpr.CompileGraph(g)
	if err != nil {
		// The model pre-checks compilation; this is a safety net.
		return err.Error()
	}
	if res.Is3D() {
		c := newCanvas(w, h)
		c.text(2, h/2-1, "3D figure - no terminal projection.")
		c.text(2, h/2, "Use the HTML export to view it interactively.")
		return c.String()
	}

	c := newCanvas(w, h)
	minX, maxX, minY, maxY, ok := seriesBounds(res)
	if !ok {
		c.text(2, h/2, "no finite samples")
		return c.String()
	}

	// Plot area inside a one-cell frame, shifted by pan and scaled by zoom
	// around the data box.
	plotW := float64(w-2) * proj.zoom
	plotH := float64(h-2) * proj.zoom
	toCell := func(x, y float64) (int, int) {
		cx := 1 + int((x-minX)/(maxX-minX)*(plotW-1)) + proj.panX
		cy := 1 + int((maxY-y)/(maxY-minY)*(plotH-1)) + proj.panY
		return cx, cy
	}

	for _, layer := range res.Layers {
		switch layer.Type {
		case spec.GraphPhasePlane:
			if layer.Field != nil {
				drawField(c, layer.Field, toCell)
			}
		default:
			mark := '*'
			if layer.Type == spec.GraphScatter2D || layer.Type == spec.GraphMultiScatter {
				mark = 'o'
			}
			for _, s2 := range layer.Series2 {
				for i := range s2.Xs {
					if math.IsNaN(s2.Ys[i]) || math.IsInf(s2.Ys[i], 0) {
						continue
					}
					cx, cy := toCell(s2.Xs[i], s2.Ys[i])
					c.set(cx, cy, mark)
				}
			}
		}
	}

	// Zero axes when the origin is inside the data box.
	if minX < 0 && maxX > 0 {
		x0, _ := toCell(0, minY)
		c.line(x0, 1, x0, h-2, '|')
	}
	if minY < 0 && maxY > 0 {
		_, y0 := toCell(minX, 0)
		c.line(1, y0, w-2, y0, '-')
	}
	return c.String()
}

// drawField places one direction glyph per sampled vector.
func drawField(c *canvas, f *mathexpr.VectorField, toCell func(x, y float64) (int, int)) {
	for yi := range f.Ys {
		for xi := range f.Xs {
			u, v := f.U[yi][xi], f.V[yi][xi]
			if u == 0 && v == 0 {
				continue
			}
			cx, cy := toCell(f.Xs[xi], f.Ys[yi])
			c.set(cx, cy, dirGlyph(u, v))
		}
	}
}

// dirGlyph maps a vector to the closest of four arrow characters. The
// screen y axis points down, so a positive v points up.
func dirGlyph(u, v float64) rune {
	if math.Abs(u) >= math.Abs(v) {
		if u > 0 {
			return '>'
		}
		return '<'
	}
	if v > 0 {
		return '^'
	}
	return 'v'
}

// seriesBounds is the finite bounding box over every 2D layer.
func seriesBounds(res *mathexpr.Result) (minX, maxX, minY, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	add := func(x, y float64) {
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			return
		}
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
		ok = true
	}
	for _, layer := range res.Layers {
		for _, s2 := range layer.Series2 {
			for i := range s2.Xs {
				add(s2.Xs[i], s2.Ys[i])
			}
		}
		if layer.Field != nil {
			for _, x := range layer.Field.Xs {
				for _, y := range layer.Field.Ys {
					add(x, y)
				}
			}
		}
	}
	if !ok {
		return 0, 0, 0, 0, false
	}
	// Degenerate spans get a unit pad so division is safe.
	if minX == maxX {
		minX, maxX = minX-1, maxX+1
	}
	if minY == maxY {
		minY, maxY = minY-1, maxY+1
	}
	return minX, maxX, minY, maxY, true
}

// =============================================================================
// MATH CANVAS
// =============================================================================

// mathCanvas centers the raw LaTeX body. The terminal does not typeset; the
// HTML export does.
func mathCanvas(b markdown.Block, w, h int) string {
	c := newCanvas(w, h)
	lines := strings.Split(strings.TrimSpace(b.Payload), "\n")
	y := h/2 - len(lines)/2
	for i, line := range lines {
		line = strings.TrimSpace(line)
		x := (w - runewidth.StringWidth(line)) / 2
		if x < 0 {
			x = 0
		}
		c.text(x, y+i, line)
	}
	return c.String()
}
