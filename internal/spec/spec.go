// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package spec defines the rich-content payload types embedded in tutoring
// chat messages: flow charts, structural diagrams, spatial scenes, and math
// graphs. Payloads arrive as JSON blocks inside Markdown; decoding is
// deliberately tolerant because the upstream generator's output is not fully
// controlled.
package spec

// =============================================================================
// SHAPE AND STYLE ENUMS
// =============================================================================

// FlowShape is the node shape vocabulary for flow charts.
// Shape carries grammatical meaning (start/end, process, decision), so color
// is keyed on shape, never on label content.
type FlowShape string

const (
	FlowOval      FlowShape = "oval"
	FlowRectangle FlowShape = "rectangle"
	FlowDiamond   FlowShape = "diamond"
)

// Normalize maps unknown values to the default process shape.
func (s FlowShape) Normalize() FlowShape {
	switch s {
	case FlowOval, FlowRectangle, FlowDiamond:
		return s
	default:
		return FlowRectangle
	}
}

// DiagramShape is the node shape vocabulary for structural diagrams.
type DiagramShape string

const (
	DiagRectangle        DiagramShape = "rectangle"
	DiagRoundedRectangle DiagramShape = "rounded_rectangle"
	DiagDiamond          DiagramShape = "diamond"
	DiagEllipse          DiagramShape = "ellipse"
)

// Normalize maps unknown values to the default rectangle shape.
func (s DiagramShape) Normalize() DiagramShape {
	switch s {
	case DiagRectangle, DiagRoundedRectangle, DiagDiamond, DiagEllipse:
		return s
	default:
		return DiagRectangle
	}
}

// EdgeStyle is the stroke pattern for diagram relationship edges.
type EdgeStyle string

const (
	EdgeSolid  EdgeStyle = "solid"
	EdgeDashed EdgeStyle = "dashed"
	EdgeDotted EdgeStyle = "dotted"
)

// Normalize maps unknown values to solid.
func (s EdgeStyle) Normalize() EdgeStyle {
	switch s {
	case EdgeSolid, EdgeDashed, EdgeDotted:
		return s
	default:
		return EdgeSolid
	}
}

// Direction is the reading direction of a flow layout.
type Direction string

const (
	DirTB Direction = "TB" // top to bottom (default)
	DirLR Direction = "LR" // left to right
	DirBT Direction = "BT" // bottom to top
	DirRL Direction = "RL" // right to left
)

// Normalize maps unknown values to top-to-bottom.
func (d Direction) Normalize() Direction {
	switch d {
	case DirTB, DirLR, DirBT, DirRL:
		return d
	default:
		return DirTB
	}
}

// Horizontal reports whether levels stack along the x axis.
func (d Direction) Horizontal() bool {
	return d == DirLR || d == DirRL
}

// Reversed reports whether the level sequence is flipped so the flow still
// reads in its natural direction.
func (d Direction) Reversed() bool {
	return d == DirBT || d == DirRL
}

// =============================================================================
// FLOW SPEC
// =============================================================================

// FlowNode is one node of a flow chart.
type FlowNode struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Shape FlowShape `json:"shape"`
}

// FlowEdge is a directed control-flow edge. From/To should reference node
// IDs; dangling references are skipped at render time, never fatal.
type FlowEdge struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Label     string `json:"label,omitempty"`
	Condition string `json:"condition,omitempty"`
}

// FlowLayout carries optional layout hints.
type FlowLayout struct {
	Direction Direction `json:"direction,omitempty"`
}

// FlowSpec describes a directional flow chart.
type FlowSpec struct {
	Nodes  []FlowNode  `json:"nodes"`
	Edges  []FlowEdge  `json:"edges"`
	Layout *FlowLayout `json:"layout,omitempty"`
}

// Direction returns the normalized layout direction.
func (s *FlowSpec) Direction() Direction {
	if s.Layout == nil {
		return DirTB
	}
	return s.Layout.Direction.Normalize()
}

// =============================================================================
// DIAGRAM SPEC
// =============================================================================

// DiagramNode is one node of a structural diagram.
type DiagramNode struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Shape DiagramShape `json:"shape"`
}

// DiagramEdge is an undirected structural relationship, not control flow.
type DiagramEdge struct {
	From  string    `json:"from"`
	To    string    `json:"to"`
	Label string    `json:"label,omitempty"`
	Style EdgeStyle `json:"style,omitempty"`
}

// DiagramSpec describes a non-directional structural diagram.
type DiagramSpec struct {
	Nodes []DiagramNode `json:"nodes"`
	Edges []DiagramEdge `json:"edges"`
}

// =============================================================================
// SCENE SPEC
// =============================================================================

// RelationType classifies a scene relation; the relevant fields of
// SceneRelation depend on it.
type RelationType string

const (
	RelDistance   RelationType = "distance"
	RelMotion     RelationType = "motion"
	RelAngle      RelationType = "angle"
	RelForce      RelationType = "force"
	RelConnection RelationType = "connection"
)

// AnnotationType classifies a scene annotation.
type AnnotationType string

const (
	AnnValue   AnnotationType = "value"
	AnnLabel   AnnotationType = "label"
	AnnFormula AnnotationType = "formula"
)

// AnnotationSide is the side of the target entity an annotation attaches to.
type AnnotationSide string

const (
	SideTop    AnnotationSide = "top"
	SideBottom AnnotationSide = "bottom"
	SideLeft   AnnotationSide = "left"
	SideRight  AnnotationSide = "right"
)

// Normalize maps unknown values to top.
func (s AnnotationSide) Normalize() AnnotationSide {
	switch s {
	case SideTop, SideBottom, SideLeft, SideRight:
		return s
	default:
		return SideTop
	}
}

// Appearance controls how a scene entity is drawn.
type Appearance struct {
	Type  string `json:"type,omitempty"` // "svg", "icon", "shape"
	Shape string `json:"shape,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
	SVG   string `json:"svg,omitempty"`
}

// Position is an author-supplied 2D coordinate in percent space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SceneEntity is one object in a narrated spatial arrangement.
// Position is optional; absence triggers even horizontal distribution.
type SceneEntity struct {
	ID         string      `json:"id"`
	Kind       string      `json:"kind"`
	Label      string      `json:"label"`
	Appearance *Appearance `json:"appearance,omitempty"`
	Position   *Position   `json:"position,omitempty"`
}

// SceneRelation describes a physical relationship between entities.
// Which fields matter depends on Type: distance needs From/To/Value, motion
// needs Entity/Direction, and so on.
type SceneRelation struct {
	Type      RelationType `json:"type"`
	From      string       `json:"from,omitempty"`
	To        string       `json:"to,omitempty"`
	Entity    string       `json:"entity,omitempty"`
	Value     string       `json:"value,omitempty"`
	Direction string       `json:"direction,omitempty"`
	Label     string       `json:"label,omitempty"`
}

// SceneAnnotation is a text callout attached to an entity.
type SceneAnnotation struct {
	Type     AnnotationType `json:"type"`
	Text     string         `json:"text"`
	AttachTo string         `json:"attachTo"`
	Position AnnotationSide `json:"position,omitempty"`
	Offset   *Position      `json:"offset,omitempty"`
}

// SceneView carries optional viewport hints.
type SceneView struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// SceneSpec describes a spatial scene (e.g. a physics setup).
type SceneSpec struct {
	Entities    []SceneEntity     `json:"entities"`
	Relations   []SceneRelation   `json:"relations,omitempty"`
	Annotations []SceneAnnotation `json:"annotations,omitempty"`
	View        *SceneView        `json:"view,omitempty"`
	Background  string            `json:"background,omitempty"`
}

// Entity returns the entity with the given ID, or nil.
func (s *SceneSpec) Entity(id string) *SceneEntity {
	for i := range s.Entities {
		if s.Entities[i].ID == id {
			return &s.Entities[i]
		}
	}
	return nil
}
