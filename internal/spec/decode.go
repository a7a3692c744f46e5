// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package spec

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// PAYLOAD DECODING
// =============================================================================
//
// Each Decode* function takes the raw JSON text extracted from a chat block.
// Math constants (PI, E, 2*PI, PI/2, ...) are rewritten to numeric literals
// before parsing so payloads like {"domain": [-PI, PI]} decode cleanly.
// Decode errors are returned, not panicked; callers store them on the token.

// DecodeFlow parses a FlowSpec payload.
func DecodeFlow(raw string) (*FlowSpec, error) {
	var s FlowSpec
	if err := decodeStrictish(raw, &s); err != nil {
		return nil, fmt.Errorf("flow spec: %w", err)
	}
	for i := range s.Nodes {
		s.Nodes[i].Shape = s.Nodes[i].Shape.Normalize()
	}
	return &s, nil
}

// DecodeDiagram parses a DiagramSpec payload.
func DecodeDiagram(raw string) (*DiagramSpec, error) {
	var s DiagramSpec
	if err := decodeStrictish(raw, &s); err != nil {
		return nil, fmt.Errorf("diagram spec: %w", err)
	}
	for i := range s.Nodes {
		s.Nodes[i].Shape = s.Nodes[i].Shape.Normalize()
	}
	for i := range s.Edges {
		s.Edges[i].Style = s.Edges[i].Style.Normalize()
	}
	return &s, nil
}

// DecodeScene parses a SceneSpec payload.
func DecodeScene(raw string) (*SceneSpec, error) {
	var s SceneSpec
	if err := decodeStrictish(raw, &s); err != nil {
		return nil, fmt.Errorf("scene spec: %w", err)
	}
	for i := range s.Annotations {
		s.Annotations[i].Position = s.Annotations[i].Position.Normalize()
	}
	return &s, nil
}

// DecodeGraph parses a GraphSpec payload.
func DecodeGraph(raw string) (*GraphSpec, error) {
	var g GraphSpec
	if err := decodeStrictish(raw, &g); err != nil {
		return nil, fmt.Errorf("graph spec: %w", err)
	}
	if !g.Type.Valid() {
		return nil, fmt.Errorf("graph spec: unknown type %q", string(g.Type))
	}
	for i := range g.Layers {
		if !g.Layers[i].Type.Valid() {
			return nil, fmt.Errorf("graph spec: unknown layer type %q", string(g.Layers[i].Type))
		}
	}
	return &g, nil
}

// decodeStrictish decodes after math-constant normalization. Unknown fields
// are allowed; the generator sometimes adds extras.
func decodeStrictish(raw string, v any) error {
	normalized := NormalizeMathConstants(strings.TrimSpace(raw))
	if normalized == "" {
		return fmt.Errorf("empty payload")
	}
	if err := json.Unmarshal([]byte(normalized), v); err != nil {
		return err
	}
	return nil
}
