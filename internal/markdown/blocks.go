// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown tokenizes the custom rich-content syntax embedded in chat
// Markdown: spec blocks (<flow_spec>, <diagram_spec>, <scene_spec>,
// <graph_spec> and their aliases) and math delimiters. Tokenizers are pure
// functions over the source text; parse failures become data on the token,
// never panics, so the rest of the document keeps rendering.
package markdown

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jeranaias/chalkviz/internal/spec"
)

// =============================================================================
// TOKEN KINDS
// =============================================================================

// Kind identifies what a Block contains.
type Kind int

const (
	KindFlow Kind = iota
	KindDiagram
	KindScene
	KindGraph
	KindMath
)

// String returns the canonical tag/kind name.
func (k Kind) String() string {
	switch k {
	case KindFlow:
		return "flow_spec"
	case KindDiagram:
		return "diagram_spec"
	case KindScene:
		return "scene_spec"
	case KindGraph:
		return "graph_spec"
	case KindMath:
		return "math"
	default:
		return "unknown"
	}
}

// specKinds lists the JSON-payload block kinds in scan order.
var specKinds = []Kind{KindFlow, KindDiagram, KindScene, KindGraph}

// =============================================================================
// TOKENS
// =============================================================================

// Block is one extracted token. Raw is the full matched substring including
// tags or delimiters; Payload is the inner JSON or LaTeX. Exactly one of the
// typed spec fields is set for a successfully parsed spec block; Err records
// a payload parse failure instead.
type Block struct {
	Kind    Kind
	Raw     string
	Payload string
	Start   int // byte offset of Raw in the source
	End     int // byte offset one past Raw
	Display bool // math only: display (block) vs inline mode
	Err     string

	Flow    *spec.FlowSpec
	Diagram *spec.DiagramSpec
	Scene   *spec.SceneSpec
	Graph   *spec.GraphSpec
}

// OK reports whether the payload parsed cleanly.
func (b *Block) OK() bool { return b.Err == "" }

// =============================================================================
// TAG ALIASES
// =============================================================================

// TagAliases maps each spec kind to its accepted tag spellings. The alias
// set is configuration, not a single hardcoded string: the upstream
// generator occasionally emits near-miss tag names and those should still
// render.
var TagAliases = map[Kind][]string{
	KindFlow:    {"flow_spec", "flow-spec", "flowspec", "base-flow-spec"},
	KindDiagram: {"diagram_spec", "diagram-spec", "diagramspec", "base-diagram-spec"},
	KindScene:   {"scene_spec", "scene-spec", "scenespec", "base-scene-spec"},
	KindGraph:   {"graph_spec", "graph-spec", "graphspec", "base-graph-spec"},
}

type kindPatterns struct {
	open *regexp.Regexp // unanchored opening tag
	full *regexp.Regexp // anchored complete block
}

var patterns = func() map[Kind]kindPatterns {
	m := make(map[Kind]kindPatterns, len(TagAliases))
	for k, aliases := range TagAliases {
		quoted := make([]string, len(aliases))
		for i, a := range aliases {
			quoted[i] = regexp.QuoteMeta(a)
		}
		alt := strings.Join(quoted, "|")
		m[k] = kindPatterns{
			open: regexp.MustCompile(fmt.Sprintf(`<(?:%s)>`, alt)),
			full: regexp.MustCompile(fmt.Sprintf(`(?s)^<(?:%s)>\n?(.*?)\n?</(?:%s)>`, alt, alt)),
		}
	}
	return m
}()

// =============================================================================
// TOKENIZER CONTRACT
// =============================================================================

// StartIndex returns the index of the earliest opening tag for the kind in
// src, or -1 when none occurs. This is the scan hint half of the tokenizer
// contract.
func StartIndex(k Kind, src string) int {
	p, ok := patterns[k]
	if !ok {
		return -1
	}
	loc := p.open.FindStringIndex(src)
	if loc == nil {
		return -1
	}
	return loc[0]
}

// Match attempts to match a complete block of the kind anchored at the start
// of src. On a tag match the payload is parsed; JSON failures are captured
// in Block.Err rather than returned, so a malformed payload still consumes
// its block and the surrounding document is unaffected.
func Match(k Kind, src string) *Block {
	p, ok := patterns[k]
	if !ok {
		return nil
	}
	m := p.full.FindStringSubmatch(src)
	if m == nil {
		return nil
	}
	b := &Block{
		Kind:    k,
		Raw:     m[0],
		Payload: m[1],
		End:     len(m[0]),
	}
	parsePayload(b)
	return b
}

// parsePayload decodes the JSON payload for spec kinds in place.
func parsePayload(b *Block) {
	var err error
	switch b.Kind {
	case KindFlow:
		b.Flow, err = spec.DecodeFlow(b.Payload)
	case KindDiagram:
		b.Diagram, err = spec.DecodeDiagram(b.Payload)
	case KindScene:
		b.Scene, err = spec.DecodeScene(b.Payload)
	case KindGraph:
		b.Graph, err = spec.DecodeGraph(b.Payload)
	case KindMath:
		// LaTeX is carried verbatim; typesetting happens at the output
		// boundary.
	}
	if err != nil {
		b.Err = err.Error()
	}
}

// =============================================================================
// DOCUMENT EXTRACTION
// =============================================================================

// Extract scans a whole Markdown document and returns every rich-content
// token in source order. Math spans that fall inside a spec block's payload
// are not reported; a JSON payload full of dollar-free operators should
// never double-tokenize.
func Extract(src string) []Block {
	var blocks []Block

	// Spec blocks first; their spans mask the math scan.
	type span struct{ start, end int }
	var masked []span
	for _, k := range specKinds {
		pos := 0
		for pos < len(src) {
			idx := StartIndex(k, src[pos:])
			if idx < 0 {
				break
			}
			abs := pos + idx
			b := Match(k, src[abs:])
			if b == nil {
				pos = abs + 1
				continue
			}
			b.Start += abs
			b.End += abs
			blocks = append(blocks, *b)
			masked = append(masked, span{b.Start, b.End})
			pos = b.End
		}
	}

	inMasked := func(start, end int) bool {
		for _, s := range masked {
			if start < s.end && end > s.start {
				return true
			}
		}
		return false
	}
	for _, mb := range ScanMath(src) {
		if !inMasked(mb.Start, mb.End) {
			blocks = append(blocks, mb)
		}
	}

	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Start < blocks[j].Start })
	return blocks
}
