// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// =============================================================================
// GOLDMARK INTEGRATION
// =============================================================================
//
// The pure tokenizers above are wrapped into a goldmark extension so the
// HTML export pipeline can treat rich-content blocks as first-class AST
// nodes. An AST transformer re-tokenizes paragraph and HTML-block segments
// with Extract and replaces them with RichContent nodes; the export package
// registers the renderer for those nodes (rendering needs layout and SVG,
// which live above this package).

// KindRichContent is the goldmark node kind for extracted tokens.
var KindRichContent = ast.NewNodeKind("RichContent")

// RichContent is a goldmark AST node owning one extracted Block.
type RichContent struct {
	ast.BaseBlock
	Block Block
}

// Kind implements ast.Node.
func (n *RichContent) Kind() ast.NodeKind { return KindRichContent }

// Dump implements ast.Node.
func (n *RichContent) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"kind": n.Block.Kind.String(),
		"err":  n.Block.Err,
	}, nil)
}

// Extension bundles the rich-content transformer for
// goldmark.New(goldmark.WithExtensions(markdown.Extension)).
var Extension goldmark.Extender = richContentExtension{}

type richContentExtension struct{}

// Extend implements goldmark.Extender.
func (richContentExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(richContentTransformer{}, 200),
		),
	)
}

type richContentTransformer struct{}

var _ parser.ASTTransformer = richContentTransformer{}

// Transform replaces paragraphs and raw HTML blocks that contain spec tags
// or math delimiters with RichContent nodes. Segments without tokens are
// left untouched.
func (richContentTransformer) Transform(document *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var candidates []ast.Node
	ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node.(type) {
		case *ast.Paragraph, *ast.HTMLBlock:
			candidates = append(candidates, node)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, node := range candidates {
		segText := nodeText(node, source)
		if segText == "" {
			continue
		}
		all := Extract(segText)
		// Inline math stays in the prose; the export page typesets it
		// client-side. Only spec blocks and display math are hoisted.
		tokens := all[:0:0]
		for _, tok := range all {
			if tok.Kind == KindMath && !tok.Display {
				continue
			}
			tokens = append(tokens, tok)
		}
		if len(tokens) == 0 {
			continue
		}
		parent := node.Parent()
		if parent == nil {
			continue
		}
		// A segment may interleave prose and tokens; only the tokens become
		// RichContent nodes, inserted before the original node, which is
		// dropped when nothing but tokens (and whitespace) remained.
		prose := segText
		for _, tok := range tokens {
			rc := &RichContent{Block: tok}
			parent.InsertBefore(parent, node, rc)
			prose = strings.Replace(prose, tok.Raw, "", 1)
		}
		if strings.TrimSpace(prose) == "" {
			parent.RemoveChild(parent, node)
		}
	}
}

// nodeText reassembles the raw source text of a block node.
func nodeText(node ast.Node, source []byte) string {
	lines := node.Lines()
	if lines == nil || lines.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
		sb.WriteByte('\n')
	}
	return sb.String()
}
