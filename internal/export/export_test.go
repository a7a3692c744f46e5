// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/chalkviz/internal/markdown"
	"github.com/jeranaias/chalkviz/internal/model"
	"github.com/jeranaias/chalkviz/internal/svg"
)

const flowSrc = `The process looks like this:

<flow_spec>{"nodes":[{"id":"a","label":"Start"},{"id":"b","label":"Done"}],"edges":[{"from":"a","to":"b"}]}</flow_spec>

That is all.`

const graph3DSrc = `<graph_spec>{"type":"function_3d","expression":"x*y"}</graph_spec>`

const badFlowSrc = `<flow_spec>{not json}</flow_spec>`

func testConversation(contents ...string) *model.Conversation {
	conv := model.NewConversation()
	role := model.RoleUser
	for _, c := range contents {
		conv.AddMessage(model.NewMessage(role, c))
		if role == model.RoleUser {
			role = model.RoleAssistant
		} else {
			role = model.RoleUser
		}
	}
	return conv
}

// =============================================================================
// BLOCK RENDERING
// =============================================================================

func TestRenderBlocksFlow(t *testing.T) {
	rendered := RenderBlocks(flowSrc, svg.Options{})
	if len(rendered) != 1 {
		t.Fatalf("expected 1 rendered block, got %d", len(rendered))
	}
	rb := rendered[0]
	if !rb.OK() {
		t.Fatalf("unexpected error: %s", rb.Err)
	}
	if !strings.HasPrefix(rb.SVG, "<svg") {
		t.Errorf("expected SVG output, got %q", rb.SVG[:min(40, len(rb.SVG))])
	}
	if rb.Figure != nil {
		t.Error("flow block should not produce a figure")
	}
}

func TestRenderBlockGraph3D(t *testing.T) {
	rendered := RenderBlocks(graph3DSrc, svg.Options{})
	if len(rendered) != 1 {
		t.Fatalf("expected 1 rendered block, got %d", len(rendered))
	}
	rb := rendered[0]
	if !rb.OK() {
		t.Fatalf("unexpected error: %s", rb.Err)
	}
	if rb.SVG != "" {
		t.Error("3D graph should not produce inline SVG")
	}
	if rb.Figure == nil {
		t.Fatal("3D graph should produce a figure")
	}
}

func TestRenderBlockGraph2D(t *testing.T) {
	src := `<graph_spec>{"type":"function_2d","expression":"x^2"}</graph_spec>`
	rendered := RenderBlocks(src, svg.Options{})
	if len(rendered) != 1 {
		t.Fatalf("expected 1 rendered block, got %d", len(rendered))
	}
	rb := rendered[0]
	if !strings.HasPrefix(rb.SVG, "<svg") {
		t.Error("2D graph should produce inline SVG")
	}
	if rb.Figure == nil {
		t.Error("2D graph should also produce a figure for the JSON view")
	}
}

func TestRenderBlockMalformed(t *testing.T) {
	rendered := RenderBlocks(badFlowSrc, svg.Options{})
	if len(rendered) != 1 {
		t.Fatalf("expected 1 rendered block, got %d", len(rendered))
	}
	rb := rendered[0]
	if rb.OK() {
		t.Fatal("malformed payload should carry an error")
	}
	if rb.SVG != "" || rb.Figure != nil {
		t.Error("malformed block should have no renderable forms")
	}
}

func TestRenderBlockBadExpression(t *testing.T) {
	src := `<graph_spec>{"type":"function_2d","expression":"x +* 2"}</graph_spec>`
	rendered := RenderBlocks(src, svg.Options{})
	if len(rendered) != 1 {
		t.Fatalf("expected 1 rendered block, got %d", len(rendered))
	}
	if rendered[0].OK() {
		t.Error("unparseable expression should carry an error")
	}
}

// =============================================================================
// HTML EXPORT
// =============================================================================

func TestHTMLExportInlineSVG(t *testing.T) {
	conv := testConversation("Show me the process", flowSrc)
	out, err := NewHTMLExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	page := string(out)

	if !strings.Contains(page, "<svg") {
		t.Error("expected inline SVG in page")
	}
	if !strings.Contains(page, "rich-block") {
		t.Error("expected rich-block figure wrapper")
	}
	if !strings.Contains(page, "That is all.") {
		t.Error("prose around the block should survive")
	}
	if strings.Contains(page, "<flow_spec>") {
		t.Error("raw tag should not appear in output")
	}
	if strings.Contains(page, "katex") {
		t.Error("page without math should not include KaTeX")
	}
	if strings.Contains(page, plotlyCDN) {
		t.Error("page without 3D figures should not include Plotly")
	}
}

func TestHTMLExportPlotlyFigure(t *testing.T) {
	conv := testConversation("Plot a saddle", graph3DSrc)
	out, err := NewHTMLExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	page := string(out)

	if !strings.Contains(page, plotlyCDN) {
		t.Error("expected Plotly CDN include")
	}
	if !strings.Contains(page, `id="figure-1"`) {
		t.Error("expected figure placeholder div")
	}
	if !strings.Contains(page, "Plotly.newPlot") {
		t.Error("expected hydration call")
	}
	if !strings.Contains(page, `"surface"`) {
		t.Error("expected embedded figure JSON")
	}
}

func TestHTMLExportMath(t *testing.T) {
	conv := testConversation(
		"What is the famous one? I know $E = mc^2$ already.",
		"Start from $$\\frac{d}{dt} p = F$$ and integrate.",
	)
	out, err := NewHTMLExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	page := string(out)

	if !strings.Contains(page, katexCSS) {
		t.Error("expected KaTeX stylesheet")
	}
	if !strings.Contains(page, "math-display") {
		t.Error("expected display math wrapper")
	}
	if !strings.Contains(page, "renderMathInElement") {
		t.Error("expected auto-render setup")
	}
	// Inline math stays in the prose for client-side typesetting.
	if !strings.Contains(page, "$E = mc^2$") {
		t.Error("inline math should survive in the prose")
	}
}

func TestHTMLExportInlineMathOnly(t *testing.T) {
	conv := testConversation("Just $a^2 + b^2 = c^2$ here.")
	out, err := NewHTMLExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(string(out), katexCSS) {
		t.Error("inline-only math still needs KaTeX")
	}
}

func TestHTMLExportErrorBlock(t *testing.T) {
	conv := testConversation("Broken:", badFlowSrc)
	out, err := NewHTMLExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	page := string(out)

	if !strings.Contains(page, "block-error") {
		t.Error("expected error box for malformed block")
	}
	if !strings.Contains(page, "Invalid flow_spec block") {
		t.Error("expected kind in error title")
	}
}

func TestHTMLExportTheme(t *testing.T) {
	conv := testConversation("hello", "world")

	opts := DefaultOptions()
	opts.Theme = "light"
	out, err := NewHTMLExporter(opts).Export(conv)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(string(out), `<body class="light-theme">`) {
		t.Error("expected light theme body class")
	}
}

func TestHTMLExportValidation(t *testing.T) {
	e := NewHTMLExporter(nil)

	if _, err := e.Export(nil); err == nil {
		t.Error("nil conversation should fail")
	}
	if _, err := e.Export(model.NewConversation()); err == nil {
		t.Error("empty conversation should fail")
	}
	conv := &model.Conversation{Messages: []*model.Message{model.NewMessage(model.RoleUser, "hi")}}
	if _, err := e.Export(conv); err == nil {
		t.Error("zero creation timestamp should fail")
	}
}

// =============================================================================
// MARKDOWN EXPORT
// =============================================================================

func TestMarkdownExportReparses(t *testing.T) {
	conv := testConversation(
		"What is acceleration?",
		"The rate of change of velocity: $$a = \\frac{dv}{dt}$$",
		"Thanks!",
	)

	opts := DefaultOptions()
	opts.IncludeMetadata = false
	opts.IncludeTimestamps = false
	out, err := NewMarkdownExporter(opts).Export(conv)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	parsed := model.ParseMarkdown(string(out))
	// The title line parses as a leading message; the transcript proper
	// follows it.
	if len(parsed.Messages) != len(conv.Messages)+1 {
		t.Fatalf("expected %d parsed messages, got %d", len(conv.Messages)+1, len(parsed.Messages))
	}
	for i, orig := range conv.Messages {
		got := parsed.Messages[i+1]
		if got.Role != orig.Role {
			t.Errorf("message %d: role %q, want %q", i, got.Role, orig.Role)
		}
		if got.Content != strings.TrimSpace(orig.Content) {
			t.Errorf("message %d: content %q, want %q", i, got.Content, orig.Content)
		}
	}
}

func TestMarkdownExportMetadata(t *testing.T) {
	conv := testConversation("q", "a")
	out, err := NewMarkdownExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	md := string(out)

	if !strings.HasPrefix(md, "---\n") {
		t.Error("expected YAML frontmatter")
	}
	if !strings.Contains(md, "generator: chalkviz") {
		t.Error("expected generator field")
	}
	if !strings.Contains(md, "messages: 2") {
		t.Error("expected message count")
	}
}

// =============================================================================
// JSON EXPORT
// =============================================================================

func TestJSONExportRoundTrip(t *testing.T) {
	conv := testConversation("Show me", flowSrc)
	out, err := NewJSONExporter(nil).Export(conv)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	parsed, err := model.ParseJSON(out)
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if parsed.Title != conv.Title {
		t.Errorf("title %q, want %q", parsed.Title, conv.Title)
	}
	if len(parsed.Messages) != len(conv.Messages) {
		t.Fatalf("expected %d messages, got %d", len(conv.Messages), len(parsed.Messages))
	}
	for i := range conv.Messages {
		if parsed.Messages[i].Content != conv.Messages[i].Content {
			t.Errorf("message %d content mismatch", i)
		}
	}
}

// =============================================================================
// BLOCK LISTING
// =============================================================================

func TestMarshalBlocks(t *testing.T) {
	src := flowSrc + "\n\n" + badFlowSrc + "\n\n" + graph3DSrc
	out, err := MarshalBlocks(src)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var infos []BlockInfo
	if err := json.Unmarshal(out, &infos); err != nil {
		t.Fatalf("invalid listing JSON: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(infos))
	}
	if infos[0].Kind != markdown.KindFlow.String() {
		t.Errorf("block 0 kind %q", infos[0].Kind)
	}
	if infos[1].Error == "" {
		t.Error("malformed block should carry its error")
	}
	if len(infos[2].Figure) == 0 {
		t.Error("graph block should carry its figure JSON")
	}
	if infos[0].Start >= infos[2].Start {
		t.Error("blocks should be listed in source order")
	}
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

func TestWriteBlockFiles(t *testing.T) {
	src := flowSrc + "\n\nSome math $$x^2 = 4$$ between.\n\n" + graph3DSrc + "\n\n" + badFlowSrc
	dir := t.TempDir()

	paths, err := WriteBlockFiles(src, dir, svg.Options{})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	// Math and malformed blocks are skipped.
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(paths), paths)
	}

	if filepath.Base(paths[0]) != "block_001_flow_spec.svg" {
		t.Errorf("unexpected first file name %q", filepath.Base(paths[0]))
	}
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "<svg") {
		t.Error("expected SVG content")
	}

	if filepath.Base(paths[1]) != "block_002_graph_spec.json" {
		t.Errorf("unexpected second file name %q", filepath.Base(paths[1]))
	}
	data, err = os.ReadFile(paths[1])
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var fig map[string]interface{}
	if err := json.Unmarshal(data, &fig); err != nil {
		t.Errorf("figure file is not valid JSON: %v", err)
	}
}

func TestExportToFile(t *testing.T) {
	conv := testConversation("q", "a")
	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()

	path, err := ExportToFile(conv, NewMarkdownExporter(opts), opts)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if filepath.Ext(path) != ".md" {
		t.Errorf("unexpected extension on %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Simple Title", "Simple_Title"},
		{"a/b\\c:d", "a-b-c-d"},
		{"", "transcript"},
		{"tabs\tand\nnewlines", "tabs_and_newlines"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
