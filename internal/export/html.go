// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	gmutil "github.com/yuin/goldmark/util"

	"github.com/jeranaias/chalkviz/internal/markdown"
	"github.com/jeranaias/chalkviz/internal/model"
	"github.com/jeranaias/chalkviz/internal/svg"
)

// CDN assets for the standalone page. The page works offline except for
// math typesetting and interactive 3D figures, which need these scripts.
const (
	plotlyCDN     = "https://cdn.plot.ly/plotly-2.32.0.min.js"
	katexCSS      = "https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/katex.min.css"
	katexJS       = "https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/katex.min.js"
	katexMhchem   = "https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/contrib/mhchem.min.js"
	katexAutoJS   = "https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/contrib/auto-render.min.js"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports transcripts to a standalone HTML page. Prose runs
// through goldmark; flow, diagram, scene, and 2D graph blocks are embedded
// as inline SVG; 3D graphs become Plotly figures hydrated client-side; math
// is left in delimiter form for KaTeX auto-render.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a conversation to HTML format.
func (e *HTMLExporter) Export(conv *model.Conversation) ([]byte, error) {
	// Validate conversation data
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if len(conv.Messages) == 0 {
		return nil, fmt.Errorf("conversation has no messages")
	}
	if conv.CreatedAt.IsZero() {
		return nil, fmt.Errorf("conversation has invalid creation timestamp")
	}

	svgTheme := svg.ThemeDark
	if e.options.Theme == "light" {
		svgTheme = svg.ThemeLight
	}

	// One rich-content renderer is shared across messages so figure div IDs
	// stay unique page-wide and the collected figures come out in order.
	rcr := &richContentRenderer{svgOpts: svg.Options{Theme: svgTheme}}
	md := goldmark.New(
		goldmark.WithExtensions(markdown.Extension),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(gmutil.Prioritized(rcr, 100)),
		),
	)

	// Render all message bodies before assembling the page: the head needs
	// to know whether KaTeX is required, and the figure scripts go at the
	// bottom after the Plotly CDN include.
	bodies := make([]string, len(conv.Messages))
	for i, msg := range conv.Messages {
		var buf strings.Builder
		if err := md.Convert([]byte(msg.Content), &buf); err != nil {
			return nil, fmt.Errorf("render message %d: %w", i, err)
		}
		bodies[i] = buf.String()
		// Inline math is not hoisted, so the renderer never sees it; scan
		// the source directly to know whether the page needs KaTeX.
		if !rcr.needsKaTeX && len(markdown.ScanMath(msg.Content)) > 0 {
			rcr.needsKaTeX = true
		}
	}

	var sb strings.Builder

	// HTML header
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(conv.Title)))
	sb.WriteString("    <meta name=\"generator\" content=\"chalkviz\">\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=\"%s\">\n", conv.CreatedAt.Format(time.RFC3339)))
	if rcr.needsKaTeX {
		sb.WriteString(fmt.Sprintf("    <link rel=\"stylesheet\" href=\"%s\">\n", katexCSS))
	}

	// Embedded CSS
	sb.WriteString(e.getCSS())

	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", e.options.Theme))

	// Container
	sb.WriteString("    <div class=\"container\">\n")

	// Header with metadata
	if e.options.IncludeMetadata {
		sb.WriteString(e.renderHeader(conv))
	}

	// Conversation messages
	sb.WriteString("        <main class=\"conversation\">\n")
	for i := range conv.Messages {
		sb.WriteString(e.renderMessage(conv.Messages[i], bodies[i]))
	}
	sb.WriteString("        </main>\n")

	// Footer
	sb.WriteString("        <footer class=\"footer\">\n")
	sb.WriteString(fmt.Sprintf("            <p>Exported from <strong>chalkviz</strong> on %s</p>\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))
	sb.WriteString("        </footer>\n")

	sb.WriteString("    </div>\n")

	// Figure hydration and math typesetting scripts
	sb.WriteString(e.getFigureScripts(rcr))
	if rcr.needsKaTeX {
		sb.WriteString(e.getKaTeXScripts())
	}

	// Theme toggle script
	sb.WriteString(e.getScript())

	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RICH CONTENT NODE RENDERER
// =============================================================================

// figureRef records a Plotly figure placed in the document. The div is
// emitted in place; the newPlot call is deferred to the page bottom so it
// runs after the CDN script loads.
type figureRef struct {
	id   string
	json []byte
}

// richContentRenderer renders the rich-content AST nodes hoisted by the
// markdown extension. It accumulates state across messages: figure
// references and whether any math survived to the page.
type richContentRenderer struct {
	svgOpts    svg.Options
	figures    []figureRef
	needsKaTeX bool
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *richContentRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(markdown.KindRichContent, r.renderRichContent)
}

func (r *richContentRenderer) renderRichContent(w gmutil.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	rc := node.(*markdown.RichContent)

	if rc.Block.Kind == markdown.KindMath {
		// Keep the raw delimiters; KaTeX auto-render picks them up from
		// the element's text content.
		r.needsKaTeX = true
		_, _ = w.WriteString("<div class=\"math-display\">")
		_, _ = w.WriteString(html.EscapeString(rc.Block.Raw))
		_, _ = w.WriteString("</div>\n")
		return ast.WalkContinue, nil
	}

	rb := RenderBlock(rc.Block, r.svgOpts)
	if !rb.OK() {
		_, _ = w.WriteString("<div class=\"block-error\">\n")
		_, _ = fmt.Fprintf(w, "    <div class=\"block-error-title\">Invalid %s block</div>\n",
			html.EscapeString(rc.Block.Kind.String()))
		_, _ = fmt.Fprintf(w, "    <div class=\"block-error-detail\">%s</div>\n",
			html.EscapeString(rb.Err))
		_, _ = w.WriteString("</div>\n")
		return ast.WalkContinue, nil
	}

	if rb.SVG != "" {
		_, _ = fmt.Fprintf(w, "<figure class=\"rich-block rich-%s\">\n", rc.Block.Kind.String())
		_, _ = w.WriteString(rb.SVG)
		_, _ = w.WriteString("\n</figure>\n")
		return ast.WalkContinue, nil
	}

	if rb.Figure != nil {
		data, err := rb.Figure.JSON()
		if err != nil {
			return ast.WalkStop, fmt.Errorf("serialize figure: %w", err)
		}
		id := fmt.Sprintf("figure-%d", len(r.figures)+1)
		r.figures = append(r.figures, figureRef{id: id, json: data})
		_, _ = fmt.Fprintf(w, "<div id=\"%s\" class=\"plotly-figure\"></div>\n", id)
	}
	return ast.WalkContinue, nil
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

// renderHeader renders the header section with metadata.
func (e *HTMLExporter) renderHeader(conv *model.Conversation) string {
	var sb strings.Builder

	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", html.EscapeString(conv.Title)))
	sb.WriteString("            <div class=\"metadata\">\n")
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Created:</strong> %s</span>\n", formatTimestamp(conv.CreatedAt)))
	sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\"><strong>Messages:</strong> %d</span>\n", len(conv.Messages)))
	sb.WriteString("                <button class=\"theme-toggle\" onclick=\"toggleTheme()\" title=\"Toggle theme\">[Theme]</button>\n")
	sb.WriteString("            </div>\n")
	sb.WriteString("        </header>\n")

	return sb.String()
}

// renderMessage renders a single message with its pre-rendered body.
func (e *HTMLExporter) renderMessage(msg *model.Message, body string) string {
	var sb strings.Builder

	roleClass := strings.ToLower(string(msg.Role))
	sb.WriteString(fmt.Sprintf("            <div class=\"message %s-message\">\n", roleClass))

	// Message header
	sb.WriteString("                <div class=\"message-header\">\n")
	sb.WriteString(fmt.Sprintf("                    <span class=\"role-label\">%s</span>\n", html.EscapeString(msg.Role.DisplayName())))
	if e.options.IncludeTimestamps && !msg.Timestamp.IsZero() {
		sb.WriteString(fmt.Sprintf("                    <span class=\"timestamp\">%s</span>\n", formatShortTimestamp(msg.Timestamp)))
	}
	sb.WriteString("                </div>\n")

	// Message content
	sb.WriteString("                <div class=\"message-content\">\n")
	sb.WriteString(body)
	sb.WriteString("                </div>\n")

	sb.WriteString("            </div>\n")

	return sb.String()
}

// =============================================================================
// EMBEDDED SCRIPTS
// =============================================================================

// getFigureScripts emits the Plotly CDN include and one hydration call per
// collected figure. Empty when the document has no 3D figures.
func (e *HTMLExporter) getFigureScripts(rcr *richContentRenderer) string {
	if len(rcr.figures) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("    <script src=\"%s\"></script>\n", plotlyCDN))
	sb.WriteString("    <script>\n")
	for _, fig := range rcr.figures {
		sb.WriteString("        (function() {\n")
		sb.WriteString(fmt.Sprintf("            var fig = %s;\n", fig.json))
		sb.WriteString(fmt.Sprintf("            Plotly.newPlot(%q, fig.data, fig.layout, {responsive: true});\n", fig.id))
		sb.WriteString("        })();\n")
	}
	sb.WriteString("    </script>\n")
	return sb.String()
}

// getKaTeXScripts emits the KaTeX auto-render includes. The delimiter list
// mirrors the tokenizer's recognized pairs; mhchem covers chemistry macros.
func (e *HTMLExporter) getKaTeXScripts() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("    <script defer src=\"%s\"></script>\n", katexJS))
	sb.WriteString(fmt.Sprintf("    <script defer src=\"%s\"></script>\n", katexMhchem))
	sb.WriteString(fmt.Sprintf("    <script defer src=\"%s\" onload=\"typesetMath()\"></script>\n", katexAutoJS))
	sb.WriteString(`    <script>
        function typesetMath() {
            renderMathInElement(document.body, {
                delimiters: [
                    {left: "$$", right: "$$", display: true},
                    {left: "\\[", right: "\\]", display: true},
                    {left: "\\(", right: "\\)", display: false},
                    {left: "$", right: "$", display: false}
                ],
                throwOnError: false
            });
        }
    </script>
`)
	return sb.String()
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

// getCSS returns the embedded CSS for the HTML export.
func (e *HTMLExporter) getCSS() string {
	return `    <style>
        /* Reset and base styles */
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        :root {
            --font-sans: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            --font-mono: "SF Mono", "Monaco", "Inconsolata", "Fira Code", "Dank Mono", "Source Code Pro", monospace;
        }

        /* Dark theme (default) */
        .dark-theme {
            --bg-primary: #1a1b26;
            --bg-secondary: #24283b;
            --bg-tertiary: #414868;
            --text-primary: #c0caf5;
            --text-secondary: #a9b1d6;
            --text-muted: #565f89;
            --border-color: #414868;
            --user-bg: #1f2335;
            --assistant-bg: #24283b;
            --code-bg: #1a1b26;
            --accent-blue: #7aa2f7;
            --accent-green: #9ece6a;
            --accent-purple: #bb9af7;
            --accent-red: #f7768e;
        }

        /* Light theme */
        .light-theme {
            --bg-primary: #ffffff;
            --bg-secondary: #f7f8fa;
            --bg-tertiary: #e1e4e8;
            --text-primary: #24292e;
            --text-secondary: #586069;
            --text-muted: #6a737d;
            --border-color: #e1e4e8;
            --user-bg: #f6f8fa;
            --assistant-bg: #ffffff;
            --code-bg: #f6f8fa;
            --accent-blue: #0366d6;
            --accent-green: #22863a;
            --accent-purple: #6f42c1;
            --accent-red: #d73a49;
        }

        body {
            font-family: var(--font-sans);
            font-size: 16px;
            line-height: 1.6;
            color: var(--text-primary);
            background: var(--bg-primary);
            padding: 20px;
            transition: background 0.3s ease, color 0.3s ease;
        }

        .container {
            max-width: 900px;
            margin: 0 auto;
            background: var(--bg-secondary);
            border-radius: 12px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
            overflow: hidden;
        }

        /* Header */
        .header {
            padding: 32px;
            background: var(--bg-tertiary);
            border-bottom: 2px solid var(--border-color);
        }

        .header h1 {
            font-size: 28px;
            font-weight: 700;
            margin-bottom: 16px;
            color: var(--text-primary);
        }

        .metadata {
            display: flex;
            flex-wrap: wrap;
            gap: 16px;
            font-size: 14px;
            color: var(--text-secondary);
            align-items: center;
        }

        .meta-item {
            display: inline-flex;
            align-items: center;
            gap: 4px;
        }

        .theme-toggle {
            margin-left: auto;
            background: var(--bg-secondary);
            border: 1px solid var(--border-color);
            border-radius: 6px;
            padding: 6px 12px;
            cursor: pointer;
            font-size: 14px;
            color: var(--text-primary);
            transition: all 0.2s ease;
        }

        .theme-toggle:hover {
            background: var(--bg-primary);
            transform: scale(1.05);
        }

        /* Conversation */
        .conversation {
            padding: 24px 32px;
        }

        .message {
            margin-bottom: 24px;
            padding: 20px;
            border-radius: 8px;
            border-left: 4px solid transparent;
            transition: all 0.2s ease;
        }

        .user-message {
            background: var(--user-bg);
            border-left-color: var(--accent-blue);
        }

        .assistant-message {
            background: var(--assistant-bg);
            border-left-color: var(--accent-green);
        }

        .system-message {
            background: var(--bg-tertiary);
            border-left-color: var(--accent-purple);
        }

        .message-header {
            display: flex;
            justify-content: space-between;
            align-items: center;
            margin-bottom: 12px;
            font-size: 14px;
        }

        .role-label {
            font-weight: 600;
            color: var(--text-primary);
        }

        .timestamp {
            color: var(--text-muted);
            font-size: 13px;
            font-family: var(--font-mono);
        }

        .message-content {
            color: var(--text-primary);
            line-height: 1.7;
        }

        .message-content p {
            margin-bottom: 12px;
        }

        .message-content p:last-child {
            margin-bottom: 0;
        }

        .message-content pre {
            margin: 16px 0;
            padding: 16px;
            border-radius: 8px;
            overflow-x: auto;
            background: var(--code-bg);
            border: 1px solid var(--border-color);
        }

        .message-content code {
            font-family: var(--font-mono);
            font-size: 14px;
            line-height: 1.5;
        }

        .message-content p code, .message-content li code {
            padding: 2px 6px;
            background: var(--code-bg);
            border: 1px solid var(--border-color);
            border-radius: 4px;
            color: var(--accent-purple);
        }

        /* Rich content blocks */
        .rich-block {
            margin: 16px 0;
            padding: 12px;
            border-radius: 8px;
            background: var(--bg-primary);
            border: 1px solid var(--border-color);
            text-align: center;
        }

        .rich-block svg {
            max-width: 100%;
            height: auto;
        }

        .plotly-figure {
            margin: 16px 0;
            min-height: 420px;
            border-radius: 8px;
            background: var(--bg-primary);
            border: 1px solid var(--border-color);
        }

        .math-display {
            margin: 16px 0;
            padding: 8px;
            overflow-x: auto;
            text-align: center;
        }

        .block-error {
            margin: 16px 0;
            padding: 12px 16px;
            border-radius: 8px;
            background: var(--bg-primary);
            border: 1px solid var(--accent-red);
        }

        .block-error-title {
            font-weight: 600;
            color: var(--accent-red);
            margin-bottom: 4px;
        }

        .block-error-detail {
            font-family: var(--font-mono);
            font-size: 13px;
            color: var(--text-secondary);
        }

        /* Footer */
        .footer {
            padding: 20px 32px;
            text-align: center;
            font-size: 14px;
            color: var(--text-muted);
            border-top: 1px solid var(--border-color);
        }

        /* Print styles */
        @media print {
            body {
                padding: 0;
            }

            .container {
                box-shadow: none;
                border-radius: 0;
            }

            .theme-toggle {
                display: none;
            }

            .message {
                page-break-inside: avoid;
            }
        }

        /* Responsive */
        @media (max-width: 768px) {
            body {
                padding: 10px;
            }

            .header, .conversation, .footer {
                padding: 16px;
            }

            .message {
                padding: 16px;
            }
        }
    </style>
`
}

// =============================================================================
// EMBEDDED JAVASCRIPT
// =============================================================================

// getScript returns the embedded JavaScript for theme toggling.
func (e *HTMLExporter) getScript() string {
	return `    <script>
        function toggleTheme() {
            const body = document.body;
            if (body.classList.contains('dark-theme')) {
                body.classList.remove('dark-theme');
                body.classList.add('light-theme');
                localStorage.setItem('theme', 'light');
            } else {
                body.classList.remove('light-theme');
                body.classList.add('dark-theme');
                localStorage.setItem('theme', 'dark');
            }
        }

        // Load saved theme preference
        document.addEventListener('DOMContentLoaded', function() {
            const savedTheme = localStorage.getItem('theme');
            if (savedTheme) {
                document.body.classList.remove('dark-theme', 'light-theme');
                document.body.classList.add(savedTheme + '-theme');
            }
        });
    </script>
`
}
