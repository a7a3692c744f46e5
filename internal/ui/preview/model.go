// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview provides the interactive block preview for the TUI.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chalkviz/internal/config"
	"github.com/jeranaias/chalkviz/internal/markdown"
	"github.com/jeranaias/chalkviz/internal/mathexpr"
	"github.com/jeranaias/chalkviz/internal/ui/components"
	"github.com/jeranaias/chalkviz/internal/ui/styles"
)

// =============================================================================
// PREVIEW STATE
// =============================================================================

// Zoom bounds and step. The view state is ephemeral: it resets to these
// defaults whenever the shell closes.
const (
	minZoom  = 0.5
	maxZoom  = 3.0
	zoomStep = 0.25
)

// blockState is one extracted block with its pre-checked render error.
type blockState struct {
	block markdown.Block
	err   string
}

// =============================================================================
// PREVIEW MODEL
// =============================================================================

// Model is the Bubble Tea model for the preview shell.
type Model struct {
	// Styling
	theme *styles.Theme

	// Content
	title  string
	blocks []blockState
	index  int

	// View state
	zoom     float64
	panX     int
	panY     int
	showJSON bool

	// Mouse drag state
	dragging   bool
	lastMouseX int
	lastMouseY int

	// Defaults the view state resets to
	defaultZoom float64
	defaultJSON bool

	// Dimensions
	width  int
	height int

	// UI components
	statusBar *components.StatusBar
	jsonPanel *components.JSONPanel

	// Key bindings
	keyMap KeyMap
}

// New builds a preview model over every block extracted from src.
func New(title, src string, theme *styles.Theme, cfg *config.Config) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	extracted := markdown.Extract(src)
	blocks := make([]blockState, 0, len(extracted))
	for _, b := range extracted {
		blocks = append(blocks, blockState{block: b, err: checkBlock(b)})
	}

	zoom := cfg.Render.DefaultZoom
	if zoom < minZoom || zoom > maxZoom {
		zoom = 1.0
	}

	m := Model{
		theme:       theme,
		title:       title,
		blocks:      blocks,
		zoom:        zoom,
		showJSON:    cfg.UI.ShowJSON,
		defaultZoom: zoom,
		defaultJSON: cfg.UI.ShowJSON,
		width:       80,
		height:      24,
		statusBar:   components.NewStatusBar(theme),
		jsonPanel:   components.NewJSONPanel(theme),
		keyMap:      DefaultKeyMap(),
	}
	m.syncPanes()
	return m
}

// checkBlock pre-computes the render error for a block: extraction errors
// first, then expression compilation for graphs. Rendering itself cannot
// fail after these pass.
func checkBlock(b markdown.Block) string {
	if b.Err != "" {
		return b.Err
	}
	if b.Kind == markdown.KindGraph {
		if _, err := mathexpr.CompileGraph(b.Graph); err != nil {
			return err.Error()
		}
	}
	return ""
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.statusBar.SetWidth(msg.Width)
	m.jsonPanel.SetSize(m.jsonWidth(), m.canvasHeight())
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		// View state is ephemeral: the next open starts from defaults.
		m.resetView()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.NextBlock):
		if m.index < len(m.blocks)-1 {
			m.index++
			m.resetPan()
			m.syncPanes()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.PrevBlock):
		if m.index > 0 {
			m.index--
			m.resetPan()
			m.syncPanes()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.ZoomIn):
		m.setZoom(m.zoom + zoomStep)
		return m, nil

	case key.Matches(msg, m.keyMap.ZoomOut):
		m.setZoom(m.zoom - zoomStep)
		return m, nil

	case key.Matches(msg, m.keyMap.PanUp):
		m.panY++
		return m, nil

	case key.Matches(msg, m.keyMap.PanDown):
		m.panY--
		return m, nil

	case key.Matches(msg, m.keyMap.PanLeft):
		m.panX++
		return m, nil

	case key.Matches(msg, m.keyMap.PanRight):
		m.panX--
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleJSON):
		m.showJSON = !m.showJSON
		m.syncPanes()
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollJSON):
		if m.showJSON {
			if msg.String() == "j" {
				m.jsonPanel.ScrollBy(1)
			} else {
				m.jsonPanel.ScrollBy(-1)
			}
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Reset):
		m.resetView()
		return m, nil
	}
	return m, nil
}

// handleMouse implements wheel zoom and drag panning. A drag is a press,
// any number of motion events, then a release; motion without a preceding
// press never pans.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.setZoom(m.zoom + zoomStep)
	case tea.MouseWheelDown:
		m.setZoom(m.zoom - zoomStep)
	case tea.MouseLeft:
		m.dragging = true
		m.lastMouseX = msg.X
		m.lastMouseY = msg.Y
	case tea.MouseMotion:
		if m.dragging {
			m.panX += msg.X - m.lastMouseX
			m.panY += msg.Y - m.lastMouseY
			m.lastMouseX = msg.X
			m.lastMouseY = msg.Y
		}
	case tea.MouseRelease:
		m.dragging = false
	}
	return m, nil
}

// setZoom clamps the zoom factor to its bounds.
func (m *Model) setZoom(z float64) {
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	m.zoom = z
}

func (m *Model) resetPan() {
	m.panX = 0
	m.panY = 0
	m.dragging = false
}

// resetView restores zoom, pan, and pane visibility to their defaults.
func (m *Model) resetView() {
	m.zoom = m.defaultZoom
	m.showJSON = m.defaultJSON
	m.resetPan()
	m.syncPanes()
}

// syncPanes pushes the focused block into the JSON panel.
func (m *Model) syncPanes() {
	if len(m.blocks) == 0 {
		m.jsonPanel.SetContent("")
		return
	}
	m.jsonPanel.SetContent(m.blocks[m.index].block.Payload)
}

// =============================================================================
// VIEW
// =============================================================================

// jsonWidth is the width of the JSON pane when visible.
func (m Model) jsonWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	return w
}

// canvasWidth is the cell budget of the canvas area.
func (m Model) canvasWidth() int {
	w := m.width - 4
	if m.showJSON {
		w -= m.jsonWidth()
	}
	if w < 10 {
		w = 10
	}
	return w
}

// canvasHeight is the row budget of the canvas area.
func (m Model) canvasHeight() int {
	h := m.height - 4
	if h < 5 {
		h = 5
	}
	return h
}

// View renders the preview shell.
func (m Model) View() string {
	var sb strings.Builder

	// Header
	header := m.theme.HeaderTitle.Render("chalkviz") + " " +
		m.theme.HeaderSubtitle.Render(m.title)
	sb.WriteString(m.theme.Header.Width(m.width).Render(header))
	sb.WriteString("\n")

	// Main area
	sb.WriteString(m.viewMain())
	sb.WriteString("\n")

	// Status bar
	m.updateStatusBar()
	sb.WriteString(m.statusBar.View())

	return sb.String()
}

// viewMain renders the canvas and the optional JSON pane side by side.
func (m Model) viewMain() string {
	canvas := m.viewCanvas()
	if !m.showJSON {
		return canvas
	}
	m.jsonPanel.SetSize(m.jsonWidth(), m.canvasHeight())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.jsonPanel.View())
}

// viewCanvas renders the focused block.
func (m Model) viewCanvas() string {
	w, h := m.canvasWidth(), m.canvasHeight()

	if len(m.blocks) == 0 {
		empty := newCanvas(w, h)
		empty.text(2, h/2, "No rich-content blocks in this document.")
		return m.theme.CanvasBorder.Render(empty.String())
	}

	bs := m.blocks[m.index]
	if bs.err != "" {
		box := components.NewErrorBox(m.theme, bs.block.Kind.String(), bs.err, bs.block.Payload)
		box.SetWidth(w)
		return m.theme.CanvasBorder.Render(box.View())
	}

	proj := projection{zoom: m.zoom, panX: m.panX, panY: m.panY}
	body := renderBlockCanvas(bs.block, w, h, proj)
	if bs.block.Kind == markdown.KindMath {
		return m.theme.CanvasBorder.Render(m.theme.MathBlock.Render(body))
	}
	return m.theme.CanvasBorder.Render(m.theme.Canvas.Render(body))
}

// updateStatusBar mirrors the model state into the status bar component.
func (m Model) updateStatusBar() {
	m.statusBar.SetWidth(m.width)
	m.statusBar.Zoom = m.zoom
	m.statusBar.PanX = m.panX
	m.statusBar.PanY = m.panY
	m.statusBar.ShowJSON = m.showJSON
	if len(m.blocks) == 0 {
		m.statusBar.SetBlock(0, 0, "", true)
		return
	}
	bs := m.blocks[m.index]
	m.statusBar.SetBlock(m.index+1, len(m.blocks), bs.block.Kind.String(), bs.err == "")
}

// =============================================================================
// PROGRAM ENTRY
// =============================================================================

// Run opens the preview shell over a document and blocks until it closes.
func Run(title, src string, cfg *config.Config) error {
	m := New(title, src, styles.NewTheme(), cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
