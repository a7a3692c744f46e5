// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/chalkviz/internal/ui/styles"
)

func TestStatusBarBlockBadge(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(100)
	bar.SetBlock(2, 5, "flow_spec", true)

	out := bar.View()
	if !strings.Contains(out, "FLOW") {
		t.Errorf("expected kind badge in %q", out)
	}
	if !strings.Contains(out, "2/5") {
		t.Errorf("expected counter in %q", out)
	}
	if !strings.Contains(out, "100%") {
		t.Errorf("expected zoom in %q", out)
	}
}

func TestStatusBarEmpty(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(100)
	out := bar.View()
	if !strings.Contains(out, "NO BLOCKS") {
		t.Errorf("expected empty badge in %q", out)
	}
}

func TestStatusBarNarrowOmitsShortcuts(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(40)
	bar.SetBlock(1, 1, "graph_spec", true)
	out := bar.View()
	if strings.Contains(out, "zoom") {
		t.Error("narrow layout should omit shortcut hints")
	}
}

func TestStatusBarPanShownOffOrigin(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(120)
	bar.SetBlock(1, 1, "scene_spec", true)

	// The shortcut hints also mention "pan", so match the signed
	// offset format the indicator uses.
	if out := bar.View(); strings.Contains(out, "pan +") || strings.Contains(out, "pan -") {
		t.Error("pan indicator should be hidden at the origin")
	}
	bar.PanX, bar.PanY = 3, -2
	if !strings.Contains(bar.View(), "pan +3-2") {
		t.Errorf("expected pan indicator, got %q", bar.View())
	}
}

func TestErrorBoxView(t *testing.T) {
	box := NewErrorBox(styles.NewTheme(), "flow_spec", "invalid payload JSON", `{"nodes": [`)
	box.SetWidth(80)
	out := box.View()

	if !strings.Contains(out, "Invalid flow_spec block") {
		t.Errorf("expected title in %q", out)
	}
	if !strings.Contains(out, "invalid payload JSON") {
		t.Errorf("expected message in %q", out)
	}
	if !strings.Contains(out, "[X]") {
		t.Errorf("expected error indicator in %q", out)
	}
}

func TestJSONPanelIndentsValidJSON(t *testing.T) {
	p := NewJSONPanel(styles.NewTheme())
	p.SetSize(60, 20)
	p.SetContent(`{"a":1,"b":[2,3]}`)

	out := p.View()
	if !strings.Contains(out, "JSON") {
		t.Errorf("expected header in %q", out)
	}
	// Indented form puts each key on its own line.
	if len(p.rendered) < 4 {
		t.Errorf("expected multi-line indented JSON, got %d lines", len(p.rendered))
	}
}

func TestJSONPanelKeepsInvalidContent(t *testing.T) {
	p := NewJSONPanel(styles.NewTheme())
	p.SetContent("x^2 + 1")
	if len(p.rendered) != 1 {
		t.Errorf("non-JSON content should stay verbatim, got %d lines", len(p.rendered))
	}
}

func TestJSONPanelScrollClamped(t *testing.T) {
	p := NewJSONPanel(styles.NewTheme())
	p.SetSize(40, 5)
	p.SetContent(`{"a":1,"b":2,"c":3,"d":4,"e":5,"f":6,"g":7}`)

	p.ScrollBy(-10)
	if p.scrollOff != 0 {
		t.Errorf("scroll should clamp at 0, got %d", p.scrollOff)
	}
	p.ScrollBy(1000)
	if p.scrollOff >= len(p.rendered) {
		t.Errorf("scroll should clamp below content length, got %d of %d", p.scrollOff, len(p.rendered))
	}
}
