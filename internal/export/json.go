// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/chalkviz/internal/markdown"
	"github.com/jeranaias/chalkviz/internal/model"
	"github.com/jeranaias/chalkviz/internal/svg"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports transcripts to JSON format.
// NOTE: JSON exports always include the complete conversation data structure
// and do not respect filtering options. This ensures the exported JSON is a
// faithful representation of the transcript that can be re-imported.
type JSONExporter struct {
	// Options are accepted but currently not used for filtering.
	// JSON exports always include complete data.
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
// The options parameter is accepted for consistency with other exporters,
// but JSON exports always include complete conversation data.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a conversation to JSON format.
// NOTE: This always exports the complete conversation regardless of options.
func (e *JSONExporter) Export(conv *model.Conversation) ([]byte, error) {
	// Validate conversation data
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}

	return json.MarshalIndent(conv, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}

// =============================================================================
// BLOCK LISTING
// =============================================================================

// BlockInfo is one entry in a block listing: the token's identity and
// position plus the figure JSON for graphs that compiled.
type BlockInfo struct {
	Kind    string          `json:"kind"`
	Start   int             `json:"start"`
	End     int             `json:"end"`
	Display bool            `json:"display,omitempty"`
	Error   string          `json:"error,omitempty"`
	Payload string          `json:"payload,omitempty"`
	Figure  json.RawMessage `json:"figure,omitempty"`
}

// MarshalBlocks extracts every block from a source document and returns a
// JSON listing. Malformed blocks appear with their error instead of being
// dropped, so the listing doubles as a lint report.
func MarshalBlocks(src string) ([]byte, error) {
	rendered := RenderBlocks(src, svg.Options{})
	infos := make([]BlockInfo, 0, len(rendered))
	for _, rb := range rendered {
		info := BlockInfo{
			Kind:    rb.Block.Kind.String(),
			Start:   rb.Block.Start,
			End:     rb.Block.End,
			Display: rb.Block.Display,
			Error:   rb.Err,
		}
		if rb.Block.Kind == markdown.KindMath {
			info.Payload = rb.Block.Payload
		}
		if rb.Figure != nil {
			data, err := rb.Figure.JSON()
			if err != nil {
				return nil, fmt.Errorf("serialize figure: %w", err)
			}
			info.Figure = data
		}
		infos = append(infos, info)
	}
	return json.MarshalIndent(infos, "", "  ")
}
