// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"path/filepath"

	"github.com/jeranaias/chalkviz/internal/markdown"
	"github.com/jeranaias/chalkviz/internal/svg"
	"github.com/jeranaias/chalkviz/internal/util"
)

// =============================================================================
// PER-BLOCK FILE OUTPUT
// =============================================================================

// WriteBlockFiles renders every spec block in a source document to its own
// file under dir: SVG for everything the vector renderer draws, figure JSON
// for 3D graphs. Math blocks and malformed blocks are skipped. Returns the
// paths written, in source order.
//
// Writes are atomic so a watcher on the output directory never sees a
// half-written file.
func WriteBlockFiles(src, dir string, opts svg.Options) ([]string, error) {
	rendered := RenderBlocks(src, opts)

	var paths []string
	seq := 0
	for _, rb := range rendered {
		if rb.Block.Kind == markdown.KindMath || !rb.OK() {
			continue
		}
		seq++

		var name string
		var content []byte
		switch {
		case rb.SVG != "":
			name = fmt.Sprintf("block_%03d_%s.svg", seq, rb.Block.Kind)
			content = []byte(rb.SVG)
		case rb.Figure != nil:
			data, err := rb.Figure.JSON()
			if err != nil {
				return paths, fmt.Errorf("serialize figure for block %d: %w", seq, err)
			}
			name = fmt.Sprintf("block_%03d_%s.json", seq, rb.Block.Kind)
			content = data
		default:
			continue
		}

		path := filepath.Join(dir, name)
		if err := util.AtomicWriteFileWithDir(path, content, 0644, 0755); err != nil {
			return paths, fmt.Errorf("write %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
