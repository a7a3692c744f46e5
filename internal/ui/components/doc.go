// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual UI components for the chalkviz TUI.

Components are plain structs rendered to strings; the preview model owns
the state and calls View on each component per frame.

  - StatusBar - bottom bar with block position, zoom, pan, and shortcuts
  - ErrorBox - inline error for blocks that failed to parse or compile
  - JSONPanel - chroma-highlighted JSON payload pane for the split view
*/
package components
