// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// =============================================================================
// TRANSCRIPT LOADING
// =============================================================================
//
// Two input shapes are accepted. JSON files carry a serialized Conversation.
// Markdown files use role heading markers:
//
//	### User
//	How does a spring oscillate?
//
//	### Assistant
//	Consider the restoring force...
//
// A Markdown file without any role marker becomes a single assistant
// message, so plain notes files preview fine too.

// roleMarkers maps heading text onto roles, case-insensitively.
var roleMarkers = map[string]Role{
	"user":      RoleUser,
	"you":       RoleUser,
	"student":   RoleUser,
	"assistant": RoleAssistant,
	"tutor":     RoleAssistant,
	"system":    RoleSystem,
}

// LoadTranscript reads a transcript file, dispatching on extension.
func LoadTranscript(path string) (*Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	var conv *Conversation
	if strings.EqualFold(filepath.Ext(path), ".json") {
		conv, err = ParseJSON(data)
		if err != nil {
			return nil, err
		}
	} else {
		conv = ParseMarkdown(string(data))
	}
	if conv.Title == "" {
		base := filepath.Base(path)
		conv.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return conv, nil
}

// ParseJSON decodes a serialized conversation.
func ParseJSON(data []byte) (*Conversation, error) {
	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("parsing transcript JSON: %w", err)
	}
	for _, m := range conv.Messages {
		if m.Role == "" {
			m.Role = RoleAssistant
		}
	}
	return &conv, nil
}

// ParseMarkdown splits a Markdown document on role heading markers.
func ParseMarkdown(src string) *Conversation {
	conv := NewConversation()
	lines := strings.Split(src, "\n")

	role := RoleAssistant
	var body []string

	flush := func() {
		content := strings.TrimSpace(strings.Join(body, "\n"))
		body = body[:0]
		if content == "" {
			return
		}
		conv.AddMessage(NewMessage(role, content))
	}

	for _, line := range lines {
		if r, ok := matchRoleMarker(line); ok {
			flush()
			role = r
			continue
		}
		body = append(body, line)
	}
	flush()
	return conv
}

// matchRoleMarker recognizes "### User"-style headings and "User:" lines.
func matchRoleMarker(line string) (Role, bool) {
	s := strings.TrimSpace(line)
	if h := strings.TrimLeft(s, "#"); h != s {
		s = strings.TrimSpace(h)
	} else if strings.HasSuffix(s, ":") {
		s = strings.TrimSuffix(s, ":")
	} else {
		return "", false
	}
	r, ok := roleMarkers[strings.ToLower(s)]
	return r, ok
}
