// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_GeneratesUniqueIDs(t *testing.T) {
	a := NewMessage(RoleUser, "first")
	b := NewMessage(RoleUser, "second")
	if a.ID == "" || b.ID == "" {
		t.Fatal("message IDs should be generated")
	}
	if a.ID == b.ID {
		t.Error("message IDs should be unique")
	}
}

func TestMessage_Preview(t *testing.T) {
	m := NewMessage(RoleAssistant, "first line of the answer\nsecond line")
	got := m.Preview(100)
	if got != "first line of the answer" {
		t.Errorf("Preview() = %q, want first line only", got)
	}

	long := NewMessage(RoleAssistant, strings.Repeat("a", 50))
	if got := long.Preview(10); len([]rune(got)) != 10 {
		t.Errorf("Preview() length = %d, want 10", len([]rune(got)))
	}
}

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Tutor"},
		{RoleSystem, "System"},
		{Role("other"), "other"},
	}
	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_TitleFromFirstUserMessage(t *testing.T) {
	conv := NewConversation()
	conv.AddMessage(NewMessage(RoleSystem, "setup"))
	conv.AddMessage(NewMessage(RoleUser, "Explain projectile motion"))
	conv.AddMessage(NewMessage(RoleUser, "and then friction"))
	if conv.Title != "Explain projectile motion" {
		t.Errorf("Title = %q", conv.Title)
	}
}

func TestConversation_Combined(t *testing.T) {
	conv := NewConversation()
	conv.AddMessage(NewMessage(RoleUser, "question"))
	conv.AddMessage(NewMessage(RoleAssistant, "answer"))
	if got := conv.Combined(); got != "question\n\nanswer" {
		t.Errorf("Combined() = %q", got)
	}
}

// =============================================================================
// TRANSCRIPT PARSING TESTS
// =============================================================================

func TestParseMarkdown_RoleHeadings(t *testing.T) {
	src := `### User
How fast does it fall?

### Assistant
Use $v = gt$ to find out.

### User
Thanks!`
	conv := ParseMarkdown(src)
	if len(conv.Messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(conv.Messages))
	}
	wantRoles := []Role{RoleUser, RoleAssistant, RoleUser}
	for i, m := range conv.Messages {
		if m.Role != wantRoles[i] {
			t.Errorf("message %d role = %q, want %q", i, m.Role, wantRoles[i])
		}
	}
	if !strings.Contains(conv.Messages[1].Content, "$v = gt$") {
		t.Error("math should survive parsing untouched")
	}
}

func TestParseMarkdown_ColonMarkers(t *testing.T) {
	src := "User:\nquestion\n\nTutor:\nanswer"
	conv := ParseMarkdown(src)
	if len(conv.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(conv.Messages))
	}
	if conv.Messages[1].Role != RoleAssistant {
		t.Errorf("tutor marker should map to assistant, got %q", conv.Messages[1].Role)
	}
}

func TestParseMarkdown_NoMarkers(t *testing.T) {
	conv := ParseMarkdown("Just a plain document\nwith two lines.")
	if len(conv.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(conv.Messages))
	}
	if conv.Messages[0].Role != RoleAssistant {
		t.Errorf("unmarked document should become an assistant message")
	}
}

func TestParseMarkdown_ProseColonNotAMarker(t *testing.T) {
	conv := ParseMarkdown("### Assistant\nHere are the steps:\n1. one\n2. two")
	if len(conv.Messages) != 1 {
		t.Fatalf("prose colon split the message: %d messages", len(conv.Messages))
	}
}

func TestLoadTranscript_JSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lesson.json")
	data := `{"title": "Springs", "messages": [
		{"role": "user", "content": "hi"},
		{"content": "missing role defaults to assistant"}
	]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	conv, err := LoadTranscript(path)
	if err != nil {
		t.Fatalf("LoadTranscript: %v", err)
	}
	if conv.Title != "Springs" {
		t.Errorf("Title = %q", conv.Title)
	}
	if conv.Messages[1].Role != RoleAssistant {
		t.Errorf("missing role should default to assistant, got %q", conv.Messages[1].Role)
	}
}

func TestLoadTranscript_TitleFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("plain content"), 0o644); err != nil {
		t.Fatal(err)
	}
	conv, err := LoadTranscript(path)
	if err != nil {
		t.Fatalf("LoadTranscript: %v", err)
	}
	if conv.Title != "notes" {
		t.Errorf("Title = %q, want notes", conv.Title)
	}
}

func TestLoadTranscript_MissingFile(t *testing.T) {
	if _, err := LoadTranscript("/does/not/exist.md"); err == nil {
		t.Error("missing file should error")
	}
}
