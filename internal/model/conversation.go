// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds a complete transcript with metadata.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`

	Messages []*Message `json:"messages"`
}

// NewConversation creates an empty conversation with a generated ID.
func NewConversation() *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  make([]*Message, 0),
	}
}

// AddMessage appends a message and refreshes metadata.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.updateTitle()
}

// updateTitle derives the title from the first user message when unset.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	for _, m := range c.Messages {
		if m.Role == RoleUser && !m.IsEmpty() {
			c.Title = m.Preview(48)
			return
		}
	}
}

// IsEmpty returns true when no message carries content.
func (c *Conversation) IsEmpty() bool {
	for _, m := range c.Messages {
		if !m.IsEmpty() {
			return false
		}
	}
	return true
}

// Combined returns all message content joined for whole-transcript block
// extraction.
func (c *Conversation) Combined() string {
	var sb strings.Builder
	for i, m := range c.Messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.Content)
	}
	return sb.String()
}
