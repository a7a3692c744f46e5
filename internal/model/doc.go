// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for transcripts and messages.
//
// This package defines the core domain types used throughout the application
// for representing tutoring-chat transcripts and their messages. Message
// content is raw Markdown; the spec blocks and math embedded in it are
// extracted downstream, never here.
//
// # Key Types
//
//   - Conversation: Container for a transcript with messages and metadata
//   - Message: Single message with role, content, and timestamp
//   - Role: Message role enumeration (user, assistant, system)
//
// # Usage
//
// Load a transcript from disk:
//
//	conv, err := model.LoadTranscript("lesson.md")
//	if err != nil {
//	    return err
//	}
//	blocks := markdown.Extract(conv.Combined())
package model
