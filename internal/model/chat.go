// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// ChatRole is the kind of node in the chat sidebar.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
	ChatRoleError     ChatRole = "error"
	ChatRoleNotice    ChatRole = "notice"
	ChatRoleTyping    ChatRole = "typing"
)

// DisplayName returns a human-readable name for the role.
func (r ChatRole) DisplayName() string {
	switch r {
	case ChatRoleUser:
		return "You"
	case ChatRoleAssistant:
		return "Coach"
	case ChatRoleError:
		return "Error"
	case ChatRoleNotice:
		return "Plan"
	case ChatRoleTyping:
		return "Coach"
	default:
		return string(r)
	}
}

// TypingText is the placeholder shown while a reply is pending.
const TypingText = "Thinking..."

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// ChatMessage is one node appended to the chat message list.
type ChatMessage struct {
	ID        string
	Role      ChatRole
	Text      string
	Link      string // set on plan-updated notices
	Timestamp time.Time
}

// NewChatMessage creates a message with a fresh id.
func NewChatMessage(role ChatRole, text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// IsTerminal reports whether the message ends a pending send.
func (m ChatMessage) IsTerminal() bool {
	return m.Role == ChatRoleAssistant || m.Role == ChatRoleError
}
