// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat conversation.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/assist-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role identifies the sender of a chat message or the privilege level of a
// signed-in user. The chat roles and the account roles share the type because
// both come from the same backend enum.
type Role string

const (
	// Message roles.
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"

	// Account roles, as issued by the login endpoint.
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for a message role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single entry in the conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message with a generated ID.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        "msg_" + uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return NewMessage(RoleAssistant, content)
}

// Preview returns a truncated single-line preview of the message content.
func (m Message) Preview(maxRunes int) string {
	return util.TruncateRunes(m.Content, maxRunes)
}

// IsEmpty reports whether the message has no content.
func (m Message) IsEmpty() bool {
	return len(m.Content) == 0
}
