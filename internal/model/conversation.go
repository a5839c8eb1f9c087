// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// MaxMessages caps the in-memory conversation length. When exceeded, the
// oldest messages are pruned to prevent unbounded growth over a long session.
const MaxMessages = 1000

// Exchange is one stored question/response turn as returned by the history
// endpoint (newest first on the wire).
type Exchange struct {
	Question  string
	Response  string
	Timestamp string
}

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the visible chat transcript. It is append-only between
// hydrations; a hydration replaces the whole transcript.
type Conversation struct {
	Messages  []Message
	UpdatedAt time.Time
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		Messages:  make([]Message, 0),
		UpdatedAt: time.Now(),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message to the conversation.
func (c *Conversation) AddMessage(msg Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
	c.pruneOldMessages()
}

// AddUserMessage creates and appends a user message.
func (c *Conversation) AddUserMessage(content string) Message {
	msg := NewUserMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddAssistantMessage creates and appends an assistant message.
func (c *Conversation) AddAssistantMessage(content string) Message {
	msg := NewAssistantMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddExchange appends a completed user/assistant turn as a single step.
// Both messages land together; callers never observe the user message
// without its response.
func (c *Conversation) AddExchange(question, response string) {
	c.Messages = append(c.Messages, NewUserMessage(question), NewAssistantMessage(response))
	c.UpdatedAt = time.Now()
	c.pruneOldMessages()
}

// ReplaceFromHistory rebuilds the transcript wholesale from stored exchanges.
// The backend returns exchanges newest-first; they are reversed to
// oldest-first and each expands into a user message followed by an assistant
// message. Calling it twice with the same input yields an identical ordered
// transcript.
func (c *Conversation) ReplaceFromHistory(newestFirst []Exchange) {
	messages := make([]Message, 0, len(newestFirst)*2)
	for i := len(newestFirst) - 1; i >= 0; i-- {
		ex := newestFirst[i]
		messages = append(messages, NewUserMessage(ex.Question), NewAssistantMessage(ex.Response))
	}
	c.Messages = messages
	c.UpdatedAt = time.Now()
	c.pruneOldMessages()
}

// LastMessage returns the most recent message and true, or false if empty.
func (c *Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty reports whether the conversation has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clear removes all messages.
func (c *Conversation) Clear() {
	c.Messages = make([]Message, 0)
	c.UpdatedAt = time.Now()
}

// pruneOldMessages drops the oldest messages once the transcript exceeds
// MaxMessages. Turns are kept intact by pruning an even number of messages.
func (c *Conversation) pruneOldMessages() {
	if len(c.Messages) <= MaxMessages {
		return
	}
	drop := len(c.Messages) - MaxMessages
	if drop%2 != 0 {
		drop++
	}
	c.Messages = append([]Message(nil), c.Messages[drop:]...)
}
