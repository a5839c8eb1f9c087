// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/assist-tui/internal/model"
)

// refreshTranscript re-renders the conversation into the viewport and
// scrolls to the newest message.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// renderTranscript renders the whole conversation.
func (m *Model) renderTranscript() string {
	if m.conversation.IsEmpty() {
		if m.state == StateHydrating {
			return ""
		}
		return m.theme.HeaderSubtitle.Render("No messages yet. Ask something below.")
	}

	var b strings.Builder
	for _, msg := range m.conversation.Messages {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	return b.String()
}

// renderMessage renders one bubble. Assistant messages go through the
// markdown renderer when one is available.
func (m *Model) renderMessage(msg model.Message) string {
	if msg.Role == model.RoleUser {
		bubble := m.theme.UserBubble.MaxWidth(m.bubbleWidth()).Render(msg.Content)
		if m.width > 0 {
			return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, bubble)
		}
		return bubble
	}

	content := msg.Content
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(msg.Content); err == nil {
			content = strings.TrimRight(rendered, "\n")
		}
	}
	return m.theme.AssistantBubble.MaxWidth(m.bubbleWidth()).Render(content)
}

// bubbleWidth caps message bubbles below the viewport width.
func (m *Model) bubbleWidth() int {
	w := m.viewport.Width - 8
	if w < 20 {
		w = 20
	}
	return w
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return ""
	}

	if m.pickingFile {
		title := m.theme.HeaderTitle.Render("Attach a file")
		hint := m.theme.ShortcutDesc.Render("enter select - esc cancel")
		return title + "\n" + m.picker.View() + "\n" + hint
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.attachment != nil {
		b.WriteString(m.theme.AttachmentChip.Render("attached: " + m.attachment.Name()))
		b.WriteString(m.theme.ShortcutDesc.Render("  ctrl+x remove"))
		b.WriteString("\n")
	}

	if m.state != StateIdle {
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	}

	b.WriteString(m.theme.InputContainer.Width(m.width).Render(
		m.theme.InputPrompt.Render("> ") + m.input.View(),
	))

	return b.String()
}
