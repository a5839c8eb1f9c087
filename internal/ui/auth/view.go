// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// fieldLabels maps field indexes to their form labels.
var fieldLabels = [fieldCount]string{
	fieldFirstName: "First name",
	fieldLastName:  "Last name",
	fieldEmail:     "Email",
	fieldPassword:  "Password",
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	title := "Sign in"
	hint := "enter submit - ctrl+r register - tab next field"
	if m.mode == ModeRegister {
		title = "Create account"
		hint = "enter submit - ctrl+r back to login - tab next field"
	}

	b.WriteString(m.theme.HeaderTitle.Render(title))
	b.WriteString("\n\n")

	for _, f := range m.visibleFields() {
		label := m.theme.FormLabel.Render(fieldLabels[f])
		if f == m.focus {
			label = m.theme.FormFocused.Render(fieldLabels[f])
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(m.inputs[f].View())
		b.WriteString("\n\n")
	}

	if m.submitting {
		b.WriteString(m.theme.ThinkingText.Render("Contacting server..."))
		b.WriteString("\n")
	} else if m.message != "" {
		style := m.theme.FormError
		if m.messageOK {
			style = m.theme.FormSuccess
		}
		b.WriteString(style.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutDesc.Render(hint))

	form := m.theme.FormBox.Render(b.String())
	if m.width <= 0 || m.height <= 0 {
		return form
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}
