// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assist-tui/internal/gateway"
	"github.com/jeranaias/assist-tui/internal/model"
	"github.com/jeranaias/assist-tui/internal/ui/nav"
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case LoginResultMsg:
		return m.handleLoginResult(msg)

	case RegisterResultMsg:
		return m.handleRegisterResult(msg)
	}

	return m.updateInputs(msg)
}

// handleKey routes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.submitting {
		// One request at a time. Keys are dropped until the result lands.
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.cycleFocus(1)
		return m, nil

	case "shift+tab", "up":
		m.cycleFocus(-1)
		return m, nil

	case "ctrl+r":
		m.toggleMode()
		return m, nil

	case "enter":
		return m.submit()
	}

	return m.updateInputs(msg)
}

// updateInputs forwards a message to the focused input.
func (m Model) updateInputs(msg tea.Msg) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(m.inputs))
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// submit validates the visible fields and fires the request.
func (m Model) submit() (Model, tea.Cmd) {
	for _, f := range m.visibleFields() {
		if strings.TrimSpace(m.inputs[f].Value()) == "" {
			m.message = "All fields are required"
			m.messageOK = false
			m.setFocus(f)
			return m, nil
		}
	}

	m.submitting = true
	m.message = ""

	if m.mode == ModeRegister {
		reg := gateway.Registration{
			FirstName: strings.TrimSpace(m.inputs[fieldFirstName].Value()),
			LastName:  strings.TrimSpace(m.inputs[fieldLastName].Value()),
			Email:     strings.TrimSpace(m.inputs[fieldEmail].Value()),
			Password:  m.inputs[fieldPassword].Value(),
		}
		return m, registerCmd(m.auth, reg)
	}

	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	return m, loginCmd(m.auth, email, m.inputs[fieldPassword].Value())
}

// handleLoginResult applies the outcome of a login attempt. A session is
// written only when the backend assigned a role; a role-less login is a
// failure even though the credentials were accepted.
func (m Model) handleLoginResult(msg LoginResultMsg) (Model, tea.Cmd) {
	m.submitting = false

	if msg.Err != nil {
		log.Printf("auth: login failed: %v", msg.Err)
		m.message = gateway.ErrorMessage(msg.Err, loginFailedFallback)
		m.messageOK = false
		return m, nil
	}

	if msg.Result.Role == "" {
		m.message = noRoleMessage
		m.messageOK = false
		return m, nil
	}

	role := model.Role(msg.Result.Role)
	if err := m.store.Set(role, msg.Result.UserID); err != nil {
		log.Printf("auth: failed to persist session: %v", err)
		m.message = "Failed to save session"
		m.messageOK = false
		return m, nil
	}

	if role == model.RoleEmployee {
		return m, nav.To(nav.ViewChat)
	}
	return m, nav.To(nav.ViewAdmin)
}

// handleRegisterResult applies the outcome of a registration attempt.
func (m Model) handleRegisterResult(msg RegisterResultMsg) (Model, tea.Cmd) {
	m.submitting = false

	if msg.Err != nil {
		log.Printf("auth: registration failed: %v", msg.Err)
		m.message = gateway.ErrorMessage(msg.Err, registerFailedFallback)
		m.messageOK = false
		return m, nil
	}

	// Back to the login form; the confirmation stays visible there.
	m.mode = ModeLogin
	m.setFocus(m.firstField())
	m.inputs[fieldPassword].SetValue("")
	m.message = msg.Message
	m.messageOK = true
	return m, nil
}
