// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the login and registration view.
//
// One model backs both forms. Switching modes keeps whatever the user has
// typed and only clears the inline message; a successful registration
// switches back to the login form with the backend's confirmation shown.
package auth

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jeranaias/assist-tui/internal/gateway"
	"github.com/jeranaias/assist-tui/internal/session"
	"github.com/jeranaias/assist-tui/internal/ui/styles"
)

// Authenticator is the slice of the backend client the auth view needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (gateway.LoginResult, error)
	Register(ctx context.Context, reg gateway.Registration) (string, error)
}

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// Field indexes into the inputs slice. Login mode only shows and cycles
// fieldEmail and fieldPassword; the name fields keep their text.
const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldPassword
	fieldCount
)

// Model is the login/registration view.
type Model struct {
	auth  Authenticator
	store *session.Store
	theme *styles.Theme

	mode       Mode
	inputs     []textinput.Model
	focus      int
	submitting bool

	// message is the inline feedback line under the form.
	message   string
	messageOK bool

	width  int
	height int
}

// New creates the auth view in login mode.
func New(auth Authenticator, store *session.Store, theme *styles.Theme) Model {
	inputs := make([]textinput.Model, fieldCount)

	first := textinput.New()
	first.Placeholder = "First name"
	first.CharLimit = 64
	inputs[fieldFirstName] = first

	last := textinput.New()
	last.Placeholder = "Last name"
	last.CharLimit = 64
	inputs[fieldLastName] = last

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 128
	inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	inputs[fieldPassword] = password

	m := Model{
		auth:   auth,
		store:  store,
		theme:  theme,
		mode:   ModeLogin,
		inputs: inputs,
	}
	m.setFocus(m.firstField())
	return m
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ModeName returns the current mode for the status bar.
func (m Model) ModeName() string {
	if m.mode == ModeRegister {
		return "register"
	}
	return "login"
}

// firstField returns the first visible field for the current mode.
func (m Model) firstField() int {
	if m.mode == ModeRegister {
		return fieldFirstName
	}
	return fieldEmail
}

// visibleFields returns the field indexes shown in the current mode.
func (m Model) visibleFields() []int {
	if m.mode == ModeRegister {
		return []int{fieldFirstName, fieldLastName, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

// setFocus focuses one input and blurs the rest.
func (m *Model) setFocus(field int) {
	m.focus = field
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// cycleFocus moves focus forward or backward through the visible fields.
func (m *Model) cycleFocus(delta int) {
	fields := m.visibleFields()
	pos := 0
	for i, f := range fields {
		if f == m.focus {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	m.setFocus(fields[pos])
}

// toggleMode switches between login and registration. Field contents
// survive the switch; only the inline message resets.
func (m *Model) toggleMode() {
	if m.mode == ModeLogin {
		m.mode = ModeRegister
	} else {
		m.mode = ModeLogin
	}
	m.message = ""
	m.messageOK = false
	m.setFocus(m.firstField())
}
