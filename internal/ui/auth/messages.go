// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assist-tui/internal/gateway"
)

// Fallback messages when the backend fails without a usable error body.
const (
	loginFailedFallback    = "Login failed"
	registerFailedFallback = "Error registering"

	// noRoleMessage is shown when the backend authenticates an account
	// that has no role assigned. No session is created in that case.
	noRoleMessage = "Login failed. No role assigned."
)

// LoginResultMsg carries the outcome of a login attempt.
type LoginResultMsg struct {
	Result gateway.LoginResult
	Err    error
}

// RegisterResultMsg carries the outcome of a registration attempt.
type RegisterResultMsg struct {
	Message string
	Err     error
}

// loginCmd performs the login round trip.
func loginCmd(auth Authenticator, email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := auth.Login(context.Background(), email, password)
		return LoginResultMsg{Result: result, Err: err}
	}
}

// registerCmd performs the registration round trip. The role is fixed to
// Employee inside the gateway; it never appears here.
func registerCmd(auth Authenticator, reg gateway.Registration) tea.Cmd {
	return func() tea.Msg {
		msg, err := auth.Register(context.Background(), reg)
		return RegisterResultMsg{Message: msg, Err: err}
	}
}
