// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nav defines the view identifiers and navigation messages shared
// between the root model and the individual views. It sits below every UI
// package so views can request navigation without importing each other.
package nav

import tea "github.com/charmbracelet/bubbletea"

// View identifies one top-level screen.
type View int

const (
	ViewLogin View = iota
	ViewChat
	ViewAdmin
)

// String returns the view name for logging.
func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewChat:
		return "chat"
	case ViewAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ToMsg asks the root model to switch views. The root model applies the
// access policy before honoring it; views never check access themselves.
type ToMsg struct {
	Target View
}

// To returns a command that requests navigation to the given view.
func To(v View) tea.Cmd {
	return func() tea.Msg {
		return ToMsg{Target: v}
	}
}

// LogoutMsg asks the root model to clear the session and return to login.
type LogoutMsg struct{}

// Logout returns a command that requests a sign-out.
func Logout() tea.Cmd {
	return func() tea.Msg {
		return LogoutMsg{}
	}
}

// NoticeMsg asks the root model to flash a transient notice over the
// current view, e.g. when an access check turns a navigation away.
type NoticeMsg struct {
	Text string
}

// Notify returns a command that flashes a notice.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NoticeMsg{Text: text}
	}
}
