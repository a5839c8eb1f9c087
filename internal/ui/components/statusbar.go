// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/assist-tui/internal/model"
	"github.com/jeranaias/assist-tui/internal/ui/styles"
	"github.com/jeranaias/assist-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application status.
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusSending
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusSending:
		return "Sending..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
// ACCESSIBILITY: distinct shapes alongside colors for colorblind users.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading, StatusSending:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// Shortcut is one key hint rendered on the right side of the bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom status bar: signed-in identity on the left,
// current status in the middle, key hints on the right.
type StatusBar struct {
	Role      model.Role
	UserEmail string
	Status    Status
	Width     int
	Shortcuts []Shortcut

	theme *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth updates the available width.
func (b *StatusBar) SetWidth(width int) {
	b.Width = width
}

// View renders the status bar.
func (b *StatusBar) View() string {
	if b.Width <= 0 {
		return ""
	}

	left := b.identityView()
	right := b.shortcutsView()
	middle := b.Status.Icon() + " " + b.Status.String()

	used := lipgloss.Width(left) + lipgloss.Width(middle) + lipgloss.Width(right)
	gap := b.Width - used - 4
	if gap < 2 {
		// Narrow terminal: drop the shortcuts first.
		right = ""
		gap = b.Width - lipgloss.Width(left) - lipgloss.Width(middle) - 4
		if gap < 2 {
			gap = 2
		}
	}
	half := gap / 2

	line := left + strings.Repeat(" ", half) + middle + strings.Repeat(" ", gap-half) + right
	return b.theme.StatusBar.Width(b.Width).Render(util.TruncateWidth(line, b.Width-2))
}

// identityView renders the signed-in role and email.
func (b *StatusBar) identityView() string {
	if b.Role == "" {
		return b.theme.ShortcutDesc.Render("signed out")
	}

	roleStyle := b.theme.RoleEmployee
	if b.Role == model.RoleAdmin {
		roleStyle = b.theme.RoleAdmin
	}

	out := roleStyle.Render(string(b.Role))
	if b.UserEmail != "" {
		out += b.theme.ShortcutDesc.Render(" " + b.UserEmail)
	}
	return out
}

// shortcutsView renders the key hints.
func (b *StatusBar) shortcutsView() string {
	if len(b.Shortcuts) == 0 {
		return ""
	}

	parts := make([]string, 0, len(b.Shortcuts))
	for _, sc := range b.Shortcuts {
		parts = append(parts, b.theme.ShortcutKey.Render(sc.Key)+" "+b.theme.ShortcutDesc.Render(sc.Desc))
	}
	return strings.Join(parts, "  ")
}
