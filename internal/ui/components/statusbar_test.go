// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/assist-tui/internal/model"
	"github.com/jeranaias/assist-tui/internal/ui/styles"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReady, "Ready"},
		{StatusLoading, "Loading..."},
		{StatusSending, "Sending..."},
		{StatusError, "Error"},
		{Status(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Status(%d).String() = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestStatusBar_ShowsIdentity(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.Role = model.RoleAdmin
	bar.UserEmail = "ada@corp.example"
	bar.SetWidth(100)

	view := bar.View()
	if !strings.Contains(view, "Admin") {
		t.Errorf("status bar should show role, got %q", view)
	}
	if !strings.Contains(view, "ada@corp.example") {
		t.Errorf("status bar should show email, got %q", view)
	}
}

func TestStatusBar_SignedOut(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(80)

	if !strings.Contains(bar.View(), "signed out") {
		t.Error("empty role should render as signed out")
	}
}

func TestStatusBar_ZeroWidth(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(0)

	if bar.View() != "" {
		t.Error("zero width should render nothing")
	}
}

func TestSpinner_InactiveRendersNothing(t *testing.T) {
	s := NewSpinner("Thinking")
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}

	s.Start()
	if s.View() == "" {
		t.Error("active spinner should render")
	}
	if !s.IsActive() {
		t.Error("spinner should be active after Start")
	}

	s.Stop()
	if s.View() != "" {
		t.Error("stopped spinner should render nothing")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m 0s"},
		{125, "2m 5s"},
	}
	for _, tc := range tests {
		got := formatElapsed(time.Duration(tc.secs) * time.Second)
		if got != tc.want {
			t.Errorf("formatElapsed(%ds) = %q, want %q", tc.secs, got, tc.want)
		}
	}
}
