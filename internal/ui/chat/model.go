// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view: the persisted transcript, the input
// bar, and the optional file attachment.
//
// The view moves through three states. It starts in StateHydrating while
// the stored history loads, then settles in StateIdle. Submitting a turn
// moves it to StateSending until the backend answers; both the user text
// and the assistant response are appended together when it does, so the
// transcript never shows a question without its answer. The composed text
// and staged file clear only when a turn succeeds; a failed send leaves
// them in place for a retry.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/assist-tui/internal/gateway"
	"github.com/jeranaias/assist-tui/internal/model"
	"github.com/jeranaias/assist-tui/internal/ui/components"
	"github.com/jeranaias/assist-tui/internal/ui/styles"
)

// Backend is the slice of the backend client the chat view needs.
type Backend interface {
	FetchHistory(ctx context.Context, userID string) ([]gateway.HistoryRecord, error)
	SendChat(ctx context.Context, userID, message string, attachment *model.Attachment) (string, error)
}

// State is the chat pipeline state.
type State int

const (
	// StateHydrating means the stored history is still loading. Sends are
	// rejected so a send result cannot race the wholesale history replace.
	StateHydrating State = iota

	// StateIdle means the view accepts input.
	StateIdle

	// StateSending means one turn is in flight.
	StateSending
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateHydrating:
		return "hydrating"
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	default:
		return "unknown"
	}
}

// Model is the chat view.
type Model struct {
	backend Backend
	userID  string
	theme   *styles.Theme

	state        State
	conversation *model.Conversation

	viewport viewport.Model
	input    textinput.Model
	spinner  components.Spinner

	picker      filepicker.Model
	pickingFile bool
	attachment  *model.Attachment

	renderer        *glamour.TermRenderer
	markdownEnabled bool

	width  int
	height int
	ready  bool
}

// New creates a chat view for the signed-in user. History hydration starts
// from Init; a fresh model is created on every entry into the chat view so
// hydration happens exactly once per visit.
func New(backend Backend, userID string, markdownEnabled bool, theme *styles.Theme) Model {
	input := textinput.New()
	input.Placeholder = "Ask something..."
	input.CharLimit = 4000
	input.Focus()

	picker := filepicker.New()
	picker.AllowedTypes = []string{".pdf", ".txt", ".csv", ".xlsx", ".docx"}

	sp := components.NewSpinner("Loading history")
	sp.Start() // ticks resume from Init

	return Model{
		backend:         backend,
		userID:          userID,
		theme:           theme,
		state:           StateHydrating,
		conversation:    model.NewConversation(),
		input:           input,
		spinner:         sp,
		picker:          picker,
		markdownEnabled: markdownEnabled,
	}
}

// State returns the current pipeline state.
func (m Model) State() State {
	return m.state
}

// Attachment returns the staged file, or nil.
func (m Model) Attachment() *model.Attachment {
	return m.attachment
}

// SetSize updates the layout dimensions and rebuilds the renderer to the
// new wrap width.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	chromeHeight := 4 // input bar, borders, attachment chip
	vpHeight := height - chromeHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}

	m.input.Width = width - 6
	m.picker.Height = vpHeight

	if m.markdownEnabled {
		wrap := width - 8
		if wrap < 20 {
			wrap = 20
		}
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		); err == nil {
			m.renderer = r
		}
	}

	m.refreshTranscript()
}
