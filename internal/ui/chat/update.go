// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assist-tui/internal/model"
	"github.com/jeranaias/assist-tui/internal/ui/nav"
)

// Init implements tea.Model. Hydration fires here, so it happens exactly
// once for each entry into the chat view.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		hydrateCmd(m.backend, m.userID),
		m.spinner.Tick(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case HistoryLoadedMsg:
		return m.handleHistoryLoaded(msg)

	case SendResultMsg:
		return m.handleSendResult(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

// forward routes a non-key message to the child components.
func (m Model) forward(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	if m.pickingFile {
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey routes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.pickingFile {
		return m.handlePickerKey(msg)
	}

	switch msg.String() {
	case "enter":
		return m.submit()

	case "ctrl+f":
		if m.state == StateSending {
			return m, nil
		}
		m.pickingFile = true
		return m, m.picker.Init()

	case "ctrl+x":
		m.attachment = nil
		return m, nil

	case "ctrl+l":
		return m, nav.Logout()

	case "ctrl+g":
		// The root model decides whether this user may see the admin
		// console.
		return m, nav.To(nav.ViewAdmin)

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.state == StateSending {
		// The composed turn is on the wire; hold it until the result lands.
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handlePickerKey drives the file picker while it is open.
func (m Model) handlePickerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.pickingFile = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.attachment = model.NewAttachment(path)
		m.pickingFile = false
	}
	return m, cmd
}

// submit starts one chat turn. Outside StateIdle nothing happens: during
// hydration that keeps a send result from racing the wholesale history
// replace, and during a send it is the busy lockout.
func (m Model) submit() (Model, tea.Cmd) {
	if m.state != StateIdle {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())
	if text == "" && m.attachment == nil {
		return m, nil
	}

	// A file-only send shows the file name as the user's side of the turn.
	display := text
	if display == "" {
		display = m.attachment.Name()
	}

	// The composed text and staged file stay put until the turn succeeds,
	// so a failed send can be retried as-is.
	m.state = StateSending
	m.spinner.SetMessage("Thinking")

	return m, tea.Batch(
		sendCmd(m.backend, m.userID, display, text, m.attachment),
		m.spinner.Start(),
	)
}

// handleHistoryLoaded applies the hydration result. The transcript is
// replaced wholesale; a failed fetch just leaves it empty.
func (m Model) handleHistoryLoaded(msg HistoryLoadedMsg) (Model, tea.Cmd) {
	m.state = StateIdle
	m.spinner.Stop()

	if msg.Err != nil {
		log.Printf("chat: history hydration failed: %v", msg.Err)
	} else {
		exchanges := make([]model.Exchange, len(msg.Records))
		for i, r := range msg.Records {
			exchanges[i] = model.Exchange{
				Question:  r.Question,
				Response:  r.Response,
				Timestamp: r.Timestamp,
			}
		}
		m.conversation.ReplaceFromHistory(exchanges)
	}

	m.refreshTranscript()
	return m, nil
}

// handleSendResult applies one completed turn. Failures are logged and
// swallowed: no partial turn ever reaches the transcript.
func (m Model) handleSendResult(msg SendResultMsg) (Model, tea.Cmd) {
	m.state = StateIdle
	m.spinner.Stop()

	if msg.Err != nil {
		// The composed text and staged file are still in place; the user
		// retries by pressing enter again.
		log.Printf("chat: send failed (file=%q): %v", msg.FileName, msg.Err)
		return m, nil
	}

	m.input.SetValue("")
	m.attachment = nil
	m.conversation.AddExchange(msg.Text, msg.Response)
	m.refreshTranscript()
	return m, nil
}
