// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assist-tui/internal/gateway"
	"github.com/jeranaias/assist-tui/internal/model"
)

// HistoryLoadedMsg carries the hydration result. Records arrive in wire
// order, newest first.
type HistoryLoadedMsg struct {
	Records []gateway.HistoryRecord
	Err     error
}

// SendResultMsg carries one completed chat turn. Text is the user text as
// it should appear in the transcript; for a file-only send that is the
// file name.
type SendResultMsg struct {
	Text     string
	FileName string
	Response string
	Err      error
}

// hydrateCmd fetches the stored history.
func hydrateCmd(backend Backend, userID string) tea.Cmd {
	return func() tea.Msg {
		records, err := backend.FetchHistory(context.Background(), userID)
		return HistoryLoadedMsg{Records: records, Err: err}
	}
}

// sendCmd performs one chat round trip. text is what the transcript will
// show; message is what goes on the wire (empty for a file-only send).
func sendCmd(backend Backend, userID, text, message string, attachment *model.Attachment) tea.Cmd {
	return func() tea.Msg {
		response, err := backend.SendChat(context.Background(), userID, message, attachment)
		return SendResultMsg{
			Text:     text,
			FileName: attachment.Name(),
			Response: response,
			Err:      err,
		}
	}
}
