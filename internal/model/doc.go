// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared across the assist TUI:
// chat messages and roles, the conversation transcript, and the pending
// file attachment.
//
// The conversation is owned by the chat view. It is append-only between
// hydrations; hydrating from the history endpoint replaces the transcript
// wholesale, oldest exchange first.
package model
