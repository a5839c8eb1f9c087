// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "path/filepath"

// Attachment is a file staged for the next send. At most one attachment is
// pending at a time; it is cleared once the send completes.
type Attachment struct {
	// Path is the local filesystem path to the file.
	Path string
}

// NewAttachment stages a file by path.
func NewAttachment(path string) *Attachment {
	return &Attachment{Path: path}
}

// Name returns the base filename, which stands in for the message text when
// a file is sent without any text.
func (a *Attachment) Name() string {
	if a == nil {
		return ""
	}
	return filepath.Base(a.Path)
}
