// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session provides the persisted sign-in state for the assist TUI.
//
// The store is the terminal analog of the web client's local storage: two
// scalar fields (role and user id) that survive restarts and are cleared
// only by an explicit logout. There is no expiry; a session is valid until
// cleared.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeranaias/assist-tui/internal/model"
	"github.com/jeranaias/assist-tui/internal/util"
)

// sessionFileName is the file under the state directory holding the session.
const sessionFileName = "session.json"

// Session is the authenticated principal. Both fields are present together
// or not at all; the store never persists a partial session.
type Session struct {
	Role   model.Role `json:"role"`
	UserID string     `json:"user_id"`
}

// ErrNoSession is returned by Load when no session file exists.
var ErrNoSession = errors.New("no session")

// =============================================================================
// STORE
// =============================================================================

// Store reads and writes the session file. Safe for concurrent use, though
// in practice writes only happen on login and logout.
type Store struct {
	mu   sync.Mutex
	path string

	// cached session, loaded lazily
	loaded  bool
	current Session
}

// NewStore creates a store rooted at dir (typically ~/.assist).
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, sessionFileName)}
}

// DefaultDir returns the default state directory, ~/.assist.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".assist"), nil
}

// Get returns the current session and true, or false when signed out.
// The role value is stored as-is; validating it is the auth flow's job.
func (s *Store) Get() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.current = s.read()
		s.loaded = true
	}
	if s.current.Role == "" || s.current.UserID == "" {
		return Session{}, false
	}
	return s.current, true
}

// Set persists a session. Role and user id are written together in one
// atomic file write so a crash can never leave half a session behind.
func (s *Store) Set(role model.Role, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := Session{Role: role, UserID: userID}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	// 0600: the session identifies the signed-in user.
	if err := util.AtomicWriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	s.current = sess
	s.loaded = true
	return nil
}

// Clear removes the persisted session. Clearing an already-empty store is
// not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}
	s.loaded = true

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// read loads the session file from disk. A missing, unreadable or partial
// file all count as signed out.
func (s *Store) read() Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}
	}
	if sess.Role == "" || sess.UserID == "" {
		return Session{}
	}
	return sess
}
