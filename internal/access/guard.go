// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package access provides the role guard applied by every protected view.
//
// Two predicates exist and are deliberately kept distinct:
//
//   - RequireSession: is anyone signed in at all? Failure sends the user to
//     the login view.
//   - Authorize: does the signed-in user hold the required role? Failure
//     produces a blocking notice and sends the user to the chat view.
//
// Every role-gated view applies the same policy through this package rather
// than re-implementing its own check.
package access

import (
	"errors"
	"fmt"

	"github.com/jeranaias/assist-tui/internal/model"
	"github.com/jeranaias/assist-tui/internal/session"
)

// DeniedNotice is the blocking notice shown when a signed-in user lacks the
// required role.
const DeniedNotice = "Access Denied! Only Admins can access this page."

var (
	// ErrDenied indicates the session exists but lacks the required role.
	ErrDenied = errors.New("access denied")

	// ErrNoSession indicates no session exists at all.
	ErrNoSession = errors.New("not signed in")
)

// Guard decides whether the current session may activate a given view.
// The check runs once per view activation, not continuously.
type Guard struct {
	store *session.Store
}

// NewGuard creates a guard over the given session store.
func NewGuard(store *session.Store) *Guard {
	return &Guard{store: store}
}

// RequireSession returns the current session, or ErrNoSession when nobody
// is signed in. This is the presence predicate; it says nothing about roles.
func (g *Guard) RequireSession() (session.Session, error) {
	sess, ok := g.store.Get()
	if !ok {
		return session.Session{}, ErrNoSession
	}
	return sess, nil
}

// Authorize checks that the current session holds the required role.
// It returns ErrNoSession when signed out and ErrDenied on a role mismatch,
// so callers can route the two failures differently.
func (g *Guard) Authorize(required model.Role) error {
	sess, ok := g.store.Get()
	if !ok {
		return ErrNoSession
	}
	if sess.Role != required {
		return fmt.Errorf("%w: role %q does not satisfy %q", ErrDenied, sess.Role, required)
	}
	return nil
}
