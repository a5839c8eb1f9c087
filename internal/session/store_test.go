// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/assist-tui/internal/model"
)

func TestStore_EmptyByDefault(t *testing.T) {
	store := NewStore(t.TempDir())

	_, ok := store.Get()
	require.False(t, ok, "fresh store should have no session")
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Set(model.RoleEmployee, "42"))

	sess, ok := store.Get()
	require.True(t, ok)
	require.Equal(t, model.RoleEmployee, sess.Role)
	require.Equal(t, "42", sess.UserID)
}

func TestStore_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	first := NewStore(dir)
	require.NoError(t, first.Set(model.RoleAdmin, "7"))

	// A fresh store on the same directory models a process restart.
	second := NewStore(dir)
	sess, ok := second.Get()
	require.True(t, ok)
	require.Equal(t, model.RoleAdmin, sess.Role)
	require.Equal(t, "7", sess.UserID)
}

func TestStore_ClearRemovesFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Set(model.RoleEmployee, "42"))
	require.NoError(t, store.Clear())

	_, ok := store.Get()
	require.False(t, ok)

	_, err := os.Stat(filepath.Join(dir, sessionFileName))
	require.True(t, os.IsNotExist(err), "session file should be removed")

	// Clearing again is fine.
	require.NoError(t, store.Clear())
}

func TestStore_PartialSessionReadsAsSignedOut(t *testing.T) {
	// A file with only one of the two fields must not produce a session.
	dir := t.TempDir()
	path := filepath.Join(dir, sessionFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"role":"Employee"}`), 0600))

	store := NewStore(dir)
	_, ok := store.Get()
	require.False(t, ok, "partial session must read as signed out")
}

func TestStore_CorruptFileReadsAsSignedOut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, sessionFileName)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	store := NewStore(dir)
	_, ok := store.Get()
	require.False(t, ok)
}
