// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/assist-tui/internal/gateway"
	"github.com/jeranaias/assist-tui/internal/model"
	"github.com/jeranaias/assist-tui/internal/session"
	"github.com/jeranaias/assist-tui/internal/ui/nav"
	"github.com/jeranaias/assist-tui/internal/ui/styles"
)

// fakeAuth records calls and returns scripted results.
type fakeAuth struct {
	loginResult gateway.LoginResult
	loginErr    error
	loginCalls  int

	registerMsg   string
	registerErr   error
	registered    []gateway.Registration
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (gateway.LoginResult, error) {
	f.loginCalls++
	return f.loginResult, f.loginErr
}

func (f *fakeAuth) Register(_ context.Context, reg gateway.Registration) (string, error) {
	f.registered = append(f.registered, reg)
	return f.registerMsg, f.registerErr
}

func newTestModel(t *testing.T, auth *fakeAuth) (Model, *session.Store) {
	t.Helper()
	store := session.NewStore(t.TempDir())
	return New(auth, store, styles.NewTheme()), store
}

// run executes a command and feeds the resulting message back into Update,
// the way the Bubble Tea runtime would.
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Msg) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	m, next := m.Update(msg)
	_ = next
	return m, msg
}

func pressEnter(m Model) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSubmit_RequiresAllVisibleFields(t *testing.T) {
	auth := &fakeAuth{}
	m, _ := newTestModel(t, auth)

	m, cmd := pressEnter(m)
	require.Nil(t, cmd)
	require.Equal(t, "All fields are required", m.message)
	require.Zero(t, auth.loginCalls)
}

func TestLogin_EmployeeNavigatesToChat(t *testing.T) {
	auth := &fakeAuth{loginResult: gateway.LoginResult{Role: "Employee", UserID: "42"}}
	m, store := newTestModel(t, auth)
	m.inputs[fieldEmail].SetValue("a@corp.example")
	m.inputs[fieldPassword].SetValue("pw")

	m, cmd := pressEnter(m)
	require.True(t, m.submitting)

	m, _ = run(t, m, cmd) // LoginResultMsg
	require.False(t, m.submitting)

	sess, ok := store.Get()
	require.True(t, ok)
	require.Equal(t, model.RoleEmployee, sess.Role)
	require.Equal(t, "42", sess.UserID)

	// The follow-up command must request chat navigation.
	_, navCmd := m.handleLoginResult(LoginResultMsg{Result: auth.loginResult})
	require.Equal(t, nav.ToMsg{Target: nav.ViewChat}, navCmd())
}

func TestLogin_AdminNavigatesToAdmin(t *testing.T) {
	auth := &fakeAuth{loginResult: gateway.LoginResult{Role: "Admin", UserID: "1"}}
	m, _ := newTestModel(t, auth)

	m2, cmd := m.handleLoginResult(LoginResultMsg{Result: auth.loginResult})
	require.Empty(t, m2.message)
	require.Equal(t, nav.ToMsg{Target: nav.ViewAdmin}, cmd())
}

func TestLogin_NoRoleShowsMessageAndKeepsSignedOut(t *testing.T) {
	auth := &fakeAuth{loginResult: gateway.LoginResult{UserID: "42", Message: "Login successful"}}
	m, store := newTestModel(t, auth)
	m.inputs[fieldEmail].SetValue("a@corp.example")
	m.inputs[fieldPassword].SetValue("pw")

	m, cmd := pressEnter(m)
	m, _ = run(t, m, cmd)

	require.Equal(t, "Login failed. No role assigned.", m.message)
	_, ok := store.Get()
	require.False(t, ok, "no session may be created without a role")
}

func TestLogin_BackendErrorShowsBackendMessage(t *testing.T) {
	auth := &fakeAuth{loginErr: &gateway.APIError{Status: 401, Message: "Invalid credentials"}}
	m, store := newTestModel(t, auth)
	m.inputs[fieldEmail].SetValue("a@corp.example")
	m.inputs[fieldPassword].SetValue("wrong")

	m, cmd := pressEnter(m)
	m, _ = run(t, m, cmd)

	require.Equal(t, "Invalid credentials", m.message)
	_, ok := store.Get()
	require.False(t, ok)
}

func TestLogin_TransportErrorFallsBack(t *testing.T) {
	auth := &fakeAuth{loginErr: errors.New("connection refused")}
	m, _ := newTestModel(t, auth)

	m2, _ := m.handleLoginResult(LoginResultMsg{Err: auth.loginErr})
	require.Equal(t, "Login failed", m2.message)
}

func TestRegister_SuccessReturnsToLogin(t *testing.T) {
	auth := &fakeAuth{registerMsg: "Registration successful. Waiting for admin approval."}
	m, _ := newTestModel(t, auth)
	m.toggleMode()
	require.Equal(t, ModeRegister, m.mode)

	m.inputs[fieldFirstName].SetValue("Ada")
	m.inputs[fieldLastName].SetValue("L")
	m.inputs[fieldEmail].SetValue("ada@corp.example")
	m.inputs[fieldPassword].SetValue("pw")

	m, cmd := pressEnter(m)
	m, _ = run(t, m, cmd)

	require.Len(t, auth.registered, 1)
	require.Equal(t, "Ada", auth.registered[0].FirstName)

	require.Equal(t, ModeLogin, m.mode)
	require.Equal(t, "Registration successful. Waiting for admin approval.", m.message)
	require.True(t, m.messageOK)
	require.Empty(t, m.inputs[fieldPassword].Value(), "password cleared after registration")
	require.Equal(t, "ada@corp.example", m.inputs[fieldEmail].Value(), "email survives the mode switch")
}

func TestRegister_ErrorFallsBack(t *testing.T) {
	auth := &fakeAuth{registerErr: errors.New("boom")}
	m, _ := newTestModel(t, auth)

	m2, _ := m.handleRegisterResult(RegisterResultMsg{Err: auth.registerErr})
	require.Equal(t, "Error registering", m2.message)
	require.Equal(t, ModeLogin, m2.mode)
}

func TestToggleMode_KeepsFieldsClearsMessage(t *testing.T) {
	m, _ := newTestModel(t, &fakeAuth{})
	m.inputs[fieldEmail].SetValue("a@corp.example")
	m.message = "stale error"

	m.toggleMode()
	require.Equal(t, ModeRegister, m.mode)
	require.Empty(t, m.message)
	require.Equal(t, "a@corp.example", m.inputs[fieldEmail].Value())
}

func TestSubmitting_DropsFurtherKeys(t *testing.T) {
	auth := &fakeAuth{loginResult: gateway.LoginResult{Role: "Employee", UserID: "42"}}
	m, _ := newTestModel(t, auth)
	m.inputs[fieldEmail].SetValue("a@corp.example")
	m.inputs[fieldPassword].SetValue("pw")

	m, _ = pressEnter(m)
	require.True(t, m.submitting)

	m, cmd := pressEnter(m)
	require.Nil(t, cmd, "no second request while one is in flight")
}
