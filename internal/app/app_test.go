// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/assist-tui/internal/config"
	"github.com/jeranaias/assist-tui/internal/gateway"
	"github.com/jeranaias/assist-tui/internal/model"
	"github.com/jeranaias/assist-tui/internal/session"
	"github.com/jeranaias/assist-tui/internal/ui/chat"
	"github.com/jeranaias/assist-tui/internal/ui/nav"
	"github.com/jeranaias/assist-tui/internal/ui/styles"
)

// fakeClient satisfies Client and records which endpoints were hit.
type fakeClient struct {
	historyCalls int
	userCalls    int
}

func (f *fakeClient) Login(context.Context, string, string) (gateway.LoginResult, error) {
	return gateway.LoginResult{}, nil
}
func (f *fakeClient) Register(context.Context, gateway.Registration) (string, error) {
	return "", nil
}
func (f *fakeClient) FetchHistory(context.Context, string) ([]gateway.HistoryRecord, error) {
	f.historyCalls++
	return nil, nil
}
func (f *fakeClient) SendChat(context.Context, string, string, *model.Attachment) (string, error) {
	return "", nil
}
func (f *fakeClient) ListUsers(context.Context) ([]gateway.User, error) {
	f.userCalls++
	return nil, nil
}
func (f *fakeClient) ApproveUser(context.Context, string) error   { return nil }
func (f *fakeClient) BlockUser(context.Context, string) error     { return nil }
func (f *fakeClient) UnblockUser(context.Context, string) error   { return nil }
func (f *fakeClient) ListQueries(context.Context) ([]gateway.HistoryRecord, error) {
	return nil, nil
}
func (f *fakeClient) ListRules(context.Context) ([]gateway.Rule, error) { return nil, nil }
func (f *fakeClient) AddRule(context.Context, string) error             { return nil }
func (f *fakeClient) DeleteRule(context.Context, string) error          { return nil }
func (f *fakeClient) ListLogs(context.Context) ([]gateway.APILog, error) {
	return nil, nil
}
func (f *fakeClient) ListSensitiveLogs(context.Context) ([]gateway.SensitiveLog, error) {
	return nil, nil
}
func (f *fakeClient) Performance(context.Context) (map[string]gateway.ModelMetrics, error) {
	return nil, nil
}

func newApp(t *testing.T, client *fakeClient, role model.Role, userID string) (Model, *session.Store) {
	t.Helper()
	store := session.NewStore(t.TempDir())
	if role != "" {
		require.NoError(t, store.Set(role, userID))
	}
	cfg := config.Default()
	m := New(cfg, client, store, styles.NewTheme())
	return m, store
}

// step feeds one message through Update and casts the result back.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// collectMsgs runs a command tree and gathers every produced message,
// skipping nothing but nil commands. Tick-based commands are not executed.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			if c != nil {
				out = append(out, c())
			}
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestStartup_NoSessionLandsOnLogin(t *testing.T) {
	m, _ := newApp(t, &fakeClient{}, "", "")
	require.Equal(t, nav.ViewLogin, m.ActiveView())

	msg := m.Init()()
	require.Equal(t, nav.ToMsg{Target: nav.ViewLogin}, msg)
}

func TestStartup_EmployeeSessionLandsOnChat(t *testing.T) {
	m, _ := newApp(t, &fakeClient{}, model.RoleEmployee, "42")
	require.Equal(t, nav.ViewChat, m.ActiveView())

	m, _ = step(t, m, m.Init()())
	require.Equal(t, nav.ViewChat, m.ActiveView())
}

func TestStartup_AdminSessionLandsOnAdmin(t *testing.T) {
	m, _ := newApp(t, &fakeClient{}, model.RoleAdmin, "1")

	m, _ = step(t, m, m.Init()())
	require.Equal(t, nav.ViewAdmin, m.ActiveView())
}

func TestNavigate_ChatWithoutSessionGoesToLogin(t *testing.T) {
	m, _ := newApp(t, &fakeClient{}, "", "")

	m, _ = step(t, m, nav.ToMsg{Target: nav.ViewChat})
	require.Equal(t, nav.ViewLogin, m.ActiveView())
}

func TestNavigate_AdminWithoutSessionGoesToLogin(t *testing.T) {
	m, _ := newApp(t, &fakeClient{}, "", "")

	m, _ = step(t, m, nav.ToMsg{Target: nav.ViewAdmin})
	require.Equal(t, nav.ViewLogin, m.ActiveView())
}

func TestNavigate_EmployeeDeniedAdminLandsOnChatWithNotice(t *testing.T) {
	client := &fakeClient{}
	m, _ := newApp(t, client, model.RoleEmployee, "42")

	m, cmd := step(t, m, nav.ToMsg{Target: nav.ViewAdmin})
	require.Equal(t, nav.ViewChat, m.ActiveView())
	require.Zero(t, client.userCalls, "denied entry must not fetch admin data")

	var noticed bool
	for _, msg := range collectMsgs(cmd) {
		if n, ok := msg.(nav.NoticeMsg); ok {
			noticed = true
			require.Equal(t, "Access Denied! Only Admins can access this page.", n.Text)
		}
	}
	require.True(t, noticed, "denial must flash a notice")
}

func TestNavigate_ChatEntryHydratesOnce(t *testing.T) {
	client := &fakeClient{}
	m, _ := newApp(t, client, model.RoleEmployee, "42")

	_, cmd := step(t, m, nav.ToMsg{Target: nav.ViewChat})
	for range collectMsgs(cmd) {
	}
	require.Equal(t, 1, client.historyCalls, "entering chat hydrates exactly once")
}

func TestLogout_ClearsSessionAndReturnsToLogin(t *testing.T) {
	m, store := newApp(t, &fakeClient{}, model.RoleAdmin, "1")
	m, _ = step(t, m, m.Init()())
	require.Equal(t, nav.ViewAdmin, m.ActiveView())

	m, _ = step(t, m, nav.LogoutMsg{})
	require.Equal(t, nav.ViewLogin, m.ActiveView())

	_, ok := store.Get()
	require.False(t, ok, "logout clears the persisted session")
}

func TestResize_BeforeFirstNavigation(t *testing.T) {
	// The runtime delivers a WindowSizeMsg before any navigation; every
	// view must survive it, signed in or not.
	m, _ := newApp(t, &fakeClient{}, "", "")

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	require.Equal(t, nav.ViewLogin, m.ActiveView())
	require.NotEmpty(t, m.View())
}

func TestResize_BeforeFirstNavigationWithSession(t *testing.T) {
	m, _ := newApp(t, &fakeClient{}, model.RoleEmployee, "42")

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	require.NotEmpty(t, m.View())
}

func TestStatusBar_TracksChatState(t *testing.T) {
	m, _ := newApp(t, &fakeClient{}, model.RoleEmployee, "42")
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = step(t, m, m.Init()())

	require.Contains(t, m.View(), "Loading...", "hydration shows in the status bar")

	m, _ = step(t, m, chat.HistoryLoadedMsg{})
	view := m.View()
	require.Contains(t, view, "Ready")
	require.Contains(t, view, "logout", "chat key hints render in the status bar")
}

func TestNotice_ClearsOnMatchingExpiry(t *testing.T) {
	m, _ := newApp(t, &fakeClient{}, model.RoleEmployee, "42")

	m, _ = step(t, m, nav.NoticeMsg{Text: "heads up"})
	require.Equal(t, "heads up", m.notice)

	// A stale timer from an older notice must not clear a newer one.
	m, _ = step(t, m, noticeExpireMsg{Seq: m.noticeSeq - 1})
	require.Equal(t, "heads up", m.notice)

	m, _ = step(t, m, noticeExpireMsg{Seq: m.noticeSeq})
	require.Empty(t, m.notice)
}
