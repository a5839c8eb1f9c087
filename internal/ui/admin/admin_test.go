// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"context"
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/assist-tui/internal/access"
	"github.com/jeranaias/assist-tui/internal/gateway"
	"github.com/jeranaias/assist-tui/internal/ui/nav"
	"github.com/jeranaias/assist-tui/internal/ui/styles"
)

// fakeAPI records calls and returns scripted results.
type fakeAPI struct {
	users   []gateway.User
	queries []gateway.HistoryRecord
	rules   []gateway.Rule

	listErr error

	approved  []string
	blocked   []string
	unblocked []string
	added     []string
	deleted   []string

	queryCalls int
}

func (f *fakeAPI) ListUsers(context.Context) ([]gateway.User, error) { return f.users, f.listErr }
func (f *fakeAPI) ApproveUser(_ context.Context, id string) error {
	f.approved = append(f.approved, id)
	return nil
}
func (f *fakeAPI) BlockUser(_ context.Context, id string) error {
	f.blocked = append(f.blocked, id)
	return nil
}
func (f *fakeAPI) UnblockUser(_ context.Context, id string) error {
	f.unblocked = append(f.unblocked, id)
	return nil
}
func (f *fakeAPI) ListQueries(context.Context) ([]gateway.HistoryRecord, error) {
	f.queryCalls++
	return f.queries, f.listErr
}
func (f *fakeAPI) ListRules(context.Context) ([]gateway.Rule, error) { return f.rules, f.listErr }
func (f *fakeAPI) AddRule(_ context.Context, rule string) error {
	f.added = append(f.added, rule)
	return nil
}
func (f *fakeAPI) DeleteRule(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakeAPI) ListLogs(context.Context) ([]gateway.APILog, error) { return nil, f.listErr }
func (f *fakeAPI) ListSensitiveLogs(context.Context) ([]gateway.SensitiveLog, error) {
	return nil, f.listErr
}
func (f *fakeAPI) Performance(context.Context) (map[string]gateway.ModelMetrics, error) {
	return nil, f.listErr
}

func newTestModel(api *fakeAPI) Model {
	m := New(api, nil, styles.NewTheme())
	m.SetSize(120, 40)
	return m
}

func num(s string) json.Number { return json.Number(s) }

func TestFocus_LoadsUsersTab(t *testing.T) {
	api := &fakeAPI{users: []gateway.User{
		{ID: num("1"), FirstName: "Ada", LastName: "L", Email: "ada@corp.example", Role: "Admin", IsApproved: 1},
	}}
	m := newTestModel(api)

	cmd := m.Focus()
	require.True(t, m.Focused())
	require.NotNil(t, cmd)

	m, _ = m.Update(fetchCmd(api, TabUsers)())
	require.False(t, m.loading)

	rows := m.tables[TabUsers].Rows()
	require.Len(t, rows, 1)
	require.Equal(t, "Ada L", rows[0][1])
	require.Equal(t, "yes", rows[0][4])
	require.Equal(t, "no", rows[0][5])
}

func TestFetchError_Surfaces(t *testing.T) {
	api := &fakeAPI{listErr: &gateway.APIError{Status: 500, Message: "db down"}}
	m := newTestModel(api)
	m.Focus()

	m, _ = m.Update(fetchCmd(api, TabUsers)())
	require.Equal(t, "db down", m.errMsg)
}

func TestTabSwitch_FetchesFreshData(t *testing.T) {
	api := &fakeAPI{queries: []gateway.HistoryRecord{{Question: "q", Response: "r", Timestamp: "now"}}}
	m := newTestModel(api)
	m.Focus()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, TabQueries, m.Tab())
	require.True(t, m.loading)

	m, _ = m.Update(fetchCmd(api, TabQueries)())
	rows := m.tables[TabQueries].Rows()
	require.Len(t, rows, 1)
	require.Equal(t, "q", rows[0][1])
}

func TestQueriesPoll_RefetchesWhileFocused(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(api)
	m.Focus()
	m.activateTab(TabQueries)

	before := api.queryCalls
	_, cmd := m.Update(pollTickMsg{Seq: m.pollSeq})
	require.NotNil(t, cmd, "a live tick refetches and reschedules")

	// The refetch itself is the same command activateTab issues.
	fetchCmd(api, TabQueries)()
	require.Greater(t, api.queryCalls, before)
}

func TestQueriesPoll_StopsOnBlur(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(api)
	m.Focus()
	m.activateTab(TabQueries)
	seq := m.pollSeq

	m.Blur()
	_, cmd := m.Update(pollTickMsg{Seq: seq})
	require.Nil(t, cmd, "ticks scheduled before blur are stale")
}

func TestQueriesPoll_StopsOnTabSwitch(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(api)
	m.Focus()
	m.activateTab(TabQueries)
	seq := m.pollSeq

	m.activateTab(TabUsers)
	_, cmd := m.Update(pollTickMsg{Seq: seq})
	require.Nil(t, cmd, "ticks from the previous tab are stale")
}

func TestUserActions_TargetSelectedRow(t *testing.T) {
	api := &fakeAPI{users: []gateway.User{
		{ID: num("7"), FirstName: "Bob", Email: "bob@corp.example"},
	}}
	m := newTestModel(api)
	m.Focus()
	m, _ = m.Update(fetchCmd(api, TabUsers)())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, ActionDoneMsg{Tab: TabUsers}, msg)
	require.Equal(t, []string{"7"}, api.approved)

	// A completed action reloads the tab.
	m, refresh := m.Update(msg)
	require.NotNil(t, refresh)
	require.True(t, m.loading)
}

func TestRules_AddAndDelete(t *testing.T) {
	api := &fakeAPI{rules: []gateway.Rule{{ID: num("3"), Rule: `\d{16}`}}}
	m := newTestModel(api)
	m.Focus()
	m.activateTab(TabRules)
	m, _ = m.Update(fetchCmd(api, TabRules)())

	// New rule via the input line.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	require.True(t, m.addingRule)
	m.ruleInput.SetValue(`\bSSN\b`)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.addingRule)
	cmd()
	require.Equal(t, []string{`\bSSN\b`}, api.added)

	// Delete the selected rule.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	cmd()
	require.Equal(t, []string{"3"}, api.deleted)
}

func TestActivate_AccessLostIssuesNoFetch(t *testing.T) {
	api := &fakeAPI{}
	m := New(api, func() error { return access.ErrDenied }, styles.NewTheme())

	cmd := m.Focus()
	require.NotNil(t, cmd)
	require.False(t, m.loading, "no fetch starts without access")

	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	require.True(t, ok)

	var msgs []tea.Msg
	for _, c := range batch {
		msgs = append(msgs, c())
	}
	require.Contains(t, msgs, nav.NoticeMsg{Text: access.DeniedNotice})
	require.Contains(t, msgs, nav.ToMsg{Target: nav.ViewChat})
	require.Zero(t, api.queryCalls)
}

func TestActivate_SessionGoneReturnsToLogin(t *testing.T) {
	api := &fakeAPI{}
	m := New(api, func() error { return access.ErrNoSession }, styles.NewTheme())

	cmd := m.Focus()
	require.NotNil(t, cmd)
	require.Equal(t, nav.ToMsg{Target: nav.ViewLogin}, cmd())
}

func TestRuleInput_EscCancels(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	m.activateTab(TabRules)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	require.True(t, m.addingRule)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.addingRule)
	require.Nil(t, cmd)
}
