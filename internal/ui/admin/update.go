// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assist-tui/internal/access"
	"github.com/jeranaias/assist-tui/internal/gateway"
	"github.com/jeranaias/assist-tui/internal/ui/nav"
)

// Focus marks the console active and loads the current tab. The root
// model calls this on entry; polling for the Queries tab starts here.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.activateTab(m.tab)
}

// Blur marks the console inactive. Any in-flight poll tick becomes stale.
func (m *Model) Blur() {
	m.focused = false
	m.pollSeq++
}

// activateTab switches to a tab and fetches its data. Each activation is
// a fresh fetch and a fresh access check; nothing is served from a
// previous visit.
func (m *Model) activateTab(tab Tab) tea.Cmd {
	if m.authorize != nil {
		if err := m.authorize(); err != nil {
			log.Printf("admin: access lost on tab activation: %v", err)
			m.focused = false
			m.pollSeq++
			if errors.Is(err, access.ErrNoSession) {
				return nav.To(nav.ViewLogin)
			}
			return tea.Batch(nav.Notify(access.DeniedNotice), nav.To(nav.ViewChat))
		}
	}

	m.tab = tab
	m.loading = true
	m.errMsg = ""
	m.pollSeq++

	cmds := []tea.Cmd{fetchCmd(m.api, tab), m.spinner.Start()}
	if tab == TabQueries {
		cmds = append(cmds, pollCmd(m.pollSeq))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case UsersLoadedMsg:
		return m.handleUsersLoaded(msg)

	case QueriesLoadedMsg:
		return m.handleQueriesLoaded(msg)

	case RulesLoadedMsg:
		return m.handleRulesLoaded(msg)

	case LogsLoadedMsg:
		return m.handleLogsLoaded(msg)

	case SensitiveLoadedMsg:
		return m.handleSensitiveLoaded(msg)

	case PerformanceLoadedMsg:
		return m.handlePerformanceLoaded(msg)

	case ActionDoneMsg:
		return m.handleActionDone(msg)

	case pollTickMsg:
		return m.handlePollTick(msg)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleKey routes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.addingRule {
		return m.handleRuleInputKey(msg)
	}

	switch msg.String() {
	case "tab", "right":
		cmd := m.activateTab((m.tab + 1) % tabCount)
		return m, cmd

	case "shift+tab", "left":
		cmd := m.activateTab((m.tab + tabCount - 1) % tabCount)
		return m, cmd

	case "1", "2", "3", "4", "5", "6":
		n, _ := strconv.Atoi(msg.String())
		cmd := m.activateTab(Tab(n - 1))
		return m, cmd

	case "r":
		cmd := m.activateTab(m.tab)
		return m, cmd

	case "c":
		return m, nav.To(nav.ViewChat)

	case "ctrl+l":
		return m, nav.Logout()
	}

	switch m.tab {
	case TabUsers:
		if cmd, handled := m.userActionKey(msg.String()); handled {
			return m, cmd
		}
	case TabRules:
		if cmd, handled := m.ruleActionKey(msg.String()); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.tables[m.tab], cmd = m.tables[m.tab].Update(msg)
	return m, cmd
}

// userActionKey handles the Users tab mutations on the selected row.
func (m *Model) userActionKey(key string) (tea.Cmd, bool) {
	user, ok := m.selectedUser()
	if !ok {
		return nil, false
	}
	id := user.ID.String()

	switch key {
	case "a":
		return actionCmd(TabUsers, func(ctx context.Context) error {
			return m.api.ApproveUser(ctx, id)
		}), true
	case "b":
		return actionCmd(TabUsers, func(ctx context.Context) error {
			return m.api.BlockUser(ctx, id)
		}), true
	case "u":
		return actionCmd(TabUsers, func(ctx context.Context) error {
			return m.api.UnblockUser(ctx, id)
		}), true
	}
	return nil, false
}

// ruleActionKey handles the Rules tab mutations.
func (m *Model) ruleActionKey(key string) (tea.Cmd, bool) {
	switch key {
	case "n":
		m.addingRule = true
		m.ruleInput.SetValue("")
		m.ruleInput.Focus()
		return nil, true

	case "d":
		rule, ok := m.selectedRule()
		if !ok {
			return nil, true
		}
		id := rule.ID.String()
		return actionCmd(TabRules, func(ctx context.Context) error {
			return m.api.DeleteRule(ctx, id)
		}), true
	}
	return nil, false
}

// handleRuleInputKey drives the new-rule input line.
func (m Model) handleRuleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.addingRule = false
		return m, nil

	case "enter":
		rule := strings.TrimSpace(m.ruleInput.Value())
		m.addingRule = false
		if rule == "" {
			return m, nil
		}
		return m, actionCmd(TabRules, func(ctx context.Context) error {
			return m.api.AddRule(ctx, rule)
		})
	}

	var cmd tea.Cmd
	m.ruleInput, cmd = m.ruleInput.Update(msg)
	return m, cmd
}

// selectedUser resolves the highlighted Users row.
func (m Model) selectedUser() (gateway.User, bool) {
	idx := m.tables[TabUsers].Cursor()
	if idx < 0 || idx >= len(m.users) {
		return gateway.User{}, false
	}
	return m.users[idx], true
}

// selectedRule resolves the highlighted Rules row.
func (m Model) selectedRule() (gateway.Rule, bool) {
	idx := m.tables[TabRules].Cursor()
	if idx < 0 || idx >= len(m.rules) {
		return gateway.Rule{}, false
	}
	return m.rules[idx], true
}

// =============================================================================
// DATA HANDLERS
// =============================================================================

// loadDone finishes one fetch, recording the error if any.
func (m *Model) loadDone(err error) {
	m.loading = false
	m.spinner.Stop()
	if err != nil {
		log.Printf("admin: fetch failed on %s tab: %v", m.tab, err)
		m.errMsg = gateway.ErrorMessage(err, "Failed to load data")
	}
}

func (m Model) handleUsersLoaded(msg UsersLoadedMsg) (Model, tea.Cmd) {
	m.loadDone(msg.Err)
	if msg.Err != nil {
		return m, nil
	}

	m.users = msg.Users
	rows := make([]table.Row, len(msg.Users))
	for i, u := range msg.Users {
		rows[i] = table.Row{
			u.ID.String(),
			u.FirstName + " " + u.LastName,
			u.Email,
			u.Role,
			yesNo(u.IsApproved),
			yesNo(u.IsBlocked),
		}
	}
	m.tables[TabUsers].SetRows(rows)
	return m, nil
}

func (m Model) handleQueriesLoaded(msg QueriesLoadedMsg) (Model, tea.Cmd) {
	m.loadDone(msg.Err)
	if msg.Err != nil {
		return m, nil
	}

	rows := make([]table.Row, len(msg.Queries))
	for i, q := range msg.Queries {
		rows[i] = table.Row{q.Timestamp, q.Question, q.Response}
	}
	m.tables[TabQueries].SetRows(rows)
	return m, nil
}

func (m Model) handleRulesLoaded(msg RulesLoadedMsg) (Model, tea.Cmd) {
	m.loadDone(msg.Err)
	if msg.Err != nil {
		return m, nil
	}

	m.rules = msg.Rules
	rows := make([]table.Row, len(msg.Rules))
	for i, r := range msg.Rules {
		rows[i] = table.Row{r.ID.String(), r.Rule}
	}
	m.tables[TabRules].SetRows(rows)
	return m, nil
}

func (m Model) handleLogsLoaded(msg LogsLoadedMsg) (Model, tea.Cmd) {
	m.loadDone(msg.Err)
	if msg.Err != nil {
		return m, nil
	}

	rows := make([]table.Row, len(msg.Logs))
	for i, l := range msg.Logs {
		rows[i] = table.Row{l.ID.String(), l.Endpoint, l.Timestamp}
	}
	m.tables[TabLogs].SetRows(rows)
	return m, nil
}

func (m Model) handleSensitiveLoaded(msg SensitiveLoadedMsg) (Model, tea.Cmd) {
	m.loadDone(msg.Err)
	if msg.Err != nil {
		return m, nil
	}

	rows := make([]table.Row, len(msg.Logs))
	for i, l := range msg.Logs {
		rows[i] = table.Row{
			l.Timestamp,
			l.UserID.String(),
			l.Prompt,
			l.DetectedData,
			yesNo(l.IsSensitive),
		}
	}
	m.tables[TabSensitive].SetRows(rows)
	return m, nil
}

func (m Model) handlePerformanceLoaded(msg PerformanceLoadedMsg) (Model, tea.Cmd) {
	m.loadDone(msg.Err)
	if msg.Err != nil {
		return m, nil
	}

	rows := make([]table.Row, len(msg.Names))
	for i, name := range msg.Names {
		metrics := msg.Metrics[name]
		rows[i] = table.Row{
			name,
			formatMetric(metrics.Accuracy),
			formatMetric(metrics.Precision),
			formatMetric(metrics.Recall),
			formatMetric(metrics.F1Score),
		}
	}
	m.tables[TabPerformance].SetRows(rows)
	return m, nil
}

// handleActionDone refreshes the mutated tab, or surfaces the error.
func (m Model) handleActionDone(msg ActionDoneMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		log.Printf("admin: action failed on %s tab: %v", msg.Tab, msg.Err)
		m.errMsg = gateway.ErrorMessage(msg.Err, "Action failed")
		return m, nil
	}
	if msg.Tab != m.tab {
		return m, nil
	}
	cmd := m.activateTab(m.tab)
	return m, cmd
}

// handlePollTick refreshes the Queries tab while it has the screen. Stale
// ticks (blurred console or a tab switch since the tick was scheduled)
// are dropped, which ends that poll chain.
func (m Model) handlePollTick(msg pollTickMsg) (Model, tea.Cmd) {
	if !m.focused || msg.Seq != m.pollSeq || m.tab != TabQueries {
		return m, nil
	}
	return m, tea.Batch(fetchCmd(m.api, TabQueries), pollCmd(m.pollSeq))
}

// yesNo renders the backend's 0/1 flags.
func yesNo(flag int) string {
	if flag != 0 {
		return "yes"
	}
	return "no"
}

// formatMetric renders a 0..1 metric with three decimals.
func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
