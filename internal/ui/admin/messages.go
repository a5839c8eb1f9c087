// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"context"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assist-tui/internal/gateway"
)

// queriesPollInterval is how often the Queries tab refreshes while it has
// the screen.
const queriesPollInterval = 10 * time.Second

// UsersLoadedMsg carries the Users tab data.
type UsersLoadedMsg struct {
	Users []gateway.User
	Err   error
}

// QueriesLoadedMsg carries the Queries tab data.
type QueriesLoadedMsg struct {
	Queries []gateway.HistoryRecord
	Err     error
}

// RulesLoadedMsg carries the Rules tab data.
type RulesLoadedMsg struct {
	Rules []gateway.Rule
	Err   error
}

// LogsLoadedMsg carries the Logs tab data.
type LogsLoadedMsg struct {
	Logs []gateway.APILog
	Err  error
}

// SensitiveLoadedMsg carries the Sensitive tab data.
type SensitiveLoadedMsg struct {
	Logs []gateway.SensitiveLog
	Err  error
}

// PerformanceLoadedMsg carries the Performance tab data, flattened to a
// stable model-name order.
type PerformanceLoadedMsg struct {
	Names   []string
	Metrics map[string]gateway.ModelMetrics
	Err     error
}

// ActionDoneMsg reports a mutation (approve, block, rule change). Tab
// names which view to refresh.
type ActionDoneMsg struct {
	Tab Tab
	Err error
}

// pollTickMsg drives the Queries tab refresh. Seq must match the model's
// current poll sequence or the tick is stale and ignored.
type pollTickMsg struct {
	Seq int
}

// fetchCmd returns the fetch command for one tab.
func fetchCmd(api API, tab Tab) tea.Cmd {
	switch tab {
	case TabUsers:
		return func() tea.Msg {
			users, err := api.ListUsers(context.Background())
			return UsersLoadedMsg{Users: users, Err: err}
		}
	case TabQueries:
		return func() tea.Msg {
			queries, err := api.ListQueries(context.Background())
			return QueriesLoadedMsg{Queries: queries, Err: err}
		}
	case TabRules:
		return func() tea.Msg {
			rules, err := api.ListRules(context.Background())
			return RulesLoadedMsg{Rules: rules, Err: err}
		}
	case TabLogs:
		return func() tea.Msg {
			logs, err := api.ListLogs(context.Background())
			return LogsLoadedMsg{Logs: logs, Err: err}
		}
	case TabSensitive:
		return func() tea.Msg {
			logs, err := api.ListSensitiveLogs(context.Background())
			return SensitiveLoadedMsg{Logs: logs, Err: err}
		}
	case TabPerformance:
		return func() tea.Msg {
			metrics, err := api.Performance(context.Background())
			names := make([]string, 0, len(metrics))
			for name := range metrics {
				names = append(names, name)
			}
			sort.Strings(names)
			return PerformanceLoadedMsg{Names: names, Metrics: metrics, Err: err}
		}
	default:
		return nil
	}
}

// actionCmd runs one mutation and names the tab to refresh afterwards.
func actionCmd(tab Tab, action func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return ActionDoneMsg{Tab: tab, Err: action(context.Background())}
	}
}

// pollCmd schedules the next Queries refresh.
func pollCmd(seq int) tea.Cmd {
	return tea.Tick(queriesPollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{Seq: seq}
	})
}
