// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package admin provides the admin console: user management, live queries,
// detection rules, request logs, the sensitive-data log, and model
// performance metrics, one tab each.
//
// The root model gates entry, and every tab activation re-checks access
// through the injected authorize hook; the backend stays the final
// authority on every action.
package admin

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/assist-tui/internal/gateway"
	"github.com/jeranaias/assist-tui/internal/ui/components"
	"github.com/jeranaias/assist-tui/internal/ui/styles"
)

// API is the slice of the backend client the admin console needs.
type API interface {
	ListUsers(ctx context.Context) ([]gateway.User, error)
	ApproveUser(ctx context.Context, userID string) error
	BlockUser(ctx context.Context, userID string) error
	UnblockUser(ctx context.Context, userID string) error
	ListQueries(ctx context.Context) ([]gateway.HistoryRecord, error)
	ListRules(ctx context.Context) ([]gateway.Rule, error)
	AddRule(ctx context.Context, rule string) error
	DeleteRule(ctx context.Context, ruleID string) error
	ListLogs(ctx context.Context) ([]gateway.APILog, error)
	ListSensitiveLogs(ctx context.Context) ([]gateway.SensitiveLog, error)
	Performance(ctx context.Context) (map[string]gateway.ModelMetrics, error)
}

// Tab identifies one console tab.
type Tab int

const (
	TabUsers Tab = iota
	TabQueries
	TabRules
	TabLogs
	TabSensitive
	TabPerformance
	tabCount
)

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabUsers:
		return "Users"
	case TabQueries:
		return "Queries"
	case TabRules:
		return "Rules"
	case TabLogs:
		return "Logs"
	case TabSensitive:
		return "Sensitive"
	case TabPerformance:
		return "Performance"
	default:
		return "?"
	}
}

// Model is the admin console.
type Model struct {
	api API

	// authorize re-checks admin access on every tab activation, so a
	// session that was cleared or downgraded mid-visit loses the console
	// at the next tab switch. Nil means no re-check.
	authorize func() error

	theme *styles.Theme

	tab    Tab
	tables [tabCount]table.Model

	// users is kept alongside its table so row actions can resolve ids.
	users []gateway.User
	rules []gateway.Rule

	ruleInput  textinput.Model
	addingRule bool

	spinner components.Spinner
	loading bool
	errMsg  string

	// focused gates the queries poll; pollSeq invalidates stale ticks
	// after a tab switch or blur.
	focused bool
	pollSeq int

	width  int
	height int
}

// New creates the admin console on the Users tab.
func New(api API, authorize func() error, theme *styles.Theme) Model {
	ruleInput := textinput.New()
	ruleInput.Placeholder = "New detection rule (regex)"
	ruleInput.CharLimit = 256

	m := Model{
		api:       api,
		authorize: authorize,
		theme:     theme,
		ruleInput: ruleInput,
		spinner:   components.NewSpinner("Loading"),
	}

	for t := Tab(0); t < tabCount; t++ {
		m.tables[t] = newTable(tableColumns(t))
	}
	return m
}

// Tab returns the active tab.
func (m Model) Tab() Tab {
	return m.tab
}

// Focused reports whether the console currently owns the screen.
func (m Model) Focused() bool {
	return m.focused
}

// Loading reports whether a fetch is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// HasError reports whether the last fetch or action failed.
func (m Model) HasError() bool {
	return m.errMsg != ""
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	tableHeight := height - 6 // tab bar, error line, hints
	if tableHeight < 3 {
		tableHeight = 3
	}
	for t := Tab(0); t < tabCount; t++ {
		m.tables[t].SetWidth(width)
		m.tables[t].SetHeight(tableHeight)
	}
}

// newTable builds a table in the house style.
func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(styles.TextInverse).
		Background(styles.Purple).
		Bold(false)
	t.SetStyles(s)
	return t
}

// tableColumns returns the column layout for one tab.
func tableColumns(t Tab) []table.Column {
	switch t {
	case TabUsers:
		return []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 22},
			{Title: "Email", Width: 28},
			{Title: "Role", Width: 10},
			{Title: "Approved", Width: 9},
			{Title: "Blocked", Width: 8},
		}
	case TabQueries:
		return []table.Column{
			{Title: "Time", Width: 20},
			{Title: "Question", Width: 40},
			{Title: "Response", Width: 40},
		}
	case TabRules:
		return []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Rule", Width: 70},
		}
	case TabLogs:
		return []table.Column{
			{Title: "ID", Width: 6},
			{Title: "Endpoint", Width: 30},
			{Title: "Time", Width: 20},
		}
	case TabSensitive:
		return []table.Column{
			{Title: "Time", Width: 20},
			{Title: "User", Width: 6},
			{Title: "Prompt", Width: 32},
			{Title: "Detected", Width: 20},
			{Title: "Sensitive", Width: 9},
		}
	case TabPerformance:
		return []table.Column{
			{Title: "Model", Width: 16},
			{Title: "Accuracy", Width: 10},
			{Title: "Precision", Width: 10},
			{Title: "Recall", Width: 10},
			{Title: "F1", Width: 10},
		}
	default:
		return nil
	}
}
