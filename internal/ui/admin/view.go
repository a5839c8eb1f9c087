// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package admin

import (
	"strings"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.tabBarView())
	b.WriteString("\n")

	if m.addingRule {
		b.WriteString(m.theme.FormLabel.Render("Add rule: "))
		b.WriteString(m.ruleInput.View())
		b.WriteString("\n")
	}

	b.WriteString(m.tables[m.tab].View())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	} else if m.errMsg != "" {
		b.WriteString(m.theme.FormError.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(m.hintsView())
	return b.String()
}

// tabBarView renders the tab strip.
func (m Model) tabBarView() string {
	parts := make([]string, 0, int(tabCount))
	for t := Tab(0); t < tabCount; t++ {
		style := m.theme.TabInactive
		if t == m.tab {
			style = m.theme.TabActive
		}
		parts = append(parts, style.Render(t.String()))
	}
	return m.theme.TabBar.Width(m.width).Render(strings.Join(parts, " "))
}

// hintsView renders the per-tab key hints.
func (m Model) hintsView() string {
	common := "tab switch - r refresh - c chat - ctrl+l logout"
	switch m.tab {
	case TabUsers:
		return m.theme.ShortcutDesc.Render("a approve - b block - u unblock - " + common)
	case TabRules:
		return m.theme.ShortcutDesc.Render("n new - d delete - " + common)
	default:
		return m.theme.ShortcutDesc.Render(common)
	}
}
