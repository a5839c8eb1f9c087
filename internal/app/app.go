// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires the views together and owns the access policy.
//
// Navigation requests arrive as nav messages from the views; the policy
// applied here is uniform: any protected view without a session goes to
// the login form, and a non-admin asking for the admin console lands on
// the chat view with a denial notice. Views never enforce access
// themselves.
package app

import (
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/assist-tui/internal/access"
	"github.com/jeranaias/assist-tui/internal/config"
	"github.com/jeranaias/assist-tui/internal/model"
	"github.com/jeranaias/assist-tui/internal/session"
	"github.com/jeranaias/assist-tui/internal/ui/admin"
	"github.com/jeranaias/assist-tui/internal/ui/auth"
	"github.com/jeranaias/assist-tui/internal/ui/chat"
	"github.com/jeranaias/assist-tui/internal/ui/components"
	"github.com/jeranaias/assist-tui/internal/ui/nav"
	"github.com/jeranaias/assist-tui/internal/ui/styles"
)

// noticeDuration is how long a flashed notice stays on screen.
const noticeDuration = 4 * time.Second

// Status bar key hints per view.
var (
	loginShortcuts = []components.Shortcut{
		{Key: "tab", Desc: "next field"},
		{Key: "ctrl+r", Desc: "login/register"},
		{Key: "ctrl+c", Desc: "quit"},
	}
	chatShortcuts = []components.Shortcut{
		{Key: "enter", Desc: "send"},
		{Key: "ctrl+f", Desc: "attach"},
		{Key: "ctrl+l", Desc: "logout"},
	}
	adminShortcuts = []components.Shortcut{
		{Key: "tab", Desc: "next tab"},
		{Key: "r", Desc: "refresh"},
		{Key: "c", Desc: "chat"},
		{Key: "ctrl+l", Desc: "logout"},
	}
)

// Client is everything the views need from the backend. *gateway.Client
// satisfies it.
type Client interface {
	auth.Authenticator
	chat.Backend
	admin.API
}

// noticeExpireMsg clears a flashed notice. Seq guards against a newer
// notice being cleared by an older timer.
type noticeExpireMsg struct {
	Seq int
}

// Model is the root model.
type Model struct {
	cfg    *config.Config
	client Client
	store  *session.Store
	guard  *access.Guard
	theme  *styles.Theme

	view  nav.View
	auth  auth.Model
	chat  chat.Model
	admin admin.Model

	statusBar *components.StatusBar

	notice    string
	noticeSeq int

	width  int
	height int
}

// New creates the root model. The starting view comes from the persisted
// session: none means login, Employee means chat, anything else admin.
func New(cfg *config.Config, client Client, store *session.Store, theme *styles.Theme) Model {
	guard := access.NewGuard(store)
	m := Model{
		cfg:       cfg,
		client:    client,
		store:     store,
		guard:     guard,
		theme:     theme,
		statusBar: components.NewStatusBar(theme),
		auth:      auth.New(client, store, theme),
		admin: admin.New(client, func() error {
			return guard.Authorize(model.RoleAdmin)
		}, theme),
		view: nav.ViewLogin,
	}

	if sess, ok := store.Get(); ok {
		if sess.Role == model.RoleEmployee {
			m.view = nav.ViewChat
		} else {
			m.view = nav.ViewAdmin
		}
		m.syncStatusBar(sess)
	}

	// The chat model must exist before the first resize reaches it; the
	// runtime delivers a WindowSizeMsg ahead of any navigation. Entering
	// the chat view still swaps in a fresh model.
	m.chat = m.freshChat()
	return m
}

// ActiveView returns the active view identifier, for tests and logging.
func (m Model) ActiveView() nav.View {
	return m.view
}

// Init implements tea.Model. Startup goes through the same navigation
// path as everything else, so the access policy applies to the persisted
// session too.
func (m Model) Init() tea.Cmd {
	log.Printf("app: starting on %s view", m.view)
	return nav.To(m.view)
}

// freshChat builds a new chat model for the signed-in user. A fresh model
// per entry is what makes hydration happen exactly once per visit.
func (m Model) freshChat() chat.Model {
	sess, _ := m.store.Get()
	c := chat.New(m.client, sess.UserID, m.cfg.UI.MarkdownEnabled, m.theme)
	if m.width > 0 {
		c.SetSize(m.width, m.contentHeight())
	}
	return c
}

// contentHeight is the height left for the active view above the status
// bar.
func (m Model) contentHeight() int {
	h := m.height - 1
	if h < 1 {
		h = 1
	}
	return h
}

// syncStatusBar reflects the session into the status bar.
func (m *Model) syncStatusBar(sess session.Session) {
	m.statusBar.Role = sess.Role
	m.statusBar.UserEmail = "user " + sess.UserID
}

// clearStatusBar resets the status bar to signed out.
func (m *Model) clearStatusBar() {
	m.statusBar.Role = ""
	m.statusBar.UserEmail = ""
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case nav.ToMsg:
		return m.navigate(msg.Target)

	case nav.LogoutMsg:
		return m.logout()

	case nav.NoticeMsg:
		m.notice = msg.Text
		m.noticeSeq++
		seq := m.noticeSeq
		return m, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
			return noticeExpireMsg{Seq: seq}
		})

	case noticeExpireMsg:
		if msg.Seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	return m.dispatch(msg)
}

// handleResize fans the new size out to every view.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.statusBar.SetWidth(msg.Width)

	content := tea.WindowSizeMsg{Width: msg.Width, Height: m.contentHeight()}
	m.auth.SetSize(content.Width, content.Height)
	m.chat.SetSize(content.Width, content.Height)
	m.admin.SetSize(content.Width, content.Height)
	return m, nil
}

// dispatch forwards a message to the active view.
func (m Model) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case nav.ViewLogin:
		m.auth, cmd = m.auth.Update(msg)
	case nav.ViewChat:
		m.chat, cmd = m.chat.Update(msg)
	case nav.ViewAdmin:
		m.admin, cmd = m.admin.Update(msg)
	}
	return m, cmd
}

// navigate applies the access policy and switches views.
func (m Model) navigate(target nav.View) (tea.Model, tea.Cmd) {
	if m.view == nav.ViewAdmin && target != nav.ViewAdmin {
		m.admin.Blur()
	}

	switch target {
	case nav.ViewLogin:
		return m.toLogin()

	case nav.ViewChat:
		sess, err := m.guard.RequireSession()
		if err != nil {
			return m.toLogin()
		}
		m.syncStatusBar(sess)
		m.statusBar.Shortcuts = chatShortcuts
		m.view = nav.ViewChat
		m.chat = m.freshChat()
		log.Printf("app: -> chat view")
		return m, m.chat.Init()

	case nav.ViewAdmin:
		sess, err := m.guard.RequireSession()
		if err != nil {
			return m.toLogin()
		}
		if err := m.guard.Authorize(model.RoleAdmin); err != nil {
			// Wrong role: back to chat with the denial flashed.
			log.Printf("app: admin access denied for role %s", sess.Role)
			next, cmd := m.navigate(nav.ViewChat)
			return next, tea.Batch(cmd, nav.Notify(access.DeniedNotice))
		}
		m.syncStatusBar(sess)
		m.statusBar.Shortcuts = adminShortcuts
		m.view = nav.ViewAdmin
		log.Printf("app: -> admin view")
		cmd := m.admin.Focus()
		return m, cmd
	}

	return m, nil
}

// toLogin resets to a fresh login form.
func (m Model) toLogin() (tea.Model, tea.Cmd) {
	m.view = nav.ViewLogin
	m.auth = auth.New(m.client, m.store, m.theme)
	m.auth.SetSize(m.width, m.contentHeight())
	m.clearStatusBar()
	m.statusBar.Shortcuts = loginShortcuts
	log.Printf("app: -> login view")
	return m, m.auth.Init()
}

// logout clears the session and returns to login.
func (m Model) logout() (tea.Model, tea.Cmd) {
	if err := m.store.Clear(); err != nil {
		log.Printf("app: failed to clear session: %v", err)
	}
	if m.view == nav.ViewAdmin {
		m.admin.Blur()
	}
	return m.toLogin()
}

// View implements tea.Model.
func (m Model) View() string {
	var content string
	switch m.view {
	case nav.ViewLogin:
		content = m.auth.View()
	case nav.ViewChat:
		content = m.chat.View()
	case nav.ViewAdmin:
		content = m.admin.View()
	}

	out := content
	if m.notice != "" {
		out += "\n" + m.theme.FormNotice.Render(m.notice)
	}
	if m.width > 0 {
		m.statusBar.Status = m.currentStatus()
		out += "\n" + m.statusBar.View()
	}
	return out
}

// currentStatus derives the status bar state from the active view.
func (m Model) currentStatus() components.Status {
	switch m.view {
	case nav.ViewChat:
		switch m.chat.State() {
		case chat.StateHydrating:
			return components.StatusLoading
		case chat.StateSending:
			return components.StatusSending
		}
	case nav.ViewAdmin:
		if m.admin.HasError() {
			return components.StatusError
		}
		if m.admin.Loading() {
			return components.StatusLoading
		}
	}
	return components.StatusReady
}
