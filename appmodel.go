// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/aura-tui/internal/api"
	"github.com/jeranaias/aura-tui/internal/assistant"
	"github.com/jeranaias/aura-tui/internal/cli"
	"github.com/jeranaias/aura-tui/internal/config"
	"github.com/jeranaias/aura-tui/internal/kb"
	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/ui/chat"
	"github.com/jeranaias/aura-tui/internal/ui/components"
	"github.com/jeranaias/aura-tui/internal/ui/dashboard"
	"github.com/jeranaias/aura-tui/internal/ui/knowledge"
	"github.com/jeranaias/aura-tui/internal/ui/styles"
	"github.com/jeranaias/aura-tui/internal/ui/tickets"
)

// =============================================================================
// APPLICATION STATE
// =============================================================================

// State represents the current application state.
type State int

const (
	StateLogin State = iota
	StateWorkspace
	StateError
)

// Workspace tabs, in display order.
const (
	tabDashboard = iota
	tabTickets
	tabKnowledge
	tabChat
)

// =============================================================================
// MESSAGES
// =============================================================================

// authCheckedMsg reports whether the persisted token still identifies a
// user. A failure lands on the login form, not an error screen.
type authCheckedMsg struct {
	user *model.User
	err  error
}

// loginResultMsg is the outcome of a login attempt from the form.
type loginResultMsg struct {
	user *model.User
	err  error
}

// =============================================================================
// APP MODEL
// =============================================================================

type appModel struct {
	theme  *styles.Theme
	cfg    *config.Config
	logger *zap.Logger

	platform *api.Client
	agent    *assistant.Client

	state  State
	user   model.User
	width  int
	height int

	// login form
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int // 0 email, 1 password
	loginBusy     bool
	loginErr      string
	checkingToken bool

	// workspace chrome
	header    *components.Header
	tabBar    *components.TabBar
	statusBar *components.StatusBar
	spin      components.Spinner

	// workspace views
	dash      *dashboard.Model
	tickets   *tickets.Model
	knowledge *knowledge.Model
	chat      *chat.Model
	kbCache   *kb.Cache

	fatalErr error
}

func newAppModel(theme *styles.Theme, cfg *config.Config, logger *zap.Logger, platform *api.Client, agent *assistant.Client) *appModel {
	email := textinput.New()
	email.Placeholder = "you@company.com"
	email.Prompt = "> "
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "> "
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword

	return &appModel{
		theme:         theme,
		cfg:           cfg,
		logger:        logger,
		platform:      platform,
		agent:         agent,
		state:         StateLogin,
		emailInput:    email,
		passwordInput: password,
		header:        components.NewHeader(theme),
		tabBar:        components.NewTabBar(theme, "Dashboard", "Tickets", "Knowledge", "Assistant"),
		statusBar:     components.NewStatusBar(theme),
		spin:          components.NewSpinner(theme, "signing in..."),
	}
}

func (m *appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.platform.Token() != "" && !m.platform.TokenExpired(time.Now()) {
		m.checkingToken = true
		cmds = append(cmds, m.checkAuth())
	}
	return tea.Batch(cmds...)
}

// checkAuth validates the persisted token against the platform.
func (m *appModel) checkAuth() tea.Cmd {
	platform := m.platform
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		user, err := platform.Me(ctx)
		return authCheckedMsg{user: user, err: err}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case StateLogin:
			return m.updateLogin(msg)
		case StateWorkspace:
			return m.updateWorkspace(msg)
		default:
			return m, tea.Quit
		}

	case authCheckedMsg:
		m.checkingToken = false
		if msg.err != nil {
			// Stale token; fall through to the login form.
			m.loginErr = ""
			return m, nil
		}
		return m, m.enterWorkspace(*msg.user)

	case loginResultMsg:
		m.loginBusy = false
		m.spin.Stop()
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				m.loginErr = "Invalid email or password."
			} else {
				m.loginErr = msg.err.Error()
			}
			return m, nil
		}
		if err := cli.SaveToken(m.platform.Token()); err != nil {
			m.logger.Warn("failed to persist token", zap.Error(err))
		}
		return m, m.enterWorkspace(*msg.user)
	}

	if m.loginBusy {
		var spinCmd tea.Cmd
		m.spin, spinCmd = m.spin.Update(msg)
		if spinCmd != nil {
			return m, spinCmd
		}
	}

	// Everything else is view traffic: stream events injected by the
	// chat goroutine, page loads, ticks. Message types are disjoint, so
	// each view only reacts to its own.
	return m, m.routeToViews(msg)
}

func (m *appModel) routeToViews(msg tea.Msg) tea.Cmd {
	if m.state != StateWorkspace {
		return nil
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if m.dash != nil {
		m.dash, cmd = m.dash.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.tickets != nil {
		m.tickets, cmd = m.tickets.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.knowledge != nil {
		m.knowledge, cmd = m.knowledge.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.chat != nil {
		m.chat, cmd = m.chat.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// LOGIN
// =============================================================================

func (m *appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loginBusy || m.checkingToken {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.emailInput.Focus()
			m.passwordInput.Blur()
		} else {
			m.emailInput.Blur()
			m.passwordInput.Focus()
		}
		return m, nil

	case "enter":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.emailInput.Blur()
			m.passwordInput.Focus()
			return m, nil
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.loginErr = "Email and password are required."
			return m, nil
		}
		m.loginBusy = true
		m.loginErr = ""
		return m, tea.Batch(m.spin.Start(), m.doLogin(email, password))
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *appModel) doLogin(email, password string) tea.Cmd {
	platform := m.platform
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		user, err := platform.Login(ctx, email, password)
		return loginResultMsg{user: user, err: err}
	}
}

// enterWorkspace builds the per-user views and starts their loads.
func (m *appModel) enterWorkspace(user model.User) tea.Cmd {
	m.user = user
	m.header.SetUser(&m.user)

	sessions, log, cache, err := openWorkspaceDeps(m.cfg, m.logger, m.agent)
	if err != nil {
		m.fatalErr = err
		m.state = StateError
		return nil
	}
	m.kbCache = cache

	refreshEvery := time.Duration(m.cfg.Platform.RefreshSecs) * time.Second
	m.dash = dashboard.New(m.theme, m.platform, m.user, refreshEvery, m.logger)
	m.tickets = tickets.New(m.theme, m.platform, m.user, m.logger)
	m.knowledge = knowledge.New(m.theme, m.platform, cache, m.logger)

	userID := assistant.DeriveUserID(m.user.Email)
	m.chat = chat.New(m.theme, log, sessions, m.agent, userID, m.user.Email, m.logger)
	m.chat.SetSend(programSend)
	m.chat.SetMinimized(m.cfg.UI.ChatMinimized)
	m.chat.SetMarkdown(m.cfg.UI.Markdown)

	m.state = StateWorkspace
	if m.width > 0 {
		m.setSize(m.width, m.height)
	}

	return tea.Batch(
		m.dash.Init(),
		m.tickets.Init(),
		m.knowledge.Init(),
		m.chat.Init(),
	)
}

// =============================================================================
// WORKSPACE
// =============================================================================

func (m *appModel) updateWorkspace(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+right", "ctrl+l":
		m.tabBar.Next()
		return m, nil
	case "ctrl+left", "ctrl+h":
		m.tabBar.Prev()
		return m, nil
	case "f1":
		m.tabBar.Active = tabDashboard
		return m, nil
	case "f2":
		m.tabBar.Active = tabTickets
		return m, nil
	case "f3":
		m.tabBar.Active = tabKnowledge
		return m, nil
	case "f4":
		m.tabBar.Active = tabChat
		return m, nil
	}

	// Tab and text keys belong to the active view.
	var cmd tea.Cmd
	switch m.tabBar.Active {
	case tabDashboard:
		m.dash, cmd = m.dash.Update(msg)
	case tabTickets:
		m.tickets, cmd = m.tickets.Update(msg)
	case tabKnowledge:
		m.knowledge, cmd = m.knowledge.Update(msg)
	case tabChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

func (m *appModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.header.SetWidth(width)
	m.tabBar.SetWidth(width)
	m.statusBar.SetWidth(width)
	m.emailInput.Width = 40
	m.passwordInput.Width = 40

	contentHeight := height - 4 // header, tab bar, status bar
	if contentHeight < 1 {
		contentHeight = 1
	}
	if m.dash != nil {
		m.dash.SetSize(width, contentHeight)
	}
	if m.tickets != nil {
		m.tickets.SetSize(width, contentHeight)
	}
	if m.knowledge != nil {
		m.knowledge.SetSize(width, contentHeight)
	}
	if m.chat != nil {
		m.chat.SetSize(width, contentHeight)
	}
}

// =============================================================================
// VIEW
// =============================================================================

func (m *appModel) View() string {
	switch m.state {
	case StateLogin:
		return m.viewLogin()
	case StateError:
		return components.ErrorBox(m.theme, m.fatalErr, m.width) + "\npress ctrl+c to exit\n"
	default:
		return m.viewWorkspace()
	}
}

func (m *appModel) viewLogin() string {
	var b strings.Builder
	b.WriteString(m.theme.Brand.Render("AURA"))
	b.WriteString(m.theme.Hint.Render("  IT support, in your terminal"))
	b.WriteString("\n\n")

	if m.checkingToken {
		b.WriteString(m.theme.Hint.Render("checking saved credentials..."))
		b.WriteByte('\n')
		return m.theme.App.Render(b.String())
	}

	b.WriteString(m.theme.FieldLabel.Render("Email"))
	b.WriteByte('\n')
	b.WriteString(m.emailInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.theme.FieldLabel.Render("Password"))
	b.WriteByte('\n')
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n\n")

	if m.loginErr != "" {
		b.WriteString(m.theme.ErrorTitle.Render("✗ " + m.loginErr))
		b.WriteString("\n\n")
	}
	if m.loginBusy {
		b.WriteString(m.spin.View())
	} else {
		b.WriteString(m.theme.Hint.Render("enter sign in · tab switch field · ctrl+c quit"))
	}
	b.WriteByte('\n')
	return m.theme.App.Render(b.String())
}

func (m *appModel) viewWorkspace() string {
	var content string
	switch m.tabBar.Active {
	case tabDashboard:
		content = m.dash.View()
	case tabTickets:
		content = m.tickets.View()
	case tabKnowledge:
		content = m.knowledge.View()
	case tabChat:
		content = m.chat.View()
	}

	m.statusBar.Status = m.currentStatus()
	m.statusBar.Note = m.statusNote()
	m.statusBar.Shortcuts = []components.Shortcut{
		{Key: "ctrl+←/→", Desc: "tabs"},
		{Key: "ctrl+c", Desc: "quit"},
	}

	var b strings.Builder
	b.WriteString(m.header.Render())
	b.WriteByte('\n')
	b.WriteString(m.tabBar.Render())
	b.WriteByte('\n')
	b.WriteString(content)
	b.WriteByte('\n')
	b.WriteString(m.statusBar.Render())
	return b.String()
}

func (m *appModel) currentStatus() components.Status {
	if m.chat != nil {
		switch m.chat.State() {
		case chat.StateOpening:
			return components.StatusLoading
		case chat.StateStreaming:
			return components.StatusStreaming
		}
	}
	if m.activeErr() != nil {
		return components.StatusError
	}
	if m.knowledge != nil && m.knowledge.Offline() {
		return components.StatusOffline
	}
	if m.anyLoading() {
		return components.StatusLoading
	}
	return components.StatusIdle
}

func (m *appModel) anyLoading() bool {
	return (m.dash != nil && m.dash.Loading()) ||
		(m.tickets != nil && m.tickets.Loading()) ||
		(m.knowledge != nil && m.knowledge.Loading())
}

// activeErr returns the error of the tab the user is looking at.
func (m *appModel) activeErr() error {
	switch m.tabBar.Active {
	case tabDashboard:
		if m.dash != nil {
			return m.dash.Err()
		}
	case tabTickets:
		if m.tickets != nil {
			return m.tickets.Err()
		}
	case tabKnowledge:
		if m.knowledge != nil {
			return m.knowledge.Err()
		}
	case tabChat:
		if m.chat != nil {
			return m.chat.Err()
		}
	}
	return nil
}

func (m *appModel) statusNote() string {
	if m.user.Email == "" {
		return ""
	}
	return m.user.Email
}
