// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tickets

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/aura-tui/internal/api"
	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/ui/styles"
)

// =============================================================================
// TICKET API
// =============================================================================

// Service is the slice of the platform client the ticket views need.
type Service interface {
	ListTickets(ctx context.Context, filter api.TicketFilter) (*api.TicketPage, error)
	GetTicket(ctx context.Context, id string) (*model.Ticket, error)
	CreateTicket(ctx context.Context, create model.TicketCreate) (*model.Ticket, error)
	EscalateTicket(ctx context.Context, id, reason string) (*model.Ticket, error)
	AssignTicket(ctx context.Context, id, assigneeID string) (*model.Ticket, error)
	ListDepartments(ctx context.Context) ([]model.Department, error)
}

var _ Service = (*api.Client)(nil)

// =============================================================================
// MESSAGES
// =============================================================================

// PageLoadedMsg delivers one page of the ticket list.
type PageLoadedMsg struct {
	Page *api.TicketPage
	Err  error
}

// TicketLoadedMsg delivers a single ticket for the detail view.
type TicketLoadedMsg struct {
	Ticket *model.Ticket
	Err    error
}

// TicketSavedMsg reports the result of a create, escalate, or assign call.
type TicketSavedMsg struct {
	Ticket *model.Ticket
	Err    error
}

// DepartmentsLoadedMsg delivers the department choices for the create form.
type DepartmentsLoadedMsg struct {
	Departments []model.Department
	Err         error
}

// =============================================================================
// MODEL
// =============================================================================

type viewMode int

const (
	modeList viewMode = iota
	modeDetail
	modeCreate
	modeEscalate
	modeAssign
)

const pageSize = 25

// Model drives the ticket list, detail, create, and escalate views.
type Model struct {
	theme  *styles.Theme
	svc    Service
	user   model.User
	logger *zap.Logger

	mode    viewMode
	loading bool
	lastErr error

	tickets     []model.Ticket
	total       int
	cursor      int
	filter      api.TicketFilter
	departments []model.Department

	selected *model.Ticket
	form     createForm
	escalate escalateForm
	assign   assignForm

	width  int
	height int
}

func New(theme *styles.Theme, svc Service, user model.User, logger *zap.Logger) *Model {
	return &Model{
		theme:  theme,
		svc:    svc,
		user:   user,
		logger: logger,
		filter: api.TicketFilter{Page: 1, Size: pageSize},
		form:   newCreateForm(),
	}
}

// Init loads the first page.
func (m *Model) Init() tea.Cmd {
	return m.reload()
}

// Loading reports whether a request is in flight, for the status bar.
func (m *Model) Loading() bool { return m.loading }

// Err returns the most recent request error, or nil.
func (m *Model) Err() error { return m.lastErr }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// =============================================================================
// UPDATE
// =============================================================================

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case PageLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		m.lastErr = nil
		m.tickets = msg.Page.Tickets
		m.total = msg.Page.Total
		if m.cursor >= len(m.tickets) {
			m.cursor = 0
		}
		return m, nil

	case TicketLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		m.lastErr = nil
		m.selected = msg.Ticket
		m.mode = modeDetail
		return m, nil

	case TicketSavedMsg:
		m.loading = false
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		m.lastErr = nil
		m.selected = msg.Ticket
		m.mode = modeDetail
		// The list is stale after any write.
		return m, m.reload()

	case DepartmentsLoadedMsg:
		if msg.Err != nil {
			// The form still works without a department choice.
			if m.logger != nil {
				m.logger.Warn("failed to load departments", zap.Error(msg.Err))
			}
			return m, nil
		}
		m.departments = msg.Departments
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch m.mode {
	case modeCreate:
		return m.updateCreate(msg)
	case modeEscalate:
		return m.updateEscalate(msg)
	case modeAssign:
		return m.updateAssign(msg)
	case modeDetail:
		return m.updateDetail(msg)
	default:
		return m.updateList(msg)
	}
}

func (m *Model) updateList(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tickets)-1 {
			m.cursor++
		}
	case "left", "h":
		if m.filter.Page > 1 {
			m.filter.Page--
			return m, m.reload()
		}
	case "right", "l":
		if m.filter.Page*m.filter.Size < m.total {
			m.filter.Page++
			return m, m.reload()
		}
	case "s":
		m.filter.Status = nextStatusFilter(m.filter.Status)
		m.filter.Page = 1
		return m, m.reload()
	case "p":
		m.filter.Priority = nextPriorityFilter(m.filter.Priority)
		m.filter.Page = 1
		return m, m.reload()
	case "r":
		return m, m.reload()
	case "n":
		m.form = newCreateForm()
		m.mode = modeCreate
		return m, m.loadDepartments()
	case "enter":
		if len(m.tickets) == 0 {
			return m, nil
		}
		return m, m.open(m.tickets[m.cursor].ID)
	}
	return m, nil
}

func (m *Model) updateDetail(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = modeList
		m.selected = nil
	case "e":
		if m.selected == nil || !m.user.Role.CanEscalate() {
			return m, nil
		}
		if m.selected.Status.IsTerminal() {
			return m, nil
		}
		m.escalate = newEscalateForm()
		m.mode = modeEscalate
	case "a":
		if m.selected == nil || !m.user.Role.CanEscalate() {
			return m, nil
		}
		if m.selected.Status.IsTerminal() {
			return m, nil
		}
		m.assign = newAssignForm(m.selected.AssigneeID)
		m.mode = modeAssign
	case "r":
		if m.selected != nil {
			return m, m.open(m.selected.ID)
		}
	}
	return m, nil
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m *Model) reload() tea.Cmd {
	m.loading = true
	svc, filter := m.svc, m.filter
	return func() tea.Msg {
		page, err := svc.ListTickets(context.Background(), filter)
		return PageLoadedMsg{Page: page, Err: err}
	}
}

func (m *Model) open(id string) tea.Cmd {
	m.loading = true
	svc := m.svc
	return func() tea.Msg {
		ticket, err := svc.GetTicket(context.Background(), id)
		return TicketLoadedMsg{Ticket: ticket, Err: err}
	}
}

func (m *Model) loadDepartments() tea.Cmd {
	if len(m.departments) > 0 {
		return nil // the list is static enough to fetch once
	}
	svc := m.svc
	return func() tea.Msg {
		departments, err := svc.ListDepartments(context.Background())
		return DepartmentsLoadedMsg{Departments: departments, Err: err}
	}
}

// nextStatusFilter cycles all → each status → all.
func nextStatusFilter(s model.TicketStatus) model.TicketStatus {
	order := []model.TicketStatus{
		"", model.StatusOpen, model.StatusInProgress, model.StatusEscalated,
		model.StatusResolved, model.StatusClosed,
	}
	for i, cur := range order {
		if cur == s {
			return order[(i+1)%len(order)]
		}
	}
	return ""
}

func nextPriorityFilter(p model.TicketPriority) model.TicketPriority {
	order := []model.TicketPriority{
		"", model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityCritical,
	}
	for i, cur := range order {
		if cur == p {
			return order[(i+1)%len(order)]
		}
	}
	return ""
}
