// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tickets

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/aura-tui/internal/api"
	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/ui/styles"
)

// =============================================================================
// FIXTURES
// =============================================================================

type fakeService struct {
	lists     []api.TicketFilter
	escalated []string
	assigned  []string
	created   []model.TicketCreate
	deptCalls int
	tickets   map[string]*model.Ticket
}

func newFakeService(tickets ...model.Ticket) *fakeService {
	s := &fakeService{tickets: make(map[string]*model.Ticket)}
	for i := range tickets {
		t := tickets[i]
		s.tickets[t.ID] = &t
	}
	return s
}

func (s *fakeService) ListTickets(ctx context.Context, filter api.TicketFilter) (*api.TicketPage, error) {
	s.lists = append(s.lists, filter)
	page := &api.TicketPage{Page: filter.Page, Size: filter.Size}
	for _, t := range s.tickets {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		page.Tickets = append(page.Tickets, *t)
	}
	page.Total = len(page.Tickets)
	return page, nil
}

func (s *fakeService) GetTicket(ctx context.Context, id string) (*model.Ticket, error) {
	t, ok := s.tickets[id]
	if !ok {
		return nil, fmt.Errorf("ticket %s not found", id)
	}
	return t, nil
}

func (s *fakeService) CreateTicket(ctx context.Context, create model.TicketCreate) (*model.Ticket, error) {
	s.created = append(s.created, create)
	t := &model.Ticket{
		ID:       fmt.Sprintf("t-%d", len(s.created)),
		Number:   fmt.Sprintf("TKT-%04d", len(s.created)),
		Title:    create.Title,
		Status:   model.StatusOpen,
		Priority: create.Priority,
		Category: create.Category,
	}
	s.tickets[t.ID] = t
	return t, nil
}

func (s *fakeService) EscalateTicket(ctx context.Context, id, reason string) (*model.Ticket, error) {
	s.escalated = append(s.escalated, id+":"+reason)
	t := s.tickets[id]
	t.Status = model.StatusEscalated
	t.EscalationReason = reason
	return t, nil
}

func (s *fakeService) AssignTicket(ctx context.Context, id, assigneeID string) (*model.Ticket, error) {
	s.assigned = append(s.assigned, id+":"+assigneeID)
	t := s.tickets[id]
	t.AssigneeID = assigneeID
	t.Status = model.StatusInProgress
	return t, nil
}

func (s *fakeService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	s.deptCalls++
	return []model.Department{{ID: "d1", Name: "Finance"}, {ID: "d2", Name: "Warehouse"}}, nil
}

func sampleTicket(id string, status model.TicketStatus) model.Ticket {
	return model.Ticket{
		ID:        id,
		Number:    "TKT-" + id,
		Title:     "vpn unstable",
		Status:    status,
		Priority:  model.PriorityHigh,
		Category:  model.CategoryIncident,
		UpdatedAt: time.Now(),
	}
}

func newTestModel(svc Service, role model.Role) *Model {
	user := model.User{ID: "u1", Email: "eng@example.com", Role: role}
	return New(styles.NewTheme(), svc, user, zap.NewNop())
}

func drive(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// =============================================================================
// LIST
// =============================================================================

func TestInitLoadsFirstPage(t *testing.T) {
	svc := newFakeService(sampleTicket("a", model.StatusOpen))
	m := newTestModel(svc, model.RoleL1Engineer)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected load command")
	}
	drive(m, cmd())

	if len(m.tickets) != 1 || m.total != 1 {
		t.Fatalf("expected one ticket loaded, got %d/%d", len(m.tickets), m.total)
	}
	if len(svc.lists) != 1 || svc.lists[0].Page != 1 || svc.lists[0].Size != pageSize {
		t.Errorf("unexpected list filter: %+v", svc.lists)
	}
}

func TestStatusFilterCyclesAndReloads(t *testing.T) {
	svc := newFakeService(
		sampleTicket("a", model.StatusOpen),
		sampleTicket("b", model.StatusResolved),
	)
	m := newTestModel(svc, model.RoleL1Engineer)
	drive(m, m.Init()())

	cmd := drive(m, key("s"))
	if m.filter.Status != model.StatusOpen {
		t.Fatalf("expected first cycle to OPEN, got %q", m.filter.Status)
	}
	if cmd == nil {
		t.Fatal("filter change must reload")
	}
	drive(m, cmd())

	if len(m.tickets) != 1 || m.tickets[0].Status != model.StatusOpen {
		t.Errorf("expected only open tickets, got %+v", m.tickets)
	}
}

func TestEnterOpensDetail(t *testing.T) {
	svc := newFakeService(sampleTicket("a", model.StatusOpen))
	m := newTestModel(svc, model.RoleEndUser)
	drive(m, m.Init()())

	cmd := drive(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected get command")
	}
	drive(m, cmd())

	if m.mode != modeDetail || m.selected == nil || m.selected.ID != "a" {
		t.Fatalf("expected detail view for ticket a, got mode=%v selected=%+v", m.mode, m.selected)
	}
}

// =============================================================================
// ESCALATION
// =============================================================================

func TestEscalateRequiresCapableRole(t *testing.T) {
	svc := newFakeService(sampleTicket("a", model.StatusOpen))
	m := newTestModel(svc, model.RoleEndUser)
	drive(m, m.Init()())
	drive(m, drive(m, tea.KeyMsg{Type: tea.KeyEnter})())

	drive(m, key("e"))
	if m.mode != modeDetail {
		t.Error("end users must not reach the escalate form")
	}
}

func TestEscalateBlockedForTerminalTickets(t *testing.T) {
	svc := newFakeService(sampleTicket("a", model.StatusResolved))
	m := newTestModel(svc, model.RoleL1Engineer)
	drive(m, m.Init()())
	drive(m, drive(m, tea.KeyMsg{Type: tea.KeyEnter})())

	drive(m, key("e"))
	if m.mode != modeDetail {
		t.Error("resolved tickets must not be escalatable")
	}
}

func TestEscalateRequiresReason(t *testing.T) {
	svc := newFakeService(sampleTicket("a", model.StatusOpen))
	m := newTestModel(svc, model.RoleL1Engineer)
	drive(m, m.Init()())
	drive(m, drive(m, tea.KeyMsg{Type: tea.KeyEnter})())
	drive(m, key("e"))
	if m.mode != modeEscalate {
		t.Fatal("expected escalate form")
	}

	if cmd := drive(m, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("empty reason must not submit")
	}
	if m.escalate.err == "" {
		t.Error("expected validation error for empty reason")
	}

	m.escalate.reason.SetValue("needs packet capture")
	cmd := drive(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected escalate command")
	}
	drive(m, cmd())

	if len(svc.escalated) != 1 || svc.escalated[0] != "a:needs packet capture" {
		t.Errorf("unexpected escalation calls: %v", svc.escalated)
	}
	if m.mode != modeDetail || m.selected.Status != model.StatusEscalated {
		t.Errorf("expected updated detail view, got mode=%v status=%v", m.mode, m.selected.Status)
	}
}

// =============================================================================
// CREATE
// =============================================================================

func TestCreateValidatesTitle(t *testing.T) {
	svc := newFakeService()
	m := newTestModel(svc, model.RoleEndUser)
	drive(m, m.Init()())
	drive(m, key("n"))
	if m.mode != modeCreate {
		t.Fatal("expected create form")
	}

	if cmd := drive(m, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("empty title must not submit")
	}
	if m.form.err == "" {
		t.Error("expected title validation error")
	}

	m.form.title.SetValue("laptop will not boot")
	cmd := drive(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected create command")
	}
	cmd2 := drive(m, cmd())

	if len(svc.created) != 1 || svc.created[0].Title != "laptop will not boot" {
		t.Errorf("unexpected creates: %+v", svc.created)
	}
	if svc.created[0].Priority != model.PriorityMedium {
		t.Errorf("expected default MEDIUM priority, got %v", svc.created[0].Priority)
	}
	if m.mode != modeDetail {
		t.Errorf("expected detail of the new ticket, got mode %v", m.mode)
	}
	// Saving refreshes the stale list.
	if cmd2 == nil {
		t.Error("expected list reload after save")
	}
}

func TestCreatePicksDepartmentFromLoadedList(t *testing.T) {
	svc := newFakeService()
	m := newTestModel(svc, model.RoleEndUser)
	drive(m, m.Init()())

	cmd := drive(m, key("n"))
	if cmd == nil {
		t.Fatal("entering the form must fetch the department list")
	}
	drive(m, cmd())
	if svc.deptCalls != 1 || len(m.departments) != 2 {
		t.Fatalf("expected departments loaded once, got calls=%d len=%d", svc.deptCalls, len(m.departments))
	}

	m.form.title.SetValue("printer offline")
	m.form.setFocus(fieldDepartment)
	drive(m, tea.KeyMsg{Type: tea.KeyRight}) // none -> Finance
	drive(m, tea.KeyMsg{Type: tea.KeyRight}) // Finance -> Warehouse

	save := drive(m, tea.KeyMsg{Type: tea.KeyEnter})
	if save == nil {
		t.Fatal("expected create command")
	}
	drive(m, save())

	if len(svc.created) != 1 || svc.created[0].Department != "Warehouse" {
		t.Errorf("unexpected create payload: %+v", svc.created)
	}
}

func TestCreateDepartmentDefaultsToNone(t *testing.T) {
	svc := newFakeService()
	m := newTestModel(svc, model.RoleEndUser)
	drive(m, m.Init()())
	drive(m, drive(m, key("n"))())

	m.form.title.SetValue("vpn flapping")
	drive(m, drive(m, tea.KeyMsg{Type: tea.KeyEnter})())

	if len(svc.created) != 1 || svc.created[0].Department != "" {
		t.Errorf("expected no department on the payload, got %+v", svc.created)
	}
}

// =============================================================================
// ASSIGNMENT
// =============================================================================

func TestAssignRequiresCapableRole(t *testing.T) {
	svc := newFakeService(sampleTicket("a", model.StatusOpen))
	m := newTestModel(svc, model.RoleEndUser)
	drive(m, m.Init()())
	drive(m, drive(m, tea.KeyMsg{Type: tea.KeyEnter})())

	drive(m, key("a"))
	if m.mode != modeDetail {
		t.Error("end users must not reach the assign form")
	}
}

func TestAssignBlockedForTerminalTickets(t *testing.T) {
	svc := newFakeService(sampleTicket("a", model.StatusClosed))
	m := newTestModel(svc, model.RoleOpsManager)
	drive(m, m.Init()())
	drive(m, drive(m, tea.KeyMsg{Type: tea.KeyEnter})())

	drive(m, key("a"))
	if m.mode != modeDetail {
		t.Error("closed tickets must not be reassignable")
	}
}

func TestAssignRecordsAssignee(t *testing.T) {
	svc := newFakeService(sampleTicket("a", model.StatusOpen))
	m := newTestModel(svc, model.RoleL1Engineer)
	drive(m, m.Init()())
	drive(m, drive(m, tea.KeyMsg{Type: tea.KeyEnter})())

	drive(m, key("a"))
	if m.mode != modeAssign {
		t.Fatal("expected assign form")
	}

	if cmd := drive(m, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("empty assignee must not submit")
	}
	if m.assign.err == "" {
		t.Error("expected validation error for empty assignee")
	}

	m.assign.assignee.SetValue("eng-42")
	cmd := drive(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected assign command")
	}
	reload := drive(m, cmd())

	if len(svc.assigned) != 1 || svc.assigned[0] != "a:eng-42" {
		t.Errorf("unexpected assignment calls: %v", svc.assigned)
	}
	if m.mode != modeDetail || m.selected.AssigneeID != "eng-42" {
		t.Errorf("expected updated detail view, got mode=%v assignee=%q", m.mode, m.selected.AssigneeID)
	}
	if reload == nil {
		t.Error("expected list reload after save")
	}
}
