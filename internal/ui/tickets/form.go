// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tickets

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/aura-tui/internal/model"
)

// =============================================================================
// CREATE FORM
// =============================================================================

const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldCategory
	fieldDepartment
	fieldCount
)

// createForm is the new-ticket form. Text fields are bubbles inputs;
// priority, category, and department are cycled in place with left/right.
type createForm struct {
	title       textinput.Model
	description textinput.Model
	priority    int // index into model.Priorities()
	category    int // index into model.Categories()
	department  int // 0 = none, else index+1 into Model.departments
	focus       int
	err         string
}

func newCreateForm() createForm {
	title := textinput.New()
	title.Placeholder = "Short summary"
	title.CharLimit = 120
	title.Focus()

	desc := textinput.New()
	desc.Placeholder = "What happened, what was expected"
	desc.CharLimit = 2000

	return createForm{
		title:       title,
		description: desc,
		priority:    1, // MEDIUM
	}
}

func (f *createForm) setFocus(target int) {
	f.focus = target
	f.title.Blur()
	f.description.Blur()
	switch target {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	}
}

// build validates and assembles the create payload.
func (f *createForm) build(departments []model.Department) (model.TicketCreate, bool) {
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		f.err = "title is required"
		return model.TicketCreate{}, false
	}
	f.err = ""
	create := model.TicketCreate{
		Title:       title,
		Description: strings.TrimSpace(f.description.Value()),
		Priority:    model.Priorities()[f.priority],
		Category:    model.Categories()[f.category],
	}
	if f.department > 0 && f.department <= len(departments) {
		create.Department = departments[f.department-1].Name
	}
	return create, true
}

// departmentLabel renders the cycled department choice.
func (f *createForm) departmentLabel(departments []model.Department) string {
	if f.department <= 0 || f.department > len(departments) {
		return "—"
	}
	return departments[f.department-1].Name
}

func (m *Model) updateCreate(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil
	case "tab", "down":
		m.form.setFocus((m.form.focus + 1) % fieldCount)
		return m, nil
	case "shift+tab", "up":
		m.form.setFocus((m.form.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch m.form.focus {
		case fieldPriority:
			n := len(model.Priorities())
			m.form.priority = (m.form.priority + delta + n) % n
			return m, nil
		case fieldCategory:
			n := len(model.Categories())
			m.form.category = (m.form.category + delta + n) % n
			return m, nil
		case fieldDepartment:
			n := len(m.departments) + 1 // slot 0 is "none"
			m.form.department = (m.form.department + delta + n) % n
			return m, nil
		}
	case "enter":
		create, ok := m.form.build(m.departments)
		if !ok {
			return m, nil
		}
		return m, m.create(create)
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case fieldTitle:
		m.form.title, cmd = m.form.title.Update(msg)
	case fieldDescription:
		m.form.description, cmd = m.form.description.Update(msg)
	}
	return m, cmd
}

func (m *Model) create(create model.TicketCreate) tea.Cmd {
	m.loading = true
	svc := m.svc
	return func() tea.Msg {
		ticket, err := svc.CreateTicket(context.Background(), create)
		return TicketSavedMsg{Ticket: ticket, Err: err}
	}
}

// =============================================================================
// ESCALATE FORM
// =============================================================================

// escalateForm collects the mandatory escalation reason.
type escalateForm struct {
	reason textinput.Model
	err    string
}

func newEscalateForm() escalateForm {
	reason := textinput.New()
	reason.Placeholder = "Why L1 cannot resolve this"
	reason.CharLimit = 500
	reason.Focus()
	return escalateForm{reason: reason}
}

func (m *Model) updateEscalate(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeDetail
		return m, nil
	case "enter":
		reason := strings.TrimSpace(m.escalate.reason.Value())
		if reason == "" {
			m.escalate.err = "a reason is required to escalate"
			return m, nil
		}
		if m.selected == nil {
			m.mode = modeList
			return m, nil
		}
		m.escalate.err = ""
		return m, m.doEscalate(m.selected.ID, reason)
	}

	var cmd tea.Cmd
	m.escalate.reason, cmd = m.escalate.reason.Update(msg)
	return m, cmd
}

func (m *Model) doEscalate(id, reason string) tea.Cmd {
	m.loading = true
	svc := m.svc
	return func() tea.Msg {
		ticket, err := svc.EscalateTicket(context.Background(), id, reason)
		if err != nil {
			err = fmt.Errorf("escalate %s: %w", id, err)
		}
		return TicketSavedMsg{Ticket: ticket, Err: err}
	}
}

// =============================================================================
// ASSIGN FORM
// =============================================================================

// assignForm collects the engineer a ticket should be handed to.
type assignForm struct {
	assignee textinput.Model
	err      string
}

func newAssignForm(current string) assignForm {
	assignee := textinput.New()
	assignee.Placeholder = "Engineer user ID"
	assignee.CharLimit = 120
	assignee.SetValue(current)
	assignee.Focus()
	return assignForm{assignee: assignee}
}

func (m *Model) updateAssign(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeDetail
		return m, nil
	case "enter":
		assignee := strings.TrimSpace(m.assign.assignee.Value())
		if assignee == "" {
			m.assign.err = "an assignee is required"
			return m, nil
		}
		if m.selected == nil {
			m.mode = modeList
			return m, nil
		}
		m.assign.err = ""
		return m, m.doAssign(m.selected.ID, assignee)
	}

	var cmd tea.Cmd
	m.assign.assignee, cmd = m.assign.assignee.Update(msg)
	return m, cmd
}

func (m *Model) doAssign(id, assignee string) tea.Cmd {
	m.loading = true
	svc := m.svc
	return func() tea.Msg {
		ticket, err := svc.AssignTicket(context.Background(), id, assignee)
		if err != nil {
			err = fmt.Errorf("assign %s: %w", id, err)
		}
		return TicketSavedMsg{Ticket: ticket, Err: err}
	}
}
