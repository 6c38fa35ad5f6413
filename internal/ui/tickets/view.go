// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tickets

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/ui/components"
	"github.com/jeranaias/aura-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

func (m *Model) View() string {
	switch m.mode {
	case modeDetail:
		return m.viewDetail()
	case modeCreate:
		return m.viewCreate()
	case modeEscalate:
		return m.viewEscalate()
	case modeAssign:
		return m.viewAssign()
	default:
		return m.viewList()
	}
}

func (m *Model) viewList() string {
	var b strings.Builder

	b.WriteString(m.theme.PanelTitle.Render("Tickets"))
	b.WriteString("  ")
	b.WriteString(m.theme.Hint.Render(m.filterLine()))
	b.WriteByte('\n')

	if m.lastErr != nil {
		b.WriteString(components.ErrorBox(m.theme, m.lastErr, m.width))
		b.WriteByte('\n')
	}

	if m.loading && len(m.tickets) == 0 {
		b.WriteString(m.theme.Hint.Render("loading tickets..."))
		return b.String()
	}
	if len(m.tickets) == 0 {
		b.WriteString(m.theme.Hint.Render("No tickets match the current filter. Press n to create one."))
		return b.String()
	}

	b.WriteString(m.theme.ListHeader.Render(m.rowText("NUMBER", "TITLE", "STATUS", "PRI", "SLA", "UPDATED")))
	b.WriteByte('\n')

	now := time.Now()
	for i, t := range m.tickets {
		row := m.rowText(
			t.Number,
			t.Title,
			t.Status.Label(),
			t.Priority.String(),
			t.SLAStateAt(now).Label(),
			relativeTime(now, t.UpdatedAt),
		)
		if i == m.cursor {
			b.WriteString(m.theme.ListSelected.Render(row))
		} else {
			b.WriteString(m.theme.ListRow.Render(row))
		}
		b.WriteByte('\n')
	}

	b.WriteString(m.theme.ListMeta.Render(fmt.Sprintf("page %d · %d total", m.filter.Page, m.total)))
	b.WriteByte('\n')
	b.WriteString(m.theme.Hint.Render("enter open · n new · s status · p priority · ←/→ page · r refresh"))
	return b.String()
}

// rowText lays out one list row inside the available width. The title
// column absorbs whatever the fixed columns leave over.
func (m *Model) rowText(number, title, status, pri, sla, updated string) string {
	width := m.width
	if width < 60 {
		width = 100
	}
	titleWidth := width - (12 + 13 + 9 + 9 + 12 + 6)
	if titleWidth < 10 {
		titleWidth = 10
	}
	return strings.Join([]string{
		util.PadRight(util.TruncateWidth(number, 12), 12),
		util.PadRight(util.TruncateWidth(title, titleWidth), titleWidth),
		util.PadRight(util.TruncateWidth(status, 13), 13),
		util.PadRight(util.TruncateWidth(pri, 9), 9),
		util.PadRight(util.TruncateWidth(sla, 9), 9),
		util.TruncateWidth(updated, 12),
	}, " ")
}

func (m *Model) filterLine() string {
	parts := []string{}
	if m.filter.Status != "" {
		parts = append(parts, "status="+m.filter.Status.Label())
	}
	if m.filter.Priority != "" {
		parts = append(parts, "priority="+m.filter.Priority.String())
	}
	if len(parts) == 0 {
		return "all tickets"
	}
	return strings.Join(parts, " · ")
}

func (m *Model) viewDetail() string {
	t := m.selected
	if t == nil {
		return m.theme.Hint.Render("no ticket selected")
	}

	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render(fmt.Sprintf("%s  %s", t.Number, t.Title)))
	b.WriteByte('\n')
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.StatusBadge(t.Status), " ",
		m.theme.PriorityBadge(t.Priority), " ",
		m.theme.SLABadge(t.SLAStateAt(time.Now())),
	))
	b.WriteByte('\n')

	if m.lastErr != nil {
		b.WriteString(components.ErrorBox(m.theme, m.lastErr, m.width))
		b.WriteByte('\n')
	}

	b.WriteString(m.field("Category", string(t.Category)))
	b.WriteString(m.field("Department", orDash(t.Department)))
	b.WriteString(m.field("Requester", t.RequesterID))
	b.WriteString(m.field("Assignee", orDash(t.AssigneeID)))
	b.WriteString(m.field("Created", t.CreatedAt.Local().Format("2006-01-02 15:04")))
	if t.SLADeadline != nil {
		b.WriteString(m.field("SLA deadline", t.SLADeadline.Local().Format("2006-01-02 15:04")))
	}
	if t.EscalationReason != "" {
		b.WriteString(m.field("Escalated", t.EscalationReason))
	}

	b.WriteByte('\n')
	b.WriteString(m.theme.Panel.Width(panelWidth(m.width)).Render(t.Description))
	b.WriteByte('\n')

	hints := "esc back · r refresh"
	if m.user.Role.CanEscalate() && !t.Status.IsTerminal() {
		hints = "a assign · e escalate · " + hints
	}
	b.WriteString(m.theme.Hint.Render(hints))
	return b.String()
}

func (m *Model) viewCreate() string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("New Ticket"))
	b.WriteByte('\n')

	if m.form.err != "" {
		b.WriteString(m.theme.ErrorTitle.Render("✗ " + m.form.err))
		b.WriteByte('\n')
	}

	b.WriteString(m.formField("Title", m.form.title.View(), m.form.focus == fieldTitle))
	b.WriteString(m.formField("Description", m.form.description.View(), m.form.focus == fieldDescription))
	b.WriteString(m.formField("Priority", string(model.Priorities()[m.form.priority]), m.form.focus == fieldPriority))
	b.WriteString(m.formField("Category", string(model.Categories()[m.form.category]), m.form.focus == fieldCategory))
	b.WriteString(m.formField("Department", m.form.departmentLabel(m.departments), m.form.focus == fieldDepartment))

	b.WriteString(m.theme.Hint.Render("tab next field · ←/→ cycle choices · enter submit · esc cancel"))
	return b.String()
}

func (m *Model) viewAssign() string {
	t := m.selected
	if t == nil {
		return m.theme.Hint.Render("no ticket selected")
	}

	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Assign " + t.Number))
	b.WriteByte('\n')
	if m.assign.err != "" {
		b.WriteString(m.theme.ErrorTitle.Render("✗ " + m.assign.err))
		b.WriteByte('\n')
	}
	b.WriteString(m.formField("Assignee", m.assign.assignee.View(), true))
	b.WriteString(m.theme.Hint.Render("enter assign · esc cancel"))
	return b.String()
}

func (m *Model) viewEscalate() string {
	t := m.selected
	if t == nil {
		return m.theme.Hint.Render("no ticket selected")
	}

	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Escalate " + t.Number))
	b.WriteByte('\n')
	if m.escalate.err != "" {
		b.WriteString(m.theme.ErrorTitle.Render("✗ " + m.escalate.err))
		b.WriteByte('\n')
	}
	b.WriteString(m.formField("Reason", m.escalate.reason.View(), true))
	b.WriteString(m.theme.Hint.Render("enter escalate to L2 · esc cancel"))
	return b.String()
}

func (m *Model) field(label, value string) string {
	return m.theme.FieldLabel.Render(util.PadRight(label, 14)) + m.theme.FieldValue.Render(value) + "\n"
}

func (m *Model) formField(label, value string, focused bool) string {
	marker := "  "
	if focused {
		marker = m.theme.InputPrompt.Render("› ")
	}
	return marker + m.theme.FieldLabel.Render(util.PadRight(label, 14)) + value + "\n"
}

func panelWidth(width int) int {
	if width < 20 {
		return 76
	}
	return width - 4
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// relativeTime renders recency the way the list expects it: coarse and
// short enough for a fixed column.
func relativeTime(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
