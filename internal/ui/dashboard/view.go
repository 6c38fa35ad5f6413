// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"fmt"
	"strings"

	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/ui/components"
	"github.com/jeranaias/aura-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

const barWidth = 24

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.PanelTitle.Render(m.user.Role.DisplayName() + " Dashboard"))
	b.WriteByte('\n')

	if m.lastErr != nil {
		b.WriteString(components.ErrorBox(m.theme, m.lastErr, m.width))
		b.WriteByte('\n')
	}
	if m.loading && m.metrics == nil {
		b.WriteString(m.theme.Hint.Render("loading metrics..."))
		return b.String()
	}
	if m.metrics == nil {
		b.WriteString(m.theme.Hint.Render("No metrics available. Press r to retry."))
		return b.String()
	}

	b.WriteString(m.viewMetrics())

	if m.user.Role.SeesAnalytics() {
		b.WriteString(m.viewTeam())
		b.WriteString(m.viewSLA())
	}
	if m.user.Role == model.RoleTransitionManager {
		b.WriteString(m.viewTransitions())
	}

	b.WriteString(m.theme.Hint.Render("r refresh"))
	return b.String()
}

func (m *Model) viewMetrics() string {
	mt := m.metrics
	var b strings.Builder

	cells := []string{
		m.metricCell("Open", fmt.Sprintf("%d", mt.OpenTickets)),
		m.metricCell("In Progress", fmt.Sprintf("%d", mt.InProgressTickets)),
		m.metricCell("Escalated", fmt.Sprintf("%d", mt.EscalatedTickets)),
		m.metricCell("Resolved Today", fmt.Sprintf("%d", mt.ResolvedToday)),
	}
	b.WriteString(strings.Join(cells, "  "))
	b.WriteByte('\n')

	b.WriteString(m.theme.FieldLabel.Render(util.PadRight("SLA compliance", 18)))
	b.WriteString(components.ProgressBar(mt.SLACompliance, barWidth))
	b.WriteString(fmt.Sprintf(" %.1f%%", mt.SLACompliance))
	b.WriteByte('\n')
	b.WriteString(m.theme.FieldLabel.Render(util.PadRight("Avg resolution", 18)))
	b.WriteString(m.theme.FieldValue.Render(fmt.Sprintf("%.1fh", mt.AvgResolutionHrs)))
	b.WriteString(m.theme.FieldLabel.Render(util.PadRight("   First response", 20)))
	b.WriteString(m.theme.FieldValue.Render(fmt.Sprintf("%.0fm", mt.AvgFirstResponse)))
	if m.stats != nil {
		b.WriteByte('\n')
		b.WriteString(m.theme.FieldLabel.Render(util.PadRight("My queue", 18)))
		b.WriteString(m.theme.FieldValue.Render(fmt.Sprintf(
			"%d total · %d resolved · %d closed",
			m.stats.Total, m.stats.Resolved, m.stats.Closed)))
	}
	b.WriteString("\n\n")
	return b.String()
}

func (m *Model) metricCell(label, value string) string {
	return m.theme.Panel.Render(
		m.theme.FieldValue.Render(value) + " " + m.theme.FieldLabel.Render(label),
	)
}

func (m *Model) viewTeam() string {
	if len(m.team) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Team Performance"))
	b.WriteByte('\n')
	b.WriteString(m.theme.ListHeader.Render(teamRow("ENGINEER", "ROLE", "ASSIGNED", "RESOLVED", "AVG", "BREACHES")))
	b.WriteByte('\n')
	for _, member := range m.team {
		b.WriteString(m.theme.ListRow.Render(teamRow(
			member.FullName,
			member.Role.DisplayName(),
			fmt.Sprintf("%d", member.AssignedCount),
			fmt.Sprintf("%d", member.ResolvedCount),
			fmt.Sprintf("%.1fh", member.AvgHandleHrs),
			fmt.Sprintf("%d", member.SLABreaches),
		)))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

func teamRow(name, role, assigned, resolved, avg, breaches string) string {
	return strings.Join([]string{
		util.PadRight(util.TruncateWidth(name, 22), 22),
		util.PadRight(util.TruncateWidth(role, 20), 20),
		util.PadRight(assigned, 9),
		util.PadRight(resolved, 9),
		util.PadRight(avg, 7),
		breaches,
	}, " ")
}

func (m *Model) viewSLA() string {
	if len(m.sla) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("SLA Compliance by Priority"))
	b.WriteByte('\n')
	for _, row := range m.sla {
		b.WriteString(m.theme.FieldLabel.Render(util.PadRight(row.Priority.String(), 10)))
		b.WriteString(components.ProgressBar(row.CompliancePct, barWidth))
		b.WriteString(m.theme.ListMeta.Render(fmt.Sprintf(" %.1f%% (%d/%d met)", row.CompliancePct, row.Met, row.Total)))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

func (m *Model) viewTransitions() string {
	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render("Transition Projects"))
	b.WriteByte('\n')
	if len(m.transitions) == 0 {
		b.WriteString(m.theme.Hint.Render("No active transitions."))
		b.WriteString("\n\n")
		return b.String()
	}

	for i, p := range m.transitions {
		line := fmt.Sprintf("%s %s %s %.0f%%  %s → %s",
			util.PadRight(util.TruncateWidth(p.Name, 26), 26),
			util.PadRight(p.Phase, 12),
			components.ProgressBar(p.ProgressPct, barWidth),
			p.ProgressPct,
			p.StartDate.Format("Jan 02"),
			p.TargetDate.Format("Jan 02"),
		)
		if i == m.cursor {
			b.WriteString(m.theme.ListSelected.Render(line))
		} else {
			b.WriteString(m.theme.ListRow.Render(line))
		}
		b.WriteByte('\n')
	}

	if len(m.readiness) > 0 {
		b.WriteString(m.theme.ListMeta.Render("Team readiness"))
		b.WriteByte('\n')
		for _, r := range m.readiness {
			b.WriteString(fmt.Sprintf("  %s %s %.0f%% (%d/%d trained)\n",
				util.PadRight(util.TruncateWidth(r.TeamName, 20), 20),
				components.ProgressBar(r.ReadinessPct, barWidth),
				r.ReadinessPct,
				r.Trained, r.Total,
			))
		}
	}
	if len(m.artifacts) > 0 {
		b.WriteString(m.theme.ListMeta.Render("Knowledge artifacts"))
		b.WriteByte('\n')
		for _, a := range m.artifacts {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				util.PadRight(util.TruncateWidth(a.Title, 32), 32),
				util.PadRight(a.Status, 12),
				m.theme.ListMeta.Render(a.UpdatedAt.Format("Jan 02")),
			))
		}
	}
	b.WriteByte('\n')
	return b.String()
}
