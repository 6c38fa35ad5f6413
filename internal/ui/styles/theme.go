// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the aura TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/aura-tui/internal/model"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// Application chrome
	App      lipgloss.Style
	Header   lipgloss.Style
	Brand    lipgloss.Style
	RoleTag  lipgloss.Style
	TabBar   lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Status   lipgloss.Style
	Shortcut lipgloss.Style
	Hint     lipgloss.Style

	// Chat panel
	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	PendingText lipgloss.Style
	InputBox    lipgloss.Style
	InputPrompt lipgloss.Style
	Attachment  lipgloss.Style

	// Lists and tables
	ListHeader   lipgloss.Style
	ListRow      lipgloss.Style
	ListSelected lipgloss.Style
	ListMeta     lipgloss.Style

	// Detail panes and forms
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	FieldLabel lipgloss.Style
	FieldValue lipgloss.Style

	// Feedback
	ErrorBox   lipgloss.Style
	ErrorTitle lipgloss.Style
	Success    lipgloss.Style
	Spinner    lipgloss.Style

	// Badges
	badgeBase lipgloss.Style
}

// NewTheme builds the theme for the current terminal.
func NewTheme() *Theme {
	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Foreground(TextPrimary)

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextPrimary).
		Padding(0, 1)
	t.Brand = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	t.RoleTag = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)

	t.TabBar = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).BorderForeground(Overlay)
	t.Tab = lipgloss.NewStyle().Foreground(TextSecondary).Padding(0, 2)
	t.TabOn = lipgloss.NewStyle().Foreground(Blue).Bold(true).Padding(0, 2)

	t.Status = lipgloss.NewStyle().Background(SurfaceDim).
		Foreground(TextSecondary).Padding(0, 1)
	t.Shortcut = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	t.Hint = lipgloss.NewStyle().Foreground(TextMuted)

	t.UserBubble = lipgloss.NewStyle().Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).BorderForeground(Blue).Padding(0, 1)
	t.BotBubble = lipgloss.NewStyle().Foreground(TextPrimary).
		BorderStyle(lipgloss.RoundedBorder()).BorderForeground(Teal).Padding(0, 1)
	t.PendingText = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.InputBox = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	t.Attachment = lipgloss.NewStyle().Foreground(Violet)

	t.ListHeader = lipgloss.NewStyle().Foreground(TextSecondary).Bold(true).Underline(true)
	t.ListRow = lipgloss.NewStyle().Foreground(TextPrimary)
	t.ListSelected = lipgloss.NewStyle().Foreground(TextInverse).Background(Blue).Bold(true)
	t.ListMeta = lipgloss.NewStyle().Foreground(TextMuted)

	t.Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).Padding(1, 2)
	t.PanelTitle = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	t.FieldLabel = lipgloss.NewStyle().Foreground(TextSecondary).Width(14)
	t.FieldValue = lipgloss.NewStyle().Foreground(TextPrimary)

	t.ErrorBox = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Red).Foreground(Red).Padding(0, 1)
	t.ErrorTitle = lipgloss.NewStyle().Foreground(Red).Bold(true)
	t.Success = lipgloss.NewStyle().Foreground(Green)
	t.Spinner = lipgloss.NewStyle().Foreground(Teal)

	t.badgeBase = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(TextInverse)
}

// SetSize records the terminal dimensions for layout decisions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// =============================================================================
// DOMAIN BADGES
// =============================================================================

// StatusBadge renders a colored badge for a ticket status.
func (t *Theme) StatusBadge(s model.TicketStatus) string {
	var color lipgloss.AdaptiveColor
	switch s {
	case model.StatusOpen:
		color = Blue
	case model.StatusInProgress:
		color = Amber
	case model.StatusEscalated:
		color = Orange
	case model.StatusResolved, model.StatusClosed:
		color = Green
	default:
		color = Overlay
	}
	return t.badgeBase.Background(color).Render(s.Label())
}

// PriorityBadge renders a colored badge for a ticket priority.
func (t *Theme) PriorityBadge(p model.TicketPriority) string {
	var color lipgloss.AdaptiveColor
	switch p {
	case model.PriorityCritical:
		color = Red
	case model.PriorityHigh:
		color = Orange
	case model.PriorityMedium:
		color = Amber
	default:
		color = Overlay
	}
	return t.badgeBase.Background(color).Render(string(p))
}

// SLABadge renders the derived SLA state; SLANone renders nothing.
func (t *Theme) SLABadge(s model.SLAState) string {
	switch s {
	case model.SLAOk:
		return lipgloss.NewStyle().Foreground(Green).Render(s.Label())
	case model.SLAAtRisk:
		return lipgloss.NewStyle().Foreground(Amber).Bold(true).Render(s.Label())
	case model.SLABreached:
		return lipgloss.NewStyle().Foreground(Red).Bold(true).Render(s.Label())
	default:
		return ""
	}
}
