// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the aura TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/ui/styles"
	"github.com/jeranaias/aura-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: brand on the left, the signed-in user and role
// on the right.
type Header struct {
	Width int
	user  *model.User
	theme *styles.Theme
}

// NewHeader creates a header component.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Width: 80, theme: theme}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetUser records the signed-in account shown on the right.
func (h *Header) SetUser(user *model.User) {
	h.user = user
}

// Render draws the header line.
func (h *Header) Render() string {
	brand := h.theme.Brand.Render("AURA")

	var who string
	if h.user != nil {
		who = h.user.FullName + " " + h.theme.RoleTag.Render("("+h.user.Role.DisplayName()+")")
	}

	gap := h.Width - lipgloss.Width(brand) - lipgloss.Width(who) - 2
	if gap < 1 {
		who = util.TruncateWidth(who, h.Width-lipgloss.Width(brand)-3)
		gap = 1
	}

	return h.theme.Header.Width(h.Width).Render(
		brand + lipgloss.NewStyle().Width(gap).Render("") + who)
}
