// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the aura TUI.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aura-tui/internal/ui/styles"
)

// TabBar renders the workspace tab strip.
type TabBar struct {
	Tabs   []string
	Active int
	Width  int
	theme  *styles.Theme
}

// NewTabBar creates a tab bar with the given labels.
func NewTabBar(theme *styles.Theme, tabs ...string) *TabBar {
	return &TabBar{Tabs: tabs, Width: 80, theme: theme}
}

// SetWidth updates the tab bar width.
func (t *TabBar) SetWidth(width int) {
	t.Width = width
}

// Next moves the selection right, wrapping around.
func (t *TabBar) Next() {
	if len(t.Tabs) > 0 {
		t.Active = (t.Active + 1) % len(t.Tabs)
	}
}

// Prev moves the selection left, wrapping around.
func (t *TabBar) Prev() {
	if len(t.Tabs) > 0 {
		t.Active = (t.Active - 1 + len(t.Tabs)) % len(t.Tabs)
	}
}

// Render draws the tab strip.
func (t *TabBar) Render() string {
	rendered := make([]string, len(t.Tabs))
	for i, label := range t.Tabs {
		if i == t.Active {
			rendered[i] = t.theme.TabOn.Render(label)
		} else {
			rendered[i] = t.theme.Tab.Render(label)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
	return t.theme.TabBar.Width(t.Width).Render(row)
}
