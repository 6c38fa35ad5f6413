// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the aura TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aura-tui/internal/ui/styles"
	"github.com/jeranaias/aura-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Status is the connection/activity state shown on the left of the bar.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusStreaming
	StatusError
	StatusOffline
)

// String returns the display text for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Ready"
	case StatusLoading:
		return "Loading"
	case StatusStreaming:
		return "Streaming"
	case StatusError:
		return "Error"
	case StatusOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// Icon returns a single-cell indicator for the status.
func (s Status) Icon() string {
	switch s {
	case StatusIdle:
		return "●"
	case StatusLoading, StatusStreaming:
		return "◐"
	case StatusError:
		return "✗"
	case StatusOffline:
		return "○"
	default:
		return "?"
	}
}

// Shortcut is one key hint on the right of the bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom line: status, a free-form note, and key
// hints for the active view.
type StatusBar struct {
	Width     int
	Status    Status
	Note      string
	Shortcuts []Shortcut
	theme     *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetWidth updates the bar width.
func (b *StatusBar) SetWidth(width int) {
	b.Width = width
}

// Render draws the status bar line.
func (b *StatusBar) Render() string {
	left := b.Status.Icon() + " " + b.Status.String()
	if b.Note != "" {
		left += "  " + b.Note
	}

	var hints []string
	for _, sc := range b.Shortcuts {
		hints = append(hints, b.theme.Shortcut.Render(sc.Key)+" "+b.theme.Hint.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := b.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		left = util.TruncateWidth(left, b.Width-lipgloss.Width(right)-3)
		gap = 1
	}

	return b.theme.Status.Width(b.Width).Render(
		left + lipgloss.NewStyle().Width(gap).Render("") + right)
}
