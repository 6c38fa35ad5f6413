// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the aura TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aura-tui/internal/ui/styles"
)

// ProgressBar renders a percentage bar for transition progress and team
// readiness. Color shifts with the value: red below 40, amber below 75,
// green above.
func ProgressBar(pct float64, width int) string {
	if width < 10 {
		width = 10
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	barWidth := width - 6 // room for " 100%"
	filled := int(float64(barWidth) * pct / 100)

	var color lipgloss.AdaptiveColor
	switch {
	case pct < 40:
		color = styles.Red
	case pct < 75:
		color = styles.Amber
	default:
		color = styles.Green
	}

	bar := lipgloss.NewStyle().Foreground(color).
		Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(styles.Overlay).
			Render(strings.Repeat("░", barWidth-filled))

	return fmt.Sprintf("%s %3.0f%%", bar, pct)
}
