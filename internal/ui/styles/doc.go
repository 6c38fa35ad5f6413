// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the aura TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Blue - brand color, headers, selections
  - Teal - assistant messages
  - Green/Amber/Red/Orange - semantic states (resolved, at-risk, breached,
    escalated)
  - Surface/Overlay/Text* - layered surfaces and text hierarchy

# Theme System (theme.go)

The Theme struct groups every lipgloss style the views use, plus the
domain badges:

	theme := styles.NewTheme()
	row := theme.ListRow.Render(title) + " " + theme.StatusBadge(ticket.Status)

Badges derive their color from the domain value, so a CRITICAL priority or
a breached SLA is red everywhere without each view re-encoding the rules.
*/
package styles
