// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the aura TUI.
package components

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer wraps glamour with width-aware re-rendering. Assistant
// replies and knowledge articles both come back as markdown.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	enabled  bool
}

// NewMarkdownRenderer builds a renderer for the given width. When enabled
// is false, Render passes text through untouched (plain-text mode).
func NewMarkdownRenderer(width int, enabled bool) (*MarkdownRenderer, error) {
	m := &MarkdownRenderer{width: width, enabled: enabled}
	if !enabled {
		return m, nil
	}
	if err := m.rebuild(); err != nil {
		return nil, err
	}
	return m, nil
}

// SetWidth re-targets the renderer; glamour wraps at render construction
// time, so a resize needs a rebuild.
func (m *MarkdownRenderer) SetWidth(width int) error {
	if width == m.width {
		return nil
	}
	m.width = width
	if !m.enabled {
		return nil
	}
	return m.rebuild()
}

func (m *MarkdownRenderer) rebuild() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.width),
	)
	if err != nil {
		return err
	}
	m.renderer = r
	return nil
}

// Render converts markdown to styled terminal text. On any rendering
// failure the raw text comes back; a broken document is still readable.
func (m *MarkdownRenderer) Render(text string) string {
	if !m.enabled || m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}
