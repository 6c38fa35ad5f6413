// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package knowledge

import (
	"fmt"
	"strings"

	"github.com/jeranaias/aura-tui/internal/ui/components"
	"github.com/jeranaias/aura-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

func (m *Model) View() string {
	if m.mode == modeRead {
		return m.viewReader()
	}
	return m.viewList()
}

func (m *Model) viewList() string {
	var b strings.Builder

	title := "Knowledge Base"
	if m.query != "" {
		title = fmt.Sprintf("Knowledge Base — %q", m.query)
	}
	b.WriteString(m.theme.PanelTitle.Render(title))
	if m.offline {
		b.WriteString("  ")
		b.WriteString(m.theme.Hint.Render("(offline copy)"))
	}
	b.WriteByte('\n')

	if m.mode == modeSearch {
		b.WriteString(m.search.View())
		b.WriteByte('\n')
	}

	if m.lastErr != nil {
		b.WriteString(components.ErrorBox(m.theme, m.lastErr, m.width))
		b.WriteByte('\n')
	}

	switch {
	case m.loading && len(m.articles) == 0:
		b.WriteString(m.theme.Hint.Render("loading articles..."))
	case len(m.articles) == 0:
		b.WriteString(m.theme.Hint.Render("No articles found. Press / to search."))
	default:
		for i, a := range m.articles {
			row := m.articleRow(a.Title, string(a.Type), a.Category)
			if i == m.cursor {
				b.WriteString(m.theme.ListSelected.Render(row))
			} else {
				b.WriteString(m.theme.ListRow.Render(row))
			}
			b.WriteByte('\n')
			if i == m.cursor && a.Summary != "" {
				b.WriteString(m.theme.ListMeta.Render("  " + util.TruncateWidth(a.Summary, listWidth(m.width)-2)))
				b.WriteByte('\n')
			}
		}
	}

	b.WriteByte('\n')
	b.WriteString(m.theme.Hint.Render("enter read · / search · r refresh"))
	return b.String()
}

func (m *Model) articleRow(title, kind, category string) string {
	width := listWidth(m.width)
	titleWidth := width - 30
	if titleWidth < 10 {
		titleWidth = 10
	}
	return strings.Join([]string{
		util.PadRight(util.TruncateWidth(title, titleWidth), titleWidth),
		util.PadRight(util.TruncateWidth(kind, 15), 15),
		util.TruncateWidth(category, 14),
	}, " ")
}

func (m *Model) viewReader() string {
	if m.current == nil {
		return m.theme.Hint.Render("no article selected")
	}

	var b strings.Builder
	b.WriteString(m.theme.PanelTitle.Render(m.current.Title))
	b.WriteString("  ")
	b.WriteString(m.theme.ListMeta.Render(fmt.Sprintf("%s · %s · %d views",
		m.current.Type, m.current.Category, m.current.ViewCount)))
	b.WriteByte('\n')
	if m.rdReady {
		b.WriteString(m.reader.View())
		b.WriteByte('\n')
	}
	b.WriteString(m.theme.Hint.Render("↑/↓ scroll · esc back"))
	return b.String()
}

// renderArticle fills the reader viewport with the article body rendered
// as markdown.
func (m *Model) renderArticle() {
	if !m.rdReady || m.current == nil {
		return
	}
	md, err := components.NewMarkdownRenderer(m.width-4, true)
	if err != nil || md == nil {
		m.reader.SetContent(m.current.Content)
	} else {
		m.reader.SetContent(md.Render(m.current.Content))
	}
	m.reader.GotoTop()
}

func listWidth(width int) int {
	if width < 40 {
		return 100
	}
	return width
}
