// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// chromeHeight is the vertical space the panel spends outside the
// transcript viewport: input box, hint line, and attachment row.
const chromeHeight = 5

// minimizedBar is the collapsed panel. Enter or esc expands it again.
const minimizedBar = "💬 Assistant (minimized) — press esc to expand"

func (m *Model) View() string {
	if m.minimized {
		return m.theme.Hint.Render(minimizedBar)
	}
	if !m.vpReady {
		return m.theme.Hint.Render("starting assistant...")
	}

	var b strings.Builder
	b.WriteString(m.vp.View())
	b.WriteByte('\n')

	if len(m.staged) > 0 {
		b.WriteString(m.theme.Attachment.Render(m.stagedLine()))
		b.WriteByte('\n')
	}
	if m.lastErr != nil {
		b.WriteString(components.ErrorBox(m.theme, m.lastErr, m.width))
		b.WriteByte('\n')
	}

	b.WriteString(m.theme.InputBox.Width(m.width - 2).Render(m.input.View()))
	b.WriteByte('\n')
	b.WriteString(m.theme.Hint.Render(m.hintLine()))
	return b.String()
}

func (m *Model) stagedLine() string {
	names := make([]string, len(m.staged))
	for i, p := range m.staged {
		names[i] = filepath.Base(p)
	}
	return fmt.Sprintf("📎 %s", strings.Join(names, ", "))
}

func (m *Model) hintLine() string {
	switch m.state {
	case StateOpening:
		return "waiting for the assistant..."
	case StateStreaming:
		return "streaming... (esc to minimize)"
	default:
		return "enter send · ctrl+d new session · esc minimize"
	}
}

// refreshTranscript rebuilds the viewport content from the message log
// and pins the view to the newest message.
func (m *Model) refreshTranscript() {
	if !m.vpReady {
		return
	}
	msgs := m.log.Messages(m.userID)
	if len(msgs) == 0 {
		m.vp.SetContent(m.theme.Hint.Render("No messages yet. Ask the assistant anything."))
		return
	}

	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		blocks = append(blocks, m.renderMessage(msg))
	}
	m.vp.SetContent(strings.Join(blocks, "\n"))
	m.vp.GotoBottom()
}

func (m *Model) renderMessage(msg model.ChatMessage) string {
	if msg.Sender == model.SenderUser {
		text := msg.Text
		if len(msg.Attachments) > 0 {
			names := make([]string, len(msg.Attachments))
			for i, att := range msg.Attachments {
				names[i] = att.Name
			}
			text += "\n" + m.theme.Attachment.Render("📎 "+strings.Join(names, ", "))
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			m.theme.FieldLabel.Render("You"),
			m.theme.UserBubble.Render(text),
		)
	}

	if msg.Pending {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.theme.FieldLabel.Render("Assistant"),
			m.theme.PendingText.Render(msg.Text),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.FieldLabel.Render("Assistant"),
		m.theme.BotBubble.Render(m.renderBotText(msg.Text)),
	)
}

// renderBotText runs finished bot messages through the markdown renderer.
// Error patches keep their raw text so the guidance stays legible. When
// markdown is off, fenced code blocks still get syntax highlighting.
func (m *Model) renderBotText(text string) string {
	if strings.HasPrefix(text, "❌") {
		return text
	}
	if m.md == nil {
		return renderFences(text, m.width)
	}
	return strings.TrimRight(m.md.Render(text), "\n")
}

// renderFences replaces ``` fences with highlighted code boxes and leaves
// the prose between them untouched. An unterminated fence renders raw.
func renderFences(text string, width int) string {
	if !strings.Contains(text, "```") {
		return text
	}

	var out []string
	var code []string
	lang := ""
	inFence := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if !inFence {
				lang = strings.TrimPrefix(trimmed, "```")
				inFence = true
				continue
			}
			block := components.NewCodeBlock(lang, strings.Join(code, "\n"))
			if width > 6 {
				block.MaxWidth = width - 2
			}
			out = append(out, block.Render())
			code, lang, inFence = nil, "", false
			continue
		}
		if inFence {
			code = append(code, line)
		} else {
			out = append(out, line)
		}
	}

	if inFence {
		out = append(out, "```"+lang)
		out = append(out, code...)
	}
	return strings.Join(out, "\n")
}
