// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/aura-tui/internal/attachment"
	"github.com/jeranaias/aura-tui/internal/model"
)

// =============================================================================
// INPUT COMMANDS
// =============================================================================

// handleCommand intercepts slash commands typed into the input line.
// Returns handled=false for ordinary chat text.
func (m *Model) handleCommand(text string) (bool, tea.Cmd) {
	if !strings.HasPrefix(text, "/") {
		return false, nil
	}

	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/attach":
		m.input.Reset()
		m.stageAttachment(arg)
		return true, nil
	case "/detach":
		m.input.Reset()
		m.staged = nil
		m.lastErr = nil
		return true, nil
	case "/clear":
		m.input.Reset()
		return true, m.clearSession()
	default:
		m.lastErr = fmt.Errorf("unknown command %q (try /attach, /detach, /clear)", name)
		m.input.Reset()
		return true, nil
	}
}

// stageAttachment validates the path up front so the user learns about a
// bad file when staging it, not when submitting the turn.
func (m *Model) stageAttachment(path string) {
	if path == "" {
		m.lastErr = fmt.Errorf("usage: /attach <path>")
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		m.lastErr = &attachment.EncodingError{Path: path, Cause: err}
		return
	}
	if info.IsDir() {
		m.lastErr = &attachment.EncodingError{Path: path, Cause: fmt.Errorf("is a directory")}
		return
	}
	m.staged = append(m.staged, path)
	m.lastErr = nil
}

// encodeStaged encodes every staged file, or none of them.
func encodeStaged(paths []string) ([]model.Attachment, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	return attachment.Encode(paths)
}
