// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the aura TUI.
package components

import (
	"errors"

	"github.com/jeranaias/aura-tui/internal/api"
	"github.com/jeranaias/aura-tui/internal/assistant"
	"github.com/jeranaias/aura-tui/internal/ui/styles"
)

// ErrorBox renders an error with guidance fitted to its cause.
func ErrorBox(theme *styles.Theme, err error, width int) string {
	if err == nil {
		return ""
	}
	body := theme.ErrorTitle.Render("Error") + "\n" + err.Error()
	if hint := errorHint(err); hint != "" {
		body += "\n" + theme.Hint.Render(hint)
	}
	return theme.ErrorBox.Width(width - 2).Render(body)
}

// errorHint maps known error classes to a next step for the user.
func errorHint(err error) string {
	switch {
	case api.IsUnauthorized(err):
		return "Your login has expired. Run `aura login` to sign in again."
	case errors.Is(err, assistant.ErrNoActiveSession):
		return "Press ctrl+d in the chat panel to start a new session."
	case errors.Is(err, assistant.ErrSessionCreation), errors.Is(err, assistant.ErrUnavailable):
		return "The assistant backend looks down. Check `aura status`."
	case errors.Is(err, assistant.ErrTransport):
		return "Connection lost mid-response. Send again to retry."
	default:
		return ""
	}
}
