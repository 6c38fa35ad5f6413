// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/aura-tui/internal/assistant"
	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/ui/styles"
)

func TestHeaderFitsWidth(t *testing.T) {
	theme := styles.NewTheme()
	h := NewHeader(theme)
	h.SetWidth(60)
	h.SetUser(&model.User{FullName: "Alice Johnson", Role: model.RoleOpsManager})

	out := h.Render()
	if !strings.Contains(out, "AURA") {
		t.Error("header should carry the brand")
	}
	if !strings.Contains(out, "Alice Johnson") {
		t.Error("header should show the user")
	}
	if w := lipgloss.Width(out); w > 60 {
		t.Errorf("header width = %d, want <= 60", w)
	}
}

func TestTabBarWraps(t *testing.T) {
	tb := NewTabBar(styles.NewTheme(), "Dashboard", "Tickets", "Knowledge")

	tb.Prev()
	if tb.Active != 2 {
		t.Errorf("Prev from 0 = %d, want wrap to 2", tb.Active)
	}
	tb.Next()
	if tb.Active != 0 {
		t.Errorf("Next from last = %d, want wrap to 0", tb.Active)
	}
}

func TestStatusStrings(t *testing.T) {
	for _, s := range []Status{StatusIdle, StatusLoading, StatusStreaming, StatusError, StatusOffline} {
		if s.String() == "Unknown" || s.Icon() == "?" {
			t.Errorf("status %d missing display text", s)
		}
	}
}

func TestStatusBarFitsWidth(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(50)
	bar.Status = StatusStreaming
	bar.Note = "assistant is replying"
	bar.Shortcuts = []Shortcut{{Key: "tab", Desc: "switch"}, {Key: "q", Desc: "quit"}}

	if w := lipgloss.Width(bar.Render()); w > 50 {
		t.Errorf("status bar width = %d, want <= 50", w)
	}
}

func TestErrorBoxHints(t *testing.T) {
	theme := styles.NewTheme()

	out := ErrorBox(theme, assistant.ErrNoActiveSession, 80)
	if !strings.Contains(out, "ctrl+d") {
		t.Errorf("no-session error should suggest a new session, got %q", out)
	}

	out = ErrorBox(theme, errors.New("anything else"), 80)
	if out == "" {
		t.Error("unknown errors still render")
	}

	if got := ErrorBox(theme, nil, 80); got != "" {
		t.Errorf("nil error should render nothing, got %q", got)
	}
}

func TestHighlightFallsBackToRawCode(t *testing.T) {
	code := "SELECT 1;"
	if got := Highlight(code, "no-such-language-xyz"); got == "" {
		t.Error("highlight of unknown language should not lose the code")
	}
}

func TestProgressBarBounds(t *testing.T) {
	if out := ProgressBar(150, 30); !strings.Contains(out, "100%") {
		t.Errorf("overflow should clamp to 100%%: %q", out)
	}
	if out := ProgressBar(-5, 30); !strings.Contains(out, "0%") {
		t.Errorf("underflow should clamp to 0%%: %q", out)
	}
}
