// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"
)

func TestRenderFencesHighlightsCodeBlocks(t *testing.T) {
	reply := "Run this:\n```go\nfmt.Println(\"hi\")\n```\nThen restart."

	out := renderFences(reply, 80)

	if strings.Contains(out, "```") {
		t.Error("fence markers must not survive rendering")
	}
	if !strings.Contains(out, `fmt.Println("hi")`) {
		t.Error("code content must survive rendering")
	}
	if !strings.Contains(out, "Run this:") || !strings.Contains(out, "Then restart.") {
		t.Error("prose around the fence must be untouched")
	}
}

func TestRenderFencesLeavesPlainTextAlone(t *testing.T) {
	reply := "Reboot the router and check the LEDs."
	if got := renderFences(reply, 80); got != reply {
		t.Errorf("plain text changed: %q", got)
	}
}

func TestRenderFencesKeepsUnterminatedFenceRaw(t *testing.T) {
	reply := "Partial answer:\n```bash\nsystemctl restart vpn"

	out := renderFences(reply, 80)

	if !strings.Contains(out, "```bash") {
		t.Error("an unterminated fence must render raw")
	}
	if !strings.Contains(out, "systemctl restart vpn") {
		t.Error("code after an unterminated fence must render raw")
	}
}

func TestBotTextHighlightsFencesWithMarkdownOff(t *testing.T) {
	m, _, _ := newTestPanel(t)
	m.SetMarkdown(false)
	m.width = 80

	out := m.renderBotText("Try:\n```sh\nping 10.0.0.1\n```")
	if strings.Contains(out, "```") {
		t.Error("expected fences replaced by the code block renderer")
	}
	if !strings.Contains(out, "ping 10.0.0.1") {
		t.Error("expected the command preserved in the rendered block")
	}
}

func TestBotTextErrorPatchesStayRaw(t *testing.T) {
	m, _, _ := newTestPanel(t)
	m.SetMarkdown(false)

	text := "❌ The assistant is unavailable.\n```\nnot code\n```"
	if got := m.renderBotText(text); got != text {
		t.Errorf("error guidance must render verbatim, got %q", got)
	}
}
