// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - plain-terminal assistant chat with history, no TUI.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/aura-tui/internal/assistant"
	"github.com/jeranaias/aura-tui/internal/attachment"
	"github.com/jeranaias/aura-tui/internal/config"
	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/session"
)

// ChatCLI is the line-oriented assistant REPL.
type ChatCLI struct {
	line        *liner.State
	historyFile string
	client      *assistant.Client
	sessions    *session.Store
	userID      string
	staged      []string
}

// NewChatCLI creates the REPL with history loaded from the config dir.
func NewChatCLI(client *assistant.Client, sessions *session.Store, userID string) *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
		client:      client,
		sessions:    sessions,
		userID:      userID,
	}
	c.loadHistory()
	return c
}

func (c *ChatCLI) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	if f, err := os.Create(c.historyFile); err == nil {
		c.line.WriteHistory(f)
		f.Close()
	}
	c.line.Close()
}

// Run is the REPL loop. Returns when the user quits or stdin closes.
func (c *ChatCLI) Run(ctx context.Context) error {
	if _, err := c.sessions.GetOrCreate(ctx, c.userID); err != nil {
		return fmt.Errorf("start assistant session: %w", err)
	}
	fmt.Println("AURA assistant. /attach <path>, /clear, /quit.")

	for {
		input, err := c.line.Prompt("you> ")
		if err != nil {
			if err == liner.ErrPromptAborted {
				continue
			}
			return nil // EOF
		}

		text := strings.TrimSpace(input)
		if text == "" && len(c.staged) == 0 {
			continue
		}
		if text != "" {
			c.line.AppendHistory(input)
		}

		if done, err := c.handleCommand(ctx, text); done {
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
			continue
		} else if text == "/quit" || text == "/exit" {
			return nil
		}

		if err := c.turn(ctx, text); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

// handleCommand processes slash commands. done is false for chat text
// and for /quit, which the loop handles itself.
func (c *ChatCLI) handleCommand(ctx context.Context, text string) (bool, error) {
	if !strings.HasPrefix(text, "/") {
		return false, nil
	}
	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return false, nil
	case "/clear":
		if _, err := c.sessions.Reset(ctx, c.userID); err != nil {
			return true, err
		}
		c.staged = nil
		fmt.Println("Started a fresh session.")
		return true, nil
	case "/attach":
		if arg == "" {
			return true, fmt.Errorf("usage: /attach <path>")
		}
		if _, err := os.Stat(arg); err != nil {
			return true, err
		}
		c.staged = append(c.staged, arg)
		fmt.Printf("Attached %s (sent with your next message).\n", filepath.Base(arg))
		return true, nil
	default:
		return true, fmt.Errorf("unknown command %q", name)
	}
}

// turn sends one message and streams the reply to stdout. Deltas print
// incrementally; a final that differs from what streamed is printed in
// full on its own line.
func (c *ChatCLI) turn(ctx context.Context, text string) error {
	atts, err := c.encodeStaged()
	if err != nil {
		return err
	}

	sessionID := c.sessions.Current(c.userID)
	if sessionID == "" {
		return assistant.ErrNoActiveSession
	}

	var acc assistant.Accumulator
	var printed strings.Builder
	fmt.Print("aura> ")

	err = c.client.Run(ctx, assistant.TurnRequest{
		UserID:      c.userID,
		SessionID:   sessionID,
		Text:        text,
		Attachments: atts,
	}, func(ev assistant.Event) {
		acc.Apply(ev)
		if ev.Kind == assistant.EventDelta {
			fmt.Print(ev.Text)
			printed.WriteString(ev.Text)
		}
	})
	if err != nil {
		fmt.Println()
		return err
	}

	if final := acc.Text(); final != printed.String() {
		if printed.Len() > 0 {
			fmt.Println()
		}
		fmt.Print(final)
	}
	fmt.Println()
	c.staged = nil
	return nil
}

func (c *ChatCLI) encodeStaged() ([]model.Attachment, error) {
	if len(c.staged) == 0 {
		return nil, nil
	}
	return attachment.Encode(c.staged)
}
