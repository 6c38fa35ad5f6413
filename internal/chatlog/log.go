// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chatlog stores per-user assistant conversations.
package chatlog

import (
	"sync"

	"github.com/jeranaias/aura-tui/internal/model"
)

// =============================================================================
// MESSAGE LOG
// =============================================================================

// Log holds the ordered message sequence for each user.
//
// Mutation is limited on purpose: callers can append, rewrite the text of
// the trailing bot message, or clear a user's sequence. There is no
// arbitrary edit or delete; the streaming pipeline is the only writer for
// a given user while a turn is in flight.
type Log struct {
	mu       sync.Mutex
	messages map[string][]model.ChatMessage
}

// New creates an empty message log.
func New() *Log {
	return &Log{
		messages: make(map[string][]model.ChatMessage),
	}
}

// Append adds a message to the end of the user's sequence.
func (l *Log) Append(userID string, msg model.ChatMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages[userID] = append(l.messages[userID], msg)
}

// PatchLast rewrites the text of the user's most recent message, but only
// if that message was sent by the bot. It reports whether a rewrite
// happened; an empty sequence or a trailing user message is a no-op.
//
// This guard is what keeps a stream that outlives its turn from ever
// overwriting something the user typed.
func (l *Log) PatchLast(userID, text string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	seq := l.messages[userID]
	if len(seq) == 0 {
		return false
	}
	last := &seq[len(seq)-1]
	if last.Sender != model.SenderBot {
		return false
	}
	last.Text = text
	last.Pending = false
	return true
}

// Clear removes every message for the given user. Other users' sequences
// are untouched.
func (l *Log) Clear(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.messages, userID)
}

// Messages returns a snapshot copy of the user's sequence, oldest first.
// The copy is safe to render while the stream keeps patching.
func (l *Log) Messages(userID string) []model.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()

	seq := l.messages[userID]
	if len(seq) == 0 {
		return nil
	}
	out := make([]model.ChatMessage, len(seq))
	copy(out, seq)
	return out
}

// Len returns the number of messages stored for the user.
func (l *Log) Len(userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages[userID])
}
