// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the AURA client.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Assistant"
	default:
		return string(s)
	}
}

// =============================================================================
// CHAT MESSAGE TYPE
// =============================================================================

// ChatMessage is a single entry in a user's assistant conversation.
//
// While a response is streaming, the trailing bot message is the only
// mutation target: its Text is rewritten in place as deltas arrive and
// once more when the final event replaces the accumulated content.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	// Attachments sent alongside the text (user messages only).
	Attachments []Attachment `json:"attachments,omitempty"`

	// Pending marks a bot placeholder that has not received content yet.
	Pending bool `json:"-"`
}

// NewUserMessage creates a user message with a generated ID.
func NewUserMessage(text string, attachments []Attachment) ChatMessage {
	return ChatMessage{
		ID:          newMessageID(),
		Sender:      SenderUser,
		Text:        text,
		Attachments: attachments,
		Timestamp:   time.Now(),
	}
}

// NewBotPlaceholder creates the pending bot message that is appended
// together with the user message before the response stream opens.
func NewBotPlaceholder(text string) ChatMessage {
	return ChatMessage{
		ID:        newMessageID(),
		Sender:    SenderBot,
		Text:      text,
		Timestamp: time.Now(),
		Pending:   true,
	}
}

func newMessageID() string {
	return "msg_" + uuid.NewString()
}

// =============================================================================
// ATTACHMENT TYPE
// =============================================================================

// Attachment is a file staged for submission, already base64-encoded.
// Attachments are immutable once created.
type Attachment struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}
