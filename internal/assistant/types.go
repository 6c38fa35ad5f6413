// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant provides the HTTP client for the AURA agent backend.
package assistant

import "github.com/jeranaias/aura-tui/internal/model"

// =============================================================================
// REQUEST TYPES
// =============================================================================

// TurnRequest carries one user turn to the agent.
type TurnRequest struct {
	UserID      string // derived identifier, see DeriveUserID
	SessionID   string
	Text        string
	Attachments []model.Attachment
}

// payload builds the wire shape the agent's /run_sse endpoint expects.
func (t TurnRequest) payload(appName string) runRequest {
	parts := make([]part, 0, 1+len(t.Attachments))
	parts = append(parts, part{Text: t.Text})
	for _, att := range t.Attachments {
		parts = append(parts, part{
			InlineData: &inlineData{
				DisplayName: att.Name,
				MIMEType:    att.MIMEType,
				Data:        att.Data,
			},
		})
	}

	return runRequest{
		AppName:   appName,
		UserID:    t.UserID,
		SessionID: t.SessionID,
		NewMessage: message{
			Parts: parts,
			Role:  "user",
		},
		Streaming: true,
	}
}

type runRequest struct {
	AppName    string  `json:"appName"`
	UserID     string  `json:"userId"`
	SessionID  string  `json:"sessionId"`
	NewMessage message `json:"newMessage"`
	Streaming  bool    `json:"streaming"`
}

type message struct {
	Parts []part `json:"parts"`
	Role  string `json:"role"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	DisplayName string `json:"displayName"`
	MIMEType    string `json:"mimeType"`
	Data        string `json:"data"`
}

type createSessionRequest struct {
	State  map[string]any `json:"state"`
	Events []any          `json:"events"`
}

type createSessionResponse struct {
	ID string `json:"id"`
}

// =============================================================================
// EVENT TYPES
// =============================================================================

// EventKind tags a stream event so consumers never re-inspect the raw
// payload to learn what an event means.
type EventKind int

const (
	// EventDelta carries an incremental fragment to concatenate.
	EventDelta EventKind = iota
	// EventFinal carries the complete text that replaces everything
	// accumulated so far.
	EventFinal
)

// Event is one decoded server-sent event from a streaming turn.
type Event struct {
	Kind EventKind
	Text string
}

// EventCallback receives each decoded event in stream order.
type EventCallback func(Event)
