// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/jeranaias/aura-tui/internal/assistant"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SessionReadyMsg reports the outcome of an asynchronous session
// GetOrCreate or Reset against the assistant backend.
type SessionReadyMsg struct {
	UserID    string
	SessionID string
	Reset     bool
	Err       error
}

// StreamOpenedMsg is emitted once the run request has been dispatched.
// The panel stays in the opening state until the first event arrives.
type StreamOpenedMsg struct {
	SessionID string
}

// StreamEventMsg carries one decoded assistant event. SessionID is the
// session the stream was started against; events from a session that is
// no longer current are discarded by Update.
type StreamEventMsg struct {
	SessionID string
	Event     assistant.Event
}

// StreamDoneMsg signals stream completion, successful or not.
type StreamDoneMsg struct {
	SessionID string
	Err       error
}

// StreamTickMsg drives periodic UI refresh during streaming.
type StreamTickMsg struct {
	Time time.Time
}
