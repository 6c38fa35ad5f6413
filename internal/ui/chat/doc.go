// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the assistant chat panel.
//
// The panel owns one turn at a time: submit appends the user message and
// a pending bot placeholder, dispatches the turn on a goroutine, and
// patches the placeholder as tagged stream events arrive. Events carry
// the session ID they were started against; events for a session that is
// no longer current (after ctrl+d resets it) are discarded.
//
// # Key Types
//
//   - Model: the bubbletea model for the panel
//   - TurnState: idle → opening → streaming lifecycle
//   - StreamEventMsg / StreamDoneMsg: messages injected by the stream goroutine
//   - streamBuffer: coalesces event bursts into ~30fps transcript redraws
//
// # Usage
//
//	panel := chat.New(theme, log, sessions, client, userID, email, logger)
//	panel.SetSend(program.Send)
package chat
