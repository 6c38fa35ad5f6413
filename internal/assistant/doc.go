// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant provides the HTTP client for the AURA agent backend.
//
// The agent exposes two endpoints: session creation
// (POST /apps/{app}/users/{user}/sessions) and the streaming turn endpoint
// (POST /run_sse), which answers with server-sent events. This package
// wraps both behind a small, stateless Client.
//
// # Streaming semantics
//
// Each SSE data payload is decoded into a tagged Event: a delta carries an
// incremental fragment to concatenate, a final event carries the complete
// text that replaces the accumulated fragments. Malformed payloads are
// logged and skipped; they never abort the stream. Transport failures
// terminate the turn with a typed ClientError; nothing retries
// automatically.
//
// # Usage
//
//	client := assistant.NewClient()
//	sessionID, err := client.CreateSession(ctx, assistant.DeriveUserID(email))
//	if err != nil {
//	    return err
//	}
//
//	var acc assistant.Accumulator
//	err = client.Run(ctx, assistant.TurnRequest{
//	    UserID:    assistant.DeriveUserID(email),
//	    SessionID: sessionID,
//	    Text:      "my laptop won't boot",
//	}, func(ev assistant.Event) {
//	    acc.Apply(ev)
//	    render(acc.Text())
//	})
package assistant
