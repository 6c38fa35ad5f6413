// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists assistant session identity per user.
//
// The Store maps each user to the identifier of their active agent
// session and writes the mapping atomically to disk, so conversations
// survive client restarts.
//
// # Key Types
//
//   - Store: persisted userID -> sessionID map
//   - Creator: the backend call that mints sessions (assistant.Client)
//
// # Usage
//
//	store := session.NewStore(path, client, logger)
//	id, err := store.GetOrCreate(ctx, userID)
//
// Resetting a user mints a fresh session; the previous identifier becomes
// stale and any stream events still carrying it are dropped by the chat
// pipeline, which compares against Current before patching.
package session
