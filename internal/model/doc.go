// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the AURA client.
//
// This package defines the domain types shared by the API clients, the
// stores, and the terminal views.
//
// # Key Types
//
//   - ChatMessage: single assistant-conversation entry (user or bot)
//   - Attachment: base64-encoded file staged for submission
//   - Ticket: platform ticket resource with status/priority/category enums
//   - User, Role: authenticated account and its workspace role
//   - Article: knowledge-base entry
//   - DashboardMetrics, TransitionProject: analytics shapes
//
// All enum types carry the exact wire values the platform API uses, so
// they marshal directly in requests and responses.
package model
