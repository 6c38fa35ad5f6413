// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tickets implements the ticket list, detail, create, and
// escalate views. Escalation is offered only to roles that may escalate
// and only for tickets that are still open.
package tickets
