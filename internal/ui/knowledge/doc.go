// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package knowledge implements the knowledge-base browser. Every article
// fetched from the platform is mirrored into the local SQLite cache, and
// list, search, and read all fall back to that mirror when the platform
// is unreachable.
package knowledge
