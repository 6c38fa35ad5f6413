// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kb caches knowledge-base articles locally for instant search.
//
// Articles fetched from the platform are mirrored into a SQLite database
// under the config directory. The knowledge browser filters against the
// cache while the user types and falls back to it entirely when the
// platform is unreachable. Matching is case- and accent-insensitive via
// a folded search column.
package kb
