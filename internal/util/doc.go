// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the aura client.
//
// # Key Functions
//
// String utilities:
//   - TruncateRunes: UTF-8 safe string truncation with ellipsis
//   - TruncateWidth, PadRight: terminal-cell-aware truncation and padding
//
// File operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
