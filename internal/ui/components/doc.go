// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the aura TUI.
//
// # Key Components
//
//   - Header: brand bar with the signed-in user and role
//   - TabBar: workspace tab strip
//   - StatusBar: connection status, notes, and key hints
//   - Spinner: loading indicator (bubbles spinner)
//   - ErrorBox: error display with cause-specific guidance
//   - MarkdownRenderer: glamour wrapper for replies and articles
//   - CodeBlock / Highlight: chroma syntax highlighting
//   - ProgressBar: percentage bars for transition views
package components
