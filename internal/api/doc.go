// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the AURA platform API.
//
// The platform serves tickets, knowledge articles, analytics, and
// transition tracking behind bearer-token auth. This client owns the
// token (Login installs it, TokenExpired tells the UI when to prompt
// again) and exposes one method per endpoint. Background polling goes
// through WaitRefresh so auto-refreshing views cannot flood the backend.
package api
