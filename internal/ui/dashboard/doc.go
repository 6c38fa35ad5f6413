// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard renders the role-based metrics view: ticket counters
// and SLA compliance for everyone, team performance and the SLA report
// for managers, and transition progress with team readiness for
// transition managers.
package dashboard
