// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the AURA client.
package model

import "time"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role determines which workspace views a user sees.
type Role string

const (
	RoleEndUser           Role = "end-user"
	RoleL1Engineer        Role = "l1-engineer"
	RoleL2Engineer        Role = "l2-engineer"
	RoleOpsManager        Role = "ops-manager"
	RoleTransitionManager Role = "transition-manager"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for headers and menus.
func (r Role) DisplayName() string {
	switch r {
	case RoleEndUser:
		return "End User"
	case RoleL1Engineer:
		return "L1 Engineer"
	case RoleL2Engineer:
		return "L2 Engineer"
	case RoleOpsManager:
		return "Operations Manager"
	case RoleTransitionManager:
		return "Transition Manager"
	default:
		return string(r)
	}
}

// CanEscalate reports whether the role may escalate tickets.
func (r Role) CanEscalate() bool {
	return r == RoleL1Engineer || r == RoleL2Engineer || r == RoleOpsManager
}

// SeesAnalytics reports whether the role gets the analytics dashboard.
func (r Role) SeesAnalytics() bool {
	return r == RoleOpsManager || r == RoleTransitionManager
}

// =============================================================================
// USER TYPE
// =============================================================================

// User is the authenticated platform account.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       Role      `json:"role"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Department is an organizational unit tickets can be filed against.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
