// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the AURA client.
package model

import "time"

// =============================================================================
// TICKET ENUMS
// =============================================================================

// TicketStatus is the lifecycle state of a ticket, as reported by the
// platform API.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "OPEN"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusResolved   TicketStatus = "RESOLVED"
	StatusClosed     TicketStatus = "CLOSED"
	StatusEscalated  TicketStatus = "ESCALATED"
)

// String returns the string representation of the status.
func (s TicketStatus) String() string {
	return string(s)
}

// Label returns a human-readable label for list and detail views.
func (s TicketStatus) Label() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusResolved:
		return "Resolved"
	case StatusClosed:
		return "Closed"
	case StatusEscalated:
		return "Escalated"
	default:
		return string(s)
	}
}

// IsTerminal reports whether the ticket can no longer change.
func (s TicketStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusClosed
}

// TicketPriority orders tickets by urgency.
type TicketPriority string

const (
	PriorityLow      TicketPriority = "LOW"
	PriorityMedium   TicketPriority = "MEDIUM"
	PriorityHigh     TicketPriority = "HIGH"
	PriorityCritical TicketPriority = "CRITICAL"
)

// String returns the string representation of the priority.
func (p TicketPriority) String() string {
	return string(p)
}

// Weight returns a sortable rank, higher is more urgent.
func (p TicketPriority) Weight() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// TicketCategory classifies the kind of request.
type TicketCategory string

const (
	CategoryIncident TicketCategory = "INCIDENT"
	CategoryService  TicketCategory = "SERVICE"
	CategoryProblem  TicketCategory = "PROBLEM"
	CategoryChange   TicketCategory = "CHANGE"
)

// Categories lists all selectable ticket categories in form order.
func Categories() []TicketCategory {
	return []TicketCategory{CategoryIncident, CategoryService, CategoryProblem, CategoryChange}
}

// Priorities lists all selectable priorities in form order.
func Priorities() []TicketPriority {
	return []TicketPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// =============================================================================
// TICKET TYPE
// =============================================================================

// Ticket mirrors the platform's ticket resource.
type Ticket struct {
	ID          string         `json:"id"`
	Number      string         `json:"ticket_number"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"priority"`
	Category    TicketCategory `json:"category"`
	Department  string         `json:"department,omitempty"`

	RequesterID string `json:"requester_id"`
	AssigneeID  string `json:"assignee_id,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	SLADeadline *time.Time `json:"sla_deadline,omitempty"`

	EscalationReason string `json:"escalation_reason,omitempty"`
}

// TicketCreate is the payload for creating a new ticket.
type TicketCreate struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    TicketPriority `json:"priority"`
	Category    TicketCategory `json:"category"`
	Department  string         `json:"department,omitempty"`
}

// TicketStats is the per-status overview the platform scopes to the
// caller's role: end users see their own tickets, engineers their queue.
type TicketStats struct {
	Total         int      `json:"total_tickets"`
	Open          int      `json:"open_tickets"`
	InProgress    int      `json:"in_progress_tickets"`
	Resolved      int      `json:"resolved_tickets"`
	Closed        int      `json:"closed_tickets"`
	Escalated     int      `json:"escalated_tickets"`
	AvgResolution *float64 `json:"avg_resolution_time,omitempty"`
	SLACompliance *float64 `json:"sla_compliance_rate,omitempty"`
}

// =============================================================================
// SLA DERIVATION
// =============================================================================

// SLAState is derived from the deadline relative to now, never stored.
type SLAState int

const (
	SLANone SLAState = iota
	SLAOk
	SLAAtRisk
	SLABreached
)

// slaRiskWindow is how long before the deadline a ticket counts as at risk.
const slaRiskWindow = 2 * time.Hour

// SLAStateAt derives the SLA state of a ticket at the given instant.
// Resolved and closed tickets are never at risk; their clock has stopped.
func (t Ticket) SLAStateAt(now time.Time) SLAState {
	if t.SLADeadline == nil || t.Status.IsTerminal() {
		return SLANone
	}
	deadline := *t.SLADeadline
	switch {
	case now.After(deadline):
		return SLABreached
	case deadline.Sub(now) <= slaRiskWindow:
		return SLAAtRisk
	default:
		return SLAOk
	}
}

// Label returns a short badge text for the SLA state.
func (s SLAState) Label() string {
	switch s {
	case SLAOk:
		return "SLA ok"
	case SLAAtRisk:
		return "SLA at risk"
	case SLABreached:
		return "SLA breached"
	default:
		return ""
	}
}
