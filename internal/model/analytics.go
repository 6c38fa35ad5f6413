// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the AURA client.
package model

import "time"

// =============================================================================
// DASHBOARD METRICS
// =============================================================================

// DashboardMetrics is the aggregate snapshot shown on role dashboards.
// All values are computed server-side; the client only renders them.
type DashboardMetrics struct {
	TotalTickets      int     `json:"total_tickets"`
	OpenTickets       int     `json:"open_tickets"`
	InProgressTickets int     `json:"in_progress_tickets"`
	ResolvedToday     int     `json:"resolved_today"`
	EscalatedTickets  int     `json:"escalated_tickets"`
	SLACompliance     float64 `json:"sla_compliance_pct"`
	AvgResolutionHrs  float64 `json:"avg_resolution_hours"`
	AvgFirstResponse  float64 `json:"avg_first_response_minutes"`
}

// TeamMemberPerformance is one row of the ops-manager team view.
type TeamMemberPerformance struct {
	UserID        string  `json:"user_id"`
	FullName      string  `json:"full_name"`
	Role          Role    `json:"role"`
	AssignedCount int     `json:"assigned_count"`
	ResolvedCount int     `json:"resolved_count"`
	AvgHandleHrs  float64 `json:"avg_handle_hours"`
	SLABreaches   int     `json:"sla_breaches"`
}

// SLAReportRow is one bucket of the SLA compliance report.
type SLAReportRow struct {
	Priority      TicketPriority `json:"priority"`
	Total         int            `json:"total"`
	Met           int            `json:"met"`
	Breached      int            `json:"breached"`
	CompliancePct float64        `json:"compliance_pct"`
}

// =============================================================================
// TRANSITION TRACKING
// =============================================================================

// TransitionProject tracks a service handover between support teams.
type TransitionProject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phase       string    `json:"phase"`
	ProgressPct float64   `json:"progress_pct"`
	StartDate   time.Time `json:"start_date"`
	TargetDate  time.Time `json:"target_date"`
	OwnerID     string    `json:"owner_id"`
}

// KnowledgeArtifact is a deliverable tied to a transition project.
type KnowledgeArtifact struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamReadiness is the per-team readiness score for a transition.
type TeamReadiness struct {
	ProjectID    string  `json:"project_id"`
	TeamName     string  `json:"team_name"`
	ReadinessPct float64 `json:"readiness_pct"`
	Trained      int     `json:"trained_members"`
	Total        int     `json:"total_members"`
}
