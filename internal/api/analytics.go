// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the AURA platform API.
package api

import (
	"context"
	"net/http"

	"github.com/jeranaias/aura-tui/internal/model"
)

// Dashboard fetches the aggregate metrics for the current user's role.
func (c *Client) Dashboard(ctx context.Context) (*model.DashboardMetrics, error) {
	var metrics model.DashboardMetrics
	if err := c.do(ctx, http.MethodGet, "/analytics/dashboard", nil, nil, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

// TeamPerformance fetches per-engineer workload rows (managers only).
func (c *Client) TeamPerformance(ctx context.Context) ([]model.TeamMemberPerformance, error) {
	var rows []model.TeamMemberPerformance
	if err := c.do(ctx, http.MethodGet, "/analytics/team-performance", nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SLAReport fetches per-priority SLA compliance buckets.
func (c *Client) SLAReport(ctx context.Context) ([]model.SLAReportRow, error) {
	var rows []model.SLAReportRow
	if err := c.do(ctx, http.MethodGet, "/analytics/sla-report", nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// TransitionProjects fetches active service-transition projects.
func (c *Client) TransitionProjects(ctx context.Context) ([]model.TransitionProject, error) {
	var projects []model.TransitionProject
	if err := c.do(ctx, http.MethodGet, "/transition/projects", nil, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// KnowledgeArtifacts fetches the deliverables of one transition project.
func (c *Client) KnowledgeArtifacts(ctx context.Context, projectID string) ([]model.KnowledgeArtifact, error) {
	var artifacts []model.KnowledgeArtifact
	err := c.do(ctx, http.MethodGet, "/transition/projects/"+projectID+"/knowledge-artifacts", nil, nil, &artifacts)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// TeamReadiness fetches readiness scores for a transition project.
func (c *Client) TeamReadiness(ctx context.Context, projectID string) ([]model.TeamReadiness, error) {
	var readiness []model.TeamReadiness
	err := c.do(ctx, http.MethodGet, "/transition/projects/"+projectID+"/team-readiness", nil, nil, &readiness)
	if err != nil {
		return nil, err
	}
	return readiness, nil
}
