// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the AURA platform API.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jeranaias/aura-tui/internal/model"
)

// TicketPage is one page of the ticket list.
type TicketPage struct {
	Tickets []model.Ticket `json:"tickets"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	Size    int            `json:"size"`
}

// TicketFilter narrows the ticket list. Zero values mean "any".
type TicketFilter struct {
	Status   model.TicketStatus
	Priority model.TicketPriority
	Category model.TicketCategory
	Assignee string
	Page     int
	Size     int
}

func (f TicketFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		q.Set("priority", string(f.Priority))
	}
	if f.Category != "" {
		q.Set("category", string(f.Category))
	}
	if f.Assignee != "" {
		q.Set("assignee_id", f.Assignee)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Size > 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	return q
}

// ListTickets fetches tickets visible to the current user.
func (c *Client) ListTickets(ctx context.Context, filter TicketFilter) (*TicketPage, error) {
	var page TicketPage
	if err := c.do(ctx, http.MethodGet, "/tickets", filter.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTicket fetches one ticket by ID.
func (c *Client) GetTicket(ctx context.Context, id string) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := c.do(ctx, http.MethodGet, "/tickets/"+id, nil, nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CreateTicket files a new ticket and returns the created resource.
func (c *Client) CreateTicket(ctx context.Context, create model.TicketCreate) (*model.Ticket, error) {
	var ticket model.Ticket
	if err := c.do(ctx, http.MethodPost, "/tickets", nil, create, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// EscalateTicket escalates a ticket with a reason. The reason travels as a
// query parameter, matching the platform's endpoint shape.
func (c *Client) EscalateTicket(ctx context.Context, id, reason string) (*model.Ticket, error) {
	q := url.Values{}
	q.Set("reason", reason)

	var ticket model.Ticket
	if err := c.do(ctx, http.MethodPost, "/tickets/"+id+"/escalate", q, nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// AssignTicket assigns a ticket to an engineer.
func (c *Client) AssignTicket(ctx context.Context, id, assigneeID string) (*model.Ticket, error) {
	var ticket model.Ticket
	err := c.do(ctx, http.MethodPost, "/tickets/"+id+"/assign", nil,
		map[string]string{"assignee_id": assigneeID}, &ticket)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// TicketStats fetches the per-status ticket overview for the current user.
func (c *Client) TicketStats(ctx context.Context) (*model.TicketStats, error) {
	var stats model.TicketStats
	if err := c.do(ctx, http.MethodGet, "/tickets/stats/overview", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListDepartments fetches the departments tickets can be filed against.
func (c *Client) ListDepartments(ctx context.Context) ([]model.Department, error) {
	var departments []model.Department
	if err := c.do(ctx, http.MethodGet, "/users/departments/", nil, nil, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}
