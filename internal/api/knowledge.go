// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the AURA platform API.
package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jeranaias/aura-tui/internal/model"
)

// ListArticles fetches knowledge-base articles, optionally by category.
func (c *Client) ListArticles(ctx context.Context, category string) ([]model.Article, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}

	var articles []model.Article
	if err := c.do(ctx, http.MethodGet, "/knowledge/articles", q, nil, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// GetArticle fetches one article with full content.
func (c *Client) GetArticle(ctx context.Context, id string) (*model.Article, error) {
	var article model.Article
	if err := c.do(ctx, http.MethodGet, "/knowledge/articles/"+id, nil, nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// SearchArticles runs a server-side full-text search.
func (c *Client) SearchArticles(ctx context.Context, query string) ([]model.Article, error) {
	q := url.Values{}
	q.Set("q", query)

	var articles []model.Article
	if err := c.do(ctx, http.MethodGet, "/knowledge/search", q, nil, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// ListCategories fetches the knowledge-base category names.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/knowledge/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
