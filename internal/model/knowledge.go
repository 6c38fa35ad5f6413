// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the AURA client.
package model

import "time"

// ArticleType classifies knowledge-base content.
type ArticleType string

const (
	ArticleProcedure       ArticleType = "procedure"
	ArticleTroubleshooting ArticleType = "troubleshooting"
	ArticleFAQ             ArticleType = "faq"
	ArticleGuide           ArticleType = "guide"
	ArticleReference       ArticleType = "reference"
)

// Article is a knowledge-base entry. Content is markdown.
type Article struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Summary   string      `json:"summary"`
	Content   string      `json:"content"`
	Type      ArticleType `json:"article_type"`
	Category  string      `json:"category"`
	Tags      []string    `json:"tags,omitempty"`
	AuthorID  string      `json:"author_id"`
	ViewCount int         `json:"view_count"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
