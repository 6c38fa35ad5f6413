// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kb caches knowledge-base articles locally for instant search.
package kb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/aura-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotCached     = errors.New("article not cached")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// SCHEMA
// =============================================================================

// Article text is denormalized into a folded column so LIKE queries match
// regardless of case or accents.
const schema = `
CREATE TABLE IF NOT EXISTS articles (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    article_type TEXT NOT NULL,
    category TEXT NOT NULL,
    tags TEXT NOT NULL,          -- JSON array
    view_count INTEGER NOT NULL,
    updated_at INTEGER NOT NULL, -- Unix timestamp
    cached_at INTEGER NOT NULL,  -- Unix timestamp
    search_text TEXT NOT NULL    -- folded title + summary + tags
);

CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
CREATE INDEX IF NOT EXISTS idx_articles_updated ON articles(updated_at);
`

// =============================================================================
// ARTICLE CACHE
// =============================================================================

// Cache is a local SQLite mirror of fetched knowledge articles. It lets
// the browser filter instantly while typing and keeps recently read
// articles available when the platform is unreachable.
type Cache struct {
	db     *sql.DB
	folder *cases.Caser
}

// Open creates or opens the cache database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	folder := cases.Fold()
	return &Cache{db: db, folder: &folder}, nil
}

// Close releases the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Put upserts articles into the cache.
func (c *Cache) Put(ctx context.Context, articles ...model.Article) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (id, title, summary, content, article_type, category,
		                      tags, view_count, updated_at, cached_at, search_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		    title=excluded.title, summary=excluded.summary, content=excluded.content,
		    article_type=excluded.article_type, category=excluded.category,
		    tags=excluded.tags, view_count=excluded.view_count,
		    updated_at=excluded.updated_at, cached_at=excluded.cached_at,
		    search_text=excluded.search_text`)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, a := range articles {
		tags, err := json.Marshal(a.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		_, err = stmt.ExecContext(ctx, a.ID, a.Title, a.Summary, a.Content,
			string(a.Type), a.Category, string(tags), a.ViewCount,
			a.UpdatedAt.Unix(), now, c.fold(a.Title+" "+a.Summary+" "+strings.Join(a.Tags, " ")))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
	}
	return tx.Commit()
}

// Get returns a cached article by ID.
func (c *Cache) Get(ctx context.Context, id string) (*model.Article, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, title, summary, content, article_type, category, tags, view_count, updated_at
		FROM articles WHERE id = ?`, id)

	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return article, nil
}

// Search matches cached articles whose folded title, summary, or tags
// contain every term of the query. Results come back most recently
// updated first.
func (c *Cache) Search(ctx context.Context, query string, limit int) ([]model.Article, error) {
	if limit <= 0 {
		limit = 50
	}

	terms := strings.Fields(c.fold(query))
	if len(terms) == 0 {
		return c.Recent(ctx, limit)
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, title, summary, content, article_type, category, tags, view_count, updated_at
		FROM articles WHERE 1=1`)
	args := make([]any, 0, len(terms)+1)
	for _, term := range terms {
		sb.WriteString(" AND search_text LIKE ?")
		args = append(args, "%"+term+"%")
	}
	sb.WriteString(" ORDER BY updated_at DESC LIMIT ?")
	args = append(args, limit)

	return c.queryArticles(ctx, sb.String(), args...)
}

// Recent returns the most recently updated cached articles.
func (c *Cache) Recent(ctx context.Context, limit int) ([]model.Article, error) {
	if limit <= 0 {
		limit = 50
	}
	return c.queryArticles(ctx, `
		SELECT id, title, summary, content, article_type, category, tags, view_count, updated_at
		FROM articles ORDER BY updated_at DESC LIMIT ?`, limit)
}

// Count returns the number of cached articles.
func (c *Cache) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return n, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// fold normalizes text for matching: case folding plus whitespace collapse.
func (c *Cache) fold(s string) string {
	return strings.Join(strings.Fields(c.folder.String(s)), " ")
}

func (c *Cache) queryArticles(ctx context.Context, query string, args ...any) ([]model.Article, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []model.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		out = append(out, *article)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*model.Article, error) {
	var (
		a       model.Article
		tags    string
		updated int64
	)
	err := row.Scan(&a.ID, &a.Title, &a.Summary, &a.Content,
		(*string)(&a.Type), &a.Category, &tags, &a.ViewCount, &updated)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil {
		return nil, err
	}
	a.UpdatedAt = time.Unix(updated, 0)
	return &a, nil
}
