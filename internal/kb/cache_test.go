// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jeranaias/aura-tui/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "kb.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func article(id, title, summary string, tags ...string) model.Article {
	return model.Article{
		ID:        id,
		Title:     title,
		Summary:   summary,
		Content:   "# " + title,
		Type:      model.ArticleTroubleshooting,
		Category:  "hardware",
		Tags:      tags,
		UpdatedAt: time.Now(),
	}
}

func TestPutAndGetRoundTrip(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	want := article("a1", "Printer jams", "Clearing paper jams", "printer")
	if err := cache.Put(ctx, want); err != nil {
		t.Fatal(err)
	}

	got, err := cache.Get(ctx, "a1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != want.Title || got.Category != want.Category {
		t.Errorf("got %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "printer" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestGetMissingArticle(t *testing.T) {
	cache := openTestCache(t)
	if _, err := cache.Get(context.Background(), "nope"); !errors.Is(err, ErrNotCached) {
		t.Errorf("error = %v, want ErrNotCached", err)
	}
}

func TestPutIsUpsert(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	cache.Put(ctx, article("a1", "Old title", "x"))
	cache.Put(ctx, article("a1", "New title", "x"))

	got, err := cache.Get(ctx, "a1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "New title" {
		t.Errorf("title = %q, want the updated one", got.Title)
	}
	if n, _ := cache.Count(ctx); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestSearchIsCaseInsensitiveAndConjunctive(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	cache.Put(ctx,
		article("a1", "VPN Setup Guide", "Connecting from home", "vpn", "remote"),
		article("a2", "VPN Troubleshooting", "Dropped connections", "vpn"),
		article("a3", "Printer Setup", "New printer install", "printer"),
	)

	hits, err := cache.Search(ctx, "vpn SETUP", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].ID != "a1" {
		t.Errorf("hits = %v, want only the article matching both terms", ids(hits))
	}
}

func TestSearchEmptyQueryReturnsRecent(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	old := article("a1", "Old", "x")
	old.UpdatedAt = time.Now().Add(-time.Hour)
	fresh := article("a2", "Fresh", "x")
	cache.Put(ctx, old, fresh)

	hits, err := cache.Search(ctx, "   ", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 || hits[0].ID != "a2" {
		t.Errorf("hits = %v, want both, newest first", ids(hits))
	}
}

func ids(articles []model.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.ID
	}
	return out
}
