// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package knowledge

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/aura-tui/internal/kb"
	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/ui/styles"
)

// =============================================================================
// FIXTURES
// =============================================================================

type fakeService struct {
	articles []model.Article
	fail     bool
	searches []string
}

var errPlatformDown = errors.New("connection refused")

func (s *fakeService) ListArticles(ctx context.Context, category string) ([]model.Article, error) {
	if s.fail {
		return nil, errPlatformDown
	}
	return s.articles, nil
}

func (s *fakeService) SearchArticles(ctx context.Context, query string) ([]model.Article, error) {
	s.searches = append(s.searches, query)
	if s.fail {
		return nil, errPlatformDown
	}
	var out []model.Article
	for _, a := range s.articles {
		if a.Title == query {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeService) GetArticle(ctx context.Context, id string) (*model.Article, error) {
	if s.fail {
		return nil, errPlatformDown
	}
	for i := range s.articles {
		if s.articles[i].ID == id {
			return &s.articles[i], nil
		}
	}
	return nil, fmt.Errorf("article %s not found", id)
}

func sampleArticle(id, title string) model.Article {
	return model.Article{
		ID:        id,
		Title:     title,
		Summary:   "summary of " + title,
		Content:   "# " + title + "\n\nbody",
		Type:      model.ArticleTroubleshooting,
		Category:  "network",
		UpdatedAt: time.Now(),
	}
}

func newTestBrowser(t *testing.T, svc Service) (*Model, *kb.Cache) {
	t.Helper()
	cache, err := kb.Open(filepath.Join(t.TempDir(), "kb.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cache.Close() })
	return New(styles.NewTheme(), svc, cache, zap.NewNop()), cache
}

func drive(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

// =============================================================================
// TESTS
// =============================================================================

func TestBrowseLoadsAndMirrorsArticles(t *testing.T) {
	svc := &fakeService{articles: []model.Article{sampleArticle("a1", "VPN setup")}}
	m, cache := newTestBrowser(t, svc)

	drive(m, m.Init()())

	if len(m.articles) != 1 || m.Offline() {
		t.Fatalf("expected one live article, got %d offline=%v", len(m.articles), m.Offline())
	}
	if n, err := cache.Count(context.Background()); err != nil || n != 1 {
		t.Errorf("expected article mirrored to cache, got n=%d err=%v", n, err)
	}
}

func TestBrowseFallsBackToCacheWhenPlatformDown(t *testing.T) {
	svc := &fakeService{articles: []model.Article{sampleArticle("a1", "VPN setup")}}
	m, _ := newTestBrowser(t, svc)

	// Warm the mirror, then take the platform away.
	drive(m, m.Init()())
	svc.fail = true

	drive(m, m.browse("")())

	if m.Err() != nil {
		t.Fatalf("cache fallback should not surface an error, got %v", m.Err())
	}
	if !m.Offline() {
		t.Error("expected offline flag for cached results")
	}
	if len(m.articles) != 1 || m.articles[0].ID != "a1" {
		t.Errorf("expected cached article, got %+v", m.articles)
	}
}

func TestBrowseSurfacesErrorWithColdCache(t *testing.T) {
	svc := &fakeService{fail: true}
	m, _ := newTestBrowser(t, svc)

	drive(m, m.Init()())

	if m.Err() == nil {
		t.Error("cold cache plus dead platform must surface the error")
	}
}

func TestSearchSubmitQueriesPlatform(t *testing.T) {
	svc := &fakeService{articles: []model.Article{sampleArticle("a1", "VPN setup")}}
	m, _ := newTestBrowser(t, svc)
	drive(m, m.Init()())

	drive(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if m.mode != modeSearch {
		t.Fatal("expected search mode")
	}
	m.search.SetValue("VPN setup")
	cmd := drive(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected search command")
	}
	drive(m, cmd())

	if len(svc.searches) != 1 || svc.searches[0] != "VPN setup" {
		t.Errorf("unexpected searches: %v", svc.searches)
	}
	if len(m.articles) != 1 {
		t.Errorf("expected one search hit, got %d", len(m.articles))
	}
}

func TestOpenArticleFallsBackToCache(t *testing.T) {
	svc := &fakeService{articles: []model.Article{sampleArticle("a1", "VPN setup")}}
	m, _ := newTestBrowser(t, svc)
	m.SetSize(80, 24)
	drive(m, m.Init()())

	// Read once online to mirror the body, then go dark.
	drive(m, m.openArticle("a1")())
	drive(m, tea.KeyMsg{Type: tea.KeyEsc})
	svc.fail = true

	drive(m, m.openArticle("a1")())

	if m.mode != modeRead || m.current == nil {
		t.Fatal("expected reader view from cache")
	}
	if !m.Offline() {
		t.Error("expected offline flag for cached article")
	}
	if m.current.Content == "" {
		t.Error("expected mirrored article body")
	}
}
