// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package knowledge

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/aura-tui/internal/kb"
	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/ui/styles"
)

// =============================================================================
// KNOWLEDGE API
// =============================================================================

// Service is the slice of the platform client the article browser needs.
type Service interface {
	ListArticles(ctx context.Context, category string) ([]model.Article, error)
	SearchArticles(ctx context.Context, query string) ([]model.Article, error)
	GetArticle(ctx context.Context, id string) (*model.Article, error)
}

// =============================================================================
// MESSAGES
// =============================================================================

// ArticlesLoadedMsg delivers a list or search result. Cached is true when
// the platform was unreachable and the local mirror answered instead.
type ArticlesLoadedMsg struct {
	Articles []model.Article
	Cached   bool
	Err      error
}

// ArticleLoadedMsg delivers one article for the reader view.
type ArticleLoadedMsg struct {
	Article *model.Article
	Cached  bool
	Err     error
}

// =============================================================================
// MODEL
// =============================================================================

type viewMode int

const (
	modeBrowse viewMode = iota
	modeSearch
	modeRead
)

const searchLimit = 50

// Model is the knowledge-base browser: article list with search, plus a
// markdown reader. Fetched articles are mirrored into the local cache so
// the browser keeps working when the platform is down.
type Model struct {
	theme  *styles.Theme
	svc    Service
	cache  *kb.Cache
	logger *zap.Logger

	mode    viewMode
	loading bool
	offline bool // last load came from the cache
	lastErr error

	articles []model.Article
	cursor   int
	query    string

	search  textinput.Model
	reader  viewport.Model
	rdReady bool
	current *model.Article

	width  int
	height int
}

func New(theme *styles.Theme, svc Service, cache *kb.Cache, logger *zap.Logger) *Model {
	search := textinput.New()
	search.Placeholder = "Search the knowledge base"
	search.Prompt = "/ "
	search.CharLimit = 200

	return &Model{
		theme:  theme,
		svc:    svc,
		cache:  cache,
		logger: logger,
		search: search,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.browse("")
}

func (m *Model) Loading() bool { return m.loading }
func (m *Model) Err() error    { return m.lastErr }

// Offline reports whether the current list came from the local mirror.
func (m *Model) Offline() bool { return m.offline }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = width - 6

	rdHeight := height - 4
	if rdHeight < 1 {
		rdHeight = 1
	}
	if !m.rdReady {
		m.reader = viewport.New(width, rdHeight)
		m.rdReady = true
	} else {
		m.reader.Width = width
		m.reader.Height = rdHeight
	}
}

// =============================================================================
// UPDATE
// =============================================================================

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case ArticlesLoadedMsg:
		m.loading = false
		m.offline = msg.Cached
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		m.lastErr = nil
		m.articles = msg.Articles
		if m.cursor >= len(m.articles) {
			m.cursor = 0
		}
		return m, nil

	case ArticleLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		m.lastErr = nil
		m.offline = msg.Cached
		m.current = msg.Article
		m.mode = modeRead
		m.renderArticle()
		return m, nil
	}

	if m.mode == modeRead && m.rdReady {
		var cmd tea.Cmd
		m.reader, cmd = m.reader.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		switch msg.String() {
		case "esc":
			m.mode = modeBrowse
			m.search.Blur()
			return m, nil
		case "enter":
			m.query = strings.TrimSpace(m.search.Value())
			m.mode = modeBrowse
			m.search.Blur()
			if m.query == "" {
				return m, m.browse("")
			}
			return m, m.runSearch(m.query)
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case modeRead:
		switch msg.String() {
		case "esc", "q":
			m.mode = modeBrowse
			m.current = nil
			return m, nil
		}
		if m.rdReady {
			var cmd tea.Cmd
			m.reader, cmd = m.reader.Update(msg)
			return m, cmd
		}
		return m, nil

	default: // browse
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.articles)-1 {
				m.cursor++
			}
		case "/":
			m.mode = modeSearch
			m.search.SetValue(m.query)
			m.search.Focus()
		case "r":
			if m.query != "" {
				return m, m.runSearch(m.query)
			}
			return m, m.browse("")
		case "enter":
			if len(m.articles) == 0 {
				return m, nil
			}
			return m, m.openArticle(m.articles[m.cursor].ID)
		}
		return m, nil
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

// browse lists articles from the platform, mirroring them locally. When
// the platform is unreachable the local mirror answers instead, flagged
// so the view can say so.
func (m *Model) browse(category string) tea.Cmd {
	m.loading = true
	svc, cache, logger := m.svc, m.cache, m.logger
	return func() tea.Msg {
		articles, err := svc.ListArticles(context.Background(), category)
		if err == nil {
			if cache != nil {
				if putErr := cache.Put(context.Background(), articles...); putErr != nil {
					logger.Warn("failed to mirror articles", zap.Error(putErr))
				}
			}
			return ArticlesLoadedMsg{Articles: articles}
		}
		if cache != nil {
			if cached, cacheErr := cache.Recent(context.Background(), searchLimit); cacheErr == nil && len(cached) > 0 {
				return ArticlesLoadedMsg{Articles: cached, Cached: true}
			}
		}
		return ArticlesLoadedMsg{Err: err}
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	m.loading = true
	svc, cache, logger := m.svc, m.cache, m.logger
	return func() tea.Msg {
		articles, err := svc.SearchArticles(context.Background(), query)
		if err == nil {
			if cache != nil {
				if putErr := cache.Put(context.Background(), articles...); putErr != nil {
					logger.Warn("failed to mirror search results", zap.Error(putErr))
				}
			}
			return ArticlesLoadedMsg{Articles: articles}
		}
		if cache != nil {
			if cached, cacheErr := cache.Search(context.Background(), query, searchLimit); cacheErr == nil {
				return ArticlesLoadedMsg{Articles: cached, Cached: true}
			}
		}
		return ArticlesLoadedMsg{Err: err}
	}
}

func (m *Model) openArticle(id string) tea.Cmd {
	m.loading = true
	svc, cache, logger := m.svc, m.cache, m.logger
	return func() tea.Msg {
		article, err := svc.GetArticle(context.Background(), id)
		if err == nil {
			if cache != nil {
				if putErr := cache.Put(context.Background(), *article); putErr != nil {
					logger.Warn("failed to mirror article", zap.Error(putErr))
				}
			}
			return ArticleLoadedMsg{Article: article}
		}
		if cache != nil {
			if cached, cacheErr := cache.Get(context.Background(), id); cacheErr == nil {
				return ArticleLoadedMsg{Article: cached, Cached: true}
			}
		}
		return ArticleLoadedMsg{Err: err}
	}
}
