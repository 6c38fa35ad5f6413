// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/ui/styles"
)

// =============================================================================
// ANALYTICS API
// =============================================================================

// Service is the slice of the platform client the dashboard needs.
// WaitRefresh is the client's polling limiter; every timed refresh goes
// through it so a short interval cannot flood the platform.
type Service interface {
	Dashboard(ctx context.Context) (*model.DashboardMetrics, error)
	TicketStats(ctx context.Context) (*model.TicketStats, error)
	TeamPerformance(ctx context.Context) ([]model.TeamMemberPerformance, error)
	SLAReport(ctx context.Context) ([]model.SLAReportRow, error)
	TransitionProjects(ctx context.Context) ([]model.TransitionProject, error)
	TeamReadiness(ctx context.Context, projectID string) ([]model.TeamReadiness, error)
	KnowledgeArtifacts(ctx context.Context, projectID string) ([]model.KnowledgeArtifact, error)
	WaitRefresh(ctx context.Context) error
}

// =============================================================================
// MESSAGES
// =============================================================================

// SnapshotMsg carries everything one refresh gathered. Sections a role
// cannot see stay nil.
type SnapshotMsg struct {
	Metrics     *model.DashboardMetrics
	Stats       *model.TicketStats
	Team        []model.TeamMemberPerformance
	SLA         []model.SLAReportRow
	Transitions []model.TransitionProject
	Err         error
}

// ReadinessMsg delivers per-team readiness for the selected transition.
type ReadinessMsg struct {
	ProjectID string
	Teams     []model.TeamReadiness
	Err       error
}

// ArtifactsMsg delivers the knowledge deliverables of the selected
// transition.
type ArtifactsMsg struct {
	ProjectID string
	Items     []model.KnowledgeArtifact
	Err       error
}

// autoRefreshMsg fires when the timed refresh interval elapses.
type autoRefreshMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model renders the role-based dashboard. End users and engineers get the
// metrics pane; managers additionally get team performance and the SLA
// report; transition managers get the transition progress pane.
type Model struct {
	theme        *styles.Theme
	svc          Service
	user         model.User
	logger       *zap.Logger
	refreshEvery time.Duration

	loading bool
	lastErr error

	metrics     *model.DashboardMetrics
	stats       *model.TicketStats
	team        []model.TeamMemberPerformance
	sla         []model.SLAReportRow
	transitions []model.TransitionProject
	readiness   []model.TeamReadiness
	artifacts   []model.KnowledgeArtifact
	cursor      int // transition selection

	width  int
	height int
}

// New builds the dashboard. refreshEvery is the timed refresh interval;
// zero disables auto-refresh and leaves only the manual r key.
func New(theme *styles.Theme, svc Service, user model.User, refreshEvery time.Duration, logger *zap.Logger) *Model {
	return &Model{theme: theme, svc: svc, user: user, refreshEvery: refreshEvery, logger: logger}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.scheduleRefresh())
}

func (m *Model) Loading() bool { return m.loading }
func (m *Model) Err() error    { return m.lastErr }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// =============================================================================
// UPDATE
// =============================================================================

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.refresh()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				return m, m.loadProjectPanes()
			}
		case "down", "j":
			if m.cursor < len(m.transitions)-1 {
				m.cursor++
				return m, m.loadProjectPanes()
			}
		}
		return m, nil

	case autoRefreshMsg:
		return m, tea.Batch(m.refreshQuiet(), m.scheduleRefresh())

	case SnapshotMsg:
		m.loading = false
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		m.lastErr = nil
		m.metrics = msg.Metrics
		m.stats = msg.Stats
		m.team = msg.Team
		m.sla = msg.SLA
		m.transitions = msg.Transitions
		if m.cursor >= len(m.transitions) {
			m.cursor = 0
		}
		return m, m.loadProjectPanes()

	case ReadinessMsg:
		if msg.Err != nil {
			// Readiness is supplementary; keep the pane empty.
			if m.logger != nil {
				m.logger.Warn("failed to load team readiness", zap.Error(msg.Err))
			}
			m.readiness = nil
			return m, nil
		}
		if m.selectedProject() == nil || m.selectedProject().ID != msg.ProjectID {
			return m, nil // selection moved on
		}
		m.readiness = msg.Teams
		return m, nil

	case ArtifactsMsg:
		if msg.Err != nil {
			if m.logger != nil {
				m.logger.Warn("failed to load knowledge artifacts", zap.Error(msg.Err))
			}
			m.artifacts = nil
			return m, nil
		}
		if m.selectedProject() == nil || m.selectedProject().ID != msg.ProjectID {
			return m, nil
		}
		m.artifacts = msg.Items
		return m, nil
	}
	return m, nil
}

// =============================================================================
// COMMANDS
// =============================================================================

// refresh gathers every pane the role can see in one command. Partial
// visibility is decided here, not in the views.
func (m *Model) refresh() tea.Cmd {
	m.loading = true
	return m.gather(false)
}

// refreshQuiet is the timed variant: it waits on the polling limiter and
// leaves the loading flag alone so the view does not flicker.
func (m *Model) refreshQuiet() tea.Cmd {
	return m.gather(true)
}

func (m *Model) gather(throttled bool) tea.Cmd {
	svc, role := m.svc, m.user.Role
	return func() tea.Msg {
		if throttled {
			if err := svc.WaitRefresh(context.Background()); err != nil {
				return SnapshotMsg{Err: err}
			}
		}

		var snap SnapshotMsg

		metrics, err := svc.Dashboard(context.Background())
		if err != nil {
			return SnapshotMsg{Err: err}
		}
		snap.Metrics = metrics

		if snap.Stats, err = svc.TicketStats(context.Background()); err != nil {
			return SnapshotMsg{Err: err}
		}

		if role.SeesAnalytics() {
			if snap.Team, err = svc.TeamPerformance(context.Background()); err != nil {
				return SnapshotMsg{Err: err}
			}
			if snap.SLA, err = svc.SLAReport(context.Background()); err != nil {
				return SnapshotMsg{Err: err}
			}
		}
		if role == model.RoleTransitionManager {
			if snap.Transitions, err = svc.TransitionProjects(context.Background()); err != nil {
				return SnapshotMsg{Err: err}
			}
		}
		return snap
	}
}

// scheduleRefresh arms the next timed refresh, or nothing when disabled.
func (m *Model) scheduleRefresh() tea.Cmd {
	if m.refreshEvery <= 0 {
		return nil
	}
	return tea.Tick(m.refreshEvery, func(time.Time) tea.Msg {
		return autoRefreshMsg{}
	})
}

// loadProjectPanes fetches the per-project sub-panes for the current
// transition selection.
func (m *Model) loadProjectPanes() tea.Cmd {
	project := m.selectedProject()
	if project == nil {
		return nil
	}
	return tea.Batch(m.loadReadiness(project.ID), m.loadArtifacts(project.ID))
}

func (m *Model) loadReadiness(projectID string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		teams, err := svc.TeamReadiness(context.Background(), projectID)
		return ReadinessMsg{ProjectID: projectID, Teams: teams, Err: err}
	}
}

func (m *Model) loadArtifacts(projectID string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		items, err := svc.KnowledgeArtifacts(context.Background(), projectID)
		return ArtifactsMsg{ProjectID: projectID, Items: items, Err: err}
	}
}

func (m *Model) selectedProject() *model.TransitionProject {
	if m.cursor < 0 || m.cursor >= len(m.transitions) {
		return nil
	}
	return &m.transitions[m.cursor]
}
