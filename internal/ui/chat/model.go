// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/aura-tui/internal/assistant"
	"github.com/jeranaias/aura-tui/internal/chatlog"
	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/session"
	"github.com/jeranaias/aura-tui/internal/ui/components"
	"github.com/jeranaias/aura-tui/internal/ui/styles"
)

// =============================================================================
// TURN STATE
// =============================================================================

// TurnState tracks the lifecycle of the in-flight assistant turn.
type TurnState int

const (
	// StateIdle means no turn is in flight; input is accepted.
	StateIdle TurnState = iota
	// StateOpening means the turn was dispatched but no event has arrived.
	StateOpening
	// StateStreaming means at least one event has been applied.
	StateStreaming
)

func (s TurnState) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateStreaming:
		return "streaming"
	default:
		return "idle"
	}
}

// placeholderText is shown in the bot slot while the turn opens.
const placeholderText = "Thinking..."

// noSessionText replaces the placeholder when a turn is submitted without
// an active session. No request leaves the client in that case.
const noSessionText = "❌ No active session. Press ctrl+d to start a new one."

// =============================================================================
// STREAMER
// =============================================================================

// Streamer is the slice of the assistant client the panel needs.
type Streamer interface {
	Run(ctx context.Context, turn assistant.TurnRequest, callback assistant.EventCallback) error
}

var _ Streamer = (*assistant.Client)(nil)

// =============================================================================
// CHAT PANEL MODEL
// =============================================================================

// Model is the assistant chat panel: transcript, input line, attachment
// staging, and the streaming turn lifecycle.
type Model struct {
	theme    *styles.Theme
	log      *chatlog.Log
	sessions *session.Store
	streamer Streamer
	logger   *zap.Logger

	userID string // derived identifier, keys the log and session store
	email  string

	input     textinput.Model
	vp        viewport.Model
	md        *components.MarkdownRenderer
	vpReady   bool
	width     int
	height    int
	focused   bool
	minimized bool

	state         TurnState
	activeSession string // session the in-flight turn was started against
	acc           assistant.Accumulator
	buffer        *streamBuffer
	staged        []string // attachment paths staged for the next turn
	lastErr       error

	// send delivers messages from the stream goroutine into the program.
	// Wired to (*tea.Program).Send after the program is constructed.
	send func(tea.Msg)
}

// New builds a chat panel for the given user. email is shown in the
// header; userID must already be derived (see assistant.DeriveUserID).
func New(theme *styles.Theme, log *chatlog.Log, sessions *session.Store, streamer Streamer, userID, email string, logger *zap.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "Describe your issue, or /attach <path>"
	ti.Prompt = "> "
	ti.CharLimit = 4000
	ti.Focus()

	md, _ := components.NewMarkdownRenderer(80, true)

	return &Model{
		theme:    theme,
		log:      log,
		sessions: sessions,
		streamer: streamer,
		logger:   logger,
		userID:   userID,
		email:    email,
		input:    ti,
		md:       md,
		buffer:   newStreamBuffer(),
		focused:  true,
	}
}

// SetSend wires the program's message injector. Must be called before the
// first submit; stream goroutines deliver events through it.
func (m *Model) SetSend(send func(tea.Msg)) {
	m.send = send
}

// SetMinimized collapses or restores the panel, e.g. from configuration.
func (m *Model) SetMinimized(minimized bool) {
	m.minimized = minimized
}

// SetMarkdown toggles glamour rendering of finished bot messages.
func (m *Model) SetMarkdown(enabled bool) {
	if !enabled {
		m.md = nil
		return
	}
	if m.md == nil {
		m.md, _ = components.NewMarkdownRenderer(m.width, true)
	}
}

// Init requests the user's session up front so the first submit does not
// pay the creation round trip.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.ensureSessionCmd())
}

// State exposes the turn state for the status bar.
func (m *Model) State() TurnState { return m.state }

// Minimized reports whether the panel is collapsed to its summary bar.
func (m *Model) Minimized() bool { return m.minimized }

// Err returns the most recent submit or session error, or nil.
func (m *Model) Err() error { return m.lastErr }

// SetSize resizes the transcript viewport and input line.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 4

	vpHeight := height - chromeHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.vpReady {
		m.vp = viewport.New(width, vpHeight)
		m.vpReady = true
	} else {
		m.vp.Width = width
		m.vp.Height = vpHeight
	}
	if m.md != nil {
		_ = m.md.SetWidth(width - 4)
	}
	m.refreshTranscript()
}

// =============================================================================
// UPDATE
// =============================================================================

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case SessionReadyMsg:
		if msg.UserID != m.userID {
			return m, nil
		}
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		m.lastErr = nil
		return m, nil

	case StreamOpenedMsg:
		return m, nil

	case StreamEventMsg:
		// Events from a session that is no longer current are dropped
		// without touching the transcript.
		if msg.SessionID != m.sessions.Current(m.userID) || msg.SessionID != m.activeSession {
			return m, nil
		}
		m.acc.Apply(msg.Event)
		m.buffer.Set(m.acc.Text())
		if m.state == StateOpening {
			m.state = StateStreaming
			return m, streamTickCmd()
		}
		return m, nil

	case StreamTickMsg:
		if m.state != StateStreaming {
			return m, nil
		}
		if text, ok := m.buffer.Take(); ok {
			m.log.PatchLast(m.userID, text)
			m.refreshTranscript()
		}
		return m, streamTickCmd()

	case StreamDoneMsg:
		return m.handleStreamDone(msg)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.minimized = !m.minimized
		return m, nil
	case "ctrl+d":
		return m, m.clearSession()
	case "enter":
		if m.minimized {
			m.minimized = false
			return m, nil
		}
		return m, m.submit()
	}
	if m.minimized {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleStreamDone(msg StreamDoneMsg) (*Model, tea.Cmd) {
	if msg.SessionID != m.activeSession {
		return m, nil
	}
	m.state = StateIdle
	m.activeSession = ""

	stale := msg.SessionID != m.sessions.Current(m.userID)
	if stale {
		m.acc.Reset()
		m.buffer.Reset()
		return m, nil
	}

	if text, ok := m.buffer.ForceTake(); ok {
		m.log.PatchLast(m.userID, text)
	}
	if msg.Err != nil {
		m.lastErr = msg.Err
		m.log.PatchLast(m.userID, turnErrorText(msg.Err))
		if m.logger != nil {
			m.logger.Warn("assistant turn failed", zap.Error(msg.Err))
		}
	}
	m.acc.Reset()
	m.buffer.Reset()
	m.refreshTranscript()
	return m, nil
}

// =============================================================================
// SESSION LIFECYCLE
// =============================================================================

func (m *Model) ensureSessionCmd() tea.Cmd {
	sessions, userID := m.sessions, m.userID
	return func() tea.Msg {
		id, err := sessions.GetOrCreate(context.Background(), userID)
		return SessionReadyMsg{UserID: userID, SessionID: id, Err: err}
	}
}

// clearSession wipes the visible transcript immediately and swaps the
// session in the background. Events from the old stream stop matching the
// store as soon as the reset lands, so they cannot reappear in the
// emptied log.
func (m *Model) clearSession() tea.Cmd {
	m.log.Clear(m.userID)
	m.acc.Reset()
	m.buffer.Reset()
	m.state = StateIdle
	m.activeSession = ""
	m.lastErr = nil
	m.refreshTranscript()

	sessions, userID := m.sessions, m.userID
	return func() tea.Msg {
		id, err := sessions.Reset(context.Background(), userID)
		return SessionReadyMsg{UserID: userID, SessionID: id, Reset: true, Err: err}
	}
}

// =============================================================================
// TURN SUBMISSION
// =============================================================================

// submit starts a turn from the current input line. Returns nil when
// nothing should be sent: empty input, a turn already in flight, or a
// failed attachment encode.
func (m *Model) submit() tea.Cmd {
	if m.state != StateIdle {
		return nil
	}

	text := strings.TrimSpace(m.input.Value())
	if handled, cmd := m.handleCommand(text); handled {
		return cmd
	}
	if text == "" && len(m.staged) == 0 {
		return nil
	}

	// All-or-nothing: one unreadable file aborts the whole submit before
	// anything is appended or sent.
	atts, err := encodeStaged(m.staged)
	if err != nil {
		m.lastErr = err
		return nil
	}

	m.log.Append(m.userID, model.NewUserMessage(text, atts))
	m.log.Append(m.userID, model.NewBotPlaceholder(placeholderText))
	m.input.Reset()
	m.staged = nil
	m.lastErr = nil

	sessionID := m.sessions.Current(m.userID)
	if sessionID == "" {
		// Local failure path: patch the placeholder, skip the network.
		m.log.PatchLast(m.userID, noSessionText)
		m.refreshTranscript()
		return nil
	}

	m.state = StateOpening
	m.activeSession = sessionID
	m.acc.Reset()
	m.buffer.Reset()
	m.refreshTranscript()

	return m.startTurn(assistant.TurnRequest{
		UserID:      m.userID,
		SessionID:   sessionID,
		Text:        text,
		Attachments: atts,
	})
}

// startTurn dispatches the turn on its own goroutine. Events and the
// terminal result are injected back into the program via send, tagged
// with the session they belong to.
func (m *Model) startTurn(turn assistant.TurnRequest) tea.Cmd {
	send := m.send
	streamer := m.streamer
	return func() tea.Msg {
		go func() {
			err := streamer.Run(context.Background(), turn, func(ev assistant.Event) {
				send(StreamEventMsg{SessionID: turn.SessionID, Event: ev})
			})
			send(StreamDoneMsg{SessionID: turn.SessionID, Err: err})
		}()
		return StreamOpenedMsg{SessionID: turn.SessionID}
	}
}

// turnErrorText converts a turn failure into the text that replaces the
// pending bot message. USABILITY: each error names the next action.
func turnErrorText(err error) string {
	switch {
	case errors.Is(err, assistant.ErrNoActiveSession):
		return noSessionText
	case errors.Is(err, assistant.ErrUnavailable):
		return "❌ Assistant endpoint not found. Check the agent URL with `aura config get assistant.base_url`."
	case errors.Is(err, assistant.ErrTransport):
		return "❌ Connection to the assistant failed. Verify the agent is running, then send again."
	default:
		return "❌ The assistant could not complete that request: " + err.Error()
	}
}
