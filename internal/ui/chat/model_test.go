// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/aura-tui/internal/assistant"
	"github.com/jeranaias/aura-tui/internal/chatlog"
	"github.com/jeranaias/aura-tui/internal/model"
	"github.com/jeranaias/aura-tui/internal/session"
	"github.com/jeranaias/aura-tui/internal/ui/styles"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

type seqCreator struct {
	mu sync.Mutex
	n  int
}

func (c *seqCreator) CreateSession(ctx context.Context, derivedUserID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return fmt.Sprintf("sess-%d", c.n), nil
}

type recordingStreamer struct {
	mu    sync.Mutex
	turns []assistant.TurnRequest
	run   func(turn assistant.TurnRequest, cb assistant.EventCallback) error
}

func (s *recordingStreamer) Run(ctx context.Context, turn assistant.TurnRequest, cb assistant.EventCallback) error {
	s.mu.Lock()
	s.turns = append(s.turns, turn)
	run := s.run
	s.mu.Unlock()
	if run != nil {
		return run(turn, cb)
	}
	return nil
}

func (s *recordingStreamer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

const testUserID = "alice_example_com"

func newTestPanel(t *testing.T) (*Model, *recordingStreamer, *session.Store) {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "sessions.json"), &seqCreator{}, zap.NewNop())
	streamer := &recordingStreamer{}
	m := New(styles.NewTheme(), chatlog.New(), store, streamer, testUserID, "alice@example.com", zap.NewNop())
	m.SetSend(func(tea.Msg) {})
	return m, streamer, store
}

func lastMessage(t *testing.T, m *Model) model.ChatMessage {
	t.Helper()
	msgs := m.log.Messages(m.userID)
	if len(msgs) == 0 {
		t.Fatal("expected messages in log")
	}
	return msgs[len(msgs)-1]
}

// =============================================================================
// SUBMIT GUARDS
// =============================================================================

func TestSubmitEmptyInputSendsNothing(t *testing.T) {
	m, streamer, _ := newTestPanel(t)
	m.input.SetValue("   ")

	if cmd := m.submit(); cmd != nil {
		t.Error("expected no command for blank input")
	}
	if streamer.count() != 0 {
		t.Errorf("expected no turns dispatched, got %d", streamer.count())
	}
	if got := m.log.Len(testUserID); got != 0 {
		t.Errorf("expected empty log, got %d messages", got)
	}
}

func TestSubmitWithoutSessionIsLocalFailure(t *testing.T) {
	m, streamer, store := newTestPanel(t)
	if store.Current(testUserID) != "" {
		t.Fatal("precondition: no session")
	}
	m.input.SetValue("printer on fire")

	if cmd := m.submit(); cmd != nil {
		t.Error("expected no command without a session")
	}
	if streamer.count() != 0 {
		t.Errorf("expected no network activity, got %d turns", streamer.count())
	}

	msgs := m.log.Messages(testUserID)
	if len(msgs) != 2 {
		t.Fatalf("expected user message plus patched placeholder, got %d", len(msgs))
	}
	if msgs[0].Sender != model.SenderUser || msgs[0].Text != "printer on fire" {
		t.Errorf("unexpected user message: %+v", msgs[0])
	}
	if msgs[1].Text != noSessionText {
		t.Errorf("expected placeholder patched to %q, got %q", noSessionText, msgs[1].Text)
	}
	if m.state != StateIdle {
		t.Errorf("expected idle state, got %v", m.state)
	}
}

func TestSubmitBlockedWhileTurnInFlight(t *testing.T) {
	m, streamer, store := newTestPanel(t)
	if _, err := store.GetOrCreate(context.Background(), testUserID); err != nil {
		t.Fatal(err)
	}
	m.state = StateStreaming
	m.input.SetValue("second question")

	if cmd := m.submit(); cmd != nil {
		t.Error("expected submit to be ignored while streaming")
	}
	if streamer.count() != 0 || m.log.Len(testUserID) != 0 {
		t.Error("in-flight guard must not append or dispatch")
	}
}

func TestSubmitAbortsOnAttachmentFailure(t *testing.T) {
	m, streamer, store := newTestPanel(t)
	if _, err := store.GetOrCreate(context.Background(), testUserID); err != nil {
		t.Fatal(err)
	}
	m.staged = []string{filepath.Join(t.TempDir(), "missing.log")}
	m.input.SetValue("see attached")

	if cmd := m.submit(); cmd != nil {
		t.Error("expected no command when encoding fails")
	}
	if streamer.count() != 0 {
		t.Error("failed encode must not reach the network")
	}
	if m.log.Len(testUserID) != 0 {
		t.Error("failed encode must not append messages")
	}
	if m.lastErr == nil {
		t.Error("expected encode error surfaced to the user")
	}
	if len(m.staged) == 0 {
		t.Error("staged paths should survive a failed submit for correction")
	}
}

func TestSubmitDispatchesTurnWithAttachments(t *testing.T) {
	m, streamer, store := newTestPanel(t)
	sess, err := store.GetOrCreate(context.Background(), testUserID)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "trace.txt")
	if err := os.WriteFile(path, []byte("stack trace"), 0o600); err != nil {
		t.Fatal(err)
	}
	m.staged = []string{path}
	m.input.SetValue("vpn drops hourly")

	done := make(chan tea.Msg, 8)
	m.SetSend(func(msg tea.Msg) { done <- msg })

	cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected a dispatch command")
	}
	if m.state != StateOpening {
		t.Fatalf("expected opening state, got %v", m.state)
	}
	if opened, ok := cmd().(StreamOpenedMsg); !ok || opened.SessionID != sess {
		t.Fatalf("expected StreamOpenedMsg for %s, got %#v", sess, opened)
	}

	// The turn goroutine always finishes with a done message.
	if msg := <-done; msg.(StreamDoneMsg).SessionID != sess {
		t.Fatalf("unexpected done message: %#v", msg)
	}

	if streamer.count() != 1 {
		t.Fatalf("expected one turn, got %d", streamer.count())
	}
	turn := streamer.turns[0]
	if turn.UserID != testUserID || turn.SessionID != sess || turn.Text != "vpn drops hourly" {
		t.Errorf("unexpected turn: %+v", turn)
	}
	if len(turn.Attachments) != 1 || turn.Attachments[0].Name != "trace.txt" {
		t.Errorf("expected encoded attachment, got %+v", turn.Attachments)
	}
	if len(m.staged) != 0 {
		t.Error("staged paths should clear after dispatch")
	}
	if last := lastMessage(t, m); !last.Pending || last.Text != placeholderText {
		t.Errorf("expected pending placeholder, got %+v", last)
	}
}

// =============================================================================
// STREAM EVENT HANDLING
// =============================================================================

// startTurnForTest puts the panel into an in-flight turn against the
// store's current session without touching the network.
func startTurnForTest(t *testing.T, m *Model, store *session.Store) string {
	t.Helper()
	sess, err := store.GetOrCreate(context.Background(), testUserID)
	if err != nil {
		t.Fatal(err)
	}
	m.input.SetValue("question")
	if cmd := m.submit(); cmd == nil {
		t.Fatal("expected dispatch command")
	}
	return sess
}

func TestDeltasConcatenateAndFinalReplaces(t *testing.T) {
	m, _, store := newTestPanel(t)
	sess := startTurnForTest(t, m, store)

	m.Update(StreamEventMsg{SessionID: sess, Event: assistant.Event{Kind: assistant.EventDelta, Text: "Hel"}})
	m.Update(StreamEventMsg{SessionID: sess, Event: assistant.Event{Kind: assistant.EventDelta, Text: "lo"}})
	if m.state != StateStreaming {
		t.Fatalf("expected streaming after first event, got %v", m.state)
	}

	m.Update(StreamEventMsg{SessionID: sess, Event: assistant.Event{Kind: assistant.EventFinal, Text: "Hello world"}})
	m.Update(StreamDoneMsg{SessionID: sess})

	if last := lastMessage(t, m); last.Text != "Hello world" {
		t.Errorf("final event must replace accumulated deltas, got %q", last.Text)
	}
	if m.state != StateIdle {
		t.Errorf("expected idle after done, got %v", m.state)
	}
}

func TestDeltasFlushThroughTicks(t *testing.T) {
	m, _, store := newTestPanel(t)
	sess := startTurnForTest(t, m, store)

	// Enough deltas to trip the batch threshold without waiting out the
	// frame interval.
	for i := 0; i < defaultBatchSize; i++ {
		m.Update(StreamEventMsg{SessionID: sess, Event: assistant.Event{Kind: assistant.EventDelta, Text: "x"}})
	}
	m.Update(StreamTickMsg{})

	want := ""
	for i := 0; i < defaultBatchSize; i++ {
		want += "x"
	}
	if last := lastMessage(t, m); last.Text != want {
		t.Errorf("expected tick to patch accumulated text, got %q", last.Text)
	}
}

func TestEventsAfterResetAreDiscarded(t *testing.T) {
	m, _, store := newTestPanel(t)
	sess := startTurnForTest(t, m, store)

	m.Update(StreamEventMsg{SessionID: sess, Event: assistant.Event{Kind: assistant.EventDelta, Text: "stale "}})

	// ctrl+d: transcript clears and the session rotates underneath the
	// in-flight stream.
	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd == nil {
		t.Fatal("expected reset command")
	}
	if m.log.Len(testUserID) != 0 {
		t.Fatal("expected transcript cleared")
	}
	ready, ok := cmd().(SessionReadyMsg)
	if !ok || ready.Err != nil || !ready.Reset {
		t.Fatalf("unexpected reset result: %#v", ready)
	}
	if store.Current(testUserID) == sess {
		t.Fatal("expected a fresh session after reset")
	}

	m.Update(StreamEventMsg{SessionID: sess, Event: assistant.Event{Kind: assistant.EventDelta, Text: "more"}})
	m.Update(StreamDoneMsg{SessionID: sess})

	if got := m.log.Len(testUserID); got != 0 {
		t.Errorf("stale stream must not repopulate the cleared transcript, got %d messages", got)
	}
	if m.state != StateIdle {
		t.Errorf("expected idle state, got %v", m.state)
	}
}

func TestStreamFailureReplacesPlaceholderWithGuidance(t *testing.T) {
	m, _, store := newTestPanel(t)
	sess := startTurnForTest(t, m, store)

	m.Update(StreamDoneMsg{SessionID: sess, Err: assistant.ErrTransport})

	last := lastMessage(t, m)
	if last.Pending {
		t.Error("placeholder must not stay pending after failure")
	}
	if last.Text != turnErrorText(assistant.ErrTransport) {
		t.Errorf("expected transport guidance, got %q", last.Text)
	}
	if m.state != StateIdle {
		t.Errorf("expected idle so the user can retry, got %v", m.state)
	}
}

// =============================================================================
// COMMANDS AND PANEL CONTROLS
// =============================================================================

func TestAttachCommandStagesFile(t *testing.T) {
	m, streamer, _ := newTestPanel(t)

	path := filepath.Join(t.TempDir(), "diag.txt")
	if err := os.WriteFile(path, []byte("ok"), 0o600); err != nil {
		t.Fatal(err)
	}

	m.input.SetValue("/attach " + path)
	if cmd := m.submit(); cmd != nil {
		t.Error("staging must not dispatch a turn")
	}
	if len(m.staged) != 1 || m.staged[0] != path {
		t.Errorf("expected staged path, got %v", m.staged)
	}
	if streamer.count() != 0 || m.log.Len(testUserID) != 0 {
		t.Error("staging must not touch the network or the log")
	}

	m.input.SetValue("/detach")
	m.submit()
	if len(m.staged) != 0 {
		t.Error("expected /detach to drop staged paths")
	}
}

func TestAttachCommandRejectsMissingFile(t *testing.T) {
	m, _, _ := newTestPanel(t)
	m.input.SetValue("/attach " + filepath.Join(t.TempDir(), "gone.txt"))
	m.submit()
	if m.lastErr == nil {
		t.Error("expected stage error for missing file")
	}
	if len(m.staged) != 0 {
		t.Error("missing file must not be staged")
	}
}

func TestEscToggleMinimize(t *testing.T) {
	m, _, _ := newTestPanel(t)
	m.SetSize(80, 24)

	m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.Minimized() {
		t.Fatal("expected panel minimized")
	}
	if view := m.View(); view != m.theme.Hint.Render(minimizedBar) {
		t.Error("minimized panel should render the summary bar only")
	}

	m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Minimized() {
		t.Error("expected panel restored")
	}
}

func TestClearIsScopedToUser(t *testing.T) {
	m, _, _ := newTestPanel(t)
	m.log.Append(testUserID, model.NewUserMessage("mine", nil))
	m.log.Append("bob_example_com", model.NewUserMessage("bobs", nil))

	m.clearSession()

	if m.log.Len(testUserID) != 0 {
		t.Error("expected this user's transcript cleared")
	}
	if m.log.Len("bob_example_com") != 1 {
		t.Error("another user's transcript must be untouched")
	}
}
