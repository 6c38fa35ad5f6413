// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// STREAMING BUFFER
// =============================================================================

const (
	// defaultBatchSize is how many events may accumulate before the
	// display is forced to refresh regardless of elapsed time.
	defaultBatchSize = 15

	// maxFPS caps transcript redraws during streaming. Terminal emulators
	// choke well below typical token rates, so redraws are decoupled from
	// event arrival.
	maxFPS = 30

	// minFlushInterval is derived from maxFPS (1000ms / 30 ≈ 33ms).
	minFlushInterval = time.Second / maxFPS
)

// streamBuffer holds the latest rendered text for the in-flight turn.
// Events arrive on the stream goroutine and overwrite the snapshot;
// the UI drains it on its own tick. PERFORMANCE: batching event
// bursts into ~30fps redraws keeps large responses smooth.
type streamBuffer struct {
	mu         sync.Mutex
	text       string
	dirty      bool
	eventCount int
	lastFlush  time.Time
}

func newStreamBuffer() *streamBuffer {
	return &streamBuffer{lastFlush: time.Now()}
}

// Set records the latest accumulated text. Deltas concatenate upstream,
// so each call carries the full snapshot rather than an increment.
func (b *streamBuffer) Set(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
	b.dirty = true
	b.eventCount++
}

// Take returns the pending snapshot if a flush is due. The second return
// reports whether the caller should repaint.
func (b *streamBuffer) Take() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.dirty || !b.shouldFlushLocked() {
		return "", false
	}
	b.dirty = false
	b.eventCount = 0
	b.lastFlush = time.Now()
	return b.text, true
}

// ForceTake drains the buffer unconditionally. Used on stream completion
// so the final text never waits out a flush interval.
func (b *streamBuffer) ForceTake() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.dirty {
		return "", false
	}
	b.dirty = false
	b.eventCount = 0
	b.lastFlush = time.Now()
	return b.text, true
}

// Reset discards any pending snapshot, e.g. when the stream it belonged
// to is no longer current.
func (b *streamBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = ""
	b.dirty = false
	b.eventCount = 0
	b.lastFlush = time.Now()
}

// Pending reports whether an undrained snapshot exists.
func (b *streamBuffer) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

func (b *streamBuffer) shouldFlushLocked() bool {
	if b.eventCount >= defaultBatchSize {
		return true
	}
	return time.Since(b.lastFlush) >= minFlushInterval
}

// streamTickCmd schedules the next redraw tick while a stream is active.
func streamTickCmd() tea.Cmd {
	return tea.Tick(minFlushInterval, func(t time.Time) tea.Msg {
		return StreamTickMsg{Time: t}
	})
}
