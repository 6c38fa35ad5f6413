// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant provides the HTTP client for the AURA agent backend.
package assistant

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"go.uber.org/zap"
)

// =============================================================================
// STREAM READER
// =============================================================================

// StreamReader decodes the agent's SSE response line by line.
//
// Only "data:" lines matter; comments, event names and blank separators
// are skipped. A payload that fails to decode is logged and dropped
// without aborting the stream, matching the agent's own tolerance for
// heartbeat noise.
type StreamReader struct {
	reader    *bufio.Reader
	logger    *zap.Logger
	malformed int
}

// NewStreamReader creates a stream reader over an SSE response body.
func NewStreamReader(r io.Reader, logger *zap.Logger) *StreamReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamReader{
		reader: bufio.NewReader(r),
		logger: logger,
	}
}

// Process reads the stream and invokes the callback for each decoded
// event. Blocks until EOF or context cancellation.
func (s *StreamReader) Process(ctx context.Context, callback EventCallback) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			event, err := s.readEvent()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
			if event != nil {
				callback(*event)
			}
		}
	}
}

// readEvent reads lines until it has decoded one event. Returns (nil, nil)
// for lines that carry nothing renderable.
func (s *StreamReader) readEvent() (*Event, error) {
	line, err := s.reader.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(bytes.TrimSpace(line)) == 0 {
			return nil, io.EOF
		}
		if len(line) == 0 {
			return nil, err
		}
		// Decode the final unterminated line before surfacing EOF
	}

	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, nil
	}

	// SSE framing: only data lines carry payloads
	payload, ok := bytes.CutPrefix(line, []byte("data:"))
	if !ok {
		return nil, nil
	}
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return nil, nil
	}

	var raw struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		Partial bool `json:"partial"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		s.malformed++
		s.logger.Warn("skipping malformed stream event",
			zap.Int("count", s.malformed),
			zap.Error(err))
		return nil, nil
	}

	var b strings.Builder
	for _, p := range raw.Content.Parts {
		b.WriteString(p.Text)
	}
	text := b.String()
	if text == "" {
		// Heartbeats and tool-call frames carry no text
		return nil, nil
	}

	kind := EventFinal
	if raw.Partial {
		kind = EventDelta
	}
	return &Event{Kind: kind, Text: text}, nil
}

// MalformedCount returns how many undecodable payloads were dropped.
func (s *StreamReader) MalformedCount() int {
	return s.malformed
}

// =============================================================================
// STREAM ACCUMULATOR
// =============================================================================

// Accumulator folds stream events into the text a reader should see at
// each instant: deltas concatenate, a final event replaces everything
// accumulated so far.
type Accumulator struct {
	// PERFORMANCE: strings.Builder avoids quadratic allocations
	partial   strings.Builder
	finalText string
	finalized bool
}

// Apply folds one event into the accumulator.
func (a *Accumulator) Apply(event Event) {
	switch event.Kind {
	case EventDelta:
		a.partial.WriteString(event.Text)
	case EventFinal:
		a.finalText = event.Text
		a.finalized = true
	}
}

// Text returns the current display text.
func (a *Accumulator) Text() string {
	if a.finalized {
		return a.finalText
	}
	return a.partial.String()
}

// Finalized reports whether a final event has arrived.
func (a *Accumulator) Finalized() bool {
	return a.finalized
}

// Reset clears the accumulator for the next turn.
func (a *Accumulator) Reset() {
	a.partial.Reset()
	a.finalText = ""
	a.finalized = false
}
