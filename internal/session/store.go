// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session persists assistant session identity per user.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/aura-tui/internal/util"
)

// =============================================================================
// SESSION STORE
// =============================================================================

// Creator registers a new session with the agent backend. Implemented by
// assistant.Client.
type Creator interface {
	CreateSession(ctx context.Context, derivedUserID string) (string, error)
}

// Store maps each user to their active assistant session ID and persists
// the mapping across restarts, so a conversation survives closing the
// client.
//
// The active ID doubles as the stream guard: events that arrive after a
// Reset carry the old ID and are discarded by comparing against Current.
type Store struct {
	mu       sync.Mutex
	path     string
	creator  Creator
	logger   *zap.Logger
	sessions map[string]string // userID -> sessionID
}

// NewStore loads (or initializes) the session map at path.
// A corrupt or missing file starts empty; sessions are cheap to recreate.
func NewStore(path string, creator Creator, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		path:     path,
		creator:  creator,
		logger:   logger,
		sessions: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if jsonErr := json.Unmarshal(data, &s.sessions); jsonErr != nil {
			logger.Warn("session file unreadable, starting fresh",
				zap.String("path", path), zap.Error(jsonErr))
			s.sessions = make(map[string]string)
		}
	}
	return s
}

// Current returns the user's active session ID, or "" if none exists.
func (s *Store) Current(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

// GetOrCreate returns the user's session, creating and persisting one on
// first use.
func (s *Store) GetOrCreate(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	if id := s.sessions[userID]; id != "" {
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	// Create outside the lock: the backend call can be slow and nothing
	// else writes this user's entry concurrently.
	id, err := s.creator.CreateSession(ctx, userID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.sessions[userID] = id
	err = s.persistLocked()
	s.mu.Unlock()
	if err != nil {
		s.logger.Warn("failed to persist session map", zap.Error(err))
	}
	return id, nil
}

// Reset discards the user's session and creates a fresh one. The old
// identifier is dropped before the create call, so a failed create leaves
// the user with no session rather than the stale one, and events still in
// flight for the old session never match Current again.
func (s *Store) Reset(ctx context.Context, userID string) (string, error) {
	s.mu.Lock()
	delete(s.sessions, userID)
	dropErr := s.persistLocked()
	s.mu.Unlock()
	if dropErr != nil {
		s.logger.Warn("failed to persist session map", zap.Error(dropErr))
	}

	id, err := s.creator.CreateSession(ctx, userID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.sessions[userID] = id
	persistErr := s.persistLocked()
	s.mu.Unlock()
	if persistErr != nil {
		s.logger.Warn("failed to persist session map", zap.Error(persistErr))
	}

	s.logger.Info("session reset", zap.String("user", userID), zap.String("session", id))
	return id, nil
}

// persistLocked writes the map to disk. Callers hold s.mu.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}
	return util.AtomicWriteFile(s.path, data, 0600)
}
