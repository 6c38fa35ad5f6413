// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assistant provides the HTTP client for the AURA agent backend.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the assistant client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches ClientErrors by type so sentinel comparisons work through
// wrapping.
func (e *ClientError) Is(target error) bool {
	var other *ClientError
	if !errors.As(target, &other) {
		return false
	}
	return e.Type == other.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeSessionCreation
	ErrTypeNoActiveSession
	ErrTypeTransport
	ErrTypeBadRequest
	ErrTypeUnavailable
	ErrTypeBackend
)

// Sentinel errors for easy checking.
var (
	ErrSessionCreation = &ClientError{Type: ErrTypeSessionCreation, Message: "failed to create assistant session"}
	ErrNoActiveSession = &ClientError{Type: ErrTypeNoActiveSession, Message: "no active session"}
	ErrTransport       = &ClientError{Type: ErrTypeTransport, Message: "assistant connection failed"}
	ErrUnavailable     = &ClientError{Type: ErrTypeUnavailable, Message: "assistant endpoint not found"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the assistant client.
type ClientConfig struct {
	// BaseURL is the agent backend base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// AppName is the registered agent application (default: "AURA")
	AppName string

	// Timeout for session management requests (default: 15s)
	Timeout time.Duration

	// StreamTimeout caps an entire streaming turn (default: 2m)
	StreamTimeout time.Duration

	// Logger receives malformed-event warnings; nil means no logging.
	Logger *zap.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://127.0.0.1:8000",
		AppName:       "AURA",
		Timeout:       15 * time.Second,
		StreamTimeout: 2 * time.Minute,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the agent backend: session creation plus the SSE
// streaming turn endpoint. The Client is stateless and safe for
// concurrent use; session identity travels in each request.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new assistant client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new assistant client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.AppName == "" {
		config.AppName = "AURA"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.StreamTimeout == 0 {
		config.StreamTimeout = 2 * time.Minute
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config: config,
		// No Timeout on the http.Client itself: it would cut off long
		// streams. Per-call deadlines come from the request context.
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// DeriveUserID maps a platform email to the agent's user identifier.
// The agent API rejects '@' and '.' in path segments.
func DeriveUserID(email string) string {
	return strings.Map(func(r rune) rune {
		if r == '@' || r == '.' {
			return '_'
		}
		return r
	}, email)
}

// =============================================================================
// SESSION CREATION
// =============================================================================

// CreateSession registers a new conversation session for the derived user
// and returns its identifier.
func (c *Client) CreateSession(ctx context.Context, derivedUserID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, err := json.Marshal(createSessionRequest{State: map[string]any{}, Events: []any{}})
	if err != nil {
		return "", &ClientError{Type: ErrTypeSessionCreation, Message: "failed to marshal session request", Cause: err}
	}

	url := c.config.BaseURL + "/apps/" + c.config.AppName + "/users/" + derivedUserID + "/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeSessionCreation, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ClientError{Type: ErrTypeSessionCreation, Message: "failed to create assistant session", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ClientError{
			Type:    ErrTypeSessionCreation,
			Message: "session creation failed with status " + resp.Status,
		}
	}

	var result createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeSessionCreation, Message: "failed to decode session response", Cause: err}
	}
	if result.ID == "" {
		return "", &ClientError{Type: ErrTypeSessionCreation, Message: "session response carried no id"}
	}

	c.logger.Info("assistant session created",
		zap.String("user", derivedUserID),
		zap.String("session", result.ID))

	return result.ID, nil
}

// =============================================================================
// STREAMING TURN
// =============================================================================

// Run submits one turn and streams response events to the callback until
// the stream ends. Blocks for the duration of the turn; returns an error
// only for failures that terminate the turn. There is no automatic retry.
func (c *Client) Run(ctx context.Context, turn TurnRequest, callback EventCallback) error {
	if turn.SessionID == "" {
		return ErrNoActiveSession
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.StreamTimeout)
	defer cancel()

	body, err := json.Marshal(turn.payload(c.config.AppName))
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "failed to marshal turn request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/run_sse", bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &ClientError{Type: ErrTypeTransport, Message: "assistant request timed out", Cause: err}
		}
		return &ClientError{Type: ErrTypeTransport, Message: "assistant connection failed", Cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrUnavailable
	case resp.StatusCode == http.StatusBadRequest:
		return &ClientError{Type: ErrTypeBadRequest, Message: "assistant rejected the request payload"}
	case resp.StatusCode >= 500:
		return &ClientError{Type: ErrTypeBackend, Message: "assistant backend error: " + resp.Status}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &ClientError{Type: ErrTypeTransport, Message: "unexpected status from assistant: " + resp.Status}
	}

	reader := NewStreamReader(resp.Body, c.logger)
	if err := reader.Process(ctx, callback); err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "stream interrupted", Cause: err}
	}
	return nil
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// Ping checks that the agent endpoint answers at all. Used by the status
// command; any HTTP response counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/list-apps", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ClientError{Type: ErrTypeTransport, Message: "assistant connection failed", Cause: err}
	}
	resp.Body.Close()
	return nil
}
