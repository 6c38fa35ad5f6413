// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the AURA platform API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// APIError is a non-2xx response from the platform.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("platform API: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("platform API: status %d", e.Status)
}

// ErrUnauthorized means the token is missing, expired, or rejected.
var ErrUnauthorized = errors.New("not authenticated")

// IsUnauthorized reports whether err is an auth failure, either the local
// sentinel or a 401 from the platform.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the platform client.
type ClientConfig struct {
	// BaseURL is the platform API root (default: http://127.0.0.1:8080/api/v1)
	BaseURL string

	// Timeout per request (default: 20s)
	Timeout time.Duration

	// RefreshRate caps background polling, requests per second
	// (default: 1). Interactive calls are never throttled.
	RefreshRate rate.Limit

	// Logger for request failures; nil means no logging.
	Logger *zap.Logger
}

// DefaultClientConfig returns the default platform client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:     "http://127.0.0.1:8080/api/v1",
		Timeout:     20 * time.Second,
		RefreshRate: 1,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is the authenticated HTTP client for tickets, knowledge,
// analytics, and transition resources. Safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	logger     *zap.Logger
	refresh    *rate.Limiter

	mu    sync.RWMutex
	token string
}

// NewClient creates a platform client.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultClientConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8080/api/v1"
	}
	if config.Timeout == 0 {
		config.Timeout = 20 * time.Second
	}
	if config.RefreshRate == 0 {
		config.RefreshRate = 1
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
		refresh:    rate.NewLimiter(config.RefreshRate, 2),
	}
}

// SetToken installs the bearer token used on every subsequent request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token, empty if not logged in.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// WaitRefresh blocks until background polling is allowed to proceed.
// Dashboard auto-refresh goes through here so a short refresh interval
// can never flood the platform.
func (c *Client) WaitRefresh(ctx context.Context) error {
	return c.refresh.Wait(ctx)
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do issues one authenticated request and decodes the JSON response into
// out (which may be nil for fire-and-forget calls).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("platform request failed",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("platform unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: readErrorDetail(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readErrorDetail extracts the platform's {"detail": ...} error body.
func readErrorDetail(r io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	return payload.Detail
}

// Ping checks that the platform answers at all; any HTTP response counts
// as reachable. Auth is not required.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
