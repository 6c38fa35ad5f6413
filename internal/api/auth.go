// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the AURA platform API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/jeranaias/aura-tui/internal/model"
)

// LoginResponse is the platform's token grant.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        model.User `json:"user"`
}

// Login exchanges credentials for a bearer token, installs it on the
// client, and returns the authenticated user.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no token")
	}

	c.SetToken(resp.AccessToken)
	c.logger.Info("logged in",
		zap.String("user", resp.User.Email),
		zap.String("role", string(resp.User.Role)))
	return &resp.User, nil
}

// Me fetches the account behind the current token.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// TokenExpiry reads the exp claim from the stored token without
// verifying the signature. Verification belongs to the platform; the
// client only needs to know when to prompt for a fresh login.
func (c *Client) TokenExpiry() (time.Time, error) {
	token := c.Token()
	if token == "" {
		return time.Time{}, ErrUnauthorized
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("token not parseable: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token carries no expiry")
	}
	return exp.Time, nil
}

// TokenExpired reports whether the stored token is missing or past its
// expiry. A token without a readable expiry counts as expired.
func (c *Client) TokenExpired(now time.Time) bool {
	exp, err := c.TokenExpiry()
	if err != nil {
		return true
	}
	return now.After(exp)
}
