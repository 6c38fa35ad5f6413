// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth.go - login command and token persistence.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/jeranaias/aura-tui/internal/api"
	"github.com/jeranaias/aura-tui/internal/config"
	"github.com/jeranaias/aura-tui/internal/util"
)

const tokenFile = "token"

// TokenPath returns the location of the persisted access token.
func TokenPath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, tokenFile), nil
}

// SaveToken persists the access token with owner-only permissions.
func SaveToken(token string) error {
	if err := config.EnsureConfigDir(); err != nil {
		return err
	}
	path, err := TokenPath()
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(path, []byte(token), 0600)
}

// LoadToken returns the persisted token, or "" when none exists.
func LoadToken() string {
	path, err := TokenPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// ClearToken removes the persisted token.
func ClearToken() error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// HandleLogin prompts for credentials, authenticates, and persists the
// token for the TUI and chat commands.
func HandleLogin(client *api.Client, args Args) error {
	email := strings.TrimSpace(args.Email)
	reader := bufio.NewReader(os.Stdin)

	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return fmt.Errorf("an email address is required")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := client.Login(ctx, email, string(password))
	if err != nil {
		if api.IsUnauthorized(err) {
			return fmt.Errorf("invalid email or password")
		}
		return err
	}

	// Login installs the bearer token on the client; persist it for the
	// TUI and chat commands.
	if err := SaveToken(client.Token()); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	if !args.Quiet {
		fmt.Printf("✓ Logged in as %s (%s)\n", user.Email, user.Role.DisplayName())
	}
	return nil
}
