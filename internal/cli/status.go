// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - backend reachability and auth status.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/aura-tui/internal/api"
	"github.com/jeranaias/aura-tui/internal/assistant"
	"github.com/jeranaias/aura-tui/internal/config"
)

// HandleStatus pings both backends and reports the auth state.
func HandleStatus(platform *api.Client, agent *assistant.Client, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	fmt.Println("aura status")
	fmt.Println()

	fmt.Printf("  Platform   %s\n", cfg.Platform.BaseURL)
	if err := platform.Ping(ctx); err != nil {
		fmt.Printf("             ✗ unreachable: %v\n", err)
	} else {
		fmt.Println("             ✓ reachable")
	}

	switch {
	case platform.Token() == "":
		fmt.Println("  Auth       not logged in (run: aura login)")
	case platform.TokenExpired(time.Now()):
		fmt.Println("  Auth       token expired (run: aura login)")
	default:
		if user, err := platform.Me(ctx); err != nil {
			fmt.Printf("  Auth       token rejected: %v\n", err)
		} else {
			fmt.Printf("  Auth       ✓ %s (%s)\n", user.Email, user.Role.DisplayName())
		}
	}

	fmt.Printf("  Assistant  %s\n", cfg.Assistant.BaseURL)
	if err := agent.Ping(ctx); err != nil {
		fmt.Printf("             ✗ unreachable: %v\n", err)
	} else {
		fmt.Println("             ✓ reachable")
	}

	return nil
}
