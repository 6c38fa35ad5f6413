// aura TUI - terminal client for the AURA IT support platform.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/aura-tui/internal/api"
	"github.com/jeranaias/aura-tui/internal/assistant"
	"github.com/jeranaias/aura-tui/internal/chatlog"
	"github.com/jeranaias/aura-tui/internal/cli"
	"github.com/jeranaias/aura-tui/internal/config"
	"github.com/jeranaias/aura-tui/internal/kb"
	"github.com/jeranaias/aura-tui/internal/logging"
	"github.com/jeranaias/aura-tui/internal/session"
	"github.com/jeranaias/aura-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async streaming
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

// programSend injects a message into the running program. Safe to call
// from stream goroutines; drops the message if the program is gone.
func programSend(msg tea.Msg) {
	programMu.Lock()
	p := programRef
	programMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)

	case cli.CmdLogin:
		cfg, logger := mustBootstrap()
		defer logger.Sync()
		if err := cli.HandleLogin(newPlatformClient(cfg, logger), args); err != nil {
			fail(err)
		}

	case cli.CmdChat:
		if err := runChatCLI(args); err != nil {
			fail(err)
		}

	case cli.CmdStatus:
		cfg, logger := mustBootstrap()
		defer logger.Sync()
		if err := cli.HandleStatus(newPlatformClient(cfg, logger), newAssistantClient(cfg, logger), cfg); err != nil {
			fail(err)
		}

	case cli.CmdConfig:
		cfg, logger := mustBootstrap()
		defer logger.Sync()
		if err := cli.HandleConfig(cfg, args); err != nil {
			fail(err)
		}

	case cli.CmdVersion:
		cli.PrintVersion()

	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// =============================================================================
// BOOTSTRAP
// =============================================================================

// mustBootstrap loads config and opens the file logger. Both have
// defaults that work on a fresh machine, so failure here is fatal.
func mustBootstrap() (*config.Config, *zap.Logger) {
	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}
	config.SetGlobal(cfg)

	logPath, err := cfg.LogPath()
	if err != nil {
		fail(err)
	}
	if err := config.EnsureConfigDir(); err != nil {
		fail(err)
	}
	logger, err := logging.New(logPath, cfg.Logging.Level)
	if err != nil {
		fail(err)
	}
	return cfg, logger
}

func newPlatformClient(cfg *config.Config, logger *zap.Logger) *api.Client {
	client := api.NewClient(&api.ClientConfig{
		BaseURL: cfg.Platform.BaseURL,
		Logger:  logger,
	})
	if token := cli.LoadToken(); token != "" {
		client.SetToken(token)
	}
	return client
}

func newAssistantClient(cfg *config.Config, logger *zap.Logger) *assistant.Client {
	return assistant.NewClientWithConfig(&assistant.ClientConfig{
		BaseURL:       cfg.Assistant.BaseURL,
		AppName:       cfg.Assistant.AppName,
		StreamTimeout: time.Duration(cfg.Assistant.StreamTimeoutSecs) * time.Second,
		Logger:        logger,
	})
}

// =============================================================================
// CHAT CLI
// =============================================================================

func runChatCLI(args cli.Args) error {
	cfg, logger := mustBootstrap()
	defer logger.Sync()

	platform := newPlatformClient(cfg, logger)
	if platform.Token() == "" || platform.TokenExpired(time.Now()) {
		return fmt.Errorf("not logged in (run: aura login)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	user, err := platform.Me(ctx)
	cancel()
	if err != nil {
		return err
	}

	agent := newAssistantClient(cfg, logger)
	sessionsPath, err := config.SessionsPath()
	if err != nil {
		return err
	}
	sessions := session.NewStore(sessionsPath, agent, logger)

	repl := cli.NewChatCLI(agent, sessions, assistant.DeriveUserID(user.Email))
	defer repl.Close()
	return repl.Run(context.Background())
}

// =============================================================================
// TUI
// =============================================================================

func runTUI(args cli.Args) {
	cfg, logger := mustBootstrap()
	defer logger.Sync()

	theme := styles.NewTheme()
	platform := newPlatformClient(cfg, logger)
	agent := newAssistantClient(cfg, logger)

	m := newAppModel(theme, cfg, logger, platform, agent)

	// Reload config on external edits; next refresh picks the values up.
	stopWatch, err := config.Watch(func(updated *config.Config) {
		config.SetGlobal(updated)
		logger.Info("configuration reloaded")
	})
	if err != nil {
		logger.Warn("config watcher unavailable", zap.Error(err))
	} else {
		defer stopWatch()
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running aura: %v\n", err)
		os.Exit(1)
	}

	programMu.Lock()
	programRef = nil
	programMu.Unlock()

	if m.kbCache != nil {
		m.kbCache.Close()
	}
}

// openWorkspaceDeps builds the per-user state the workspace views share.
func openWorkspaceDeps(cfg *config.Config, logger *zap.Logger, agent *assistant.Client) (*session.Store, *chatlog.Log, *kb.Cache, error) {
	sessionsPath, err := config.SessionsPath()
	if err != nil {
		return nil, nil, nil, err
	}
	kbPath, err := config.KBCachePath()
	if err != nil {
		return nil, nil, nil, err
	}
	cache, err := kb.Open(kbPath)
	if err != nil {
		// The mirror is an optimization; the browser works without it.
		logger.Warn("knowledge cache unavailable", zap.Error(err))
		cache = nil
	}
	return session.NewStore(sessionsPath, agent, logger), chatlog.New(), cache, nil
}
