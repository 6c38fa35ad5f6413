// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for aura.
//
// # Key Types
//
//   - Config: main configuration structure with all settings
//   - PlatformConfig: ticket platform API endpoint and refresh cadence
//   - AssistantConfig: agent backend endpoint and app name
//   - UIConfig, LoggingConfig: terminal and log-file behavior
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (AURA_*)
//   - A .env file in the working directory
//   - ~/.aura/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Watch for edits while running:
//
//	stop, err := config.Watch(func(cfg *config.Config) {
//	    program.Send(configReloadedMsg{cfg})
//	})
//	defer stop()
package config
