// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and command dispatch for aura.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdChat
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool

	// Command-specific
	Email      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `aura - terminal client for the AURA IT support platform

Aura gives engineers and end users the full support workflow in a
terminal: tickets, knowledge base, dashboards, and an AI assistant.

Usage:
  aura                       Start the TUI workspace (default)
  aura login [email]         Authenticate against the platform
  aura chat                  Assistant chat in the terminal, no TUI
  aura status, s             Ping the platform and assistant backends
  aura config [subcommand]   Configuration management
  aura version               Show version information
  aura help                  Show this help

Config Commands:
  aura config list           Show every key and its current value
  aura config get <key>      Print one value (e.g. assistant.base_url)
  aura config set <key> <v>  Set a value and save

Chat Commands (inside aura chat):
  /clear                     Start a fresh assistant session
  /attach <path>             Attach a file to the next message
  /quit                      Leave the chat

Environment:
  AURA_PLATFORM_URL          Platform API base URL
  AURA_ASSISTANT_URL         Assistant agent base URL
  AURA_APP_NAME              Assistant application name
  AURA_LOG_LEVEL             debug | info | warn | error

Files:
  ~/.aura/config.toml        Configuration
  ~/.aura/sessions.json      Assistant session map
  ~/.aura/kb.db              Offline knowledge-base mirror
  ~/.aura/aura.log           Client log

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("aura version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

func parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "login":
		if len(remaining) > 0 {
			args.Email = remaining[0]
		}
		return CmdLogin, args

	case "chat":
		return CmdChat, args

	case "status", "s":
		return CmdStatus, args

	case "config":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args

	case "version", "-v", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		fmt.Fprintf(os.Stderr, "aura: unknown command %q\n\n", cmd)
		return CmdHelp, args
	}
}

func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	var remaining []string
	for _, a := range argv {
		switch a {
		case "--quiet", "-q":
			args.Quiet = true
		case "--verbose":
			args.Verbose = true
		default:
			remaining = append(remaining, a)
		}
	}
	return remaining, args
}

func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "list"
		return
	}
	args.Subcommand = remaining[0]
	if len(remaining) > 1 {
		args.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		args.ConfigVal = strings.Join(remaining[2:], " ")
	}
}
