// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "testing"

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, _ := parse(nil)
	if cmd != CmdTUI {
		t.Errorf("expected TUI default, got %v", cmd)
	}
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"login"}, CmdLogin},
		{[]string{"chat"}, CmdChat},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"config"}, CmdConfig},
		{[]string{"version"}, CmdVersion},
		{[]string{"--version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"bogus"}, CmdHelp},
	}
	for _, tt := range tests {
		if cmd, _ := parse(tt.argv); cmd != tt.want {
			t.Errorf("parse(%v) = %v, want %v", tt.argv, cmd, tt.want)
		}
	}
}

func TestParseLoginEmail(t *testing.T) {
	_, args := parse([]string{"login", "alice@example.com"})
	if args.Email != "alice@example.com" {
		t.Errorf("expected email captured, got %q", args.Email)
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := parse([]string{"--quiet", "login"})
	if cmd != CmdLogin || !args.Quiet {
		t.Errorf("expected quiet login, got cmd=%v quiet=%v", cmd, args.Quiet)
	}
}

func TestParseConfigSet(t *testing.T) {
	_, args := parse([]string{"config", "set", "ui.theme", "dark"})
	if args.Subcommand != "set" || args.ConfigKey != "ui.theme" || args.ConfigVal != "dark" {
		t.Errorf("unexpected config args: %+v", args)
	}
}

func TestParseConfigDefaultsToList(t *testing.T) {
	_, args := parse([]string{"config"})
	if args.Subcommand != "list" {
		t.Errorf("expected list default, got %q", args.Subcommand)
	}
}
