// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - aura config subcommands.
package cli

import (
	"fmt"

	"github.com/jeranaias/aura-tui/internal/config"
)

// HandleConfig dispatches the config subcommands against the loaded
// configuration. set persists the change immediately.
func HandleConfig(cfg *config.Config, args Args) error {
	switch args.Subcommand {
	case "", "list", "show":
		for _, key := range config.Keys() {
			value, err := cfg.Get(key)
			if err != nil {
				return err
			}
			fmt.Printf("%-28s %s\n", key, value)
		}
		return nil

	case "get":
		if args.ConfigKey == "" {
			return fmt.Errorf("usage: aura config get <key>")
		}
		value, err := cfg.Get(args.ConfigKey)
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil

	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			return fmt.Errorf("usage: aura config set <key> <value>")
		}
		if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", args.ConfigKey, args.ConfigVal)
		return nil

	default:
		return fmt.Errorf("unknown config subcommand %q (try list, get, set)", args.Subcommand)
	}
}
