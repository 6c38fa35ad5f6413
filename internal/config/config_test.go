// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"sync"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() should validate, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty platform url", func(c *Config) { c.Platform.BaseURL = "" }},
		{"empty assistant url", func(c *Config) { c.Assistant.BaseURL = "" }},
		{"empty app name", func(c *Config) { c.Assistant.AppName = "" }},
		{"negative refresh", func(c *Config) { c.Platform.RefreshSecs = -1 }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("AURA_PLATFORM_URL", "https://support.example.com/api/v1")
	t.Setenv("AURA_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Platform.BaseURL != "https://support.example.com/api/v1" {
		t.Errorf("platform url = %q", cfg.Platform.BaseURL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	cfg := Default()

	for _, key := range Keys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
		}
	}

	if err := cfg.Set("ui.theme", "light"); err != nil {
		t.Fatal(err)
	}
	if got, _ := cfg.Get("ui.theme"); got != "light" {
		t.Errorf("ui.theme = %q after Set", got)
	}

	if err := cfg.Set("ui.theme", "solarized"); err == nil {
		t.Error("Set with an invalid value should fail validation")
	}
	if err := cfg.Set("no.such.key", "x"); err == nil {
		t.Error("Set with an unknown key should fail")
	}
}

func TestGlobalConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}
