// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSibling(dir string) error {
	return os.WriteFile(filepath.Join(dir, "chat_history"), []byte("hello\n"), 0o600)
}

func TestWatchReloadsOnSave(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ResetGlobalForTesting()

	require.NoError(t, EnsureConfigDir())
	require.NoError(t, Save(Default()))

	var mu sync.Mutex
	var got *Config
	stop, err := Watch(func(cfg *Config) {
		mu.Lock()
		got = cfg
		mu.Unlock()
	})
	require.NoError(t, err)
	defer stop()

	updated := Default()
	updated.UI.Theme = "light"
	require.NoError(t, Save(updated))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil
	}, 5*time.Second, 50*time.Millisecond, "expected the watcher to deliver a reload")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "light", got.UI.Theme)
	assert.Equal(t, "light", Global().UI.Theme, "reload must refresh the global config")
}

func TestWatchIgnoresUnrelatedFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ResetGlobalForTesting()

	require.NoError(t, EnsureConfigDir())
	require.NoError(t, Save(Default()))

	reloads := make(chan struct{}, 1)
	stop, err := Watch(func(*Config) { reloads <- struct{}{} })
	require.NoError(t, err)
	defer stop()

	// A sibling file in the config dir must not trigger a reload.
	dir, err := ConfigDir()
	require.NoError(t, err)
	require.NoError(t, writeSibling(dir))

	select {
	case <-reloads:
		t.Fatal("unrelated file change triggered a reload")
	case <-time.After(watchDebounce + 300*time.Millisecond):
	}
}
