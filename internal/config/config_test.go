// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears FORGEFIT_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, k := range []string{"FORGEFIT_BASE_URL", "FORGEFIT_SESSION", "FORGEFIT_DEBOUNCE_MS", "FORGEFIT_THEME", "FORGEFIT_VERBOSE"} {
		t.Setenv(k, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// =============================================================================
// DEFAULTS AND LOADING
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 15*time.Second, cfg.Timeout())
	assert.False(t, cfg.Food.RecomputeTotals)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Server.BaseURL, cfg.Server.BaseURL)
}

func TestLoad_TOMLFillsMissingValues(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".forgefit", "config.toml"), `
[server]
base_url = "http://forgefit.local:8000"
session_cookie = "s3cret"

[food]
recompute_totals = true
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://forgefit.local:8000", cfg.Server.BaseURL)
	assert.Equal(t, "s3cret", cfg.Server.SessionCookie)
	assert.Equal(t, "session", cfg.Server.CookieName)
	assert.Equal(t, 300, cfg.Food.DebounceMs)
	assert.True(t, cfg.Food.RecomputeTotals)
	assert.True(t, cfg.UI.MarkdownReplies)
	assert.Equal(t, "auto", cfg.UI.Theme)
}

func TestLoad_JSONFallback(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".forgefit", "config.json"),
		`{"server": {"base_url": "http://json.local"}, "ui": {"theme": "light"}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://json.local", cfg.Server.BaseURL)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, 15, cfg.Server.TimeoutSecs)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("FORGEFIT_BASE_URL", "http://env.local:5000")
	t.Setenv("FORGEFIT_SESSION", "cookie")
	t.Setenv("FORGEFIT_DEBOUNCE_MS", "50")
	t.Setenv("FORGEFIT_THEME", "dark")
	t.Setenv("FORGEFIT_VERBOSE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env.local:5000", cfg.Server.BaseURL)
	assert.Equal(t, "cookie", cfg.Server.SessionCookie)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce())
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.True(t, cfg.Server.Verbose)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[ui]
theme = "neon"
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.theme")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Server.BaseURL = "not a url"
	cfg.Server.TimeoutSecs = 0
	cfg.UI.Theme = "neon"

	err := cfg.Validate()
	require.Error(t, err)
	verrs, ok := err.(ValidateErrors)
	require.True(t, ok)
	assert.Len(t, verrs, 3)
}

// =============================================================================
// SAVE
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	fs := afero.NewOsFs()
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Server.SessionCookie = "abc"
	cfg.Food.DebounceMs = 120
	require.NoError(t, SaveTOML(fs, cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", loaded.Server.SessionCookie)
	assert.Equal(t, 120, loaded.Food.DebounceMs)
}

func TestResolvePath(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".forgefit")

	got, err := ResolvePath("/etc/forgefit/alt.toml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/forgefit/alt.toml", got)

	got, err = ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), got)

	writeFile(t, filepath.Join(dir, "config.json"), `{}`)
	got, err = ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.json"), got)

	writeFile(t, filepath.Join(dir, "config.toml"), "")
	got, err = ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), got)
}

// =============================================================================
// WATCH
// =============================================================================

func TestWatch_ReloadsOnWrite(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeFile(t, path, "[food]\ndebounce_ms = 300\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, func(c *Config) { changes <- c }) }()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, "[food]\ndebounce_ms = 75\n")

	select {
	case cfg := <-changes:
		assert.Equal(t, 75, cfg.Food.DebounceMs)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}

	cancel()
	require.NoError(t, <-done)
}
