// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/jeranaias/forgefit-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete forgefit configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Backend connection
	Server ServerConfig `toml:"server" json:"server"`

	// Food search and nutrition log behaviour
	Food FoodConfig `toml:"food" json:"food"`

	// Terminal UI
	UI UIConfig `toml:"ui" json:"ui"`
}

// ServerConfig describes how to reach the ForgeFit backend.
type ServerConfig struct {
	// BaseURL is the backend root, e.g. http://127.0.0.1:5000
	BaseURL string `toml:"base_url" json:"base_url" validate:"required,url"`
	// SessionCookie is the value of the logged-in Flask session cookie
	SessionCookie string `toml:"session_cookie" json:"session_cookie"`
	// CookieName is the session cookie name
	CookieName string `toml:"cookie_name" json:"cookie_name" validate:"required"`
	// TimeoutSecs bounds each request
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs" validate:"min=1,max=300"`
	// RatePerSec and RateBurst limit outgoing requests
	RatePerSec float64 `toml:"rate_per_sec" json:"rate_per_sec" validate:"gt=0"`
	RateBurst  int     `toml:"rate_burst" json:"rate_burst" validate:"min=1"`
	// Verbose logs request/response lines
	Verbose bool `toml:"verbose" json:"verbose"`
}

// FoodConfig contains food search and totals settings.
type FoodConfig struct {
	// DebounceMs is the quiet period before a search fires
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms" validate:"min=0,max=5000"`
	// RecomputeTotals re-sums totals from the visible rows instead of
	// applying increments. Off by default.
	RecomputeTotals bool `toml:"recompute_totals" json:"recompute_totals"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is "auto", "dark" or "light"
	Theme string `toml:"theme" json:"theme" validate:"oneof=auto dark light"`
	// ChatOpen opens the chat sidebar at startup
	ChatOpen bool `toml:"chat_open" json:"chat_open"`
	// MarkdownReplies renders assistant replies as markdown
	MarkdownReplies bool `toml:"markdown_replies" json:"markdown_replies"`
	// LogFile receives log output while the TUI owns the terminal
	LogFile string `toml:"log_file" json:"log_file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1",
		Server: ServerConfig{
			BaseURL:     "http://127.0.0.1:5000",
			CookieName:  "session",
			TimeoutSecs: 15,
			RatePerSec:  10,
			RateBurst:   5,
		},
		Food: FoodConfig{
			DebounceMs: 300,
		},
		UI: UIConfig{
			Theme:           "auto",
			MarkdownReplies: true,
		},
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// Debounce returns the food search quiet period as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Food.DebounceMs) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the forgefit configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".forgefit"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ResolvePath returns the config file a run uses: explicit when it is not
// empty, otherwise the first of config.toml and config.json that exists,
// otherwise config.toml.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	for _, path := range []string{tomlPath, jsonPath} {
		if _, statErr := os.Stat(path); statErr == nil {
			return path, nil
		}
	}
	return tomlPath, nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// A .env file in the working directory and environment overrides are applied last.
func Load() (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		return LoadFromPath(path)
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	// Booleans that default to true must survive a file that omits them.
	if !md.IsDefined("ui", "markdown_replies") {
		cfg.UI.MarkdownReplies = Default().UI.MarkdownReplies
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	// Start from defaults so omitted keys keep them.
	*cfg = *Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	// Server
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = defaults.Server.BaseURL
	}
	if cfg.Server.CookieName == "" {
		cfg.Server.CookieName = defaults.Server.CookieName
	}
	if cfg.Server.TimeoutSecs == 0 {
		cfg.Server.TimeoutSecs = defaults.Server.TimeoutSecs
	}
	if cfg.Server.RatePerSec == 0 {
		cfg.Server.RatePerSec = defaults.Server.RatePerSec
	}
	if cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = defaults.Server.RateBurst
	}

	// Food: 0 is a legal debounce only when set explicitly through the env.
	if cfg.Food.DebounceMs == 0 {
		cfg.Food.DebounceMs = defaults.Food.DebounceMs
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(afero.NewOsFs(), cfg, path)
}

// SaveTOML writes the configuration as TOML with 0600 permissions; the file
// holds the session cookie.
func SaveTOML(fs afero.Fs, cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# forgefit configuration file\n")
	b.WriteString("# Generated by forgefit - edit with care\n\n")
	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(fs, path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// validate caches struct info across calls.
var validate = validator.New()

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var out ValidateErrors
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fieldKey(fe.StructNamespace()),
			Message: fmt.Sprintf("failed %q rule (value: %v)", fe.Tag(), fe.Value()),
		})
	}
	return out
}

// fieldKey maps "Config.Server.BaseURL" to "server.baseurl".
func fieldKey(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - FORGEFIT_BASE_URL: overrides server.base_url
//   - FORGEFIT_SESSION: overrides server.session_cookie
//   - FORGEFIT_DEBOUNCE_MS: overrides food.debounce_ms
//   - FORGEFIT_THEME: overrides ui.theme
//   - FORGEFIT_VERBOSE: "1" or "true" enables request logging
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("FORGEFIT_BASE_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("FORGEFIT_SESSION"); v != "" {
		c.Server.SessionCookie = v
	}
	if v := os.Getenv("FORGEFIT_DEBOUNCE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.Food.DebounceMs = ms
		}
	}
	if v := os.Getenv("FORGEFIT_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("FORGEFIT_VERBOSE"); v != "" {
		c.Server.Verbose = v == "1" || strings.ToLower(v) == "true"
	}
}
