// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for forgefit.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env and environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: Backend URL, session cookie and request limits
//   - FoodConfig: Search debounce and totals mode
//   - UIConfig: Theme, chat sidebar and log file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (FORGEFIT_*), including a .env file
//   - ~/.forgefit/config.toml
//   - ~/.forgefit/config.json
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
// Watch for edits:
//
//	go config.Watch(ctx, path, func(cfg *config.Config) { ... })
package config
