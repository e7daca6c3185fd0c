// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli holds the forgefit command tree and the commands that run
// outside the full-screen dashboard.
//
// # Commands
//
//	forgefit                    start the dashboard
//	forgefit chat               line-mode coach chat with input history
//	forgefit food search QUERY  print matches from the food database
//	forgefit food export        write today's food log as xlsx, json or md
//	forgefit version            print version information
//
// Global flags: --config, --base-url, --verbose, --json.
//
// Errors map to exit codes with GetExitCode: usage errors exit 2, config
// errors 3, an unreachable server 5 and a server-reported failure 6.
package cli
