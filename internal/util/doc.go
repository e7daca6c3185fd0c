// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the forgefit client.
//
// # Key Functions
//
// Number parsing with browser semantics, used wherever text typed into an
// input or shown in a cell is read back as a number:
//   - ParseIntPrefix: leading-integer parse, ok=false instead of NaN
//   - ParseFloatPrefix: leading-decimal parse, NaN when there is none
//   - FormatNumber, FormatGrams: display formatting for log rows and totals
//
// Terminal text:
//   - TruncateWidth, PadWidth, PadLeftWidth: column fitting via go-runewidth
//
// Files:
//   - AtomicWriteFile: temp file + rename on an afero.Fs
package util
