// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the day's nutrition log to a file.
//
// # Supported Formats
//
//   - JSON: entries and totals as numbers
//   - XLSX: one sheet, one row per entry, totals last
//   - Markdown: a table for pasting into notes
//
// # Usage
//
//	exp, err := export.New(export.FormatXLSX)
//	if err != nil {
//	    return err
//	}
//	path, err := export.ExportToFile(export.NewLog(rows, totals), exp, "food.xlsx", nil)
//
// Files are written through an afero.Fs so tests can use an in-memory
// filesystem.
package export
