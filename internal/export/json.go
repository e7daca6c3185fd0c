// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

type jsonTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type jsonLog struct {
	Date    string     `json:"date"`
	Entries []Entry    `json:"entries"`
	Totals  jsonTotals `json:"totals"`
}

// JSONExporter writes the log with the same field names the server uses for
// food entries.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts the log to indented JSON.
func (e *JSONExporter) Export(log *Log) ([]byte, error) {
	if log == nil {
		return nil, fmt.Errorf("log is nil")
	}
	out := jsonLog{
		Date:    log.Date.Format("2006-01-02"),
		Entries: log.Entries,
		Totals: jsonTotals{
			Calories: log.Totals.Calories,
			ProteinG: log.Totals.Protein,
			CarbsG:   log.Totals.Carbs,
			FatG:     log.Totals.Fat,
		},
	}
	if out.Entries == nil {
		out.Entries = []Entry{}
	}
	return json.MarshalIndent(out, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
