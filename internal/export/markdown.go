// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/forgefit-tui/internal/util"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes the log as a Markdown table with YAML frontmatter.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export converts the log to Markdown.
func (e *MarkdownExporter) Export(log *Log) ([]byte, error) {
	if log == nil {
		return nil, fmt.Errorf("log is nil")
	}
	if log.Date.IsZero() {
		return nil, fmt.Errorf("log has no date")
	}

	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("date: %s\n", log.Date.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("entries: %d\n", len(log.Entries)))
	sb.WriteString(fmt.Sprintf("exported: %s\n", time.Now().Format(time.RFC3339)))
	sb.WriteString("generator: forgefit-tui\n")
	sb.WriteString("---\n\n")

	sb.WriteString(fmt.Sprintf("# Food log, %s\n\n", log.Date.Format("Monday, January 2")))

	if len(log.Entries) == 0 {
		sb.WriteString("No food logged today.\n")
		return []byte(sb.String()), nil
	}

	sb.WriteString("| Food | Serving | Calories | Protein | Carbs | Fat |\n")
	sb.WriteString("|------|--------:|---------:|--------:|------:|----:|\n")
	for _, en := range log.Entries {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %sg | %sg | %sg |\n",
			escapeMarkdown(en.FoodName),
			util.FormatGrams(en.ServingG),
			util.FormatNumber(en.Calories),
			util.FormatNumber(en.ProteinG),
			util.FormatNumber(en.CarbsG),
			util.FormatNumber(en.FatG)))
	}
	t := log.Totals
	sb.WriteString(fmt.Sprintf("| **Total** | | **%s** | **%sg** | **%sg** | **%sg** |\n",
		util.FormatNumber(t.Calories),
		util.FormatNumber(t.Protein),
		util.FormatNumber(t.Carbs),
		util.FormatNumber(t.Fat)))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// escapeMarkdown escapes characters that would break a table cell or add
// formatting.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
