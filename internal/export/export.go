// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/jeranaias/forgefit-tui/internal/model"
	"github.com/jeranaias/forgefit-tui/internal/util"
)

// =============================================================================
// LOG
// =============================================================================

// Entry is one food log row with its cell text parsed into numbers.
type Entry struct {
	ID       int     `json:"id"`
	FoodName string  `json:"food_name"`
	ServingG float64 `json:"serving_g"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Log is the data every exporter renders.
type Log struct {
	Date    time.Time
	Entries []Entry
	Totals  model.Totals
}

// NewLog builds a Log for today from table rows and the displayed totals.
// Cell text is parsed the same way the totals are maintained.
func NewLog(rows []model.FoodRow, totals model.Totals) *Log {
	l := &Log{Date: time.Now(), Totals: totals}
	for _, r := range rows {
		l.Entries = append(l.Entries, Entry{
			ID:       r.ID,
			FoodName: r.FoodName,
			ServingG: util.FloatOrZero(r.Serving),
			Calories: util.FloatOrZero(r.Calories),
			ProteinG: util.FloatOrZero(r.Protein),
			CarbsG:   util.FloatOrZero(r.Carbs),
			FatG:     util.FloatOrZero(r.Fat),
		})
	}
	return l
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders a Log in one file format.
type Exporter interface {
	// Export converts the log to the target format and returns the content.
	Export(log *Log) ([]byte, error)

	// FileExtension returns the file extension, including the dot.
	FileExtension() string

	// MimeType returns the MIME type for the format.
	MimeType() string
}

// Format names an export format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
)

// Formats lists the accepted format names.
func Formats() []Format {
	return []Format{FormatJSON, FormatXLSX, FormatMarkdown}
}

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json, xlsx or md)", s)
}

// New returns the exporter for f.
func New(f Format) (Exporter, error) {
	switch f {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatXLSX:
		return NewXLSXExporter(), nil
	case FormatMarkdown:
		return NewMarkdownExporter(), nil
	}
	return nil, fmt.Errorf("unknown export format %q", f)
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures where and how files are written.
type Options struct {
	// Fs is the filesystem to write to. Default: the OS filesystem.
	Fs afero.Fs

	// OutputDir is used when no path is given. Default: "."
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		Fs:        afero.NewOsFs(),
		OutputDir: ".",
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile renders log with exporter and writes it to path. An empty
// path becomes food_log_<date><ext> in opts.OutputDir. Returns the path
// written.
func ExportToFile(log *Log, exporter Exporter, path string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if log == nil {
		return "", fmt.Errorf("export failed: log is nil")
	}

	content, err := exporter.Export(log)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if path == "" {
		dir := opts.OutputDir
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, DefaultFilename(log, exporter))
	}

	if err := util.AtomicWriteFile(opts.Fs, path, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if opts.OpenAfterExport {
		if err := openFile(path); err != nil {
			// Non-fatal: the file exists.
			fmt.Printf("Warning: Could not open file: %v\n", err)
		}
	}
	return path, nil
}

// DefaultFilename returns food_log_YYYY-MM-DD with the exporter's extension.
func DefaultFilename(log *Log, exporter Exporter) string {
	return "food_log_" + log.Date.Format("2006-01-02") + exporter.FileExtension()
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
