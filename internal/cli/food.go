// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/jeranaias/forgefit-tui/internal/export"
	"github.com/jeranaias/forgefit-tui/internal/page"
	"github.com/jeranaias/forgefit-tui/internal/util"
)

// FoodExportOptions configures "food export".
type FoodExportOptions struct {
	Format string
	Out    string
	Open   bool
	Fs     afero.Fs
}

// HandleFoodExport fetches today's food log and writes it in the requested
// format. Returns the path written.
func HandleFoodExport(ctx context.Context, fetcher page.PageFetcher, w io.Writer, opts FoodExportOptions) (string, error) {
	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		var names []string
		for _, f := range export.Formats() {
			names = append(names, string(f))
		}
		return "", ErrUnsupportedFormat(opts.Format, names)
	}
	exp, err := export.New(format)
	if err != nil {
		return "", err
	}

	body, err := fetcher.FetchPage(ctx, page.FoodLogPath)
	if err != nil {
		return "", NewCommandError("food export", "fetch log", "could not load the food log", err)
	}
	log, err := page.ScrapeFoodLog(bytes.NewReader(body))
	if err != nil {
		return "", NewCommandError("food export", "parse log", "unexpected page content", err)
	}

	path, err := export.ExportToFile(export.NewLog(log.Rows, log.Totals), exp, opts.Out, &export.Options{
		Fs:              opts.Fs,
		OutputDir:       ".",
		OpenAfterExport: opts.Open,
	})
	if err != nil {
		return "", NewCommandError("food export", "write", "could not write the file", err)
	}

	fmt.Fprintf(w, "%s Exported %d entries to %s\n", SuccessStyle.Render("[OK]"), len(log.Rows), path)
	return path, nil
}

// HandleFoodSearch runs one search and prints the results the way the
// dashboard lists them.
func HandleFoodSearch(ctx context.Context, backend page.Backend, w io.Writer, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return &UsageError{Field: "query", Reason: "must not be empty", Example: `forgefit food search "greek yogurt"`}
	}

	results, err := backend.SearchFood(ctx, query)
	if err != nil {
		return NewCommandError("food search", "search", "search failed", err)
	}
	if len(results) == 0 {
		fmt.Fprintln(w, DimStyle.Render("No matches."))
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(w, "%s %s kcal/100g  %s\n",
			ValueStyle.Render(r.Name),
			util.FormatNumber(r.Cal100g),
			DimStyle.Render(fmt.Sprintf("P %sg  C %sg  F %sg",
				util.FormatNumber(r.Protein100g),
				util.FormatNumber(r.Carbs100g),
				util.FormatNumber(r.Fat100g))))
	}
	return nil
}
