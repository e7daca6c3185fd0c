// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/forgefit-tui/internal/api"
	"github.com/jeranaias/forgefit-tui/internal/model"
	"github.com/jeranaias/forgefit-tui/internal/util"
)

// Food alert texts.
const (
	AlertSelectFood   = "Please select a food and enter a serving size."
	AlertAddFailed    = "Failed to add food."
	AlertDeleteFailed = "Failed to delete entry."
)

// =============================================================================
// MESSAGES
// =============================================================================

// FoodSearchFireMsg is delivered when a debounce period ends.
type FoodSearchFireMsg struct {
	Gen   uint64
	Query string
}

// FoodSearchResultMsg carries the result of a search request.
type FoodSearchResultMsg struct {
	Query   string
	Results []api.FoodResult
	Err     error
}

// FoodAddedMsg carries the result of an add request.
type FoodAddedMsg struct {
	Entry *api.FoodEntry
	Err   error
}

// FoodDeletedMsg carries the result of a delete request.
type FoodDeletedMsg struct {
	ID  int
	Err error
}

// =============================================================================
// FOOD TRACKER
// =============================================================================

// FoodTracker is the food search box, the selection form, the nutrition log
// table and its running totals.
type FoodTracker struct {
	ctx       context.Context
	backend   Backend
	alert     Alerter
	debounce  time.Duration
	recompute bool

	// gen identifies the latest scheduled search; older fires are dropped.
	gen uint64
	// results is the last successful search, in rendered order.
	results []model.FoodResult

	Form           model.FoodForm
	ResultsVisible bool
	Rows           []model.FoodRow
	Totals         model.Totals
}

func newFoodTracker(ctx context.Context, backend Backend, alert Alerter, opts Options) *FoodTracker {
	return &FoodTracker{
		ctx:       ctx,
		backend:   backend,
		alert:     alert,
		debounce:  opts.Debounce,
		recompute: opts.RecomputeTotals,
	}
}

// Load replaces the log rows and totals, as rendered by the server.
func (f *FoodTracker) Load(rows []model.FoodRow, totals model.Totals) {
	f.Rows = append([]model.FoodRow(nil), rows...)
	f.Totals = totals
}

// SetDebounce changes the search quiet period for searches scheduled from
// now on.
func (f *FoodTracker) SetDebounce(d time.Duration) {
	f.debounce = d
}

// SetRecompute switches between incremental and recomputed totals.
func (f *FoodTracker) SetRecompute(on bool) {
	f.recompute = on
}

// TableVisible reports whether the log table is shown.
func (f *FoodTracker) TableVisible() bool {
	return len(f.Rows) > 0
}

// EmptyStateVisible reports whether the "nothing logged" placeholder is shown.
func (f *FoodTracker) EmptyStateVisible() bool {
	return len(f.Rows) == 0
}

// HideResults hides the search results panel.
func (f *FoodTracker) HideResults() {
	f.ResultsVisible = false
}

// Results returns the cached search results.
func (f *FoodTracker) Results() []model.FoodResult {
	return f.results
}

// ResultLines renders each cached result as "name - N kcal/100g".
func (f *FoodTracker) ResultLines() []string {
	lines := make([]string, len(f.results))
	for i, r := range f.results {
		lines[i] = r.Name + " - " + util.FormatNumber(r.Cal100g) + " kcal/100g"
	}
	return lines
}

// -----------------------------------------------------------------------------
// Search
// -----------------------------------------------------------------------------

// Search schedules a search for the trimmed query after the debounce period,
// superseding any search still waiting to fire. An empty query hides the
// results at once and leaves a pending search alone.
func (f *FoodTracker) Search() tea.Cmd {
	q := strings.TrimSpace(f.Form.Query)
	if q == "" {
		f.ResultsVisible = false
		return nil
	}

	f.gen++
	gen := f.gen
	return tea.Tick(f.debounce, func(time.Time) tea.Msg {
		return FoodSearchFireMsg{Gen: gen, Query: q}
	})
}

// ApplyFire issues the request for a fire that is still current. An
// in-flight request is never cancelled; the last response to arrive wins.
func (f *FoodTracker) ApplyFire(msg FoodSearchFireMsg) tea.Cmd {
	if msg.Gen != f.gen {
		return nil
	}
	ctx, backend, q := f.ctx, f.backend, msg.Query
	return func() tea.Msg {
		results, err := backend.SearchFood(ctx, q)
		return FoodSearchResultMsg{Query: q, Results: results, Err: err}
	}
}

// ApplySearchResult replaces the cached results. Failures hide the panel
// without an alert.
func (f *FoodTracker) ApplySearchResult(msg FoodSearchResultMsg) {
	if msg.Err != nil {
		f.ResultsVisible = false
		return
	}
	f.results = make([]model.FoodResult, len(msg.Results))
	for i, r := range msg.Results {
		f.results[i] = model.FoodResult{
			Name:        r.Name,
			Cal100g:     r.Cal100g,
			Protein100g: r.Protein100g,
			Carbs100g:   r.Carbs100g,
			Fat100g:     r.Fat100g,
		}
	}
	f.ResultsVisible = len(f.results) > 0
}

// Select copies result i into the form and hides the results. An index
// outside the cached list does nothing.
func (f *FoodTracker) Select(i int) {
	if i < 0 || i >= len(f.results) {
		return
	}
	r := f.results[i]
	f.Form.Query = r.Name
	f.Form.Name = r.Name
	f.Form.Cal100g = formatField(r.Cal100g)
	f.Form.Protein100g = formatField(r.Protein100g)
	f.Form.Carbs100g = formatField(r.Carbs100g)
	f.Form.Fat100g = formatField(r.Fat100g)
	f.ResultsVisible = false
}

func formatField(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// -----------------------------------------------------------------------------
// Add and delete
// -----------------------------------------------------------------------------

// Add logs a serving of the selected food. It alerts and returns nil when no
// food is selected or the serving is not a positive number. A serving too
// large to represent goes out as null and the server rejects it.
func (f *FoodTracker) Add() tea.Cmd {
	serving := util.ParseFloatPrefix(f.Form.ServingG)
	if f.Form.Name == "" || !(serving > 0) {
		f.alert.Alert(AlertSelectFood)
		return nil
	}

	req := api.AddFoodRequest{
		FoodName:    f.Form.Name,
		ServingG:    serving,
		Cal100g:     util.FloatOrZero(f.Form.Cal100g),
		Protein100g: util.FloatOrZero(f.Form.Protein100g),
		Carbs100g:   util.FloatOrZero(f.Form.Carbs100g),
		Fat100g:     util.FloatOrZero(f.Form.Fat100g),
	}

	ctx, backend := f.ctx, f.backend
	return func() tea.Msg {
		entry, err := backend.AddFood(ctx, req)
		return FoodAddedMsg{Entry: entry, Err: err}
	}
}

// ApplyAdded appends the server's entry, bumps the totals by its values and
// clears the form.
func (f *FoodTracker) ApplyAdded(msg FoodAddedMsg) {
	if msg.Err != nil || msg.Entry == nil {
		f.alert.Alert(api.ServerMessage(msg.Err, AlertAddFailed))
		return
	}

	e := msg.Entry
	f.Rows = append(f.Rows, model.FoodRow{
		ID:       e.ID,
		FoodName: e.FoodName,
		Serving:  util.FormatGrams(e.ServingG),
		Calories: util.FormatNumber(e.Calories),
		Protein:  util.FormatNumber(e.ProteinG) + "g",
		Carbs:    util.FormatNumber(e.CarbsG) + "g",
		Fat:      util.FormatNumber(e.FatG) + "g",
	})
	f.Totals.Add(model.Totals{
		Calories: e.Calories,
		Protein:  e.ProteinG,
		Carbs:    e.CarbsG,
		Fat:      e.FatG,
	})
	if f.recompute {
		f.recomputeTotals()
	}
	f.Form.Clear()
}

// Delete removes log entry id on the server.
func (f *FoodTracker) Delete(id int) tea.Cmd {
	ctx, backend := f.ctx, f.backend
	return func() tea.Msg {
		return FoodDeletedMsg{ID: id, Err: backend.DeleteFood(ctx, id)}
	}
}

// ApplyDeleted removes the row and takes its displayed values off the
// totals. The values are read back from the rendered cells, so totals can
// drift by the display rounding over many cycles.
func (f *FoodTracker) ApplyDeleted(msg FoodDeletedMsg) {
	if msg.Err != nil {
		f.alert.Alert(api.ServerMessage(msg.Err, AlertDeleteFailed))
		return
	}

	for i, row := range f.Rows {
		if row.ID != msg.ID {
			continue
		}
		f.Totals.Sub(rowValues(row))
		f.Rows = append(f.Rows[:i], f.Rows[i+1:]...)
		break
	}
	if f.recompute {
		f.recomputeTotals()
	}
}

func rowValues(row model.FoodRow) model.Totals {
	return model.Totals{
		Calories: util.FloatOrZero(row.Calories),
		Protein:  util.FloatOrZero(row.Protein),
		Carbs:    util.FloatOrZero(row.Carbs),
		Fat:      util.FloatOrZero(row.Fat),
	}
}

func (f *FoodTracker) recomputeTotals() {
	var t model.Totals
	for _, row := range f.Rows {
		t.Add(rowValues(row))
	}
	f.Totals = t
}

// RowIndex returns the position of row id, or -1.
func (f *FoodTracker) RowIndex(id int) int {
	for i, row := range f.Rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}
