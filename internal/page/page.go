// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/forgefit-tui/internal/api"
	"github.com/jeranaias/forgefit-tui/internal/model"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Backend is the subset of *api.Client the handlers call.
type Backend interface {
	LogSet(ctx context.Context, req api.LogSetRequest) error
	Chat(ctx context.Context, message string) (*api.ChatResponse, error)
	SearchFood(ctx context.Context, query string) ([]api.FoodResult, error)
	AddFood(ctx context.Context, req api.AddFoodRequest) (*api.FoodEntry, error)
	DeleteFood(ctx context.Context, id int) error
}

// Alerter shows a blocking message that the user must dismiss.
type Alerter interface {
	Alert(msg string)
}

// AlertQueue is the default Alerter. Alerts are shown one at a time, oldest
// first.
type AlertQueue struct {
	pending []string
}

// Alert queues msg.
func (q *AlertQueue) Alert(msg string) {
	q.pending = append(q.pending, msg)
}

// Current returns the alert on screen, if any.
func (q *AlertQueue) Current() (string, bool) {
	if len(q.pending) == 0 {
		return "", false
	}
	return q.pending[0], true
}

// Dismiss drops the alert on screen.
func (q *AlertQueue) Dismiss() {
	if len(q.pending) > 0 {
		q.pending = q.pending[1:]
	}
}

// Len returns the number of queued alerts.
func (q *AlertQueue) Len() int {
	return len(q.pending)
}

// =============================================================================
// PAGE
// =============================================================================

// Options tunes handler behaviour.
type Options struct {
	// Debounce is the food search quiet period.
	Debounce time.Duration
	// RecomputeTotals re-sums nutrition totals from the rows after every
	// add and delete instead of applying increments.
	RecomputeTotals bool
}

// DefaultOptions returns the stock options.
func DefaultOptions() Options {
	return Options{Debounce: 300 * time.Millisecond}
}

// Page owns the view-model and the five handlers that mutate it. All methods
// must be called from the UI goroutine.
type Page struct {
	Days    *DaySwitcher
	Workout *WorkoutLogger
	Chat    *ChatSidebar
	Food    *FoodTracker
	Dismiss *Dismisser
	Alerts  *AlertQueue
}

// New builds an empty page. ctx bounds every request issued by the handlers.
func New(ctx context.Context, backend Backend, opts Options) *Page {
	alerts := &AlertQueue{}
	days := model.NewDays(nil)

	p := &Page{
		Days:    &DaySwitcher{days: days},
		Workout: &WorkoutLogger{ctx: ctx, backend: backend, alert: alerts, days: days},
		Chat:    &ChatSidebar{ctx: ctx, backend: backend},
		Food:    newFoodTracker(ctx, backend, alerts, opts),
		Alerts:  alerts,
	}
	p.Dismiss = &Dismisser{food: p.Food}
	return p
}

// SetDays replaces the workout plan shown by the page.
func (p *Page) SetDays(days *model.Days) {
	if days == nil {
		days = model.NewDays(nil)
	}
	p.Days.days = days
	p.Workout.days = days
}

// Update routes handler result messages to their Apply methods. It returns
// a follow-up command, if any. Messages it does not know are ignored.
func (p *Page) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case WorkoutLoggedMsg:
		p.Workout.ApplyLogged(msg)
	case ChatReplyMsg:
		p.Chat.ApplyReply(msg)
	case FoodSearchFireMsg:
		return p.Food.ApplyFire(msg)
	case FoodSearchResultMsg:
		p.Food.ApplySearchResult(msg)
	case FoodAddedMsg:
		p.Food.ApplyAdded(msg)
	case FoodDeletedMsg:
		p.Food.ApplyDeleted(msg)
	}
	return nil
}
