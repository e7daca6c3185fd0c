// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/forgefit-tui/internal/api"
	"github.com/jeranaias/forgefit-tui/internal/model"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// fakeBackend records calls and returns canned results.
type fakeBackend struct {
	mu sync.Mutex

	logReqs   []api.LogSetRequest
	logErr    error
	chats     []string
	chatReply *api.ChatResponse
	chatErr   error
	searches  []string
	results   []api.FoodResult
	searchErr error
	adds      []api.AddFoodRequest
	addEntry  *api.FoodEntry
	addErr    error
	deletes   []int
	deleteErr error
}

func (b *fakeBackend) LogSet(_ context.Context, req api.LogSetRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logReqs = append(b.logReqs, req)
	return b.logErr
}

func (b *fakeBackend) Chat(_ context.Context, message string) (*api.ChatResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chats = append(b.chats, message)
	return b.chatReply, b.chatErr
}

func (b *fakeBackend) SearchFood(_ context.Context, query string) ([]api.FoodResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.searches = append(b.searches, query)
	return b.results, b.searchErr
}

func (b *fakeBackend) AddFood(_ context.Context, req api.AddFoodRequest) (*api.FoodEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.adds = append(b.adds, req)
	return b.addEntry, b.addErr
}

func (b *fakeBackend) DeleteFood(_ context.Context, id int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deletes = append(b.deletes, id)
	return b.deleteErr
}

var (
	errApp       = &api.ClientError{Type: api.ErrTypeApplication, Message: "Exercise not found"}
	errAppBlank  = &api.ClientError{Type: api.ErrTypeApplication}
	errTransport = &api.ClientError{Type: api.ErrTypeTransport, Message: "request failed", Cause: errors.New("connection refused")}
)

func newTestPage(t *testing.T, b *fakeBackend) *Page {
	t.Helper()
	p := New(context.Background(), b, Options{Debounce: time.Millisecond})
	p.SetDays(model.NewDays([]model.DayPanel{
		{DayIndex: 0, Label: "Mon", Active: true, Exercises: []*model.ExerciseCard{model.NewExerciseCard(1, "Squat")}},
		{DayIndex: 1, Label: "Wed", Exercises: []*model.ExerciseCard{model.NewExerciseCard(2, "Bench")}},
		{DayIndex: 2, Label: "Fri", Exercises: []*model.ExerciseCard{model.NewExerciseCard(3, "Deadlift")}},
	}))
	return p
}

// run executes cmd and feeds its message back through the page, following
// up until no command remains.
func run(p *Page, cmd tea.Cmd) {
	for cmd != nil {
		cmd = p.Update(cmd())
	}
}

func alerts(p *Page) []string {
	var out []string
	for p.Alerts.Len() > 0 {
		msg, _ := p.Alerts.Current()
		out = append(out, msg)
		p.Alerts.Dismiss()
	}
	return out
}

// =============================================================================
// DAY SWITCHER
// =============================================================================

func TestShowDay_AtMostOneActive(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})

	for _, i := range []int{0, 1, 2, 7, -1} {
		p.Days.ShowDay(i)
		panels, tabs := p.Days.Model().ActiveCount()
		assert.LessOrEqual(t, panels, 1, "index %d", i)
		assert.LessOrEqual(t, tabs, 1, "index %d", i)
	}
}

func TestShowDay_SwitchLeavesOnePair(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})
	days := p.Days.Model()

	p.Days.ShowDay(1)
	p.Days.ShowDay(2)

	panels, tabs := days.ActiveCount()
	assert.Equal(t, 1, panels)
	assert.Equal(t, 1, tabs)
	assert.Equal(t, "day-2", days.ActivePanel().ID)
	assert.True(t, days.Tabs[2].Active)
}

func TestShowDay_UnknownIndexOnlyDeactivates(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})

	p.Days.ShowDay(9)

	panels, tabs := p.Days.Model().ActiveCount()
	assert.Zero(t, panels)
	assert.Zero(t, tabs)
}

func TestShowDay_TabMatchedByPosition(t *testing.T) {
	p := New(context.Background(), &fakeBackend{}, DefaultOptions())
	// Panels out of index order: day-5 sits first.
	p.SetDays(model.NewDays([]model.DayPanel{{DayIndex: 5}, {DayIndex: 0}}))

	p.Days.ShowDay(5)

	days := p.Days.Model()
	assert.True(t, days.Panels[0].Active)
	assert.True(t, days.Tabs[0].Active)
	assert.False(t, days.Tabs[1].Active)
}

func TestStep_Wraps(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})

	p.Days.Step(-1)
	assert.Equal(t, "day-2", p.Days.Model().ActivePanel().ID)
	p.Days.Step(1)
	assert.Equal(t, "day-0", p.Days.Model().ActivePanel().ID)
}

// =============================================================================
// WORKOUT LOGGER
// =============================================================================

func TestLog_EmptyInputAlertsWithoutRequest(t *testing.T) {
	tests := []struct {
		name, reps, weight string
	}{
		{"both empty", "", ""},
		{"reps empty", "", "60"},
		{"weight empty", "8", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &fakeBackend{}
			p := newTestPage(t, b)
			card := p.Days.Model().Card(1)
			card.RepsInput, card.WeightInput = tc.reps, tc.weight

			cmd := p.Workout.Log(1)

			assert.Nil(t, cmd)
			assert.Empty(t, b.logReqs)
			assert.Equal(t, []string{AlertMissingSet}, alerts(p))
		})
	}
}

func TestLog_BadgeCreatedOnce(t *testing.T) {
	b := &fakeBackend{}
	p := newTestPage(t, b)
	card := p.Days.Model().Card(1)
	card.RepsInput, card.WeightInput = "5", "100"

	run(p, p.Workout.Log(1))
	run(p, p.Workout.Log(1))

	require.Len(t, b.logReqs, 2)
	assert.True(t, card.Logged)
	assert.Equal(t, model.ButtonUpdate, card.ButtonLabel)
	assert.Zero(t, p.Alerts.Len())
}

func TestLog_ParsesLikeForms(t *testing.T) {
	b := &fakeBackend{}
	p := newTestPage(t, b)
	card := p.Days.Model().Card(2)
	card.RepsInput, card.WeightInput = "8 reps", "abc"

	run(p, p.Workout.Log(2))

	require.Len(t, b.logReqs, 1)
	req := b.logReqs[0]
	assert.Equal(t, 2, req.ExerciseID)
	require.NotNil(t, req.ActualReps)
	assert.Equal(t, 8, *req.ActualReps)
	assert.Nil(t, req.ActualWeightKg)
}

func TestLog_Failures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", errApp, "Exercise not found"},
		{"blank server message", errAppBlank, AlertLogFailed},
		{"transport", errTransport, AlertLogUnreachable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPage(t, &fakeBackend{logErr: tc.err})
			card := p.Days.Model().Card(3)
			card.RepsInput, card.WeightInput = "3", "140"

			run(p, p.Workout.Log(3))

			assert.Equal(t, []string{tc.want}, alerts(p))
			assert.False(t, card.Logged)
			assert.Equal(t, model.ButtonLog, card.ButtonLabel)
		})
	}
}

// =============================================================================
// CHAT SIDEBAR
// =============================================================================

func TestToggle(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})
	p.Chat.Toggle()
	assert.True(t, p.Chat.Open)
	p.Chat.Toggle()
	assert.False(t, p.Chat.Open)
}

func TestSend_BlankIsNoop(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		b := &fakeBackend{}
		p := newTestPage(t, b)
		p.Chat.Input = input

		assert.Nil(t, p.Chat.Send())
		assert.Empty(t, p.Chat.Messages)
		assert.Empty(t, b.chats)
	}
}

func TestSend_PlaceholderThenUserInput(t *testing.T) {
	b := &fakeBackend{chatReply: &api.ChatResponse{Reply: "ok"}}
	p := newTestPage(t, b)
	p.Chat.Input = "  swap squats for lunges  "

	cmd := p.Chat.Send()
	require.NotNil(t, cmd)

	require.Len(t, p.Chat.Messages, 2)
	assert.Equal(t, model.ChatRoleUser, p.Chat.Messages[0].Role)
	assert.Equal(t, "swap squats for lunges", p.Chat.Messages[0].Text)
	assert.Equal(t, model.ChatRoleTyping, p.Chat.Messages[1].Role)
	assert.Equal(t, model.TypingText, p.Chat.Messages[1].Text)
	assert.Empty(t, p.Chat.Input)
	assert.Equal(t, 2, p.Chat.ScrollSeq)
	assert.True(t, p.Chat.Pending())

	run(p, cmd)
	assert.Equal(t, []string{"swap squats for lunges"}, b.chats)
	assert.Equal(t, 3, p.Chat.ScrollSeq)
}

func TestSend_PlaceholderReplacedByOneTerminal(t *testing.T) {
	tests := []struct {
		name     string
		reply    *api.ChatResponse
		err      error
		wantRole model.ChatRole
		wantText string
		notice   bool
	}{
		{"reply", &api.ChatResponse{Reply: "Sure."}, nil, model.ChatRoleAssistant, "Sure.", false},
		{"plan updated", &api.ChatResponse{Reply: "Done.", PlanUpdated: true}, nil, model.ChatRoleAssistant, "Done.", true},
		{"server error", nil, &api.ClientError{Type: api.ErrTypeApplication, Message: "Empty message"}, model.ChatRoleError, "Error: Empty message", false},
		{"transport", nil, errTransport, model.ChatRoleError, ChatUnreachable, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPage(t, &fakeBackend{chatReply: tc.reply, chatErr: tc.err})
			p.Chat.Input = "hi"

			run(p, p.Chat.Send())

			assert.False(t, p.Chat.Pending())
			terminals := 0
			for _, m := range p.Chat.Messages {
				assert.NotEqual(t, model.ChatRoleTyping, m.Role)
				if m.IsTerminal() {
					terminals++
				}
			}
			assert.Equal(t, 1, terminals)

			term := p.Chat.Messages[1]
			assert.Equal(t, tc.wantRole, term.Role)
			assert.Equal(t, tc.wantText, term.Text)

			if tc.notice {
				require.Len(t, p.Chat.Messages, 3)
				assert.Equal(t, model.ChatRoleNotice, p.Chat.Messages[2].Role)
				assert.Equal(t, PlanLink, p.Chat.Messages[2].Link)
			} else {
				assert.Len(t, p.Chat.Messages, 2)
			}
		})
	}
}

func TestSend_InterleavedSendsKeepOwnPlaceholders(t *testing.T) {
	p := newTestPage(t, &fakeBackend{chatReply: &api.ChatResponse{Reply: "ok"}})

	p.Chat.Input = "first"
	first := p.Chat.Send()
	p.Chat.Input = "second"
	second := p.Chat.Send()
	require.Len(t, p.Chat.Messages, 4)

	run(p, second)
	assert.True(t, p.Chat.Pending())
	run(p, first)
	assert.False(t, p.Chat.Pending())
	assert.Len(t, p.Chat.Messages, 4)
}

// =============================================================================
// FOOD SEARCH
// =============================================================================

func TestSearch_DebounceFiresOnlyFinalQuery(t *testing.T) {
	b := &fakeBackend{results: []api.FoodResult{{Name: "Chicken breast", Cal100g: 165}}}
	p := newTestPage(t, b)

	p.Food.Form.Query = "chicken"
	first := p.Food.Search()
	p.Food.Form.Query = "chickens"
	second := p.Food.Search()

	run(p, first)
	assert.Empty(t, b.searches, "superseded search must not fire")

	run(p, second)
	assert.Equal(t, []string{"chickens"}, b.searches)
	assert.True(t, p.Food.ResultsVisible)
	assert.Equal(t, []string{"Chicken breast - 165 kcal/100g"}, p.Food.ResultLines())
}

func TestSearch_DebounceWaits(t *testing.T) {
	b := &fakeBackend{}
	p := newTestPage(t, b)
	p.Food.SetDebounce(30 * time.Millisecond)
	p.Food.Form.Query = "oats"

	start := time.Now()
	msg := p.Food.Search()()
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.IsType(t, FoodSearchFireMsg{}, msg)
}

func TestSearch_EmptyQueryHidesWithoutCancelling(t *testing.T) {
	b := &fakeBackend{results: []api.FoodResult{{Name: "Rice"}}}
	p := newTestPage(t, b)
	p.Food.ResultsVisible = true

	p.Food.Form.Query = "rice"
	pending := p.Food.Search()
	p.Food.Form.Query = "   "
	assert.Nil(t, p.Food.Search())
	assert.False(t, p.Food.ResultsVisible)

	// The earlier search still fires.
	run(p, pending)
	assert.Equal(t, []string{"rice"}, b.searches)
	assert.True(t, p.Food.ResultsVisible)
}

func TestSearchResult_EmptyAndFailureHide(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})
	p.Food.ResultsVisible = true

	p.Update(FoodSearchResultMsg{Query: "x", Results: nil})
	assert.False(t, p.Food.ResultsVisible)

	p.Food.ResultsVisible = true
	p.Update(FoodSearchResultMsg{Query: "x", Err: errTransport})
	assert.False(t, p.Food.ResultsVisible)
	assert.Zero(t, p.Alerts.Len())
}

func TestSearchResult_LastResponseWins(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})

	p.Update(FoodSearchResultMsg{Query: "chickens", Results: []api.FoodResult{{Name: "New"}}})
	p.Update(FoodSearchResultMsg{Query: "chicken", Results: []api.FoodResult{{Name: "Old"}}})

	require.Len(t, p.Food.Results(), 1)
	assert.Equal(t, "Old", p.Food.Results()[0].Name)
}

func TestSelect(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})
	p.Update(FoodSearchResultMsg{Results: []api.FoodResult{
		{Name: "Oats", Cal100g: 389, Protein100g: 16.9, Carbs100g: 66.3, Fat100g: 6.9},
	}})

	p.Food.Select(0)

	f := p.Food.Form
	assert.Equal(t, "Oats", f.Name)
	assert.Equal(t, "389", f.Cal100g)
	assert.Equal(t, "16.9", f.Protein100g)
	assert.Equal(t, "66.3", f.Carbs100g)
	assert.Equal(t, "6.9", f.Fat100g)
	assert.False(t, p.Food.ResultsVisible)
}

func TestSelect_OutOfRangeIsNoop(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})
	p.Update(FoodSearchResultMsg{Results: []api.FoodResult{{Name: "Oats"}}})
	p.Food.Form = model.FoodForm{Query: "oa", Name: "Prev", Cal100g: "1", ServingG: "50"}
	before := p.Food.Form

	for _, i := range []int{-1, 1, 99} {
		p.Food.Select(i)
		assert.Equal(t, before, p.Food.Form)
		assert.True(t, p.Food.ResultsVisible)
	}
}

// =============================================================================
// FOOD LOG AND TOTALS
// =============================================================================

func selectChicken(p *Page) {
	p.Food.Form = model.FoodForm{Name: "Chicken", Cal100g: "100", Protein100g: "10", ServingG: "200"}
}

func TestAdd_ValidationAlerts(t *testing.T) {
	tests := []struct {
		name string
		form model.FoodForm
	}{
		{"no selection", model.FoodForm{ServingG: "100"}},
		{"no serving", model.FoodForm{Name: "Rice"}},
		{"zero serving", model.FoodForm{Name: "Rice", ServingG: "0"}},
		{"negative serving", model.FoodForm{Name: "Rice", ServingG: "-5"}},
		{"garbage serving", model.FoodForm{Name: "Rice", ServingG: "lots"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &fakeBackend{}
			p := newTestPage(t, b)
			p.Food.Form = tc.form

			assert.Nil(t, p.Food.Add())
			assert.Empty(t, b.adds)
			assert.Equal(t, []string{AlertSelectFood}, alerts(p))
		})
	}
}

func TestAdd_OverflowingServingReachesServer(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success": false, "error": "Invalid numeric values"}`)
	}))
	defer srv.Close()

	client, err := api.NewClientWithConfig(&api.ClientConfig{BaseURL: srv.URL, RatePerSec: 1000, RateBurst: 100})
	require.NoError(t, err)
	p := New(context.Background(), client, DefaultOptions())
	p.Food.Form = model.FoodForm{Name: "Oats", Cal100g: "389", ServingG: "1e400"}

	cmd := p.Food.Add()
	require.NotNil(t, cmd)
	run(p, cmd)

	require.NotNil(t, body)
	assert.Nil(t, body["serving_g"])
	assert.Contains(t, body, "serving_g")
	assert.Equal(t, []string{"Invalid numeric values"}, alerts(p))
	assert.Empty(t, p.Food.Rows)
}

func TestAdd_MissingMacrosDefaultToZero(t *testing.T) {
	b := &fakeBackend{addEntry: &api.FoodEntry{ID: 1, FoodName: "Mystery", ServingG: 50}}
	p := newTestPage(t, b)
	p.Food.Form = model.FoodForm{Name: "Mystery", Cal100g: "", Protein100g: "x", ServingG: "50"}

	run(p, p.Food.Add())

	require.Len(t, b.adds, 1)
	assert.Equal(t, api.AddFoodRequest{FoodName: "Mystery", ServingG: 50}, b.adds[0])
}

func TestAdd_IncrementsTotalsExactly(t *testing.T) {
	b := &fakeBackend{addEntry: &api.FoodEntry{
		ID: 42, FoodName: "Chicken", ServingG: 200,
		Calories: 200, ProteinG: 20, CarbsG: 10, FatG: 5,
	}}
	p := newTestPage(t, b)
	p.Food.Load([]model.FoodRow{{ID: 1, FoodName: "Rice", Calories: "500", Protein: "40g", Carbs: "50g", Fat: "10g"}},
		model.Totals{Calories: 500, Protein: 40, Carbs: 50, Fat: 10})
	selectChicken(p)

	run(p, p.Food.Add())

	assert.Equal(t, model.Totals{Calories: 700, Protein: 60, Carbs: 60, Fat: 15}, p.Food.Totals)
	require.Len(t, p.Food.Rows, 2)
	row := p.Food.Rows[1]
	assert.Equal(t, "food-row-42", row.Key())
	assert.Equal(t, "200g", row.Serving)
	assert.Equal(t, "200", row.Calories)
	assert.Equal(t, "20g", row.Protein)
	assert.Equal(t, model.FoodForm{}, p.Food.Form)
}

func TestAdd_FirstEntryRevealsTable(t *testing.T) {
	p := newTestPage(t, &fakeBackend{addEntry: &api.FoodEntry{ID: 1, FoodName: "Chicken", ServingG: 200, Calories: 200}})
	require.True(t, p.Food.EmptyStateVisible())
	selectChicken(p)

	run(p, p.Food.Add())

	assert.True(t, p.Food.TableVisible())
	assert.False(t, p.Food.EmptyStateVisible())
}

func TestAdd_Failure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &api.ClientError{Type: api.ErrTypeApplication, Message: "Missing fields"}, "Missing fields"},
		{"transport", errTransport, AlertAddFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPage(t, &fakeBackend{addErr: tc.err})
			selectChicken(p)
			form := p.Food.Form

			run(p, p.Food.Add())

			assert.Equal(t, []string{tc.want}, alerts(p))
			assert.Empty(t, p.Food.Rows)
			assert.Equal(t, form, p.Food.Form)
		})
	}
}

func TestDelete_RestoresTotals(t *testing.T) {
	b := &fakeBackend{addEntry: &api.FoodEntry{
		ID: 42, FoodName: "Chicken", ServingG: 200,
		Calories: 200, ProteinG: 20, CarbsG: 10, FatG: 5,
	}}
	p := newTestPage(t, b)
	start := model.Totals{Calories: 500, Protein: 40, Carbs: 50, Fat: 10}
	p.Food.Load([]model.FoodRow{{ID: 1, Calories: "500", Protein: "40g", Carbs: "50g", Fat: "10g"}}, start)
	selectChicken(p)
	run(p, p.Food.Add())

	run(p, p.Food.Delete(42))

	assert.Equal(t, []int{42}, b.deletes)
	assert.Equal(t, start, p.Food.Totals)
	assert.Equal(t, -1, p.Food.RowIndex(42))
}

func TestDelete_DriftStaysWithinRoundingUnit(t *testing.T) {
	b := &fakeBackend{}
	p := newTestPage(t, b)
	start := model.Totals{Calories: 500, Protein: 40, Carbs: 50, Fat: 10}
	p.Food.Load(nil, start)

	// Values with more precision than the display shows.
	for i := 1; i <= 20; i++ {
		b.addEntry = &api.FoodEntry{ID: i, ServingG: 33.3, Calories: 123.45, ProteinG: 7.25, CarbsG: 3.35, FatG: 1.05}
		p.Food.Form = model.FoodForm{Name: "x", ServingG: "33.3"}
		run(p, p.Food.Add())
		run(p, p.Food.Delete(i))

		assert.InDelta(t, start.Calories, p.Food.Totals.Calories, 0.1+1e-9)
		assert.InDelta(t, start.Protein, p.Food.Totals.Protein, 0.1+1e-9)
		assert.InDelta(t, start.Carbs, p.Food.Totals.Carbs, 0.1+1e-9)
		assert.InDelta(t, start.Fat, p.Food.Totals.Fat, 0.1+1e-9)
		p.Food.Totals = start
	}
}

func TestDelete_LastRowShowsEmptyState(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})
	p.Food.Load([]model.FoodRow{{ID: 7, Calories: "100", Protein: "1g", Carbs: "2g", Fat: "3g"}},
		model.Totals{Calories: 100, Protein: 1, Carbs: 2, Fat: 3})

	run(p, p.Food.Delete(7))

	assert.True(t, p.Food.EmptyStateVisible())
	assert.False(t, p.Food.TableVisible())
	assert.Equal(t, model.Totals{}, p.Food.Totals)
}

func TestDelete_UnknownRowLeavesTotals(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})
	totals := model.Totals{Calories: 100}
	p.Food.Load([]model.FoodRow{{ID: 7, Calories: "100"}}, totals)

	run(p, p.Food.Delete(8))

	assert.Len(t, p.Food.Rows, 1)
	assert.Equal(t, totals, p.Food.Totals)
}

func TestDelete_Failure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"forbidden", &api.ClientError{Type: api.ErrTypeApplication, Message: "Forbidden"}, "Forbidden"},
		{"not found page", errTransport, AlertDeleteFailed},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPage(t, &fakeBackend{deleteErr: tc.err})
			p.Food.Load([]model.FoodRow{{ID: 7, Calories: "100"}}, model.Totals{Calories: 100})

			run(p, p.Food.Delete(7))

			assert.Equal(t, []string{tc.want}, alerts(p))
			assert.Len(t, p.Food.Rows, 1)
			assert.Equal(t, 100.0, p.Food.Totals.Calories)
		})
	}
}

func TestRecomputeTotals(t *testing.T) {
	b := &fakeBackend{}
	p := New(context.Background(), b, Options{Debounce: time.Millisecond, RecomputeTotals: true})
	// Stale server totals are corrected on the first change.
	p.Food.Load([]model.FoodRow{{ID: 1, Calories: "100", Protein: "10g", Carbs: "0g", Fat: "1.5g"}},
		model.Totals{Calories: 999})

	b.addEntry = &api.FoodEntry{ID: 2, Calories: 50.5, ProteinG: 1, CarbsG: 2, FatG: 0.5}
	p.Food.Form = model.FoodForm{Name: "x", ServingG: "10"}
	run(p, p.Food.Add())
	assert.Equal(t, model.Totals{Calories: 150.5, Protein: 11, Carbs: 2, Fat: 2}, p.Food.Totals)

	run(p, p.Food.Delete(1))
	assert.Equal(t, model.Totals{Calories: 50.5, Protein: 1, Carbs: 2, Fat: 0.5}, p.Food.Totals)
	assert.False(t, math.IsNaN(p.Food.Totals.Calories))
}

// =============================================================================
// OUTSIDE CLICK
// =============================================================================

func TestDismiss_ClickOutsideHides(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})
	p.Dismiss.SetRegion(Rect{X: 10, Y: 5, W: 20, H: 8})

	p.Food.ResultsVisible = true
	assert.True(t, p.Dismiss.Click(15, 6))
	assert.True(t, p.Food.ResultsVisible)

	assert.False(t, p.Dismiss.Click(0, 0))
	assert.False(t, p.Food.ResultsVisible)

	p.Food.ResultsVisible = true
	assert.False(t, p.Dismiss.Click(30, 6), "right edge is exclusive")
	assert.False(t, p.Food.ResultsVisible)
}

func TestDismiss_Blur(t *testing.T) {
	p := newTestPage(t, &fakeBackend{})
	p.Food.ResultsVisible = true
	p.Dismiss.Blur()
	assert.False(t, p.Food.ResultsVisible)
}

// =============================================================================
// ALERTS
// =============================================================================

func TestAlertQueue(t *testing.T) {
	var q AlertQueue
	_, ok := q.Current()
	assert.False(t, ok)

	q.Alert("a")
	q.Alert("b")
	msg, ok := q.Current()
	require.True(t, ok)
	assert.Equal(t, "a", msg)

	q.Dismiss()
	msg, _ = q.Current()
	assert.Equal(t, "b", msg)
	q.Dismiss()
	q.Dismiss()
	assert.Zero(t, q.Len())
}
