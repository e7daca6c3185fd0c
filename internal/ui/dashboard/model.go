// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/forgefit-tui/internal/config"
	"github.com/jeranaias/forgefit-tui/internal/model"
	"github.com/jeranaias/forgefit-tui/internal/page"
	"github.com/jeranaias/forgefit-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS
// =============================================================================

// Pane identifies the focused area of the dashboard.
type Pane int

const (
	PaneWorkout Pane = iota
	PaneSearch
	PaneServing
	PaneLog
	PaneChat
)

// String returns the pane name.
func (p Pane) String() string {
	switch p {
	case PaneWorkout:
		return "workout"
	case PaneSearch:
		return "search"
	case PaneServing:
		return "serving"
	case PaneLog:
		return "log"
	case PaneChat:
		return "chat"
	default:
		return "unknown"
	}
}

// =============================================================================
// MESSAGES
// =============================================================================

// ConfigChangedMsg is sent when the config file is edited while running.
type ConfigChangedMsg struct {
	Config *config.Config
}

// BootstrapErrMsg reports that the initial page load was incomplete.
type BootstrapErrMsg struct {
	Err error
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures the dashboard.
type Options struct {
	// MarkdownReplies renders assistant replies with glamour.
	MarkdownReplies bool
	// BaseURL is shown in the status bar and prefixes the plan link.
	BaseURL string
}

// Model is the Bubble Tea model for the ForgeFit dashboard. It renders a
// page.Page and turns keys and clicks into handler calls.
type Model struct {
	page  *page.Page
	theme *styles.Theme
	keys  KeyMap
	opts  Options

	width  int
	height int

	focus       Pane
	cardIdx     int
	weightField bool
	resultIdx   int
	rowIdx      int

	reps      textinput.Model
	weight    textinput.Model
	search    textinput.Model
	serving   textinput.Model
	chatInput textinput.Model
	chatView  viewport.Model
	spinner   spinner.Model

	replies    *replyRenderer
	lastScroll int
	status     string
}

// New creates a dashboard for p.
func New(p *page.Page, theme *styles.Theme, opts Options) Model {
	if theme == nil {
		theme = styles.DefaultTheme()
	}

	newInput := func(prompt, placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Prompt = prompt
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		return ti
	}

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	m := Model{
		page:      p,
		theme:     theme,
		keys:      DefaultKeyMap(),
		opts:      opts,
		reps:      newInput("Reps: ", "8", 6),
		weight:    newInput("Weight (kg): ", "60", 8),
		search:    newInput("Search: ", "chicken breast", 100),
		serving:   newInput("Serving (g): ", "150", 8),
		chatInput: newInput("> ", "Ask your coach...", 2000),
		chatView:  viewport.New(30, 10),
		spinner:   sp,
		replies:   newReplyRenderer(opts.MarkdownReplies, theme.IsDark),
	}
	m.reps.Width = 6
	m.weight.Width = 8
	m.serving.Width = 8
	m.reps.Focus()
	m.pull()
	return m
}

// Page returns the page the dashboard drives.
func (m Model) Page() *page.Page {
	return m.page
}

// Focus returns the focused pane.
func (m Model) Focus() Pane {
	return m.focus
}

// Init starts the cursor blink and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// currentCard returns the selected card of the active day, or nil.
func (m Model) currentCard() *model.ExerciseCard {
	panel := m.page.Days.Model().ActivePanel()
	if panel == nil || len(panel.Exercises) == 0 {
		return nil
	}
	return panel.Exercises[clamp(m.cardIdx, len(panel.Exercises))]
}

// pull copies view-model state into the widgets after handlers ran.
func (m *Model) pull() {
	if panel := m.page.Days.Model().ActivePanel(); panel != nil {
		m.cardIdx = clamp(m.cardIdx, len(panel.Exercises))
	} else {
		m.cardIdx = 0
	}
	m.resultIdx = clamp(m.resultIdx, len(m.page.Food.Results()))
	m.rowIdx = clamp(m.rowIdx, len(m.page.Food.Rows))

	if card := m.currentCard(); card != nil {
		setValue(&m.reps, card.RepsInput)
		setValue(&m.weight, card.WeightInput)
	} else {
		setValue(&m.reps, "")
		setValue(&m.weight, "")
	}
	setValue(&m.search, m.page.Food.Form.Query)
	setValue(&m.serving, m.page.Food.Form.ServingG)
	setValue(&m.chatInput, m.page.Chat.Input)

	if m.focus == PaneChat && !m.page.Chat.Open {
		m.setFocus(PaneWorkout)
	}
}

// push copies the focused widget's text into the view-model.
func (m *Model) push() {
	switch m.focus {
	case PaneWorkout:
		if card := m.currentCard(); card != nil {
			card.RepsInput = m.reps.Value()
			card.WeightInput = m.weight.Value()
		}
	case PaneSearch:
		m.page.Food.Form.Query = m.search.Value()
	case PaneServing:
		m.page.Food.Form.ServingG = m.serving.Value()
	case PaneChat:
		m.page.Chat.Input = m.chatInput.Value()
	}
}

func setValue(ti *textinput.Model, v string) {
	if ti.Value() != v {
		ti.SetValue(v)
	}
}

// clamp keeps i within [0, n), returning 0 for an empty range.
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
