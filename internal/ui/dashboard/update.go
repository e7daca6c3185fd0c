// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/forgefit-tui/internal/page"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m, cmd = m.handleMouse(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ConfigChangedMsg:
		if msg.Config != nil {
			m.page.Food.SetDebounce(msg.Config.Debounce())
			m.page.Food.SetRecompute(msg.Config.Food.RecomputeTotals)
			m.replies.SetEnabled(msg.Config.UI.MarkdownReplies)
			m.status = "config reloaded"
		}

	case BootstrapErrMsg:
		log.Printf("dashboard: %v", msg.Err)
		m.status = "offline: showing an empty plan"

	case page.FoodSearchResultMsg:
		m.page.Update(msg)
		m.resultIdx = 0

	default:
		cmds = append(cmds, m.page.Update(msg))
	}

	m.pull()
	m.refreshChat()
	m.page.Dismiss.SetRegion(m.layout().search)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Alerts block everything until dismissed.
	if _, ok := m.page.Alerts.Current(); ok {
		if key.Matches(msg, m.keys.Dismiss) {
			m.page.Alerts.Dismiss()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleChat):
		m.page.Chat.Toggle()
		m.resize()
		if m.page.Chat.Open {
			return m, m.setFocus(PaneChat)
		}
		if m.focus == PaneChat {
			return m, m.setFocus(PaneWorkout)
		}
		return m, nil
	case key.Matches(msg, m.keys.NextPane):
		return m, m.setFocus(m.nextPane(1))
	case key.Matches(msg, m.keys.PrevPane):
		return m, m.setFocus(m.nextPane(-1))
	case key.Matches(msg, m.keys.PrevDay):
		m.page.Days.Step(-1)
		m.selectCard(0)
		return m, nil
	case key.Matches(msg, m.keys.NextDay):
		m.page.Days.Step(1)
		m.selectCard(0)
		return m, nil
	}

	switch m.focus {
	case PaneWorkout:
		return m.handleWorkoutKey(msg)
	case PaneSearch:
		return m.handleSearchKey(msg)
	case PaneServing:
		return m.handleServingKey(msg)
	case PaneLog:
		return m.handleLogKey(msg)
	case PaneChat:
		return m.handleChatKey(msg)
	}
	return m, nil
}

func (m Model) handleWorkoutKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.selectCard(m.cardIdx - 1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.selectCard(m.cardIdx + 1)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		card := m.currentCard()
		if card == nil {
			return m, nil
		}
		if !m.weightField {
			m.weightField = true
			return m, m.focusInputs()
		}
		m.weightField = false
		cmd := m.page.Workout.Log(card.ID)
		return m, tea.Batch(cmd, m.focusInputs())
	}

	var cmd tea.Cmd
	if m.weightField {
		m.weight, cmd = m.weight.Update(msg)
	} else {
		m.reps, cmd = m.reps.Update(msg)
	}
	m.push()
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	food := m.page.Food
	switch {
	case key.Matches(msg, m.keys.Down) && food.ResultsVisible:
		m.resultIdx = clamp(m.resultIdx+1, len(food.Results()))
		return m, nil
	case key.Matches(msg, m.keys.Up) && food.ResultsVisible:
		m.resultIdx = clamp(m.resultIdx-1, len(food.Results()))
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if !food.ResultsVisible {
			return m, nil
		}
		food.Select(m.resultIdx)
		return m, m.setFocus(PaneServing)
	case key.Matches(msg, m.keys.Close):
		food.HideResults()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	m.push()
	return m, tea.Batch(cmd, food.Search())
}

func (m Model) handleServingKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		return m, m.page.Food.Add()
	}
	var cmd tea.Cmd
	m.serving, cmd = m.serving.Update(msg)
	m.push()
	return m, cmd
}

func (m Model) handleLogKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	rows := m.page.Food.Rows
	switch {
	case key.Matches(msg, m.keys.Up):
		m.rowIdx = clamp(m.rowIdx-1, len(rows))
	case key.Matches(msg, m.keys.Down):
		m.rowIdx = clamp(m.rowIdx+1, len(rows))
	case key.Matches(msg, m.keys.Delete):
		if len(rows) == 0 {
			return m, nil
		}
		return m, m.page.Food.Delete(rows[clamp(m.rowIdx, len(rows))].ID)
	}
	return m, nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.page.Chat.Send()
	case key.Matches(msg, m.keys.PageUp):
		m.chatView.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.chatView.HalfViewDown()
		return m, nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	m.push()
	return m, cmd
}

// =============================================================================
// MOUSE
// =============================================================================

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Type != tea.MouseLeft {
		return m, nil
	}
	if _, ok := m.page.Alerts.Current(); ok {
		return m, nil
	}

	insideSearch := m.page.Dismiss.Click(msg.X, msg.Y)
	lay := m.layout()

	if pos, ok := lay.tabAt(msg.X, msg.Y); ok {
		m.page.Days.ShowTab(pos)
		m.selectCard(0)
		return m, nil
	}

	if insideSearch {
		if i := msg.Y - lay.resultsTop; m.page.Food.ResultsVisible && i >= 0 && i < len(m.page.Food.Results()) {
			m.page.Food.Select(i)
			return m, m.setFocus(PaneServing)
		}
		if m.focus != PaneSearch {
			return m, m.setFocus(PaneSearch)
		}
		return m, nil
	}

	switch {
	case lay.workout.Contains(msg.X, msg.Y):
		return m, m.setFocus(PaneWorkout)
	case lay.food.Contains(msg.X, msg.Y):
		if msg.Y >= lay.tableTop {
			return m, m.setFocus(PaneLog)
		}
		return m, m.setFocus(PaneServing)
	case lay.chat.Contains(msg.X, msg.Y):
		return m, m.setFocus(PaneChat)
	}
	return m, nil
}

// =============================================================================
// FOCUS
// =============================================================================

// setFocus moves focus to p. Leaving the search pane hides its results.
func (m *Model) setFocus(p Pane) tea.Cmd {
	if m.focus == PaneSearch && p != PaneSearch {
		m.page.Dismiss.Blur()
	}
	m.focus = p
	return m.focusInputs()
}

// focusInputs focuses the text input that belongs to the current focus.
func (m *Model) focusInputs() tea.Cmd {
	for _, ti := range []*textinput.Model{&m.reps, &m.weight, &m.search, &m.serving, &m.chatInput} {
		ti.Blur()
	}
	switch m.focus {
	case PaneWorkout:
		if m.weightField {
			return m.weight.Focus()
		}
		return m.reps.Focus()
	case PaneSearch:
		return m.search.Focus()
	case PaneServing:
		return m.serving.Focus()
	case PaneChat:
		return m.chatInput.Focus()
	}
	return nil
}

func (m Model) nextPane(delta int) Pane {
	panes := []Pane{PaneWorkout, PaneSearch, PaneServing, PaneLog}
	if m.page.Chat.Open {
		panes = append(panes, PaneChat)
	}
	cur := 0
	for i, p := range panes {
		if p == m.focus {
			cur = i
		}
	}
	n := len(panes)
	return panes[((cur+delta)%n+n)%n]
}

// selectCard moves the card selection and resets to the reps field.
func (m *Model) selectCard(i int) {
	m.cardIdx = i
	if panel := m.page.Days.Model().ActivePanel(); panel != nil {
		m.cardIdx = clamp(i, len(panel.Exercises))
	}
	m.weightField = false
	if m.focus == PaneWorkout {
		m.focusInputs()
	}
}

// =============================================================================
// CHAT VIEWPORT
// =============================================================================

func (m *Model) refreshChat() {
	m.chatView.SetContent(m.renderMessages(m.chatView.Width))
	if m.page.Chat.ScrollSeq != m.lastScroll {
		m.lastScroll = m.page.Chat.ScrollSeq
		m.chatView.GotoBottom()
	}
}
