// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/forgefit-tui/internal/model"
	"github.com/jeranaias/forgefit-tui/internal/page"
	"github.com/jeranaias/forgefit-tui/internal/util"
)

const brand = "ForgeFit"

// =============================================================================
// LAYOUT
// =============================================================================

type span struct{ x0, x1 int }

// layout is the screen geometry of the current frame. View and the mouse
// handler both derive positions from it.
type layout struct {
	workout page.Rect
	food    page.Rect
	chat    page.Rect

	// search is the food search container: title, box and results.
	search     page.Rect
	resultsTop int
	tableTop   int

	tabs []span
}

func (l layout) tabAt(x, y int) (int, bool) {
	if y != 0 {
		return 0, false
	}
	for i, s := range l.tabs {
		if x >= s.x0 && x < s.x1 {
			return i, true
		}
	}
	return 0, false
}

func (m Model) layout() layout {
	var l layout

	const bodyY = 1
	bodyH := m.height - 2
	if bodyH < 3 {
		bodyH = 3
	}

	chatW := 0
	if m.page.Chat.Open {
		chatW = m.width / 3
		if chatW < 30 {
			chatW = 30
		}
		if chatW > m.width/2 {
			chatW = m.width / 2
		}
	}
	rest := m.width - chatW
	workW := rest / 2

	l.workout = page.Rect{X: 0, Y: bodyY, W: workW, H: bodyH}
	l.food = page.Rect{X: workW, Y: bodyY, W: rest - workW, H: bodyH}
	l.chat = page.Rect{X: rest, Y: bodyY, W: chatW, H: bodyH}

	// Food pane rows, below its top border: title, search box, results
	// block, serving line, blank line, table.
	top := bodyY + 1
	resultsH := 0
	if m.page.Food.ResultsVisible {
		resultsH = len(m.page.Food.Results()) + 2
	}
	l.search = page.Rect{X: l.food.X, Y: bodyY, W: l.food.W, H: 3 + resultsH}
	l.resultsTop = top + 3
	l.tableTop = top + 2 + resultsH + 2

	// Header: one cell of padding, the brand, a space, then the tabs.
	x := 1 + lipgloss.Width(m.theme.HeaderBrand.Render(brand)) + 1
	for _, t := range m.page.Days.Model().Tabs {
		w := lipgloss.Width(m.tabStyle(t).Render(t.Label))
		l.tabs = append(l.tabs, span{x, x + w})
		x += w
	}
	return l
}

// resize applies the layout to the widgets.
func (m *Model) resize() {
	l := m.layout()

	inner := l.food.W - 4
	m.search.Width = max(inner-lipgloss.Width(m.search.Prompt)-1, 5)

	if l.chat.W > 0 {
		m.chatView.Width = max(l.chat.W-4, 10)
		m.chatView.Height = max(l.chat.H-5, 1)
		m.chatInput.Width = max(l.chat.W-4-lipgloss.Width(m.chatInput.Prompt)-1, 5)
	}
	m.page.Dismiss.SetRegion(l.search)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if msg, ok := m.page.Alerts.Current(); ok {
		return m.renderAlert(msg)
	}

	l := m.layout()
	panes := []string{
		m.renderWorkout(l.workout),
		m.renderFood(l.food),
	}
	if l.chat.W > 0 {
		panes = append(panes, m.renderChat(l.chat))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, panes...),
		m.renderStatusBar(),
	)
}

func (m Model) tabStyle(t *model.DayTab) lipgloss.Style {
	if t.Active {
		return m.theme.TabActive
	}
	return m.theme.Tab
}

func (m Model) renderHeader() string {
	parts := []string{m.theme.HeaderBrand.Render(brand), " "}
	for _, t := range m.page.Days.Model().Tabs {
		parts = append(parts, m.tabStyle(t).Render(t.Label))
	}
	return m.theme.Header.Width(m.width).MaxHeight(1).Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func (m Model) pane(r page.Rect, focused bool, content string) string {
	style := m.theme.Pane
	if focused {
		style = m.theme.PaneFocused
	}
	return style.
		Width(max(r.W-2, 1)).
		Height(max(r.H-2, 1)).
		MaxHeight(r.H).
		Render(content)
}

// -----------------------------------------------------------------------------
// Workout pane
// -----------------------------------------------------------------------------

func (m Model) renderWorkout(r page.Rect) string {
	panel := m.page.Days.Model().ActivePanel()
	if panel == nil {
		return m.pane(r, m.focus == PaneWorkout, m.theme.EmptyState.Render("No plan loaded."))
	}

	lines := []string{m.theme.PaneTitle.Render(panel.Label), ""}
	if len(panel.Exercises) == 0 {
		lines = append(lines, m.theme.EmptyState.Render("Rest day."))
	}
	for i, card := range panel.Exercises {
		lines = append(lines, m.renderCard(card, i == m.cardIdx && m.focus == PaneWorkout))
	}
	return m.pane(r, m.focus == PaneWorkout, strings.Join(lines, "\n"))
}

func (m Model) renderCard(card *model.ExerciseCard, selected bool) string {
	head := m.theme.CardName.Render(card.Name)
	if card.Sets > 0 {
		head += "  " + m.theme.CardTarget.Render(fmt.Sprintf("%dx%d @ %skg",
			card.Sets, card.TargetReps, util.FormatNumber(card.TargetWeightKg)))
	}
	if card.Logged {
		head += " " + m.theme.LoggedBadge.Render("Logged")
	}

	style := m.theme.Card
	second := m.theme.CardTarget.Render("[" + card.ButtonLabel + "]")
	if selected {
		style = m.theme.CardSelected
		second = m.reps.View() + "  " + m.weight.View() + "  " + m.theme.Button.Render("["+card.ButtonLabel+"]")
	}
	return style.Render(head + "\n" + second)
}

// -----------------------------------------------------------------------------
// Food pane
// -----------------------------------------------------------------------------

func (m Model) renderFood(r page.Rect) string {
	food := m.page.Food
	inner := max(r.W-4, 10)

	lines := []string{m.theme.PaneTitle.Render("Food log"), m.search.View()}

	if food.ResultsVisible {
		results := food.ResultLines()
		for i, line := range results {
			line = util.TruncateWidth(line, inner-2)
			if i == m.resultIdx && m.focus == PaneSearch {
				results[i] = m.theme.ResultSelected.Render(line)
			} else {
				results[i] = m.theme.ResultItem.Render(line)
			}
		}
		lines = append(lines, m.theme.Results.Width(inner-2).Render(strings.Join(results, "\n")))
	}

	serving := m.serving.View()
	if food.Form.Name != "" {
		serving += "  " + m.theme.CardTarget.Render("→ "+util.TruncateWidth(food.Form.Name, inner/2))
	}
	lines = append(lines, serving, "")

	if food.EmptyStateVisible() {
		lines = append(lines, m.theme.EmptyState.Render("No food logged today."))
	} else {
		lines = append(lines, m.renderTable(inner)...)
	}

	t := food.Totals
	lines = append(lines, m.theme.Totals.Width(inner).Render(fmt.Sprintf("Total  %s kcal  %s  %s  %s",
		m.theme.CaloriesValue.Render(util.FormatNumber(t.Calories)),
		m.theme.ProteinValue.Render("P "+util.FormatNumber(t.Protein)+"g"),
		m.theme.CarbsValue.Render("C "+util.FormatNumber(t.Carbs)+"g"),
		m.theme.FatValue.Render("F "+util.FormatNumber(t.Fat)+"g"),
	)))

	focused := m.focus == PaneSearch || m.focus == PaneServing || m.focus == PaneLog
	return m.pane(r, focused, strings.Join(lines, "\n"))
}

const numCol = 7

func (m Model) renderTable(width int) []string {
	nameW := max(width-5*numCol, 8)
	row := func(name string, cells ...string) string {
		var b strings.Builder
		b.WriteString(util.PadWidth(util.TruncateWidth(name, nameW-1), nameW))
		for _, c := range cells {
			b.WriteString(util.PadLeftWidth(util.TruncateWidth(c, numCol-1), numCol))
		}
		return b.String()
	}

	out := []string{m.theme.TableHeader.Render(row("Food", "Serv", "kcal", "Prot", "Carb", "Fat"))}
	for i, r := range m.page.Food.Rows {
		line := row(r.FoodName, r.Serving, r.Calories, r.Protein, r.Carbs, r.Fat)
		if i == m.rowIdx && m.focus == PaneLog {
			out = append(out, m.theme.TableSelected.Render(line))
		} else {
			out = append(out, m.theme.TableRow.Render(line))
		}
	}
	return out
}

// -----------------------------------------------------------------------------
// Chat sidebar
// -----------------------------------------------------------------------------

func (m Model) renderChat(r page.Rect) string {
	lines := []string{m.theme.PaneTitle.Render("Coach"), m.chatView.View()}
	if m.page.Chat.Pending() {
		lines = append(lines, m.theme.ChatTyping.Render(m.spinner.View()+" "+model.TypingText))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, m.chatInput.View())

	style := m.theme.Sidebar
	if m.focus != PaneChat {
		style = style.BorderForeground(m.theme.Pane.GetBorderTopForeground())
	}
	return style.
		Width(max(r.W-2, 1)).
		Height(max(r.H-2, 1)).
		MaxHeight(r.H).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderMessages(width int) string {
	if width < 1 {
		width = 1
	}
	var blocks []string
	for _, msg := range m.page.Chat.Messages {
		label := m.theme.ChatRole.Render(msg.Role.DisplayName() + ":")
		style := m.theme.RoleStyle(string(msg.Role))

		var body string
		switch msg.Role {
		case model.ChatRoleAssistant:
			body = m.replies.Render(msg.ID, msg.Text, width)
		case model.ChatRoleNotice:
			body = style.Render(wrap(msg.Text, width))
			if msg.Link != "" {
				body += "\n" + m.theme.Link.Render(m.opts.BaseURL+msg.Link)
			}
		default:
			body = style.Render(wrap(msg.Text, width))
		}
		blocks = append(blocks, label+"\n"+body)
	}
	return strings.Join(blocks, "\n\n")
}

// -----------------------------------------------------------------------------
// Alert and status bar
// -----------------------------------------------------------------------------

func (m Model) renderAlert(msg string) string {
	box := m.theme.AlertBox.Render(
		m.theme.AlertTitle.Render("ForgeFit") + "\n\n" +
			msg + "\n\n" +
			m.theme.AlertHint.Render("Press Enter to continue"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderStatusBar() string {
	var help []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		help = append(help, m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
	}
	left := strings.Join(help, "  ")

	right := m.opts.BaseURL
	if m.status != "" {
		right = m.status
	}
	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return m.theme.StatusBar.Width(m.width).MaxHeight(1).Render(left)
	}
	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
