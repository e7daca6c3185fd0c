// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER AND DAY TABS
	// ==========================================================================

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style

	// ==========================================================================
	// PANES
	// ==========================================================================

	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	PaneTitle   lipgloss.Style

	// ==========================================================================
	// EXERCISE CARDS
	// ==========================================================================

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardName     lipgloss.Style
	CardTarget   lipgloss.Style
	LoggedBadge  lipgloss.Style
	Button       lipgloss.Style

	// ==========================================================================
	// FOOD
	// ==========================================================================

	SearchBox      lipgloss.Style
	Results        lipgloss.Style
	ResultItem     lipgloss.Style
	ResultSelected lipgloss.Style
	TableHeader    lipgloss.Style
	TableRow       lipgloss.Style
	TableSelected  lipgloss.Style
	EmptyState     lipgloss.Style
	Totals         lipgloss.Style
	CaloriesValue  lipgloss.Style
	ProteinValue   lipgloss.Style
	CarbsValue     lipgloss.Style
	FatValue       lipgloss.Style

	// ==========================================================================
	// CHAT SIDEBAR
	// ==========================================================================

	Sidebar       lipgloss.Style
	ChatUser      lipgloss.Style
	ChatAssistant lipgloss.Style
	ChatError     lipgloss.Style
	ChatNotice    lipgloss.Style
	ChatTyping    lipgloss.Style
	ChatRole      lipgloss.Style
	Link          lipgloss.Style

	// ==========================================================================
	// INPUTS, ALERTS AND STATUS BAR
	// ==========================================================================

	InputLabel   lipgloss.Style
	InputFocused lipgloss.Style
	AlertBox     lipgloss.Style
	AlertTitle   lipgloss.Style
	AlertHint    lipgloss.Style
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a theme. mode is "auto", "dark" or "light"; anything else
// is treated as "auto".
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch mode {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header and tabs
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Forge)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)

	t.TabActive = t.Tab.
		Bold(true).
		Foreground(TextInverse).
		Background(Forge)

	// Panes
	t.Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PaneFocused = t.Pane.
		BorderForeground(Forge)

	t.PaneTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	// Exercise cards
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Overlay).
		PaddingLeft(1)

	t.CardSelected = t.Card.
		BorderForeground(Forge)

	t.CardName = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.CardTarget = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.LoggedBadge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Emerald).
		Padding(0, 1)

	t.Button = lipgloss.NewStyle().
		Foreground(Forge).
		Bold(true)

	// Food
	t.SearchBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)

	t.Results = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Forge)

	t.ResultItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ResultSelected = t.ResultItem.
		Background(SelectionBg).
		Bold(true)

	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.TableRow = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.TableSelected = t.TableRow.
		Background(SelectionBg)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Totals = lipgloss.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay)

	t.CaloriesValue = lipgloss.NewStyle().Foreground(Calories).Bold(true)
	t.ProteinValue = lipgloss.NewStyle().Foreground(Protein).Bold(true)
	t.CarbsValue = lipgloss.NewStyle().Foreground(Carbs).Bold(true)
	t.FatValue = lipgloss.NewStyle().Foreground(Fat).Bold(true)

	// Chat sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.ChatUser = lipgloss.NewStyle().Foreground(Cyan)
	t.ChatAssistant = lipgloss.NewStyle().Foreground(TextPrimary)
	t.ChatError = lipgloss.NewStyle().Foreground(Rose)
	t.ChatNotice = lipgloss.NewStyle().Foreground(Amber).Italic(true)
	t.ChatTyping = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.ChatRole = lipgloss.NewStyle().Bold(true).Foreground(Purple)

	// LinkStyle - underlined for visual distinction
	t.Link = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)

	// Inputs, alerts and status bar
	t.InputLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.InputFocused = lipgloss.NewStyle().
		Foreground(Forge).
		Bold(true)

	t.AlertBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Padding(1, 3).
		Align(lipgloss.Center)

	t.AlertTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.AlertHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Forge).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// RoleStyle returns the style for a chat role name.
func (t *Theme) RoleStyle(role string) lipgloss.Style {
	switch role {
	case "user":
		return t.ChatUser
	case "error":
		return t.ChatError
	case "notice":
		return t.ChatNotice
	case "typing":
		return t.ChatTyping
	default:
		return t.ChatAssistant
	}
}

// =============================================================================
// GLOBAL THEME
// =============================================================================

var defaultTheme *Theme

// DefaultTheme returns the process-wide theme, creating an "auto" theme on
// first use.
func DefaultTheme() *Theme {
	if defaultTheme == nil {
		defaultTheme = NewTheme("auto")
	}
	return defaultTheme
}

// SetDefaultTheme replaces the process-wide theme.
func SetDefaultTheme(t *Theme) {
	defaultTheme = t
}
