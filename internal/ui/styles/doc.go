// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the forgefit TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection; the "dark" and "light" themes pin the background instead.

# Color System (colors.go)

  - Forge - Primary accent for the active tab and focused pane
  - Cyan - Links and user chat messages
  - Purple - Assistant chat messages
  - Emerald - Logged badge
  - Rose - Errors and alerts
  - Amber - Plan notices

Macro columns use Calories, Protein, Carbs and Fat.

# Theme (theme.go)

	theme := styles.NewTheme("auto")
	header := theme.Header.Render("ForgeFit")
*/
package styles
