// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import "github.com/jeranaias/forgefit-tui/internal/model"

// DaySwitcher toggles which day panel and tab are active.
type DaySwitcher struct {
	days *model.Days
}

// Model returns the day panels and tabs.
func (s *DaySwitcher) Model() *model.Days {
	return s.days
}

// ShowDay deactivates every panel and tab, then activates panel "day-<index>"
// and the tab at the same position in the tab list as that panel holds in
// the panel list. Tabs are matched by position only. An unknown index leaves
// everything inactive.
func (s *DaySwitcher) ShowDay(index int) {
	for _, p := range s.days.Panels {
		p.Active = false
	}
	for _, t := range s.days.Tabs {
		t.Active = false
	}

	id := model.DayPanelID(index)
	if p := s.days.PanelByID(id); p != nil {
		p.Active = true
	}

	for i, p := range s.days.Panels {
		if p.ID == id && i < len(s.days.Tabs) {
			s.days.Tabs[i].Active = true
		}
	}
}

// ShowTab activates the day whose tab is at position pos, the way a click on
// that tab does.
func (s *DaySwitcher) ShowTab(pos int) {
	if pos < 0 || pos >= len(s.days.Panels) {
		return
	}
	s.ShowDay(s.days.Panels[pos].DayIndex)
}

// Step moves the selection delta tabs left or right, wrapping around.
func (s *DaySwitcher) Step(delta int) {
	n := len(s.days.Panels)
	if n == 0 {
		return
	}
	cur := 0
	for i, p := range s.days.Panels {
		if p.Active {
			cur = i
			break
		}
	}
	s.ShowTab(((cur+delta)%n + n) % n)
}
