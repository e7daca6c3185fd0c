// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strconv"

// DayPanelID returns the panel id for a day index, "day-<index>".
func DayPanelID(index int) string {
	return "day-" + strconv.Itoa(index)
}

// DayPanel is one day of the workout plan.
type DayPanel struct {
	ID        string
	DayIndex  int
	Label     string
	Active    bool
	Exercises []*ExerciseCard
}

// DayTab is the selector shown for a panel. Tabs carry no index of their
// own; a tab belongs to the panel at the same position.
type DayTab struct {
	Label  string
	Active bool
}

// Days holds the panel list and the tab list in document order.
type Days struct {
	Panels []*DayPanel
	Tabs   []*DayTab
}

// NewDays builds panels and one tab per panel, in order. Panel IDs are
// derived from DayIndex when empty.
func NewDays(panels []DayPanel) *Days {
	d := &Days{}
	for i := range panels {
		p := panels[i]
		if p.ID == "" {
			p.ID = DayPanelID(p.DayIndex)
		}
		d.Panels = append(d.Panels, &p)
		d.Tabs = append(d.Tabs, &DayTab{Label: p.Label, Active: p.Active})
	}
	return d
}

// PanelByID returns the panel with the given id, or nil.
func (d *Days) PanelByID(id string) *DayPanel {
	for _, p := range d.Panels {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ActivePanel returns the active panel, or nil.
func (d *Days) ActivePanel() *DayPanel {
	for _, p := range d.Panels {
		if p.Active {
			return p
		}
	}
	return nil
}

// ActiveCount returns the number of active panels and active tabs.
func (d *Days) ActiveCount() (panels, tabs int) {
	for _, p := range d.Panels {
		if p.Active {
			panels++
		}
	}
	for _, t := range d.Tabs {
		if t.Active {
			tabs++
		}
	}
	return panels, tabs
}

// Card finds an exercise card by id across all panels.
func (d *Days) Card(id int) *ExerciseCard {
	for _, p := range d.Panels {
		for _, c := range p.Exercises {
			if c.ID == id {
				return c
			}
		}
	}
	return nil
}
