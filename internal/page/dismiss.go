// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

// Rect is a screen region in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Dismisser hides the food search results when the user clicks anywhere
// outside the search container.
type Dismisser struct {
	food   *FoodTracker
	region Rect
}

// SetRegion records where the search container (box and results) is drawn.
func (d *Dismisser) SetRegion(r Rect) {
	d.region = r
}

// Region returns the search container region.
func (d *Dismisser) Region() Rect {
	return d.region
}

// Click handles a click at (x, y) and reports whether it landed inside the
// search container.
func (d *Dismisser) Click(x, y int) bool {
	if d.region.Contains(x, y) {
		return true
	}
	d.food.HideResults()
	return false
}

// Blur handles keyboard focus leaving the search container.
func (d *Dismisser) Blur() {
	d.food.HideResults()
}
