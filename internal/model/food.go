// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"math"
	"strconv"
)

// FoodRowID returns the row key for a log entry, "food-row-<id>".
func FoodRowID(id int) string {
	return "food-row-" + strconv.Itoa(id)
}

// FoodResult is one food search candidate, macros per 100g.
type FoodResult struct {
	Name        string
	Cal100g     float64
	Protein100g float64
	Carbs100g   float64
	Fat100g     float64
}

// FoodForm holds the selection and serving inputs as text, like form fields.
type FoodForm struct {
	Query       string
	Name        string
	Cal100g     string
	Protein100g string
	Carbs100g   string
	Fat100g     string
	ServingG    string
}

// Clear empties every field.
func (f *FoodForm) Clear() {
	*f = FoodForm{}
}

// FoodRow is one rendered nutrition log row. The numeric cells hold the
// displayed text, not the original values.
type FoodRow struct {
	ID       int
	FoodName string
	Serving  string
	Calories string
	Protein  string
	Carbs    string
	Fat      string
}

// Key returns the row key.
func (r FoodRow) Key() string {
	return FoodRowID(r.ID)
}

// Totals are the running nutrition accumulators.
type Totals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Add adds d to t. Each accumulator is kept at one decimal, the precision it
// is displayed with.
func (t *Totals) Add(d Totals) {
	t.Calories = Round1(t.Calories + d.Calories)
	t.Protein = Round1(t.Protein + d.Protein)
	t.Carbs = Round1(t.Carbs + d.Carbs)
	t.Fat = Round1(t.Fat + d.Fat)
}

// Sub subtracts d from t.
func (t *Totals) Sub(d Totals) {
	t.Add(Totals{-d.Calories, -d.Protein, -d.Carbs, -d.Fat})
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
