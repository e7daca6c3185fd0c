// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the view-model structures the page handlers mutate.
//
// These types replace the DOM of a browser page: each one is what a handler
// reads and writes, and the terminal UI renders them.
//
// # Key Types
//
//   - Days, DayPanel, DayTab: the tabbed day views
//   - ExerciseCard: one exercise with reps/weight inputs and a logged badge
//   - ChatMessage: a node in the chat sidebar (user, assistant, error, notice, typing)
//   - FoodResult, FoodForm, FoodRow, Totals: food search and nutrition log
//
// # Usage
//
//	days := model.NewDays([]model.DayPanel{{DayIndex: 0, Label: "Push"}})
//	panel := days.PanelByID(model.DayPanelID(0))
package model
