// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package page implements the ForgeFit client interaction layer.
//
// A Page holds the view-model from package model and five handlers that
// mutate it in response to user events:
//
//   - DaySwitcher: selects the visible day of the workout plan
//   - WorkoutLogger: submits one exercise's logged set
//   - ChatSidebar: talks to the backend assistant
//   - FoodTracker: debounced food search, nutrition log rows and totals
//   - Dismisser: hides the search results on a click outside them
//
// Handlers that talk to the backend return a tea.Cmd. The command performs
// one request off the UI goroutine and yields a typed result message, which
// Page.Update hands back to the handler's Apply method. Each Apply method
// branches three ways: success, application error (server text with a
// fallback) and transport error (fixed text).
//
// The view-model has no knowledge of the terminal; package dashboard renders
// it and translates keys and mouse clicks into handler calls.
package page
