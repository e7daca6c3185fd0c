// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard is the full-screen Bubble Tea front end for ForgeFit.
//
// The screen has three areas: the workout plan for the active day, the food
// log with its search box and totals, and the coach chat sidebar. Keys and
// mouse clicks become calls on a page.Page; network replies come back as
// messages and are routed through page.Page.Update. The model only copies
// text between its widgets and the page view-model.
//
// Alerts raised by the handlers are shown as a modal that blocks input until
// dismissed with Enter, Esc or Space.
package dashboard
