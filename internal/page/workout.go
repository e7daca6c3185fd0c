// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/forgefit-tui/internal/api"
	"github.com/jeranaias/forgefit-tui/internal/model"
	"github.com/jeranaias/forgefit-tui/internal/util"
)

// Workout alert texts.
const (
	AlertMissingSet     = "Please enter reps and weight."
	AlertLogFailed      = "Failed to log exercise."
	AlertLogUnreachable = "Failed to log exercise. Please try again."
)

// WorkoutLoggedMsg carries the result of a log request.
type WorkoutLoggedMsg struct {
	ExerciseID int
	Err        error
}

// WorkoutLogger submits logged sets for exercise cards.
type WorkoutLogger struct {
	ctx     context.Context
	backend Backend
	alert   Alerter
	days    *model.Days
}

// Log submits the reps and weight typed on card exerciseID. Empty input
// alerts and returns nil. Unparseable numbers are sent as null.
func (w *WorkoutLogger) Log(exerciseID int) tea.Cmd {
	card := w.days.Card(exerciseID)
	if card == nil {
		return nil
	}
	if card.RepsInput == "" || card.WeightInput == "" {
		w.alert.Alert(AlertMissingSet)
		return nil
	}

	reps, repsOK := util.ParseIntPrefix(card.RepsInput)
	req := api.NewLogSetRequest(exerciseID, reps, repsOK, util.ParseFloatPrefix(card.WeightInput))

	ctx, backend := w.ctx, w.backend
	return func() tea.Msg {
		return WorkoutLoggedMsg{ExerciseID: exerciseID, Err: backend.LogSet(ctx, req)}
	}
}

// ApplyLogged updates the card or alerts.
func (w *WorkoutLogger) ApplyLogged(msg WorkoutLoggedMsg) {
	switch {
	case msg.Err == nil:
		if card := w.days.Card(msg.ExerciseID); card != nil {
			card.MarkLogged()
		}
	case api.IsTransport(msg.Err):
		w.alert.Alert(AlertLogUnreachable)
	default:
		w.alert.Alert(api.ServerMessage(msg.Err, AlertLogFailed))
	}
}
