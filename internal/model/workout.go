// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Button labels for an exercise card.
const (
	ButtonLog    = "Log"
	ButtonUpdate = "Update"
)

// ExerciseCard is one planned exercise and its logging inputs.
type ExerciseCard struct {
	ID             int
	Name           string
	Sets           int
	TargetReps     int
	TargetWeightKg float64
	Compound       bool
	Notes          string

	// Text inputs, as typed.
	RepsInput   string
	WeightInput string

	// Logged is the "Logged" badge. It is only ever set, never cleared.
	Logged      bool
	ButtonLabel string
}

// NewExerciseCard returns a card with the initial button label.
func NewExerciseCard(id int, name string) *ExerciseCard {
	return &ExerciseCard{ID: id, Name: name, ButtonLabel: ButtonLog}
}

// MarkLogged sets the badge and relabels the button. Repeated calls are no-ops.
func (c *ExerciseCard) MarkLogged() {
	c.Logged = true
	c.ButtonLabel = ButtonUpdate
}
