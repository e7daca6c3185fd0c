// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"math"
)

// =============================================================================
// WORKOUT
// =============================================================================

// LogSetRequest is the body for POST /workout/log.
//
// Reps and weight are pointers because the browser client sent NaN for
// unparseable input, which JSON-encodes as null.
type LogSetRequest struct {
	ExerciseID     int      `json:"exercise_id"`
	ActualReps     *int     `json:"actual_reps"`
	ActualWeightKg *float64 `json:"actual_weight_kg"`
}

// NewLogSetRequest builds a LogSetRequest, mapping NaN weight to null.
func NewLogSetRequest(exerciseID int, reps int, repsOK bool, weight float64) LogSetRequest {
	req := LogSetRequest{ExerciseID: exerciseID}
	if repsOK {
		r := reps
		req.ActualReps = &r
	}
	req.ActualWeightKg = finite(weight)
	return req
}

// StatusResponse is the shared {success, error} envelope.
type StatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// =============================================================================
// CHAT
// =============================================================================

// ChatRequest is the body for POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply from POST /api/chat.
type ChatResponse struct {
	Reply       string `json:"reply"`
	PlanUpdated bool   `json:"plan_updated,omitempty"`
	Error       string `json:"error,omitempty"`
}

// =============================================================================
// FOOD
// =============================================================================

// FoodResult is one candidate returned by GET /food/search.
type FoodResult struct {
	Name        string  `json:"name"`
	Cal100g     float64 `json:"cal_100g"`
	Protein100g float64 `json:"protein_100g"`
	Carbs100g   float64 `json:"carbs_100g"`
	Fat100g     float64 `json:"fat_100g"`
}

// AddFoodRequest is the body for POST /food/add. All numbers are per 100g
// except ServingG.
type AddFoodRequest struct {
	FoodName    string  `json:"food_name"`
	ServingG    float64 `json:"serving_g"`
	Cal100g     float64 `json:"cal_100g"`
	Protein100g float64 `json:"protein_100g"`
	Carbs100g   float64 `json:"carbs_100g"`
	Fat100g     float64 `json:"fat_100g"`
}

// MarshalJSON writes non-finite numbers as null, as a browser's
// JSON.stringify does, and lets the server reject them.
func (r AddFoodRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FoodName    string   `json:"food_name"`
		ServingG    *float64 `json:"serving_g"`
		Cal100g     *float64 `json:"cal_100g"`
		Protein100g *float64 `json:"protein_100g"`
		Carbs100g   *float64 `json:"carbs_100g"`
		Fat100g     *float64 `json:"fat_100g"`
	}{
		FoodName:    r.FoodName,
		ServingG:    finite(r.ServingG),
		Cal100g:     finite(r.Cal100g),
		Protein100g: finite(r.Protein100g),
		Carbs100g:   finite(r.Carbs100g),
		Fat100g:     finite(r.Fat100g),
	})
}

// finite returns &v, or nil for NaN and infinities.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// FoodEntry is the server-computed log entry for one serving.
type FoodEntry struct {
	ID       int     `json:"id"`
	FoodName string  `json:"food_name"`
	ServingG float64 `json:"serving_g"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// AddFoodResponse is the reply from POST /food/add.
type AddFoodResponse struct {
	Success bool       `json:"success"`
	Error   string     `json:"error,omitempty"`
	Entry   *FoodEntry `json:"entry,omitempty"`
}

// decodeFoodResults accepts the search payload. The backend returns a bare
// array; anything else is treated as a malformed response.
func decodeFoodResults(data []byte) ([]FoodResult, error) {
	var results []FoodResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, err
	}
	return results, nil
}
