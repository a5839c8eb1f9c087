// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gateway

import "encoding/json"

// =============================================================================
// CHAT / AUTH TYPES
// =============================================================================

// HistoryRecord is one stored question/response turn from POST /history.
// The backend returns records newest-first; callers reverse them.
type HistoryRecord struct {
	Question  string `json:"question"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// Registration is the payload for POST /register. The role is fixed to
// "Employee" by the client and is not part of this struct on purpose:
// it is never user-selectable.
type Registration struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginResult is the outcome of POST /login. Role may be empty: the backend
// authenticates some accounts without assigning a role, and the client must
// treat that as a failed login.
type LoginResult struct {
	Role    string
	UserID  string
	Message string
}

// loginResponse is the wire shape of a login response. The id is numeric
// on the wire.
type loginResponse struct {
	Role    string      `json:"role"`
	ID      json.Number `json:"id"`
	Message string      `json:"message"`
}

// messageResponse is the generic {message} success shape.
type messageResponse struct {
	Message string `json:"message"`
}

// chatResponse is the wire shape of POST /chat.
type chatResponse struct {
	Response string `json:"response"`
}

// errorResponse is the uniform failure shape: {"error": "..."}.
type errorResponse struct {
	Error string `json:"error"`
}

// =============================================================================
// ADMIN TYPES
// =============================================================================

// User is one account row from GET /users.
type User struct {
	ID         json.Number `json:"id"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Email      string      `json:"email"`
	Role       string      `json:"role"`
	IsApproved int         `json:"is_approved"`
	IsBlocked  int         `json:"is_blocked"`
}

// Rule is one sensitive-data detection rule from GET /rules.
type Rule struct {
	ID   json.Number `json:"id"`
	Rule string      `json:"rule"`
}

// APILog is one backend request log row from GET /logs.
type APILog struct {
	ID        json.Number `json:"id"`
	Endpoint  string      `json:"endpoint"`
	Timestamp string      `json:"timestamp"`
}

// SensitiveLog is one detection log row from GET /sensitive_logs.
type SensitiveLog struct {
	ID                 json.Number `json:"id"`
	UserID             json.Number `json:"user_id"`
	Prompt             string      `json:"prompt"`
	DetectedData       string      `json:"detected_data"`
	BertPrediction     string      `json:"bert_prediction"`
	FinbertPrediction  string      `json:"finbert_prediction"`
	ZeroShotPrediction string      `json:"zero_shot_prediction"`
	IsSensitive        int         `json:"is_sensitive"`
	Timestamp          string      `json:"timestamp"`
}

// ModelMetrics holds the classification metrics for one detection model,
// from GET /performance.
type ModelMetrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
}
