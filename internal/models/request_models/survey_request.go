package request_models

import "encoding/json"

type CreateSurveyRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Settings    json.RawMessage `json:"settings"`
}

// UpdateSurveyRequest is also the auto-save payload; nil fields are left
// untouched.
type UpdateSurveyRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Settings    *json.RawMessage `json:"settings"`
}
