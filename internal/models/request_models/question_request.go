package request_models

import (
	"encoding/json"

	"github.com/google/uuid"
)

type AddQuestionRequest struct {
	Type        string          `json:"type" binding:"required"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Required    bool            `json:"required"`
	Settings    json.RawMessage `json:"settings"` // omitted = registry defaults
}

type UpdateQuestionRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Required    *bool            `json:"required"`
	Settings    *json.RawMessage `json:"settings"`
}

type ReorderQuestionsRequest struct {
	// Complete ordering of question ids, first to last.
	QuestionIDs []uuid.UUID `json:"question_ids" binding:"required"`
}
