package request_models

import (
	"encoding/json"

	"github.com/google/uuid"
)

type SubmitAnswer struct {
	QuestionID uuid.UUID       `json:"question_id" binding:"required"`
	Value      json.RawMessage `json:"value"`
}

type SubmitResponseRequest struct {
	SessionID string         `json:"session_id" binding:"required"`
	Email     *string        `json:"email"`
	Answers   []SubmitAnswer `json:"answers" binding:"required"`
}
