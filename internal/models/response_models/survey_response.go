package response_models

import (
	"encoding/json"

	"github.com/google/uuid"

	"formloom/internal/questions"
)

// QuestionTypeInfo is one entry of the builder palette; Available reflects
// the caller's plan.
type QuestionTypeInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Icon      string `json:"icon"`
	MinPlan   string `json:"min_plan"`
	Available bool   `json:"available"`
}

type QuestionResponse struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Required    bool            `json:"required"`
	Position    int             `json:"position"`
	Settings    json.RawMessage `json:"settings"`

	// Present for emoji questions so the client renders the paired labels
	// without re-deriving them.
	EmojiOptions []questions.EmojiOption `json:"emoji_options,omitempty"`
}

type SurveyResponse struct {
	ID            uuid.UUID          `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description,omitempty"`
	Status        string             `json:"status"`
	Settings      json.RawMessage    `json:"settings"`
	ShareToken    string             `json:"share_token,omitempty"`
	ResponseCount int                `json:"response_count"`
	CreatedAt     int64              `json:"created_at"`
	UpdatedAt     int64              `json:"updated_at"`
	Questions     []QuestionResponse `json:"questions,omitempty"`
}

// PublicSurveyResponse is the respondent-facing document: no owner data, no
// share token, questions in display order.
type PublicSurveyResponse struct {
	ID           uuid.UUID          `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	ShowProgress bool               `json:"show_progress"`
	Anonymous    bool               `json:"anonymous"`
	Shuffle      bool               `json:"shuffle_questions"`
	Theme        string             `json:"theme,omitempty"`
	Questions    []QuestionResponse `json:"questions"`
}

type SubmissionResponse struct {
	ID          uuid.UUID                    `json:"id"`
	SessionID   string                       `json:"session_id"`
	SubmittedAt int64                        `json:"submitted_at"`
	Answers     map[uuid.UUID]json.RawMessage `json:"answers"`
}

type SurveySummary struct {
	SurveyID      uuid.UUID                `json:"survey_id"`
	ResponseCount int                      `json:"response_count"`
	PerQuestion   []QuestionAnswerBreakdown `json:"per_question"`
}

type QuestionAnswerBreakdown struct {
	QuestionID  uuid.UUID `json:"question_id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	AnswerCount int64     `json:"answer_count"`
}
