package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SurveyStatus string

const (
	SurveyStatusDraft     SurveyStatus = "draft"
	SurveyStatusPublished SurveyStatus = "published"
)

type Survey struct {
	BaseModel
	OwnerID     uuid.UUID    `gorm:"index"`
	Title       string       `gorm:"size:255"`
	Description string       `gorm:"type:text"`
	Status      SurveyStatus `gorm:"size:20;default:'draft';index"`

	// Survey-level behavior: anonymity, progress bar, shuffle, response cap,
	// close time, theme. Interpreted by SurveySettings.
	Settings datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	ShareToken    string `gorm:"uniqueIndex;size:64"`
	PublishedAt   *int64
	ResponseCount int `gorm:"default:0"`

	Owner     Account    `gorm:"foreignKey:OwnerID"`
	Questions []Question `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
	Responses []Response `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
}

// SurveySettings is the decoded shape of Survey.Settings.
type SurveySettings struct {
	Anonymous        bool   `json:"anonymous,omitempty"`
	ShowProgress     bool   `json:"show_progress,omitempty"`
	ShuffleQuestions bool   `json:"shuffle_questions,omitempty"`
	MaxResponses     *int   `json:"max_responses,omitempty"`
	CloseAt          *int64 `json:"close_at,omitempty"`
	Theme            string `json:"theme,omitempty"`
}
