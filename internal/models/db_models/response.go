package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Response is one respondent submission. Rows are append-only: nothing
// updates a response after creation.
type Response struct {
	BaseModel
	SurveyID  uuid.UUID `gorm:"index"`
	SessionID string    `gorm:"size:64;index"` // respondent-generated, not authenticated
	Email     *string   `gorm:"size:255"`

	Answers []Answer `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE"`
}

type Answer struct {
	BaseModel
	ResponseID uuid.UUID      `gorm:"index"`
	QuestionID uuid.UUID      `gorm:"index"`
	Value      datatypes.JSON `gorm:"type:jsonb"`
}
