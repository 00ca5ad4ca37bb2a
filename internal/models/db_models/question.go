package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Question struct {
	BaseModel
	SurveyID    uuid.UUID `gorm:"index"`
	Type        string    `gorm:"size:30;not null"`
	Title       string    `gorm:"type:text"`
	Description string    `gorm:"type:text"`
	Required    bool      `gorm:"default:false"`
	Position    int       `gorm:"default:0"`

	// Shape depends on Type; decoded through questions.DecodeSettings.
	Settings datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Survey Survey `gorm:"foreignKey:SurveyID"`
}
