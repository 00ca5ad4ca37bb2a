package db_models

import (
	"gorm.io/datatypes"
)

type BillingPeriod string

const (
	PeriodMonth BillingPeriod = "month"
	PeriodYear  BillingPeriod = "year"
)

type Plan struct {
	BaseModel
	Code        string `gorm:"uniqueIndex"` // e.g. "free", "pro_monthly", "pro_yearly"
	Name        string
	Description *string
	Period      BillingPeriod `gorm:"size:10"`
	PriceMinor  int64         // 2000 = $20.00
	Currency    string        `gorm:"size:3"`
	TrialDays   int32         `gorm:"default:0"`
	IsActive    bool          `gorm:"default:true"`

	// Feature limits the builder consults: question caps, gated types, etc.
	Features datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
