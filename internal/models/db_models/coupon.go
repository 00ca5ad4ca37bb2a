package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	CouponDiscountPercent = "percent"
	CouponDiscountFixed   = "fixed"
)

// Coupon status is always derived from these fields and the clock, never
// stored (see services.CouponStatusOf).
type Coupon struct {
	BaseModel
	Code          string `gorm:"uniqueIndex;size:40"` // stored upper-cased
	DiscountType  string `gorm:"size:10"`             // percent | fixed
	DiscountValue int64  // percent points, or minor units for fixed

	UsageLimit   int `gorm:"default:0"` // 0 = unlimited
	PerUserLimit int `gorm:"default:1"`
	UsageCount   int `gorm:"default:0"`

	ValidFrom  *int64
	ValidUntil *int64
	IsActive   bool `gorm:"default:true"`

	// Empty means any plan.
	ApplicablePlans pq.StringArray `gorm:"type:text[]"`
}

// CouponRedemption records one verified use, for per-user limits.
type CouponRedemption struct {
	BaseModel
	CouponID      uuid.UUID `gorm:"index"`
	AccountID     uuid.UUID `gorm:"index"`
	TransactionID uuid.UUID `gorm:"index"`

	Coupon  Coupon  `gorm:"foreignKey:CouponID"`
	Account Account `gorm:"foreignKey:AccountID"`
}
