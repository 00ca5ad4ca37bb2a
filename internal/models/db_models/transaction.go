package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending  TransactionStatus = "pending"
	TxnStatusPaid     TransactionStatus = "paid"
	TxnStatusFailed   TransactionStatus = "failed"
	TxnStatusCanceled TransactionStatus = "canceled"
	TxnStatusRefunded TransactionStatus = "refunded"
)

type Transaction struct {
	BaseModel
	AccountID      uuid.UUID  `gorm:"index"`
	SubscriptionID *uuid.UUID `gorm:"index"`

	AmountMinor   int64             // discounted amount actually charged
	OriginalMinor int64             // plan price before coupon
	Currency      string            `gorm:"size:3"`
	Status        TransactionStatus `gorm:"size:20;index"`

	Provider      string `gorm:"index"`
	ProviderTxnID string `gorm:"index"` // idempotency across webhooks
	CouponCode    string `gorm:"size:40"`

	PaidAt     *int64
	RefundedAt *int64

	// Webhook payloads, plan/coupon references, failure reasons.
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Account      Account       `gorm:"foreignKey:AccountID"`
	Subscription *Subscription `gorm:"foreignKey:SubscriptionID"`
}
