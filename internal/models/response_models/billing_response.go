package response_models

import "github.com/google/uuid"

type SubscriptionPlan struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Description *string  `json:"description,omitempty"`
	Period     string    `json:"period"`
	PriceMinor int64     `json:"price_minor"`
	Currency   string    `json:"currency"`
	TrialDays  int32     `json:"trial_days"`
	IsActive   bool      `json:"is_active"`
}

type SubscriptionResponse struct {
	ID         uuid.UUID `json:"id"`
	PlanCode   string    `json:"plan_code"`
	PlanName   string    `json:"plan_name"`
	Status     string    `json:"status"`
	StartsAt   int64     `json:"starts_at"`
	EndsAt     int64     `json:"ends_at"`
	CanceledAt *int64    `json:"canceled_at,omitempty"`
	AutoRenew  bool      `json:"auto_renew"`
}

type CreateCheckoutResponse struct {
	OrderCode    int64  `json:"order_code"`
	AmountMinor  int64  `json:"amount_minor"`
	Currency     string `json:"currency"`
	PaymentURL   string `json:"payment_url"`
	ProviderName string `json:"provider_name"`
}

// CouponQuote previews a discount before checkout.
type CouponQuote struct {
	Code            string `json:"code"`
	OriginalMinor   int64  `json:"original_minor"`
	DiscountedMinor int64  `json:"discounted_minor"`
	Currency        string `json:"currency"`
}

type BillingAnalytics struct {
	TotalSpentMinor int64         `json:"total_spent_minor"`
	Currency        string        `json:"currency"`
	CurrentPlan     string        `json:"current_plan"`
	Monthly         []SeriesPoint `json:"monthly"`
}
