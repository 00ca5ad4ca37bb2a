package request_models

type ApplyCouponRequest struct {
	Code     string `json:"code" binding:"required"`
	PlanCode string `json:"plan_code" binding:"required"`
}

type CreateCouponRequest struct {
	Code            string   `json:"code" binding:"required"`
	DiscountType    string   `json:"discount_type" binding:"required,oneof=percent fixed"`
	DiscountValue   int64    `json:"discount_value" binding:"required,gt=0"`
	UsageLimit      int      `json:"usage_limit"`
	PerUserLimit    int      `json:"per_user_limit"`
	ValidFrom       *int64   `json:"valid_from"`
	ValidUntil      *int64   `json:"valid_until"`
	IsActive        *bool    `json:"is_active"`
	ApplicablePlans []string `json:"applicable_plans"`
}

type UpdateCouponRequest struct {
	DiscountType    *string   `json:"discount_type"`
	DiscountValue   *int64    `json:"discount_value"`
	UsageLimit      *int      `json:"usage_limit"`
	PerUserLimit    *int      `json:"per_user_limit"`
	ValidFrom       *int64    `json:"valid_from"`
	ValidUntil      *int64    `json:"valid_until"`
	IsActive        *bool     `json:"is_active"`
	ApplicablePlans *[]string `json:"applicable_plans"`
}
