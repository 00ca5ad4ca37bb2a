package request_models

type CreateCheckoutRequest struct {
	PlanCode   string `json:"plan_code" binding:"required"`
	CouponCode string `json:"coupon_code"`
}

type CancelCheckoutRequest struct {
	OrderCode int64 `json:"order_code" binding:"required"`
}
