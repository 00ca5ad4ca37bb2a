package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/payOSHQ/payos-lib-golang"

	"formloom/internal/models/request_models"
	"formloom/internal/services"
	"formloom/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentServiceInterface
	couponService  services.CouponServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface, couponService services.CouponServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		couponService:  couponService,
	}
}

// CreateCheckout godoc
// @Summary Start a checkout
// @Description Create a payment link for a plan, optionally discounted by a coupon
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body request_models.CreateCheckoutRequest true "Plan code and optional coupon"
// @Success 200 {object} response_models.CreateCheckoutResponse
// @Security BearerAuth
// @Router /payments/checkout [post]
func (p *PaymentController) CreateCheckout(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req request_models.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "plan_code is required")
		return
	}

	checkout, err := p.paymentService.CreateCheckout(c.Request.Context(), access, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkout, "Checkout created successfully")
}

// ApplyCoupon godoc
// @Summary Preview a coupon
// @Description Price a promo code against a plan without consuming it
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body request_models.ApplyCouponRequest true "Code and plan"
// @Success 200 {object} response_models.CouponQuote
// @Security BearerAuth
// @Router /payments/coupon [post]
func (p *PaymentController) ApplyCoupon(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req request_models.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "code and plan_code are required")
		return
	}

	quote, err := p.couponService.Quote(c.Request.Context(), access.UserID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, quote, "Coupon applied successfully")
}

// CancelCheckout godoc
// @Summary Cancel a pending checkout
// @Description Abandoning checkout is a normal outcome and returns a success envelope
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body request_models.CancelCheckoutRequest true "Order code"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/checkout/cancel [post]
func (p *PaymentController) CancelCheckout(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req request_models.CancelCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "order_code is required")
		return
	}

	err := p.paymentService.CancelCheckout(c.Request.Context(), access, req)
	if err == nil {
		utils.RespondSuccess(c, gin.H{"cancelled": true}, "Checkout cancelled")
		return
	}
	// A cancelled checkout surfaces as its own kind and maps to a success
	// envelope; anything else is a real failure.
	utils.HandleServiceError(c, err)
}

// Webhook godoc
// @Summary Payment provider webhook
// @Description Verified callback from payOS; idempotent per order
// @Tags Payment
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /payments/webhook [post]
func (p *PaymentController) Webhook(c *gin.Context) {
	var body payos.WebhookType
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid webhook payload")
		return
	}

	if err := p.paymentService.HandleWebhook(c.Request.Context(), body); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Webhook processed")
}
