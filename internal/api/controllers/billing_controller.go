package controllers

import (
	"github.com/gin-gonic/gin"

	"formloom/internal/services"
	"formloom/pkg/utils"
)

type BillingController struct {
	billingService services.BillingServiceInterface
}

func NewBillingController(billingService services.BillingServiceInterface) *BillingController {
	return &BillingController{
		billingService: billingService,
	}
}

// ListPlans godoc
// @Summary List subscription plans
// @Tags Billing
// @Produce json
// @Success 200 {array} response_models.SubscriptionPlan
// @Router /billing/plans [get]
func (b *BillingController) ListPlans(c *gin.Context) {
	plans, err := b.billingService.ListPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// CurrentSubscription godoc
// @Summary Current subscription
// @Tags Billing
// @Produce json
// @Success 200 {object} response_models.SubscriptionResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /billing/subscription [get]
func (b *BillingController) CurrentSubscription(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	sub, err := b.billingService.CurrentSubscription(c.Request.Context(), access.UserID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sub, "Subscription fetched successfully")
}

// SubscriptionHistory godoc
// @Summary Subscription history
// @Tags Billing
// @Produce json
// @Success 200 {array} response_models.SubscriptionResponse
// @Security BearerAuth
// @Router /billing/subscription/history [get]
func (b *BillingController) SubscriptionHistory(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	history, err := b.billingService.SubscriptionHistory(c.Request.Context(), access.UserID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, history, "Subscription history fetched successfully")
}

// CancelSubscription godoc
// @Summary Cancel the current subscription
// @Description Turns off auto-renewal; access continues until the period ends
// @Tags Billing
// @Produce json
// @Success 200 {object} response_models.SubscriptionResponse
// @Security BearerAuth
// @Router /billing/subscription/cancel [post]
func (b *BillingController) CancelSubscription(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	sub, err := b.billingService.CancelSubscription(c.Request.Context(), access.UserID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sub, "Subscription will not renew")
}

// Analytics godoc
// @Summary Billing analytics
// @Description Total and monthly spend for the authenticated account
// @Tags Billing
// @Produce json
// @Success 200 {object} response_models.BillingAnalytics
// @Security BearerAuth
// @Router /billing/analytics [get]
func (b *BillingController) Analytics(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	analytics, err := b.billingService.Analytics(c.Request.Context(), access.UserID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, analytics, "Billing analytics fetched successfully")
}
