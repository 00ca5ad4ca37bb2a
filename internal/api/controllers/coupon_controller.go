package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formloom/internal/models/request_models"
	"formloom/internal/services"
	"formloom/pkg/utils"
)

type CouponController struct {
	couponService services.CouponServiceInterface
}

func NewCouponController(couponService services.CouponServiceInterface) *CouponController {
	return &CouponController{
		couponService: couponService,
	}
}

// ListCoupons godoc
// @Summary List coupons
// @Description Every coupon with its derived status; admin only
// @Tags Coupon
// @Produce json
// @Success 200 {array} services.CouponView
// @Security BearerAuth
// @Router /admin/coupons [get]
func (co *CouponController) ListCoupons(c *gin.Context) {
	coupons, err := co.couponService.ListCoupons(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, coupons, "Coupons fetched successfully")
}

// CreateCoupon godoc
// @Summary Create a coupon
// @Tags Coupon
// @Accept json
// @Produce json
// @Param request body request_models.CreateCouponRequest true "Coupon definition"
// @Success 201 {object} services.CouponView
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/coupons [post]
func (co *CouponController) CreateCoupon(c *gin.Context) {
	var req request_models.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "code, discount_type and discount_value are required")
		return
	}

	coupon, err := co.couponService.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, coupon, "Coupon created successfully")
}

// UpdateCoupon godoc
// @Summary Update a coupon
// @Tags Coupon
// @Accept json
// @Produce json
// @Param couponId path string true "Coupon ID"
// @Param request body request_models.UpdateCouponRequest true "Changed fields"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/coupons/{couponId} [patch]
func (co *CouponController) UpdateCoupon(c *gin.Context) {
	couponID, ok := pathUUID(c, "couponId")
	if !ok {
		return
	}

	var req request_models.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := co.couponService.UpdateCoupon(c.Request.Context(), couponID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Coupon updated successfully")
}

// DeleteCoupon godoc
// @Summary Delete a coupon
// @Tags Coupon
// @Produce json
// @Param couponId path string true "Coupon ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/coupons/{couponId} [delete]
func (co *CouponController) DeleteCoupon(c *gin.Context) {
	couponID, ok := pathUUID(c, "couponId")
	if !ok {
		return
	}

	if err := co.couponService.DeleteCoupon(c.Request.Context(), couponID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Coupon deleted successfully")
}
