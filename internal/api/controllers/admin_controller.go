package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"formloom/internal/models/request_models"
	"formloom/internal/models/response_models"
	"formloom/internal/services"
	"formloom/pkg/utils"
)

type AdminController struct {
	adminService     services.AdminServiceInterface
	dashboardService services.DashboardServiceInterface
}

func NewAdminController(adminService services.AdminServiceInterface, dashboardService services.DashboardServiceInterface) *AdminController {
	return &AdminController{
		adminService:     adminService,
		dashboardService: dashboardService,
	}
}

// ListUsers godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Name or email filter"
// @Success 200 {object} response_models.PagedUsers
// @Security BearerAuth
// @Router /admin/users [get]
func (a *AdminController) ListUsers(c *gin.Context) {
	var req request_models.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	users, err := a.adminService.ListUsers(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, users, "Users fetched successfully")
}

// UpdateUser godoc
// @Summary Update a user
// @Description Change plan or activation; role changes need super_admin
// @Tags Admin
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body request_models.UpdateUserRequest true "Changed fields"
// @Success 200 {object} response_models.AccountResponse
// @Security BearerAuth
// @Router /admin/users/{userId} [patch]
func (a *AdminController) UpdateUser(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	var req request_models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := a.adminService.UpdateUser(c.Request.Context(), access, userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User updated successfully")
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags Admin
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/users/{userId} [delete]
func (a *AdminController) DeleteUser(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	if err := a.adminService.DeleteUser(c.Request.Context(), access, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "User deleted successfully")
}

// Dashboard godoc
// @Summary Platform dashboard
// @Description Headline counts plus revenue and signup series for the range
// @Tags Admin
// @Produce json
// @Param start query string false "Range start (RFC3339)"
// @Param end query string false "Range end (RFC3339)"
// @Param interval query string false "day | week | month" default(day)
// @Param timezone query string false "IANA timezone" default(UTC)
// @Success 200 {object} response_models.DashboardReport
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (a *AdminController) Dashboard(c *gin.Context) {
	var rng response_models.TimeRange
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "start must be RFC3339")
			return
		}
		rng.Start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "end must be RFC3339")
			return
		}
		rng.End = parsed
	}
	rng.Interval = c.Query("interval")
	rng.Timezone = c.Query("timezone")

	report, err := a.dashboardService.Report(c.Request.Context(), rng)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Dashboard fetched successfully")
}
