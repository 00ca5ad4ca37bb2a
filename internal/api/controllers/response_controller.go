package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"formloom/internal/models/request_models"
	"formloom/internal/services"
	"formloom/pkg/utils"
)

type ResponseController struct {
	submissionService services.SubmissionServiceInterface
}

func NewResponseController(submissionService services.SubmissionServiceInterface) *ResponseController {
	return &ResponseController{
		submissionService: submissionService,
	}
}

// GetPublicSurvey godoc
// @Summary Fetch a survey for answering
// @Description Respondent-facing survey document looked up by share token; no auth needed
// @Tags Respond
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} response_models.PublicSurveyResponse
// @Failure 404 {object} utils.APIResponse
// @Router /s/{token} [get]
func (r *ResponseController) GetPublicSurvey(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		utils.RespondError(c, http.StatusBadRequest, "Share token is required")
		return
	}

	survey, err := r.submissionService.GetPublicSurvey(c.Request.Context(), token)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, survey, "Survey fetched successfully")
}

// Submit godoc
// @Summary Submit a response
// @Description Validate and store a respondent's answers; one submission per session
// @Tags Respond
// @Accept json
// @Produce json
// @Param token path string true "Share token"
// @Param request body request_models.SubmitResponseRequest true "Session id and answers"
// @Success 201 {object} response_models.SubmissionResponse
// @Failure 409 {object} utils.APIResponse
// @Router /s/{token}/submit [post]
func (r *ResponseController) Submit(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		utils.RespondError(c, http.StatusBadRequest, "Share token is required")
		return
	}

	var req request_models.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "session_id and answers are required")
		return
	}

	submission, err := r.submissionService.Submit(c.Request.Context(), token, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, submission, "Response submitted successfully")
}

// ListResponses godoc
// @Summary List survey responses
// @Tags Respond
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {array} response_models.SubmissionResponse
// @Security BearerAuth
// @Router /surveys/{surveyId}/responses [get]
func (r *ResponseController) ListResponses(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	responses, err := r.submissionService.ListResponses(c.Request.Context(), access, surveyID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, responses, "Responses fetched successfully")
}

// Summary godoc
// @Summary Per-question answer summary
// @Tags Respond
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Success 200 {object} response_models.SurveySummary
// @Security BearerAuth
// @Router /surveys/{surveyId}/summary [get]
func (r *ResponseController) Summary(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}

	summary, err := r.submissionService.Summary(c.Request.Context(), access, surveyID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Summary fetched successfully")
}
