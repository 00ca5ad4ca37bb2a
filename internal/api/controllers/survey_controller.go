package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"formloom/internal/models/request_models"
	"formloom/internal/questions"
	"formloom/internal/services"
	"formloom/pkg/middleware"
	"formloom/pkg/utils"
)

type SurveyController struct {
	surveyService services.SurveyServiceInterface
}

func NewSurveyController(surveyService services.SurveyServiceInterface) *SurveyController {
	return &SurveyController{
		surveyService: surveyService,
	}
}

// requireAccess pulls the authenticated access context or writes a 401.
func requireAccess(c *gin.Context) (questions.AccessContext, bool) {
	access, ok := middleware.AccessFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authorization required")
	}
	return access, ok
}

// pathUUID parses a path parameter as a uuid or writes a 400.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// CreateSurvey godoc
// @Summary Create a survey
// @Description Create a draft survey; it gets a unique share token immediately
// @Tags Survey
// @Accept json
// @Produce json
// @Param request body request_models.CreateSurveyRequest true "Title, description and settings"
// @Success 201 {object} response_models.SurveyResponse
// @Security BearerAuth
// @Router /surveys [post]
func (s *SurveyController) CreateSurvey(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	var req request_models.CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Title is required")
		return
	}

	survey, err := s.surveyService.CreateSurvey(c.Request.Context(), access, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, survey, "Survey created successfully")
}

// ListSurveys godoc
// @Summary List my surveys
// @Tags Survey
// @Produce json
// @Success 200 {array} response_models.SurveyResponse
// @Security BearerAuth
// @Router /surveys [get]
func (s *SurveyController) ListSurveys(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	surveys, err := s.surveyService.ListSurveys(c.Request.Context(), access)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, surveys, "Surveys fetched successfully")
}

// GetSurvey godoc
// @Summary Get a survey with its questions
// @Tags Survey
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Success 200 {object} response_models.SurveyResponse
// @Security BearerAuth
// @Router /surveys/{surveyId} [get]
func (s *SurveyController) GetSurvey(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}

	survey, err := s.surveyService.GetSurvey(c.Request.Context(), access, surveyID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, survey, "Survey fetched successfully")
}

// SaveSurvey godoc
// @Summary Save survey changes
// @Description Manual save from the builder; omitted fields stay untouched
// @Tags Survey
// @Accept json
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Param request body request_models.UpdateSurveyRequest true "Changed fields"
// @Success 200 {object} response_models.SurveyResponse
// @Security BearerAuth
// @Router /surveys/{surveyId} [patch]
func (s *SurveyController) SaveSurvey(c *gin.Context) {
	s.save(c, services.SaveManual)
}

// AutoSaveSurvey godoc
// @Summary Auto-save survey changes
// @Description Timer-driven save; dropped silently if a manual save is in flight
// @Tags Survey
// @Accept json
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Param request body request_models.UpdateSurveyRequest true "Changed fields"
// @Success 200 {object} response_models.SurveyResponse
// @Security BearerAuth
// @Router /surveys/{surveyId}/autosave [patch]
func (s *SurveyController) AutoSaveSurvey(c *gin.Context) {
	s.save(c, services.SaveAuto)
}

func (s *SurveyController) save(c *gin.Context, kind services.SaveKind) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}

	var req request_models.UpdateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	survey, err := s.surveyService.SaveSurvey(c.Request.Context(), access, surveyID, req, kind)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, survey, "Survey saved successfully")
}

// PublishSurvey godoc
// @Summary Publish a survey
// @Tags Survey
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Success 200 {object} response_models.SurveyResponse
// @Security BearerAuth
// @Router /surveys/{surveyId}/publish [post]
func (s *SurveyController) PublishSurvey(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}

	survey, err := s.surveyService.PublishSurvey(c.Request.Context(), access, surveyID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, survey, "Survey published successfully")
}

// UnpublishSurvey godoc
// @Summary Unpublish a survey
// @Tags Survey
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Success 200 {object} response_models.SurveyResponse
// @Security BearerAuth
// @Router /surveys/{surveyId}/unpublish [post]
func (s *SurveyController) UnpublishSurvey(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}

	survey, err := s.surveyService.UnpublishSurvey(c.Request.Context(), access, surveyID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, survey, "Survey unpublished successfully")
}

// CloneSurvey godoc
// @Summary Clone a survey
// @Description Copy a survey and its questions into a new draft
// @Tags Survey
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Success 201 {object} response_models.SurveyResponse
// @Security BearerAuth
// @Router /surveys/{surveyId}/clone [post]
func (s *SurveyController) CloneSurvey(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}

	survey, err := s.surveyService.CloneSurvey(c.Request.Context(), access, surveyID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, survey, "Survey cloned successfully")
}

// DeleteSurvey godoc
// @Summary Delete a survey
// @Tags Survey
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /surveys/{surveyId} [delete]
func (s *SurveyController) DeleteSurvey(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}

	if err := s.surveyService.DeleteSurvey(c.Request.Context(), access, surveyID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Survey deleted successfully")
}
