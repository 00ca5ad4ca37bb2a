package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formloom/internal/models/request_models"
	"formloom/internal/services"
	"formloom/pkg/utils"
)

type QuestionController struct {
	questionService services.QuestionServiceInterface
}

func NewQuestionController(questionService services.QuestionServiceInterface) *QuestionController {
	return &QuestionController{
		questionService: questionService,
	}
}

// ListQuestionTypes godoc
// @Summary List question types
// @Description The builder palette, with availability resolved against the caller's plan
// @Tags Question
// @Produce json
// @Success 200 {array} response_models.QuestionTypeInfo
// @Security BearerAuth
// @Router /question-types [get]
func (q *QuestionController) ListQuestionTypes(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}

	types := q.questionService.ListQuestionTypes(access)
	utils.RespondSuccess(c, types, "Question types fetched successfully")
}

// AddQuestion godoc
// @Summary Add a question
// @Description Append a question to a survey; omitted settings fall back to the type's defaults
// @Tags Question
// @Accept json
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Param request body request_models.AddQuestionRequest true "Question type, title and settings"
// @Success 201 {object} response_models.QuestionResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /surveys/{surveyId}/questions [post]
func (q *QuestionController) AddQuestion(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}

	var req request_models.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Question type is required")
		return
	}

	question, err := q.questionService.AddQuestion(c.Request.Context(), access, surveyID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, question, "Question added successfully")
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags Question
// @Accept json
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Param questionId path string true "Question ID"
// @Param request body request_models.UpdateQuestionRequest true "Changed fields"
// @Success 200 {object} response_models.QuestionResponse
// @Security BearerAuth
// @Router /surveys/{surveyId}/questions/{questionId} [patch]
func (q *QuestionController) UpdateQuestion(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}
	questionID, ok := pathUUID(c, "questionId")
	if !ok {
		return
	}

	var req request_models.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	question, err := q.questionService.UpdateQuestion(c.Request.Context(), access, surveyID, questionID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, question, "Question updated successfully")
}

// DuplicateQuestion godoc
// @Summary Duplicate a question
// @Description Insert a copy right after the original
// @Tags Question
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Param questionId path string true "Question ID"
// @Success 201 {object} response_models.QuestionResponse
// @Security BearerAuth
// @Router /surveys/{surveyId}/questions/{questionId}/duplicate [post]
func (q *QuestionController) DuplicateQuestion(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}
	questionID, ok := pathUUID(c, "questionId")
	if !ok {
		return
	}

	question, err := q.questionService.DuplicateQuestion(c.Request.Context(), access, surveyID, questionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, question, "Question duplicated successfully")
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Description Remove a question; later questions shift up to keep positions dense
// @Tags Question
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Param questionId path string true "Question ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /surveys/{surveyId}/questions/{questionId} [delete]
func (q *QuestionController) DeleteQuestion(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}
	questionID, ok := pathUUID(c, "questionId")
	if !ok {
		return
	}

	if err := q.questionService.DeleteQuestion(c.Request.Context(), access, surveyID, questionID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Question deleted successfully")
}

// ReorderQuestions godoc
// @Summary Reorder questions
// @Description Apply a complete new ordering; every question must be listed exactly once
// @Tags Question
// @Accept json
// @Produce json
// @Param surveyId path string true "Survey ID"
// @Param request body request_models.ReorderQuestionsRequest true "Ordered question ids"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /surveys/{surveyId}/questions/reorder [put]
func (q *QuestionController) ReorderQuestions(c *gin.Context) {
	access, ok := requireAccess(c)
	if !ok {
		return
	}
	surveyID, ok := pathUUID(c, "surveyId")
	if !ok {
		return
	}

	var req request_models.ReorderQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "question_ids is required")
		return
	}

	if err := q.questionService.ReorderQuestions(c.Request.Context(), access, surveyID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Questions reordered successfully")
}
