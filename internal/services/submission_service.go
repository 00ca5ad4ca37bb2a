package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"formloom/internal/cache"
	"formloom/internal/models/db_models"
	"formloom/internal/models/request_models"
	"formloom/internal/models/response_models"
	"formloom/internal/questions"
	"formloom/internal/repositories"
	"formloom/pkg/memcache"
	"formloom/pkg/utils"
)

type SubmissionServiceInterface interface {
	// GetPublicSurvey serves the respondent-facing document by share token,
	// cache-first.
	GetPublicSurvey(ctx context.Context, shareToken string) (*response_models.PublicSurveyResponse, error)
	Submit(ctx context.Context, shareToken string, request request_models.SubmitResponseRequest) (*response_models.SubmissionResponse, error)
	ListResponses(ctx context.Context, access questions.AccessContext, surveyID uuid.UUID, page, pageSize int) ([]response_models.SubmissionResponse, error)
	Summary(ctx context.Context, access questions.AccessContext, surveyID uuid.UUID) (*response_models.SurveySummary, error)
}

type SubmissionService struct {
	surveyRepo   repositories.SurveyRepository
	responseRepo repositories.ResponseRepository
	surveyCache  cache.SurveyCache
	guard        *memcache.SubmitGuard
	now          func() int64
}

func NewSubmissionService(
	surveyRepo repositories.SurveyRepository,
	responseRepo repositories.ResponseRepository,
	surveyCache cache.SurveyCache,
	guard *memcache.SubmitGuard,
) SubmissionServiceInterface {
	return &SubmissionService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		surveyCache:  surveyCache,
		guard:        guard,
		now:          utils.NowUnixSeconds,
	}
}

func (s *SubmissionService) GetPublicSurvey(ctx context.Context, shareToken string) (*response_models.PublicSurveyResponse, error) {
	cached, err := s.surveyCache.Get(ctx, shareToken)
	if err != nil {
		log.Printf("survey cache read failed for %s: %v", shareToken, err)
	}
	if cached != nil {
		return cached, nil
	}

	survey, err := s.surveyRepo.FindPublishedByShareToken(ctx, shareToken)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if survey == nil {
		return nil, utils.NotFoundError("Survey not found or no longer accepting responses")
	}

	public := toPublicSurveyResponse(survey)
	if err := s.surveyCache.Set(ctx, shareToken, public); err != nil {
		log.Printf("survey cache write failed for %s: %v", shareToken, err)
	}
	return public, nil
}

func (s *SubmissionService) Submit(ctx context.Context, shareToken string, request request_models.SubmitResponseRequest) (*response_models.SubmissionResponse, error) {
	survey, err := s.surveyRepo.FindPublishedByShareToken(ctx, shareToken)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if survey == nil {
		return nil, utils.NotFoundError("Survey not found or no longer accepting responses")
	}

	settings := decodeSurveySettings(survey)
	if settings.CloseAt != nil && *settings.CloseAt < s.now() {
		return nil, utils.ValidationError("This survey is closed")
	}
	if settings.MaxResponses != nil && *settings.MaxResponses > 0 {
		count, err := s.responseRepo.CountBySurvey(ctx, survey.ID)
		if err != nil {
			return nil, utils.DatabaseError(err)
		}
		if count >= int64(*settings.MaxResponses) {
			return nil, utils.ValidationError("This survey is no longer accepting responses")
		}
	}

	if s.guard.Seen(survey.ID.String(), request.SessionID) {
		return nil, utils.ConflictError("This session has already submitted a response")
	}

	views := decodeQuestionViews(survey.Questions)
	byID := make(map[uuid.UUID]questions.QuestionView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	answers := make(map[uuid.UUID]json.RawMessage, len(request.Answers))
	for _, a := range request.Answers {
		if _, ok := byID[a.QuestionID]; !ok {
			return nil, utils.ValidationError("Answer references a question that is not part of this survey")
		}
		answers[a.QuestionID] = a.Value
	}

	if missing := questions.MissingRequired(views, answers); len(missing) > 0 {
		ids := make([]string, len(missing))
		for i, id := range missing {
			ids[i] = id.String()
		}
		return nil, utils.ValidationError(fmt.Sprintf("%d required question(s) are unanswered: %s",
			len(missing), strings.Join(ids, ", ")))
	}
	for id, raw := range answers {
		if err := questions.ValidateAnswer(byID[id], raw); err != nil {
			return nil, err
		}
	}

	var email *string
	if !settings.Anonymous {
		email = request.Email
	}
	response := &db_models.Response{
		SurveyID:  survey.ID,
		SessionID: request.SessionID,
		Email:     email,
	}
	rows := make([]db_models.Answer, 0, len(answers))
	for _, v := range views {
		raw, ok := answers[v.ID]
		if !ok || questions.AnswerEmpty(v, raw) {
			continue
		}
		rows = append(rows, db_models.Answer{
			QuestionID: v.ID,
			Value:      datatypes.JSON(raw),
		})
	}
	if err := s.responseRepo.InsertTx(ctx, response, rows); err != nil {
		return nil, utils.DatabaseError(err)
	}
	// Marked only after the row is in; a rejected submit stays retryable.
	s.guard.Mark(survey.ID.String(), request.SessionID)

	return &response_models.SubmissionResponse{
		ID:          response.ID,
		SessionID:   response.SessionID,
		SubmittedAt: response.CreatedAt,
		Answers:     answers,
	}, nil
}

func (s *SubmissionService) ListResponses(ctx context.Context, access questions.AccessContext, surveyID uuid.UUID, page, pageSize int) ([]response_models.SubmissionResponse, error) {
	if err := s.mustOwn(ctx, access, surveyID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	responses, err := s.responseRepo.ListBySurvey(ctx, surveyID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}

	out := make([]response_models.SubmissionResponse, len(responses))
	for i, r := range responses {
		answers := make(map[uuid.UUID]json.RawMessage, len(r.Answers))
		for _, a := range r.Answers {
			answers[a.QuestionID] = json.RawMessage(a.Value)
		}
		out[i] = response_models.SubmissionResponse{
			ID:          r.ID,
			SessionID:   r.SessionID,
			SubmittedAt: r.CreatedAt,
			Answers:     answers,
		}
	}
	return out, nil
}

func (s *SubmissionService) Summary(ctx context.Context, access questions.AccessContext, surveyID uuid.UUID) (*response_models.SurveySummary, error) {
	if err := s.mustOwn(ctx, access, surveyID); err != nil {
		return nil, err
	}
	survey, err := s.surveyRepo.FindByIDWithQuestions(ctx, surveyID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if survey == nil {
		return nil, utils.NotFoundError("Survey not found")
	}

	counts, err := s.responseRepo.AnswerCountsBySurvey(ctx, surveyID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	countByQuestion := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		countByQuestion[c.QuestionID] = c.AnswerCount
	}

	perQuestion := make([]response_models.QuestionAnswerBreakdown, len(survey.Questions))
	for i, q := range survey.Questions {
		perQuestion[i] = response_models.QuestionAnswerBreakdown{
			QuestionID:  q.ID,
			Title:       q.Title,
			Type:        q.Type,
			AnswerCount: countByQuestion[q.ID],
		}
	}

	return &response_models.SurveySummary{
		SurveyID:      surveyID,
		ResponseCount: survey.ResponseCount,
		PerQuestion:   perQuestion,
	}, nil
}

func (s *SubmissionService) mustOwn(ctx context.Context, access questions.AccessContext, surveyID uuid.UUID) error {
	survey, err := s.surveyRepo.FindByID(ctx, surveyID)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if survey == nil {
		return utils.NotFoundError("Survey not found")
	}
	if survey.OwnerID != access.UserID && !access.IsAdmin() {
		return utils.ForbiddenError("You do not own this survey")
	}
	return nil
}

func decodeSurveySettings(survey *db_models.Survey) db_models.SurveySettings {
	var settings db_models.SurveySettings
	if len(survey.Settings) > 0 {
		// Malformed settings behave like defaults rather than blocking intake.
		_ = json.Unmarshal(survey.Settings, &settings)
	}
	return settings
}

func toPublicSurveyResponse(survey *db_models.Survey) *response_models.PublicSurveyResponse {
	settings := decodeSurveySettings(survey)
	qs := make([]response_models.QuestionResponse, len(survey.Questions))
	for i := range survey.Questions {
		qs[i] = toQuestionResponse(&survey.Questions[i])
	}
	return &response_models.PublicSurveyResponse{
		ID:           survey.ID,
		Title:        survey.Title,
		Description:  survey.Description,
		ShowProgress: settings.ShowProgress,
		Anonymous:    settings.Anonymous,
		Shuffle:      settings.ShuffleQuestions,
		Theme:        settings.Theme,
		Questions:    qs,
	}
}
