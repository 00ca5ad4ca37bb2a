package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"formloom/internal/cache"
	"formloom/internal/models/db_models"
	"formloom/internal/models/request_models"
	"formloom/internal/models/response_models"
	"formloom/internal/questions"
	"formloom/internal/repositories"
	"formloom/pkg/utils"
)

type SurveyServiceInterface interface {
	CreateSurvey(ctx context.Context, access questions.AccessContext, request request_models.CreateSurveyRequest) (*response_models.SurveyResponse, error)
	GetSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID) (*response_models.SurveyResponse, error)
	ListSurveys(ctx context.Context, access questions.AccessContext) ([]response_models.SurveyResponse, error)
	// SaveSurvey handles both manual saves and the builder's auto-save timer;
	// stale or superseded saves return the current state without writing.
	SaveSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID, request request_models.UpdateSurveyRequest, kind SaveKind) (*response_models.SurveyResponse, error)
	PublishSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID) (*response_models.SurveyResponse, error)
	UnpublishSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID) (*response_models.SurveyResponse, error)
	DeleteSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID) error
	CloneSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID) (*response_models.SurveyResponse, error)
}

type SurveyService struct {
	surveyRepo   repositories.SurveyRepository
	questionRepo repositories.QuestionRepository
	surveyCache  cache.SurveyCache
	saves        *SaveCoordinator
}

func NewSurveyService(
	surveyRepo repositories.SurveyRepository,
	questionRepo repositories.QuestionRepository,
	surveyCache cache.SurveyCache,
	saves *SaveCoordinator,
) SurveyServiceInterface {
	return &SurveyService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		surveyCache:  surveyCache,
		saves:        saves,
	}
}

// ownedSurvey loads a survey and enforces ownership. Admin roles may touch any
// survey.
func (s *SurveyService) ownedSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID) (*db_models.Survey, error) {
	survey, err := s.surveyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if survey == nil {
		return nil, utils.NotFoundError("Survey not found")
	}
	if survey.OwnerID != access.UserID && !access.IsAdmin() {
		return nil, utils.ForbiddenError("You do not own this survey")
	}
	return survey, nil
}

func (s *SurveyService) CreateSurvey(ctx context.Context, access questions.AccessContext, request request_models.CreateSurveyRequest) (*response_models.SurveyResponse, error) {
	settings := datatypes.JSON("{}")
	if len(request.Settings) > 0 {
		var parsed db_models.SurveySettings
		if err := json.Unmarshal(request.Settings, &parsed); err != nil {
			return nil, utils.ValidationError("Survey settings are malformed")
		}
		settings = datatypes.JSON(request.Settings)
	}

	token, err := utils.GenerateSecureToken(16)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}

	survey := &db_models.Survey{
		OwnerID:     access.UserID,
		Title:       request.Title,
		Description: request.Description,
		Status:      db_models.SurveyStatusDraft,
		Settings:    settings,
		ShareToken:  token,
	}
	if err := s.surveyRepo.Insert(ctx, survey); err != nil {
		return nil, utils.DatabaseError(err)
	}

	resp := toSurveyResponse(survey, nil)
	return &resp, nil
}

func (s *SurveyService) GetSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID) (*response_models.SurveyResponse, error) {
	if _, err := s.ownedSurvey(ctx, access, id); err != nil {
		return nil, err
	}
	survey, err := s.surveyRepo.FindByIDWithQuestions(ctx, id)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if survey == nil {
		return nil, utils.NotFoundError("Survey not found")
	}
	resp := toSurveyResponse(survey, survey.Questions)
	return &resp, nil
}

func (s *SurveyService) ListSurveys(ctx context.Context, access questions.AccessContext) ([]response_models.SurveyResponse, error) {
	surveys, err := s.surveyRepo.ListByOwner(ctx, access.UserID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	out := make([]response_models.SurveyResponse, len(surveys))
	for i := range surveys {
		out[i] = toSurveyResponse(&surveys[i], nil)
	}
	return out, nil
}

func (s *SurveyService) SaveSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID, request request_models.UpdateSurveyRequest, kind SaveKind) (*response_models.SurveyResponse, error) {
	survey, err := s.ownedSurvey(ctx, access, id)
	if err != nil {
		return nil, err
	}

	if kind == SaveAuto {
		title := survey.Title
		if request.Title != nil {
			title = *request.Title
		}
		qs, err := s.questionRepo.ListBySurvey(ctx, id)
		if err != nil {
			return nil, utils.DatabaseError(err)
		}
		if !ShouldAutoSave(survey.ID != uuid.Nil, title, len(qs)) {
			// Nothing worth persisting yet; refuse without writing.
			resp := toSurveyResponse(survey, nil)
			return &resp, nil
		}
	}

	seq, ok := s.saves.Begin(id, kind)
	if !ok {
		// Dropped auto-save; report the current state untouched.
		resp := toSurveyResponse(survey, nil)
		return &resp, nil
	}

	fields := map[string]interface{}{}
	if request.Title != nil {
		fields["title"] = *request.Title
	}
	if request.Description != nil {
		fields["description"] = *request.Description
	}
	if request.Settings != nil {
		var parsed db_models.SurveySettings
		if err := json.Unmarshal(*request.Settings, &parsed); err != nil {
			s.saves.Commit(id, seq, kind)
			return nil, utils.ValidationError("Survey settings are malformed")
		}
		fields["settings"] = datatypes.JSON(*request.Settings)
	}

	if len(fields) > 0 {
		if err := s.surveyRepo.UpdateFields(ctx, id, fields); err != nil {
			s.saves.Commit(id, seq, kind)
			return nil, utils.DatabaseError(err)
		}
	}
	if !s.saves.Commit(id, seq, kind) {
		// Superseded while writing; the newer save's reload is authoritative.
		log.Printf("survey %s: save %d superseded by a newer save", id, seq)
	}

	if survey.Status == db_models.SurveyStatusPublished {
		s.invalidate(ctx, survey.ShareToken)
	}

	updated, err := s.surveyRepo.FindByID(ctx, id)
	if err != nil || updated == nil {
		return nil, utils.DatabaseError(err)
	}
	resp := toSurveyResponse(updated, nil)
	return &resp, nil
}

func (s *SurveyService) PublishSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID) (*response_models.SurveyResponse, error) {
	survey, err := s.ownedSurvey(ctx, access, id)
	if err != nil {
		return nil, err
	}
	if survey.Status == db_models.SurveyStatusPublished {
		resp := toSurveyResponse(survey, nil)
		return &resp, nil
	}

	qs, err := s.questionRepo.ListBySurvey(ctx, id)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if len(qs) == 0 {
		return nil, utils.ValidationError("A survey needs at least one question before publishing")
	}

	fields := map[string]interface{}{
		"status":       db_models.SurveyStatusPublished,
		"published_at": utils.NowUnixSeconds(),
	}
	if err := s.surveyRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, utils.DatabaseError(err)
	}
	s.invalidate(ctx, survey.ShareToken)

	survey.Status = db_models.SurveyStatusPublished
	resp := toSurveyResponse(survey, nil)
	return &resp, nil
}

func (s *SurveyService) UnpublishSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID) (*response_models.SurveyResponse, error) {
	survey, err := s.ownedSurvey(ctx, access, id)
	if err != nil {
		return nil, err
	}
	if survey.Status != db_models.SurveyStatusPublished {
		resp := toSurveyResponse(survey, nil)
		return &resp, nil
	}

	fields := map[string]interface{}{"status": db_models.SurveyStatusDraft}
	if err := s.surveyRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, utils.DatabaseError(err)
	}
	s.invalidate(ctx, survey.ShareToken)

	survey.Status = db_models.SurveyStatusDraft
	resp := toSurveyResponse(survey, nil)
	return &resp, nil
}

func (s *SurveyService) DeleteSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID) error {
	survey, err := s.ownedSurvey(ctx, access, id)
	if err != nil {
		return err
	}
	if err := s.surveyRepo.Delete(ctx, id); err != nil {
		return utils.DatabaseError(err)
	}
	s.invalidate(ctx, survey.ShareToken)
	return nil
}

// CloneSurvey copies a survey and its questions into a fresh draft. Responses
// stay behind; the clone gets its own share token.
func (s *SurveyService) CloneSurvey(ctx context.Context, access questions.AccessContext, id uuid.UUID) (*response_models.SurveyResponse, error) {
	if _, err := s.ownedSurvey(ctx, access, id); err != nil {
		return nil, err
	}
	src, err := s.surveyRepo.FindByIDWithQuestions(ctx, id)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if src == nil {
		return nil, utils.NotFoundError("Survey not found")
	}

	token, err := utils.GenerateSecureToken(16)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}

	clone := &db_models.Survey{
		OwnerID:     access.UserID,
		Title:       src.Title + " (copy)",
		Description: src.Description,
		Status:      db_models.SurveyStatusDraft,
		Settings:    src.Settings,
		ShareToken:  token,
	}
	cloned := make([]db_models.Question, len(src.Questions))
	for i, q := range src.Questions {
		cloned[i] = db_models.Question{
			Type:        q.Type,
			Title:       q.Title,
			Description: q.Description,
			Required:    q.Required,
			Position:    q.Position,
			Settings:    q.Settings,
		}
	}
	if err := s.surveyRepo.CloneTx(ctx, src, clone, cloned); err != nil {
		return nil, utils.DatabaseError(err)
	}

	resp := toSurveyResponse(clone, nil)
	return &resp, nil
}

func (s *SurveyService) invalidate(ctx context.Context, shareToken string) {
	if err := s.surveyCache.Delete(ctx, shareToken); err != nil {
		log.Printf("survey cache invalidation failed for %s: %v", shareToken, err)
	}
}

func toSurveyResponse(survey *db_models.Survey, qs []db_models.Question) response_models.SurveyResponse {
	resp := response_models.SurveyResponse{
		ID:            survey.ID,
		Title:         survey.Title,
		Description:   survey.Description,
		Status:        string(survey.Status),
		Settings:      json.RawMessage(survey.Settings),
		ShareToken:    survey.ShareToken,
		ResponseCount: survey.ResponseCount,
		CreatedAt:     survey.CreatedAt,
		UpdatedAt:     survey.UpdatedAt,
	}
	if len(qs) > 0 {
		resp.Questions = make([]response_models.QuestionResponse, len(qs))
		for i := range qs {
			resp.Questions[i] = toQuestionResponse(&qs[i])
		}
	}
	return resp
}

func toQuestionResponse(q *db_models.Question) response_models.QuestionResponse {
	resp := response_models.QuestionResponse{
		ID:          q.ID,
		Type:        q.Type,
		Title:       q.Title,
		Description: q.Description,
		Required:    q.Required,
		Position:    q.Position,
		Settings:    json.RawMessage(q.Settings),
	}
	if settings, err := questions.DecodeSettings(q.Type, q.Settings); err == nil {
		if emoji, ok := settings.(*questions.EmojiSettings); ok {
			resp.EmojiOptions = emoji.RenderOptions()
		}
	}
	return resp
}
