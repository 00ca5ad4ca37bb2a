package services

import (
	"context"

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

type QuestionServiceInterface interface {
	// ListQuestionTypes returns the builder palette with per-type availability
	// for the caller's plan.
	ListQuestionTypes(access questions.AccessContext) []response_models.QuestionTypeInfo
	AddQuestion(ctx context.Context, access questions.AccessContext, surveyID uuid.UUID, request request_models.AddQuestionRequest) (*response_models.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, access questions.AccessContext, surveyID, questionID uuid.UUID, request request_models.UpdateQuestionRequest) (*response_models.QuestionResponse, error)
	DuplicateQuestion(ctx context.Context, access questions.AccessContext, surveyID, questionID uuid.UUID) (*response_models.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, access questions.AccessContext, surveyID, questionID uuid.UUID) error
	ReorderQuestions(ctx context.Context, access questions.AccessContext, surveyID uuid.UUID, request request_models.ReorderQuestionsRequest) error
}

type QuestionService struct {
	surveyRepo   repositories.SurveyRepository
	questionRepo repositories.QuestionRepository
	surveyCache  cache.SurveyCache
}

func NewQuestionService(
	surveyRepo repositories.SurveyRepository,
	questionRepo repositories.QuestionRepository,
	surveyCache cache.SurveyCache,
) QuestionServiceInterface {
	return &QuestionService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		surveyCache:  surveyCache,
	}
}

func (s *QuestionService) ListQuestionTypes(access questions.AccessContext) []response_models.QuestionTypeInfo {
	types := questions.AllQuestionTypes()
	out := make([]response_models.QuestionTypeInfo, len(types))
	for i, d := range types {
		out[i] = response_models.QuestionTypeInfo{
			ID:        d.ID,
			Name:      d.Name,
			Category:  d.Category,
			Icon:      d.Icon,
			MinPlan:   string(d.MinPlan),
			Available: questions.HasAccess(d.ID, access.Plan, access.Role),
		}
	}
	return out
}

func (s *QuestionService) ownedSurvey(ctx context.Context, access questions.AccessContext, surveyID uuid.UUID) (*db_models.Survey, error) {
	survey, err := s.surveyRepo.FindByID(ctx, surveyID)
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

func (s *QuestionService) surveyQuestion(ctx context.Context, surveyID, questionID uuid.UUID) (*db_models.Question, error) {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if question == nil || question.SurveyID != surveyID {
		return nil, utils.NotFoundError("Question not found")
	}
	return question, nil
}

func (s *QuestionService) AddQuestion(ctx context.Context, access questions.AccessContext, surveyID uuid.UUID, request request_models.AddQuestionRequest) (*response_models.QuestionResponse, error) {
	survey, err := s.ownedSurvey(ctx, access, surveyID)
	if err != nil {
		return nil, err
	}

	if _, ok := questions.QuestionType(request.Type); !ok {
		return nil, utils.ValidationError("Unknown question type: " + request.Type)
	}
	// The palette disables gated types, but the check has to hold server-side
	// too.
	if !questions.HasAccess(request.Type, access.Plan, access.Role) {
		return nil, utils.ForbiddenError("This question type requires a higher plan")
	}

	settings, err := questions.DecodeSettings(request.Type, request.Settings)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	encoded, err := questions.EncodeSettings(settings)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}

	position, err := s.questionRepo.NextPosition(ctx, surveyID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}

	question := &db_models.Question{
		SurveyID:    surveyID,
		Type:        request.Type,
		Title:       request.Title,
		Description: request.Description,
		Required:    request.Required,
		Position:    position,
		Settings:    datatypes.JSON(encoded),
	}
	if err := s.questionRepo.Insert(ctx, question); err != nil {
		return nil, utils.DatabaseError(err)
	}
	s.invalidate(ctx, survey)

	resp := toQuestionResponse(question)
	return &resp, nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, access questions.AccessContext, surveyID, questionID uuid.UUID, request request_models.UpdateQuestionRequest) (*response_models.QuestionResponse, error) {
	survey, err := s.ownedSurvey(ctx, access, surveyID)
	if err != nil {
		return nil, err
	}
	question, err := s.surveyQuestion(ctx, surveyID, questionID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if request.Title != nil {
		fields["title"] = *request.Title
	}
	if request.Description != nil {
		fields["description"] = *request.Description
	}
	if request.Required != nil {
		fields["required"] = *request.Required
	}
	if request.Settings != nil {
		settings, err := questions.DecodeSettings(question.Type, *request.Settings)
		if err != nil {
			return nil, err
		}
		if err := settings.Validate(); err != nil {
			return nil, err
		}
		encoded, err := questions.EncodeSettings(settings)
		if err != nil {
			return nil, utils.DatabaseError(err)
		}
		fields["settings"] = datatypes.JSON(encoded)
	}
	if len(fields) == 0 {
		return nil, utils.ValidationError("Nothing to update")
	}

	if err := s.questionRepo.UpdateFields(ctx, questionID, fields); err != nil {
		return nil, utils.DatabaseError(err)
	}
	s.invalidate(ctx, survey)

	updated, err := s.surveyQuestion(ctx, surveyID, questionID)
	if err != nil {
		return nil, err
	}
	resp := toQuestionResponse(updated)
	return &resp, nil
}

// DuplicateQuestion inserts a copy right after the source and shifts the rest
// down via reorder.
func (s *QuestionService) DuplicateQuestion(ctx context.Context, access questions.AccessContext, surveyID, questionID uuid.UUID) (*response_models.QuestionResponse, error) {
	survey, err := s.ownedSurvey(ctx, access, surveyID)
	if err != nil {
		return nil, err
	}
	src, err := s.surveyQuestion(ctx, surveyID, questionID)
	if err != nil {
		return nil, err
	}

	position, err := s.questionRepo.NextPosition(ctx, surveyID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	copyQ := &db_models.Question{
		SurveyID:    surveyID,
		Type:        src.Type,
		Title:       src.Title + " (copy)",
		Description: src.Description,
		Required:    src.Required,
		Position:    position,
		Settings:    src.Settings,
	}
	if err := s.questionRepo.Insert(ctx, copyQ); err != nil {
		return nil, utils.DatabaseError(err)
	}

	all, err := s.questionRepo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	ordered := make([]uuid.UUID, 0, len(all))
	for _, q := range all {
		if q.ID == copyQ.ID {
			continue
		}
		ordered = append(ordered, q.ID)
		if q.ID == src.ID {
			ordered = append(ordered, copyQ.ID)
		}
	}
	if err := s.questionRepo.Reorder(ctx, surveyID, ordered); err != nil {
		return nil, utils.DatabaseError(err)
	}
	s.invalidate(ctx, survey)

	copyQ.Position = src.Position + 1
	resp := toQuestionResponse(copyQ)
	return &resp, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, access questions.AccessContext, surveyID, questionID uuid.UUID) error {
	survey, err := s.ownedSurvey(ctx, access, surveyID)
	if err != nil {
		return err
	}
	question, err := s.surveyQuestion(ctx, surveyID, questionID)
	if err != nil {
		return err
	}
	if err := s.questionRepo.DeleteAndCompact(ctx, question); err != nil {
		return utils.DatabaseError(err)
	}
	s.invalidate(ctx, survey)
	return nil
}

func (s *QuestionService) ReorderQuestions(ctx context.Context, access questions.AccessContext, surveyID uuid.UUID, request request_models.ReorderQuestionsRequest) error {
	survey, err := s.ownedSurvey(ctx, access, surveyID)
	if err != nil {
		return err
	}

	existing, err := s.questionRepo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if len(request.QuestionIDs) != len(existing) {
		return utils.ValidationError("Reorder must list every question exactly once")
	}
	known := make(map[uuid.UUID]struct{}, len(existing))
	for _, q := range existing {
		known[q.ID] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{}, len(request.QuestionIDs))
	for _, id := range request.QuestionIDs {
		if _, ok := known[id]; !ok {
			return utils.ValidationError("Reorder references a question that is not in this survey")
		}
		if _, dup := seen[id]; dup {
			return utils.ValidationError("Reorder lists a question twice")
		}
		seen[id] = struct{}{}
	}

	if err := s.questionRepo.Reorder(ctx, surveyID, request.QuestionIDs); err != nil {
		return utils.DatabaseError(err)
	}
	s.invalidate(ctx, survey)
	return nil
}

func (s *QuestionService) invalidate(ctx context.Context, survey *db_models.Survey) {
	if survey.Status == db_models.SurveyStatusPublished {
		_ = s.surveyCache.Delete(ctx, survey.ShareToken)
	}
}

// decodeQuestionViews turns db rows into the typed views validation consumes.
// Rows with undecodable settings are skipped rather than failing the survey.
func decodeQuestionViews(qs []db_models.Question) []questions.QuestionView {
	views := make([]questions.QuestionView, 0, len(qs))
	for _, q := range qs {
		settings, err := questions.DecodeSettings(q.Type, q.Settings)
		if err != nil {
			continue
		}
		views = append(views, questions.QuestionView{
			ID:       q.ID,
			Type:     q.Type,
			Title:    q.Title,
			Required: q.Required,
			Settings: settings,
		})
	}
	return views
}
