package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"formloom/internal/models/db_models"
	"formloom/internal/models/request_models"
	"formloom/internal/questions"
	"formloom/internal/repositories"
)

type stubSurveyRepo struct {
	repositories.SurveyRepository
	survey  *db_models.Survey
	updates []map[string]interface{}
}

func (f *stubSurveyRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Survey, error) {
	if f.survey != nil && f.survey.ID == id {
		return f.survey, nil
	}
	return nil, nil
}

func (f *stubSurveyRepo) UpdateFields(_ context.Context, _ uuid.UUID, fields map[string]interface{}) error {
	f.updates = append(f.updates, fields)
	if title, ok := fields["title"].(string); ok {
		f.survey.Title = title
	}
	return nil
}

type stubQuestionRepo struct {
	repositories.QuestionRepository
	questions []db_models.Question
}

func (f *stubQuestionRepo) ListBySurvey(context.Context, uuid.UUID) ([]db_models.Question, error) {
	return f.questions, nil
}

func newSaveFixture(title string, questionCount int) (*SurveyService, *stubSurveyRepo, questions.AccessContext, uuid.UUID) {
	owner := uuid.New()
	survey := &db_models.Survey{
		BaseModel: db_models.BaseModel{ID: uuid.New()},
		OwnerID:   owner,
		Title:     title,
		Status:    db_models.SurveyStatusDraft,
	}
	qs := make([]db_models.Question, questionCount)
	surveys := &stubSurveyRepo{survey: survey}
	svc := &SurveyService{
		surveyRepo:   surveys,
		questionRepo: &stubQuestionRepo{questions: qs},
		surveyCache:  noopCache{},
		saves:        NewSaveCoordinator(),
	}
	access := questions.AccessContext{UserID: owner, Role: questions.RoleUser, Plan: questions.PlanFree}
	return svc, surveys, access, survey.ID
}

func strptr(s string) *string { return &s }

func TestAutoSaveRefusedForEmptySurvey(t *testing.T) {
	svc, surveys, access, id := newSaveFixture("", 0)

	req := request_models.UpdateSurveyRequest{Description: strptr("work in progress")}
	resp, err := svc.SaveSurvey(context.Background(), access, id, req, SaveAuto)
	if err != nil {
		t.Fatalf("refused auto-save should not error: %v", err)
	}
	if resp == nil {
		t.Fatal("refused auto-save should still report the current state")
	}
	if len(surveys.updates) != 0 {
		t.Fatalf("auto-save of an untitled, questionless survey wrote %d updates, want 0", len(surveys.updates))
	}
}

func TestAutoSaveProceedsOnceTitled(t *testing.T) {
	svc, surveys, access, id := newSaveFixture("", 0)

	req := request_models.UpdateSurveyRequest{Title: strptr("Customer poll")}
	if _, err := svc.SaveSurvey(context.Background(), access, id, req, SaveAuto); err != nil {
		t.Fatalf("auto-save failed: %v", err)
	}
	if len(surveys.updates) != 1 {
		t.Fatalf("titled auto-save wrote %d updates, want 1", len(surveys.updates))
	}
}

func TestAutoSaveProceedsWithQuestions(t *testing.T) {
	svc, surveys, access, id := newSaveFixture("", 2)

	req := request_models.UpdateSurveyRequest{Description: strptr("has questions")}
	if _, err := svc.SaveSurvey(context.Background(), access, id, req, SaveAuto); err != nil {
		t.Fatalf("auto-save failed: %v", err)
	}
	if len(surveys.updates) != 1 {
		t.Fatalf("auto-save with questions wrote %d updates, want 1", len(surveys.updates))
	}
}

func TestManualSaveSkipsAutoSaveGuard(t *testing.T) {
	svc, surveys, access, id := newSaveFixture("", 0)

	req := request_models.UpdateSurveyRequest{Description: strptr("saved on purpose")}
	if _, err := svc.SaveSurvey(context.Background(), access, id, req, SaveManual); err != nil {
		t.Fatalf("manual save failed: %v", err)
	}
	if len(surveys.updates) != 1 {
		t.Fatalf("manual save of an empty survey wrote %d updates, want 1", len(surveys.updates))
	}
}
