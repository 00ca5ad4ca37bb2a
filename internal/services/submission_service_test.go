package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"formloom/internal/models/db_models"
	"formloom/internal/models/request_models"
	"formloom/internal/models/response_models"
	"formloom/internal/repositories"
	"formloom/pkg/memcache"
	"formloom/pkg/utils"
)

type fakeSurveyRepo struct {
	repositories.SurveyRepository
	survey *db_models.Survey
}

func (f *fakeSurveyRepo) FindPublishedByShareToken(_ context.Context, token string) (*db_models.Survey, error) {
	if f.survey != nil && f.survey.ShareToken == token {
		return f.survey, nil
	}
	return nil, nil
}

type fakeResponseRepo struct {
	repositories.ResponseRepository
	count    int64
	inserted *db_models.Response
	answers  []db_models.Answer
}

func (f *fakeResponseRepo) CountBySurvey(context.Context, uuid.UUID) (int64, error) {
	return f.count, nil
}

func (f *fakeResponseRepo) InsertTx(_ context.Context, response *db_models.Response, answers []db_models.Answer) error {
	response.ID = uuid.New()
	f.inserted = response
	f.answers = answers
	return nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*response_models.PublicSurveyResponse, error) {
	return nil, nil
}
func (noopCache) Set(context.Context, string, *response_models.PublicSurveyResponse) error {
	return nil
}
func (noopCache) Delete(context.Context, string) error { return nil }

func newSubmitFixture(settings db_models.SurveySettings) (*SubmissionService, *fakeResponseRepo, *db_models.Survey) {
	raw, _ := json.Marshal(settings)
	q1 := db_models.Question{BaseModel: db_models.BaseModel{ID: uuid.New()}, Type: "short_text", Title: "Name", Required: true, Settings: datatypes.JSON(`{}`)}
	q2 := db_models.Question{BaseModel: db_models.BaseModel{ID: uuid.New()}, Type: "rating", Title: "Score", Required: true, Settings: datatypes.JSON(`{"max":5}`)}
	q3 := db_models.Question{BaseModel: db_models.BaseModel{ID: uuid.New()}, Type: "long_text", Title: "Comments", Settings: datatypes.JSON(`{}`)}
	survey := &db_models.Survey{
		BaseModel:  db_models.BaseModel{ID: uuid.New()},
		Status:     db_models.SurveyStatusPublished,
		ShareToken: "tok123",
		Settings:   datatypes.JSON(raw),
		Questions:  []db_models.Question{q1, q2, q3},
	}
	responses := &fakeResponseRepo{}
	svc := &SubmissionService{
		surveyRepo:   &fakeSurveyRepo{survey: survey},
		responseRepo: responses,
		surveyCache:  noopCache{},
		guard:        memcache.NewSubmitGuard(time.Minute),
		now:          utils.NowUnixSeconds,
	}
	return svc, responses, survey
}

func answerJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestSubmitReportsExactMissingRequiredCount(t *testing.T) {
	svc, _, survey := newSubmitFixture(db_models.SurveySettings{})

	// Only the optional question is answered; both required ones are missing.
	req := request_models.SubmitResponseRequest{
		SessionID: "sess-1",
		Answers: []request_models.SubmitAnswer{
			{QuestionID: survey.Questions[2].ID, Value: answerJSON(t, "looks good")},
		},
	}
	_, err := svc.Submit(context.Background(), "tok123", req)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(err.Error(), "2 required question(s)") {
		t.Fatalf("error should name the missing count, got %q", err.Error())
	}
}

func TestSubmitStoresAnswersAndBumpsNothingOnValidInput(t *testing.T) {
	svc, responses, survey := newSubmitFixture(db_models.SurveySettings{})

	email := "resp@example.com"
	req := request_models.SubmitResponseRequest{
		SessionID: "sess-2",
		Email:     &email,
		Answers: []request_models.SubmitAnswer{
			{QuestionID: survey.Questions[0].ID, Value: answerJSON(t, "Ada")},
			{QuestionID: survey.Questions[1].ID, Value: answerJSON(t, 4)},
		},
	}
	out, err := svc.Submit(context.Background(), "tok123", req)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if out.SessionID != "sess-2" {
		t.Errorf("session id = %q", out.SessionID)
	}
	if len(responses.answers) != 2 {
		t.Fatalf("stored %d answers, want 2", len(responses.answers))
	}
	if responses.inserted.Email == nil || *responses.inserted.Email != email {
		t.Error("email should be kept when the survey is not anonymous")
	}
}

func TestSubmitDropsEmailForAnonymousSurveys(t *testing.T) {
	svc, responses, survey := newSubmitFixture(db_models.SurveySettings{Anonymous: true})

	email := "resp@example.com"
	req := request_models.SubmitResponseRequest{
		SessionID: "sess-3",
		Email:     &email,
		Answers: []request_models.SubmitAnswer{
			{QuestionID: survey.Questions[0].ID, Value: answerJSON(t, "Ada")},
			{QuestionID: survey.Questions[1].ID, Value: answerJSON(t, 5)},
		},
	}
	if _, err := svc.Submit(context.Background(), "tok123", req); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if responses.inserted.Email != nil {
		t.Error("anonymous surveys must not store the respondent email")
	}
}

func TestSubmitRejectsDuplicateSession(t *testing.T) {
	svc, _, survey := newSubmitFixture(db_models.SurveySettings{})

	req := request_models.SubmitResponseRequest{
		SessionID: "sess-4",
		Answers: []request_models.SubmitAnswer{
			{QuestionID: survey.Questions[0].ID, Value: answerJSON(t, "Ada")},
			{QuestionID: survey.Questions[1].ID, Value: answerJSON(t, 3)},
		},
	}
	if _, err := svc.Submit(context.Background(), "tok123", req); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	_, err := svc.Submit(context.Background(), "tok123", req)
	if utils.KindOf(err) != utils.KindConflict {
		t.Fatalf("second submit should conflict, got %v", err)
	}
}

func TestSubmitFailedAttemptLeavesSessionRetryable(t *testing.T) {
	svc, responses, survey := newSubmitFixture(db_models.SurveySettings{})

	incomplete := request_models.SubmitResponseRequest{
		SessionID: "sess-8",
		Answers: []request_models.SubmitAnswer{
			{QuestionID: survey.Questions[0].ID, Value: answerJSON(t, "Ada")},
		},
	}
	if _, err := svc.Submit(context.Background(), "tok123", incomplete); utils.KindOf(err) != utils.KindValidation {
		t.Fatalf("incomplete submit should fail validation, got %v", err)
	}

	corrected := request_models.SubmitResponseRequest{
		SessionID: "sess-8",
		Answers: []request_models.SubmitAnswer{
			{QuestionID: survey.Questions[0].ID, Value: answerJSON(t, "Ada")},
			{QuestionID: survey.Questions[1].ID, Value: answerJSON(t, 4)},
		},
	}
	if _, err := svc.Submit(context.Background(), "tok123", corrected); err != nil {
		t.Fatalf("corrected retry from the same session should succeed, got %v", err)
	}
	if responses.inserted == nil {
		t.Fatal("corrected retry should persist the response")
	}

	_, err := svc.Submit(context.Background(), "tok123", corrected)
	if utils.KindOf(err) != utils.KindConflict {
		t.Fatalf("resubmit after success should conflict, got %v", err)
	}
}

func TestSubmitClosedSurvey(t *testing.T) {
	past := time.Now().Add(-time.Hour).Unix()
	svc, _, survey := newSubmitFixture(db_models.SurveySettings{CloseAt: &past})

	req := request_models.SubmitResponseRequest{
		SessionID: "sess-5",
		Answers: []request_models.SubmitAnswer{
			{QuestionID: survey.Questions[0].ID, Value: answerJSON(t, "Ada")},
			{QuestionID: survey.Questions[1].ID, Value: answerJSON(t, 3)},
		},
	}
	_, err := svc.Submit(context.Background(), "tok123", req)
	if utils.KindOf(err) != utils.KindValidation {
		t.Fatalf("closed survey should reject with validation error, got %v", err)
	}
}

func TestSubmitRespectsMaxResponses(t *testing.T) {
	limit := 10
	svc, responses, survey := newSubmitFixture(db_models.SurveySettings{MaxResponses: &limit})
	responses.count = 10

	req := request_models.SubmitResponseRequest{
		SessionID: "sess-6",
		Answers: []request_models.SubmitAnswer{
			{QuestionID: survey.Questions[0].ID, Value: answerJSON(t, "Ada")},
			{QuestionID: survey.Questions[1].ID, Value: answerJSON(t, 3)},
		},
	}
	if _, err := svc.Submit(context.Background(), "tok123", req); err == nil {
		t.Fatal("submit at the response cap should be rejected")
	}
}

func TestSubmitUnknownQuestionID(t *testing.T) {
	svc, _, _ := newSubmitFixture(db_models.SurveySettings{})

	req := request_models.SubmitResponseRequest{
		SessionID: "sess-7",
		Answers: []request_models.SubmitAnswer{
			{QuestionID: uuid.New(), Value: answerJSON(t, "stray")},
		},
	}
	_, err := svc.Submit(context.Background(), "tok123", req)
	if utils.KindOf(err) != utils.KindValidation {
		t.Fatalf("unknown question id should be rejected, got %v", err)
	}
}
