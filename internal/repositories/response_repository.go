package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"formloom/internal/models/db_models"
)

type QuestionAnswerCount struct {
	QuestionID  uuid.UUID `gorm:"column:question_id"`
	AnswerCount int64     `gorm:"column:answer_count"`
}

type ResponseRepository interface {
	// InsertTx stores the response, its answers, and bumps the survey's
	// response counter atomically. Nothing persists on failure.
	InsertTx(ctx context.Context, response *db_models.Response, answers []db_models.Answer) error
	ListBySurvey(ctx context.Context, surveyID uuid.UUID, offset, limit int) ([]db_models.Response, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Response, error)
	CountBySurvey(ctx context.Context, surveyID uuid.UUID) (int64, error)
	AnswerCountsBySurvey(ctx context.Context, surveyID uuid.UUID) ([]QuestionAnswerCount, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) InsertTx(ctx context.Context, response *db_models.Response, answers []db_models.Answer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].ResponseID = response.ID
			if err := tx.Create(&answers[i]).Error; err != nil {
				return err
			}
		}
		return tx.Model(&db_models.Survey{}).
			Where("id = ?", response.SurveyID).
			Update("response_count", gorm.Expr("response_count + 1")).Error
	})
}

func (r *responseRepository) ListBySurvey(ctx context.Context, surveyID uuid.UUID, offset, limit int) ([]db_models.Response, error) {
	var responses []db_models.Response
	err := r.db.WithContext(ctx).
		Preload("Answers").
		Where("survey_id = ?", surveyID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Response, error) {
	var response db_models.Response
	err := r.db.WithContext(ctx).Preload("Answers").First(&response, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) CountBySurvey(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Response{}).
		Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}

func (r *responseRepository) AnswerCountsBySurvey(ctx context.Context, surveyID uuid.UUID) ([]QuestionAnswerCount, error) {
	var rows []QuestionAnswerCount
	err := r.db.WithContext(ctx).
		Table("answers").
		Select("answers.question_id AS question_id, COUNT(*) AS answer_count").
		Joins("JOIN responses ON responses.id = answers.response_id").
		Where("responses.survey_id = ? AND answers.deleted_at IS NULL", surveyID).
		Group("answers.question_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
