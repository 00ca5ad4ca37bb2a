package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"formloom/internal/models/db_models"
)

type SurveyRepository interface {
	Insert(ctx context.Context, survey *db_models.Survey) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Survey, error)
	FindByIDWithQuestions(ctx context.Context, id uuid.UUID) (*db_models.Survey, error)
	FindPublishedByShareToken(ctx context.Context, token string) (*db_models.Survey, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]db_models.Survey, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	CloneTx(ctx context.Context, src *db_models.Survey, clone *db_models.Survey, questions []db_models.Question) error
	CountResponses(ctx context.Context, surveyID uuid.UUID) (int64, error)
}

type surveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

func (r *surveyRepository) Insert(ctx context.Context, survey *db_models.Survey) error {
	return r.db.WithContext(ctx).Create(survey).Error
}

func (r *surveyRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Survey, error) {
	var survey db_models.Survey
	err := r.db.WithContext(ctx).First(&survey, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) FindByIDWithQuestions(ctx context.Context, id uuid.UUID) (*db_models.Survey, error) {
	var survey db_models.Survey
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&survey, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) FindPublishedByShareToken(ctx context.Context, token string) (*db_models.Survey, error) {
	var survey db_models.Survey
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&survey, "share_token = ? AND status = ?", token, db_models.SurveyStatusPublished).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]db_models.Survey, error) {
	var surveys []db_models.Survey
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&surveys).Error
	if err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *surveyRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&db_models.Survey{}).Where("id = ?", id).Updates(fields).Error
}

func (r *surveyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Questions", "Responses").Delete(&db_models.Survey{BaseModel: db_models.BaseModel{ID: id}}).Error
}

// CloneTx writes the cloned survey and its questions in one transaction.
func (r *surveyRepository) CloneTx(ctx context.Context, src *db_models.Survey, clone *db_models.Survey, questions []db_models.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clone).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].SurveyID = clone.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *surveyRepository) CountResponses(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Response{}).Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}
