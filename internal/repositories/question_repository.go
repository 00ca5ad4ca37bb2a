package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"formloom/internal/models/db_models"
)

type QuestionRepository interface {
	Insert(ctx context.Context, question *db_models.Question) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Question, error)
	ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]db_models.Question, error)
	NextPosition(ctx context.Context, surveyID uuid.UUID) (int, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteAndCompact(ctx context.Context, question *db_models.Question) error
	Reorder(ctx context.Context, surveyID uuid.UUID, orderedIDs []uuid.UUID) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Insert(ctx context.Context, question *db_models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Question, error) {
	var question db_models.Question
	err := r.db.WithContext(ctx).First(&question, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]db_models.Question, error) {
	var questions []db_models.Question
	err := r.db.WithContext(ctx).
		Where("survey_id = ?", surveyID).
		Order("position ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// NextPosition is MAX(position)+1, zero-based.
func (r *questionRepository) NextPosition(ctx context.Context, surveyID uuid.UUID) (int, error) {
	var next int
	err := r.db.WithContext(ctx).Model(&db_models.Question{}).
		Where("survey_id = ?", surveyID).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&next).Error
	return next, err
}

func (r *questionRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&db_models.Question{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteAndCompact removes the question and shifts every later question up
// one slot so positions stay dense.
func (r *questionRepository) DeleteAndCompact(ctx context.Context, question *db_models.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(question).Error; err != nil {
			return err
		}
		return tx.Model(&db_models.Question{}).
			Where("survey_id = ? AND position > ?", question.SurveyID, question.Position).
			Update("position", gorm.Expr("position - 1")).Error
	})
}

func (r *questionRepository) Reorder(ctx context.Context, surveyID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			res := tx.Model(&db_models.Question{}).
				Where("id = ? AND survey_id = ?", id, surveyID).
				Update("position", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
