package question_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"formloom/internal/api/controllers"
	"formloom/internal/cache"
	"formloom/internal/repositories"
	"formloom/internal/services"
)

var Module = fx.Provide(
	provideQuestionRepo, provideQuestionService, provideQuestionController)

func provideQuestionRepo(db *gorm.DB) repositories.QuestionRepository {
	return repositories.NewQuestionRepository(db)
}

func provideQuestionService(
	surveyRepo repositories.SurveyRepository,
	questionRepo repositories.QuestionRepository,
	surveyCache cache.SurveyCache,
) services.QuestionServiceInterface {
	return services.NewQuestionService(surveyRepo, questionRepo, surveyCache)
}

func provideQuestionController(questionService services.QuestionServiceInterface) *controllers.QuestionController {
	return controllers.NewQuestionController(questionService)
}
