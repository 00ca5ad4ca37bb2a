package survey_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"formloom/internal/api/controllers"
	"formloom/internal/cache"
	"formloom/internal/repositories"
	"formloom/internal/services"
)

var Module = fx.Provide(
	provideSurveyRepo, provideSaveCoordinator, provideSurveyService, provideSurveyController)

func provideSurveyRepo(db *gorm.DB) repositories.SurveyRepository {
	return repositories.NewSurveyRepository(db)
}

func provideSaveCoordinator() *services.SaveCoordinator {
	return services.NewSaveCoordinator()
}

func provideSurveyService(
	surveyRepo repositories.SurveyRepository,
	questionRepo repositories.QuestionRepository,
	surveyCache cache.SurveyCache,
	saves *services.SaveCoordinator,
) services.SurveyServiceInterface {
	return services.NewSurveyService(surveyRepo, questionRepo, surveyCache, saves)
}

func provideSurveyController(surveyService services.SurveyServiceInterface) *controllers.SurveyController {
	return controllers.NewSurveyController(surveyService)
}
