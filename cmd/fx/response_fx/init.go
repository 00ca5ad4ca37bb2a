package response_fx

import (
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"formloom/internal/api/controllers"
	"formloom/internal/cache"
	"formloom/internal/repositories"
	"formloom/internal/services"
	"formloom/pkg/memcache"
)

var Module = fx.Provide(
	provideResponseRepo, provideSubmitGuard, provideSubmissionService, provideResponseController)

func provideResponseRepo(db *gorm.DB) repositories.ResponseRepository {
	return repositories.NewResponseRepository(db)
}

func provideSubmitGuard() *memcache.SubmitGuard {
	return memcache.NewSubmitGuard(24 * time.Hour)
}

func provideSubmissionService(
	surveyRepo repositories.SurveyRepository,
	responseRepo repositories.ResponseRepository,
	surveyCache cache.SurveyCache,
	guard *memcache.SubmitGuard,
) services.SubmissionServiceInterface {
	return services.NewSubmissionService(surveyRepo, responseRepo, surveyCache, guard)
}

func provideResponseController(submissionService services.SubmissionServiceInterface) *controllers.ResponseController {
	return controllers.NewResponseController(submissionService)
}
