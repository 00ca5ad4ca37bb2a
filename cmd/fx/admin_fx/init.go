package admin_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"formloom/internal/api/controllers"
	"formloom/internal/repositories"
	"formloom/internal/services"
)

var Module = fx.Provide(
	provideDashboardRepo, provideAdminService, provideDashboardService, provideAdminController)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideAdminService(accountRepo repositories.AccountRepository) services.AdminServiceInterface {
	return services.NewAdminService(accountRepo)
}

func provideDashboardService(dashboardRepo repositories.DashboardRepository) services.DashboardServiceInterface {
	return services.NewDashboardService(dashboardRepo)
}

func provideAdminController(
	adminService services.AdminServiceInterface,
	dashboardService services.DashboardServiceInterface,
) *controllers.AdminController {
	return controllers.NewAdminController(adminService, dashboardService)
}
