package billing_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"formloom/internal/api/controllers"
	"formloom/internal/repositories"
	"formloom/internal/services"
)

var Module = fx.Provide(
	providePlanRepo, provideSubscriptionRepo, provideTransactionRepo,
	provideBillingService, provideBillingController)

func providePlanRepo(db *gorm.DB) repositories.PlanRepository {
	return repositories.NewPlanRepository(db)
}

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func provideTransactionRepo(db *gorm.DB) repositories.TransactionRepository {
	return repositories.NewTransactionRepository(db)
}

func provideBillingService(
	planRepo repositories.PlanRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	transactionRepo repositories.TransactionRepository,
	accountRepo repositories.AccountRepository,
) services.BillingServiceInterface {
	return services.NewBillingService(planRepo, subscriptionRepo, transactionRepo, accountRepo)
}

func provideBillingController(billingService services.BillingServiceInterface) *controllers.BillingController {
	return controllers.NewBillingController(billingService)
}
