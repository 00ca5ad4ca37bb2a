package payment_fx

import (
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"formloom/internal/api/controllers"
	"formloom/internal/repositories"
	"formloom/internal/services"
)

var Module = fx.Provide(
	providePayOSConfig, providePaymentService, providePaymentController)

func providePayOSConfig() services.PayOSConfig {
	return services.PayOSConfig{
		ClientID:     os.Getenv("PAYOS_CLIENT_ID"),
		ApiKey:       os.Getenv("PAYOS_API_KEY"),
		ChecksumKey:  os.Getenv("PAYOS_CHECKSUM_KEY"),
		ReturnURL:    os.Getenv("PAYOS_RETURN_URL"),
		CancelURL:    os.Getenv("PAYOS_CANCEL_URL"),
		ProviderName: "payos",
	}
}

func providePaymentService(
	db *gorm.DB,
	cfg services.PayOSConfig,
	planRepo repositories.PlanRepository,
	transactionRepo repositories.TransactionRepository,
	couponRepo repositories.CouponRepository,
) (services.PaymentServiceInterface, error) {
	return services.NewPaymentService(db, cfg, planRepo, transactionRepo, couponRepo)
}

func providePaymentController(
	paymentService services.PaymentServiceInterface,
	couponService services.CouponServiceInterface,
) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService, couponService)
}
