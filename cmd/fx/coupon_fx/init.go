package coupon_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"formloom/internal/api/controllers"
	"formloom/internal/repositories"
	"formloom/internal/services"
)

var Module = fx.Provide(
	provideCouponRepo, provideCouponService, provideCouponController)

func provideCouponRepo(db *gorm.DB) repositories.CouponRepository {
	return repositories.NewCouponRepository(db)
}

func provideCouponService(
	couponRepo repositories.CouponRepository,
	planRepo repositories.PlanRepository,
) services.CouponServiceInterface {
	return services.NewCouponService(couponRepo, planRepo)
}

func provideCouponController(couponService services.CouponServiceInterface) *controllers.CouponController {
	return controllers.NewCouponController(couponService)
}
