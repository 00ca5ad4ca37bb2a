package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"formloom/internal/models/db_models"
	"formloom/internal/models/request_models"
	"formloom/internal/models/response_models"
	"formloom/internal/repositories"
	"formloom/pkg/utils"
)

type CouponStatus string

const (
	CouponStatusActive       CouponStatus = "active"
	CouponStatusInactive     CouponStatus = "inactive"
	CouponStatusExpired      CouponStatus = "expired"
	CouponStatusLimitReached CouponStatus = "limit_reached"
)

// CouponStatusOf derives the status from the row and the clock; it is never
// stored. Check order matters: inactive beats expired beats limit_reached.
func CouponStatusOf(c *db_models.Coupon, now time.Time) CouponStatus {
	if !c.IsActive {
		return CouponStatusInactive
	}
	if c.ValidUntil != nil && *c.ValidUntil < now.Unix() {
		return CouponStatusExpired
	}
	if c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit {
		return CouponStatusLimitReached
	}
	return CouponStatusActive
}

// DiscountedMinor applies the coupon to an amount in minor units. Percent
// discounts round down; fixed discounts floor at zero.
func DiscountedMinor(amount int64, c *db_models.Coupon) int64 {
	switch c.DiscountType {
	case db_models.CouponDiscountPercent:
		return amount - amount*c.DiscountValue/100
	case db_models.CouponDiscountFixed:
		if c.DiscountValue >= amount {
			return 0
		}
		return amount - c.DiscountValue
	default:
		return amount
	}
}

func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type CouponView struct {
	ID              uuid.UUID    `json:"id"`
	Code            string       `json:"code"`
	DiscountType    string       `json:"discount_type"`
	DiscountValue   int64        `json:"discount_value"`
	UsageLimit      int          `json:"usage_limit"`
	PerUserLimit    int          `json:"per_user_limit"`
	UsageCount      int          `json:"usage_count"`
	ValidFrom       *int64       `json:"valid_from,omitempty"`
	ValidUntil      *int64       `json:"valid_until,omitempty"`
	IsActive        bool         `json:"is_active"`
	ApplicablePlans []string     `json:"applicable_plans,omitempty"`
	Status          CouponStatus `json:"status"`
}

type CouponServiceInterface interface {
	// Quote prices a code against a plan without consuming anything.
	Quote(ctx context.Context, accountID uuid.UUID, request request_models.ApplyCouponRequest) (*response_models.CouponQuote, error)
	CreateCoupon(ctx context.Context, request request_models.CreateCouponRequest) (*CouponView, error)
	UpdateCoupon(ctx context.Context, id uuid.UUID, request request_models.UpdateCouponRequest) error
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
	ListCoupons(ctx context.Context) ([]CouponView, error)
}

type CouponService struct {
	couponRepo repositories.CouponRepository
	planRepo   repositories.PlanRepository
	now        func() time.Time
}

func NewCouponService(couponRepo repositories.CouponRepository, planRepo repositories.PlanRepository) CouponServiceInterface {
	return &CouponService{
		couponRepo: couponRepo,
		planRepo:   planRepo,
		now:        time.Now,
	}
}

// usableCoupon resolves a code for checkout. Unknown codes and every unusable
// state surface the same client-facing message; the buyer does not need to
// know why the code failed.
func usableCoupon(ctx context.Context, couponRepo repositories.CouponRepository, now time.Time, accountID uuid.UUID, code, planCode string) (*db_models.Coupon, error) {
	coupon, err := couponRepo.FindByCode(ctx, NormalizeCouponCode(code))
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if coupon == nil {
		return nil, utils.ValidationError("Invalid promo code")
	}
	if CouponStatusOf(coupon, now) != CouponStatusActive {
		return nil, utils.ValidationError("Invalid promo code")
	}
	if coupon.ValidFrom != nil && *coupon.ValidFrom > now.Unix() {
		return nil, utils.ValidationError("Invalid promo code")
	}
	if len(coupon.ApplicablePlans) > 0 {
		eligible := false
		for _, p := range coupon.ApplicablePlans {
			if p == planCode {
				eligible = true
				break
			}
		}
		if !eligible {
			return nil, utils.ValidationError("Invalid promo code")
		}
	}
	if coupon.PerUserLimit > 0 && accountID != uuid.Nil {
		used, err := couponRepo.CountRedemptionsByAccount(ctx, coupon.ID, accountID)
		if err != nil {
			return nil, utils.DatabaseError(err)
		}
		if used >= int64(coupon.PerUserLimit) {
			return nil, utils.ValidationError("Invalid promo code")
		}
	}
	return coupon, nil
}

func (s *CouponService) Quote(ctx context.Context, accountID uuid.UUID, request request_models.ApplyCouponRequest) (*response_models.CouponQuote, error) {
	plan, err := s.planRepo.FindByCode(ctx, request.PlanCode)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if plan == nil {
		return nil, utils.NotFoundError("Plan not found")
	}

	coupon, err := usableCoupon(ctx, s.couponRepo, s.now(), accountID, request.Code, request.PlanCode)
	if err != nil {
		return nil, err
	}

	return &response_models.CouponQuote{
		Code:            coupon.Code,
		OriginalMinor:   plan.PriceMinor,
		DiscountedMinor: DiscountedMinor(plan.PriceMinor, coupon),
		Currency:        plan.Currency,
	}, nil
}

func (s *CouponService) CreateCoupon(ctx context.Context, request request_models.CreateCouponRequest) (*CouponView, error) {
	code := NormalizeCouponCode(request.Code)
	if code == "" {
		return nil, utils.ValidationError("Coupon code is required")
	}
	if request.DiscountType == db_models.CouponDiscountPercent && request.DiscountValue > 100 {
		return nil, utils.ValidationError("Percent discount cannot exceed 100")
	}

	existing, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if existing != nil {
		return nil, utils.ConflictError("A coupon with this code already exists")
	}

	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}
	perUser := request.PerUserLimit
	if perUser == 0 {
		perUser = 1
	}

	coupon := &db_models.Coupon{
		Code:            code,
		DiscountType:    request.DiscountType,
		DiscountValue:   request.DiscountValue,
		UsageLimit:      request.UsageLimit,
		PerUserLimit:    perUser,
		ValidFrom:       request.ValidFrom,
		ValidUntil:      request.ValidUntil,
		IsActive:        isActive,
		ApplicablePlans: pq.StringArray(request.ApplicablePlans),
	}
	if err := s.couponRepo.Insert(ctx, coupon); err != nil {
		return nil, utils.DatabaseError(err)
	}

	view := s.toView(coupon)
	return &view, nil
}

func (s *CouponService) UpdateCoupon(ctx context.Context, id uuid.UUID, request request_models.UpdateCouponRequest) error {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if coupon == nil {
		return utils.NotFoundError("Coupon not found")
	}

	fields := map[string]interface{}{}
	if request.DiscountType != nil {
		fields["discount_type"] = *request.DiscountType
	}
	if request.DiscountValue != nil {
		fields["discount_value"] = *request.DiscountValue
	}
	if request.UsageLimit != nil {
		fields["usage_limit"] = *request.UsageLimit
	}
	if request.PerUserLimit != nil {
		fields["per_user_limit"] = *request.PerUserLimit
	}
	if request.ValidFrom != nil {
		fields["valid_from"] = *request.ValidFrom
	}
	if request.ValidUntil != nil {
		fields["valid_until"] = *request.ValidUntil
	}
	if request.IsActive != nil {
		fields["is_active"] = *request.IsActive
	}
	if request.ApplicablePlans != nil {
		fields["applicable_plans"] = pq.StringArray(*request.ApplicablePlans)
	}
	if len(fields) == 0 {
		return utils.ValidationError("Nothing to update")
	}

	if err := s.couponRepo.UpdateFields(ctx, id, fields); err != nil {
		return utils.DatabaseError(err)
	}
	return nil
}

func (s *CouponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if coupon == nil {
		return utils.NotFoundError("Coupon not found")
	}
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		return utils.DatabaseError(err)
	}
	return nil
}

func (s *CouponService) ListCoupons(ctx context.Context) ([]CouponView, error) {
	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	views := make([]CouponView, len(coupons))
	for i := range coupons {
		views[i] = s.toView(&coupons[i])
	}
	return views, nil
}

func (s *CouponService) toView(c *db_models.Coupon) CouponView {
	return CouponView{
		ID:              c.ID,
		Code:            c.Code,
		DiscountType:    c.DiscountType,
		DiscountValue:   c.DiscountValue,
		UsageLimit:      c.UsageLimit,
		PerUserLimit:    c.PerUserLimit,
		UsageCount:      c.UsageCount,
		ValidFrom:       c.ValidFrom,
		ValidUntil:      c.ValidUntil,
		IsActive:        c.IsActive,
		ApplicablePlans: c.ApplicablePlans,
		Status:          CouponStatusOf(c, s.now()),
	}
}
