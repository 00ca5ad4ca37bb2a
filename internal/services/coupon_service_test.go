package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"formloom/internal/models/db_models"
	"formloom/internal/models/request_models"
	"formloom/internal/repositories"
	"formloom/pkg/utils"
)

func TestCouponStatusOf(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour).Unix()
	future := now.Add(time.Hour).Unix()

	cases := []struct {
		name   string
		coupon db_models.Coupon
		want   CouponStatus
	}{
		{"active", db_models.Coupon{IsActive: true}, CouponStatusActive},
		{"disabled", db_models.Coupon{IsActive: false}, CouponStatusInactive},
		{"expired", db_models.Coupon{IsActive: true, ValidUntil: &past}, CouponStatusExpired},
		{"not yet expired", db_models.Coupon{IsActive: true, ValidUntil: &future}, CouponStatusActive},
		{"limit reached at equal counts", db_models.Coupon{IsActive: true, UsageLimit: 5, UsageCount: 5}, CouponStatusLimitReached},
		{"below limit", db_models.Coupon{IsActive: true, UsageLimit: 5, UsageCount: 4}, CouponStatusActive},
		{"unlimited usage", db_models.Coupon{IsActive: true, UsageLimit: 0, UsageCount: 9000}, CouponStatusActive},
		// Disabled wins over expired, expired wins over the usage limit.
		{"disabled and expired", db_models.Coupon{IsActive: false, ValidUntil: &past}, CouponStatusInactive},
		{"expired and limit reached", db_models.Coupon{IsActive: true, ValidUntil: &past, UsageLimit: 1, UsageCount: 1}, CouponStatusExpired},
	}
	for _, c := range cases {
		if got := CouponStatusOf(&c.coupon, now); got != c.want {
			t.Errorf("%s: status = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestDiscountedMinor(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		coupon db_models.Coupon
		want   int64
	}{
		{"20 percent off 2000", 2000, db_models.Coupon{DiscountType: db_models.CouponDiscountPercent, DiscountValue: 20}, 1600},
		{"percent rounds down", 999, db_models.Coupon{DiscountType: db_models.CouponDiscountPercent, DiscountValue: 10}, 900},
		{"100 percent", 2000, db_models.Coupon{DiscountType: db_models.CouponDiscountPercent, DiscountValue: 100}, 0},
		{"fixed amount", 2000, db_models.Coupon{DiscountType: db_models.CouponDiscountFixed, DiscountValue: 500}, 1500},
		{"fixed floors at zero", 2000, db_models.Coupon{DiscountType: db_models.CouponDiscountFixed, DiscountValue: 5000}, 0},
	}
	for _, c := range cases {
		if got := DiscountedMinor(c.amount, &c.coupon); got != c.want {
			t.Errorf("%s: got %d, want %d", c.name, got, c.want)
		}
	}
}

type fakeCouponRepo struct {
	repositories.CouponRepository
	coupons     map[string]*db_models.Coupon
	redemptions int64
}

func (f *fakeCouponRepo) FindByCode(_ context.Context, code string) (*db_models.Coupon, error) {
	return f.coupons[code], nil
}

func (f *fakeCouponRepo) CountRedemptionsByAccount(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
	return f.redemptions, nil
}

type fakePlanRepo struct {
	repositories.PlanRepository
	plans map[string]*db_models.Plan
}

func (f *fakePlanRepo) FindByCode(_ context.Context, code string) (*db_models.Plan, error) {
	return f.plans[code], nil
}

func newQuoteFixture(coupon *db_models.Coupon) *CouponService {
	coupons := map[string]*db_models.Coupon{}
	if coupon != nil {
		coupons[coupon.Code] = coupon
	}
	return &CouponService{
		couponRepo: &fakeCouponRepo{coupons: coupons},
		planRepo: &fakePlanRepo{plans: map[string]*db_models.Plan{
			"pro_monthly": {Code: "pro_monthly", PriceMinor: 2000, Currency: "USD"},
		}},
		now: time.Now,
	}
}

func TestQuoteAppliesPercentDiscount(t *testing.T) {
	svc := newQuoteFixture(&db_models.Coupon{
		Code:          "SAVE20",
		DiscountType:  db_models.CouponDiscountPercent,
		DiscountValue: 20,
		IsActive:      true,
	})

	quote, err := svc.Quote(context.Background(), uuid.New(), request_models.ApplyCouponRequest{
		Code:     "save20",
		PlanCode: "pro_monthly",
	})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if quote.OriginalMinor != 2000 || quote.DiscountedMinor != 1600 {
		t.Errorf("quote = %d -> %d, want 2000 -> 1600", quote.OriginalMinor, quote.DiscountedMinor)
	}
}

func TestQuoteUnusableCouponsShareOneMessage(t *testing.T) {
	past := time.Now().Add(-time.Hour).Unix()

	cases := []struct {
		name   string
		coupon *db_models.Coupon
	}{
		{"unknown code", nil},
		{"disabled", &db_models.Coupon{Code: "SAVE20", IsActive: false}},
		{"expired", &db_models.Coupon{Code: "SAVE20", IsActive: true, ValidUntil: &past}},
		{"limit reached", &db_models.Coupon{Code: "SAVE20", IsActive: true, UsageLimit: 1, UsageCount: 1}},
		{"wrong plan", &db_models.Coupon{Code: "SAVE20", IsActive: true, ApplicablePlans: pq.StringArray{"business_yearly"}}},
	}
	for _, c := range cases {
		svc := newQuoteFixture(c.coupon)
		_, err := svc.Quote(context.Background(), uuid.New(), request_models.ApplyCouponRequest{
			Code:     "SAVE20",
			PlanCode: "pro_monthly",
		})
		if err == nil {
			t.Errorf("%s: expected an error", c.name)
			continue
		}
		if utils.MessageOf(err) != "Invalid promo code" {
			t.Errorf("%s: message = %q, want %q", c.name, utils.MessageOf(err), "Invalid promo code")
		}
	}
}

func TestQuoteRejectsPerUserExhaustion(t *testing.T) {
	svc := newQuoteFixture(&db_models.Coupon{
		Code:          "SAVE20",
		DiscountType:  db_models.CouponDiscountPercent,
		DiscountValue: 20,
		IsActive:      true,
		PerUserLimit:  1,
	})
	svc.couponRepo.(*fakeCouponRepo).redemptions = 1

	_, err := svc.Quote(context.Background(), uuid.New(), request_models.ApplyCouponRequest{
		Code:     "SAVE20",
		PlanCode: "pro_monthly",
	})
	if err == nil || utils.MessageOf(err) != "Invalid promo code" {
		t.Fatalf("per-user exhausted coupon should be invalid, got %v", err)
	}
}
