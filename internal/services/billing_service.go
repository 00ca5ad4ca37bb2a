package services

import (
	"context"

	"github.com/google/uuid"

	"formloom/internal/models/db_models"
	"formloom/internal/models/response_models"
	"formloom/internal/repositories"
	"formloom/pkg/utils"
)

type BillingServiceInterface interface {
	ListPlans(ctx context.Context) ([]response_models.SubscriptionPlan, error)
	CurrentSubscription(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionResponse, error)
	SubscriptionHistory(ctx context.Context, accountID uuid.UUID) ([]response_models.SubscriptionResponse, error)
	// CancelSubscription turns off renewal; access stays until the period ends.
	CancelSubscription(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionResponse, error)
	Analytics(ctx context.Context, accountID uuid.UUID) (*response_models.BillingAnalytics, error)
}

type BillingService struct {
	planRepo         repositories.PlanRepository
	subscriptionRepo repositories.SubscriptionRepository
	transactionRepo  repositories.TransactionRepository
	accountRepo      repositories.AccountRepository
}

func NewBillingService(
	planRepo repositories.PlanRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	transactionRepo repositories.TransactionRepository,
	accountRepo repositories.AccountRepository,
) BillingServiceInterface {
	return &BillingService{
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		transactionRepo:  transactionRepo,
		accountRepo:      accountRepo,
	}
}

func (s *BillingService) ListPlans(ctx context.Context) ([]response_models.SubscriptionPlan, error) {
	plans, err := s.planRepo.ListActive(ctx)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	out := make([]response_models.SubscriptionPlan, len(plans))
	for i, p := range plans {
		out[i] = response_models.SubscriptionPlan{
			ID:          p.ID,
			Code:        p.Code,
			Name:        p.Name,
			Description: p.Description,
			Period:      string(p.Period),
			PriceMinor:  p.PriceMinor,
			Currency:    p.Currency,
			TrialDays:   p.TrialDays,
			IsActive:    p.IsActive,
		}
	}
	return out, nil
}

func (s *BillingService) CurrentSubscription(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.Current(ctx, accountID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if sub == nil {
		return nil, utils.NotFoundError("No active subscription")
	}
	resp := toSubscriptionResponse(sub)
	return &resp, nil
}

func (s *BillingService) SubscriptionHistory(ctx context.Context, accountID uuid.UUID) ([]response_models.SubscriptionResponse, error) {
	subs, err := s.subscriptionRepo.History(ctx, accountID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	out := make([]response_models.SubscriptionResponse, len(subs))
	for i := range subs {
		out[i] = toSubscriptionResponse(&subs[i])
	}
	return out, nil
}

func (s *BillingService) CancelSubscription(ctx context.Context, accountID uuid.UUID) (*response_models.SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.Current(ctx, accountID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if sub == nil {
		return nil, utils.NotFoundError("No active subscription to cancel")
	}
	if sub.CanceledAt != nil {
		resp := toSubscriptionResponse(sub)
		return &resp, nil
	}

	now := utils.NowUnixSeconds()
	fields := map[string]interface{}{
		"auto_renew":  false,
		"canceled_at": now,
	}
	if err := s.subscriptionRepo.UpdateFields(ctx, sub.ID, fields); err != nil {
		return nil, utils.DatabaseError(err)
	}

	sub.AutoRenew = false
	sub.CanceledAt = &now
	resp := toSubscriptionResponse(sub)
	return &resp, nil
}

func (s *BillingService) Analytics(ctx context.Context, accountID uuid.UUID) (*response_models.BillingAnalytics, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if account == nil {
		return nil, utils.NotFoundError("Account not found")
	}

	txns, err := s.transactionRepo.ListPaidByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	var total int64
	currency := "USD"
	for _, t := range txns {
		total += t.AmountMinor
		currency = t.Currency
	}

	monthly, err := s.transactionRepo.MonthlySpendByAccount(ctx, accountID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	series := make([]response_models.SeriesPoint, len(monthly))
	for i, m := range monthly {
		series[i] = response_models.SeriesPoint{Bucket: m.Bucket, Value: m.Sum}
	}

	return &response_models.BillingAnalytics{
		TotalSpentMinor: total,
		Currency:        currency,
		CurrentPlan:     account.Plan,
		Monthly:         series,
	}, nil
}

func toSubscriptionResponse(sub *db_models.Subscription) response_models.SubscriptionResponse {
	return response_models.SubscriptionResponse{
		ID:         sub.ID,
		PlanCode:   sub.Plan.Code,
		PlanName:   sub.Plan.Name,
		Status:     string(sub.Status),
		StartsAt:   sub.StartsAt,
		EndsAt:     sub.EndsAt,
		CanceledAt: sub.CanceledAt,
		AutoRenew:  sub.AutoRenew,
	}
}
