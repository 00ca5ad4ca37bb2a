package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/payOSHQ/payos-lib-golang"
	"gorm.io/gorm"

	"formloom/internal/models/db_models"
	"formloom/internal/models/request_models"
	"formloom/internal/models/response_models"
	"formloom/internal/questions"
	"formloom/internal/repositories"
	"formloom/pkg/utils"
)

type PayOSConfig struct {
	ClientID     string
	ApiKey       string
	ChecksumKey  string
	ReturnURL    string
	CancelURL    string
	ProviderName string // stored on Transaction.Provider
}

type PaymentServiceInterface interface {
	// CreateCheckout opens a payment link for a plan, applying an optional
	// coupon. The discounted amount is what the provider charges; the original
	// price is kept on the transaction.
	CreateCheckout(ctx context.Context, access questions.AccessContext, request request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error)
	// HandleWebhook verifies the provider callback and, exactly once per
	// order, flips the transaction to paid, opens the subscription, upgrades
	// the account plan and consumes the coupon.
	HandleWebhook(ctx context.Context, body payos.WebhookType) error
	// CancelCheckout abandons a pending order. Cancellation is a normal
	// outcome, not a failure.
	CancelCheckout(ctx context.Context, access questions.AccessContext, request request_models.CancelCheckoutRequest) error
}

type PaymentService struct {
	db              *gorm.DB
	cfg             PayOSConfig
	planRepo        repositories.PlanRepository
	transactionRepo repositories.TransactionRepository
	couponRepo      repositories.CouponRepository
	now             func() time.Time
}

func NewPaymentService(
	db *gorm.DB,
	cfg PayOSConfig,
	planRepo repositories.PlanRepository,
	transactionRepo repositories.TransactionRepository,
	couponRepo repositories.CouponRepository,
) (PaymentServiceInterface, error) {
	if cfg.ClientID == "" || cfg.ApiKey == "" || cfg.ChecksumKey == "" {
		return nil, errors.New("missing payOS credentials")
	}
	if err := payos.Key(cfg.ClientID, cfg.ApiKey, cfg.ChecksumKey); err != nil {
		return nil, fmt.Errorf("payos client init: %w", err)
	}
	return &PaymentService{
		db:              db,
		cfg:             cfg,
		planRepo:        planRepo,
		transactionRepo: transactionRepo,
		couponRepo:      couponRepo,
		now:             time.Now,
	}, nil
}

// checkoutMetadata links a provider order back to the plan and coupon it was
// created for.
type checkoutMetadata struct {
	PlanID     uuid.UUID  `json:"plan_id"`
	PlanCode   string     `json:"plan_code"`
	CouponID   *uuid.UUID `json:"coupon_id,omitempty"`
	CouponCode string     `json:"coupon_code,omitempty"`
}

func providerTxnID(orderCode int64) string {
	return fmt.Sprintf("payos:%d", orderCode)
}

func (s *PaymentService) CreateCheckout(ctx context.Context, access questions.AccessContext, request request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error) {
	plan, err := s.planRepo.FindByCode(ctx, request.PlanCode)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if plan == nil {
		return nil, utils.NotFoundError("Plan not found")
	}
	if plan.PriceMinor <= 0 {
		return nil, utils.ValidationError("This plan is not billable")
	}

	amount := plan.PriceMinor
	meta := checkoutMetadata{PlanID: plan.ID, PlanCode: plan.Code}
	if request.CouponCode != "" {
		coupon, err := usableCoupon(ctx, s.couponRepo, s.now(), access.UserID, request.CouponCode, plan.Code)
		if err != nil {
			return nil, err
		}
		amount = DiscountedMinor(amount, coupon)
		meta.CouponID = &coupon.ID
		meta.CouponCode = coupon.Code
	}

	// payOS order codes are int64; unix seconds plus a random suffix keeps
	// them unique enough and within 13 digits.
	orderCode := s.now().Unix()%1_000_000_000*1000 + rand.Int63n(1000)

	metaRaw, err := json.Marshal(meta)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	txn := &db_models.Transaction{
		AccountID:     access.UserID,
		AmountMinor:   amount,
		OriginalMinor: plan.PriceMinor,
		Currency:      strings.ToUpper(plan.Currency),
		Status:        db_models.TxnStatusPending,
		Provider:      s.cfg.ProviderName,
		ProviderTxnID: providerTxnID(orderCode),
		CouponCode:    meta.CouponCode,
		Metadata:      metaRaw,
	}
	if err := s.transactionRepo.Insert(ctx, txn); err != nil {
		return nil, utils.DatabaseError(err)
	}

	body := payos.CheckoutRequestType{
		OrderCode: orderCode,
		Amount:    int(amount),
		Items: []payos.Item{{
			Name:     fmt.Sprintf("%s (%s)", plan.Name, plan.Code),
			Price:    int(amount),
			Quantity: 1,
		}},
		Description: fmt.Sprintf("Subscription %s", plan.Code),
		CancelUrl:   s.cfg.CancelURL,
		ReturnUrl:   s.cfg.ReturnURL,
	}
	link, err := payos.CreatePaymentLink(body)
	if err != nil {
		_ = s.transactionRepo.UpdateFields(ctx, txn.ID, map[string]interface{}{"status": db_models.TxnStatusFailed})
		return nil, utils.PaymentVerificationError("Could not create a payment link", err)
	}

	return &response_models.CreateCheckoutResponse{
		OrderCode:    orderCode,
		AmountMinor:  amount,
		Currency:     txn.Currency,
		PaymentURL:   link.CheckoutUrl,
		ProviderName: s.cfg.ProviderName,
	}, nil
}

func (s *PaymentService) HandleWebhook(ctx context.Context, body payos.WebhookType) error {
	data, err := payos.VerifyPaymentWebhookData(body)
	if err != nil {
		return utils.PaymentVerificationError("Webhook signature verification failed", err)
	}

	txn, err := s.transactionRepo.FindByProviderTxnID(ctx, providerTxnID(data.OrderCode))
	if err != nil {
		return utils.DatabaseError(err)
	}
	if txn == nil {
		// Ack unknown orders so the provider does not retry forever.
		log.Printf("webhook: no transaction for order %d", data.OrderCode)
		return nil
	}
	if txn.Status == db_models.TxnStatusPaid {
		return nil
	}

	var meta checkoutMetadata
	if err := json.Unmarshal(txn.Metadata, &meta); err != nil || meta.PlanID == uuid.Nil {
		return utils.PaymentVerificationError("Transaction metadata is missing plan info", err)
	}

	now := s.now()
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db_models.Transaction{}).
			Where("id = ? AND status <> ?", txn.ID, db_models.TxnStatusPaid).
			Updates(map[string]interface{}{
				"status":  db_models.TxnStatusPaid,
				"paid_at": now.Unix(),
			}).Error; err != nil {
			return err
		}
		if err := s.openSubscription(tx, txn, meta, now); err != nil {
			return err
		}
		if meta.CouponID != nil {
			if err := s.couponRepo.RedeemTx(tx, *meta.CouponID, txn.AccountID, txn.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return utils.DatabaseError(txErr)
	}
	return nil
}

// openSubscription starts the paid period. An unexpired auto-renewing
// subscription extends from its current end instead of the payment time.
func (s *PaymentService) openSubscription(tx *gorm.DB, txn *db_models.Transaction, meta checkoutMetadata, now time.Time) error {
	var plan db_models.Plan
	if err := tx.Where("id = ?", meta.PlanID).First(&plan).Error; err != nil {
		return fmt.Errorf("plan not found while activating: %w", err)
	}

	starts := now
	var current db_models.Subscription
	err := tx.
		Where("account_id = ? AND status = ? AND ends_at > ?", txn.AccountID, db_models.SubStatusActive, now.Unix()).
		Order("ends_at DESC").
		First(&current).Error
	if err == nil && current.AutoRenew {
		starts = time.Unix(current.EndsAt, 0)
	}

	var ends time.Time
	switch plan.Period {
	case db_models.PeriodYear:
		ends = starts.AddDate(1, 0, 0)
	default:
		ends = starts.AddDate(0, 1, 0)
	}

	sub := db_models.Subscription{
		AccountID:     txn.AccountID,
		PlanID:        plan.ID,
		Status:        db_models.SubStatusActive,
		StartsAt:      starts.Unix(),
		EndsAt:        ends.Unix(),
		AutoRenew:     true,
		Provider:      s.cfg.ProviderName,
		ProviderSubID: strconv.FormatInt(now.UnixNano(), 10),
	}
	if err := tx.Create(&sub).Error; err != nil {
		return err
	}
	if err := tx.Model(&db_models.Transaction{}).
		Where("id = ?", txn.ID).
		Update("subscription_id", sub.ID).Error; err != nil {
		return err
	}

	// Tokens issued before this carry the old plan claim until re-login;
	// see utils.CreateToken.
	return tx.Model(&db_models.Account{}).
		Where("id = ?", txn.AccountID).
		Update("plan", planTier(plan.Code)).Error
}

// planTier maps a billing plan code like "pro_monthly" to the account plan
// tier the question registry gates on.
func planTier(planCode string) string {
	if i := strings.IndexByte(planCode, '_'); i > 0 {
		return planCode[:i]
	}
	return planCode
}

func (s *PaymentService) CancelCheckout(ctx context.Context, access questions.AccessContext, request request_models.CancelCheckoutRequest) error {
	txn, err := s.transactionRepo.FindByProviderTxnID(ctx, providerTxnID(request.OrderCode))
	if err != nil {
		return utils.DatabaseError(err)
	}
	if txn == nil {
		return utils.NotFoundError("Order not found")
	}
	if txn.AccountID != access.UserID && !access.IsAdmin() {
		return utils.ForbiddenError("This order belongs to another account")
	}
	if txn.Status == db_models.TxnStatusPending {
		if err := s.transactionRepo.UpdateFields(ctx, txn.ID, map[string]interface{}{
			"status": db_models.TxnStatusCanceled,
		}); err != nil {
			return utils.DatabaseError(err)
		}
	}
	return utils.PaymentCancelledError("Checkout cancelled")
}
