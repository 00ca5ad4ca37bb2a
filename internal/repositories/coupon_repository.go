package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"formloom/internal/models/db_models"
)

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*db_models.Coupon, error)
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Coupon, error)
	Insert(ctx context.Context, coupon *db_models.Coupon) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]db_models.Coupon, error)
	CountRedemptionsByAccount(ctx context.Context, couponID, accountID uuid.UUID) (int64, error)
	// RedeemTx bumps usage and records the redemption in one transaction.
	RedeemTx(tx *gorm.DB, couponID, accountID, transactionID uuid.UUID) error
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (*db_models.Coupon, error) {
	var coupon db_models.Coupon
	err := r.db.WithContext(ctx).First(&coupon, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Coupon, error) {
	var coupon db_models.Coupon
	err := r.db.WithContext(ctx).First(&coupon, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) Insert(ctx context.Context, coupon *db_models.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *couponRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&db_models.Coupon{}).Where("id = ?", id).Updates(fields).Error
}

func (r *couponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&db_models.Coupon{}, "id = ?", id).Error
}

func (r *couponRepository) List(ctx context.Context) ([]db_models.Coupon, error) {
	var coupons []db_models.Coupon
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&coupons).Error
	if err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *couponRepository) CountRedemptionsByAccount(ctx context.Context, couponID, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.CouponRedemption{}).
		Where("coupon_id = ? AND account_id = ?", couponID, accountID).
		Count(&count).Error
	return count, err
}

func (r *couponRepository) RedeemTx(tx *gorm.DB, couponID, accountID, transactionID uuid.UUID) error {
	if err := tx.Model(&db_models.Coupon{}).
		Where("id = ?", couponID).
		Update("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
		return err
	}
	return tx.Create(&db_models.CouponRedemption{
		CouponID:      couponID,
		AccountID:     accountID,
		TransactionID: transactionID,
	}).Error
}
