package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"formloom/internal/models/db_models"
)

type MonthlySpend struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sum    int64     `gorm:"column:sum"`
}

type TransactionRepository interface {
	Insert(ctx context.Context, txn *db_models.Transaction) error
	FindByProviderTxnID(ctx context.Context, providerTxnID string) (*db_models.Transaction, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	ListPaidByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Transaction, error)
	MonthlySpendByAccount(ctx context.Context, accountID uuid.UUID) ([]MonthlySpend, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Insert(ctx context.Context, txn *db_models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) FindByProviderTxnID(ctx context.Context, providerTxnID string) (*db_models.Transaction, error) {
	var txn db_models.Transaction
	err := r.db.WithContext(ctx).First(&txn, "provider_txn_id = ?", providerTxnID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&db_models.Transaction{}).Where("id = ?", id).Updates(fields).Error
}

func (r *transactionRepository) ListPaidByAccount(ctx context.Context, accountID uuid.UUID) ([]db_models.Transaction, error) {
	var txns []db_models.Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND status = ?", accountID, db_models.TxnStatusPaid).
		Order("paid_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *transactionRepository) MonthlySpendByAccount(ctx context.Context, accountID uuid.UUID) ([]MonthlySpend, error) {
	var rows []MonthlySpend
	err := r.db.WithContext(ctx).
		Table("transactions").
		Select("date_trunc('month', to_timestamp(paid_at)) AS bucket, SUM(amount_minor) AS sum").
		Where("account_id = ? AND status = ? AND deleted_at IS NULL", accountID, db_models.TxnStatusPaid).
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
