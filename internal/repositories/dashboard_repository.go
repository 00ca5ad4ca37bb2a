package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"formloom/internal/models/db_models"
)

type BucketSum struct {
	Bucket time.Time `gorm:"column:bucket"`
	Sum    int64     `gorm:"column:sum"`
}

type DashboardRepository interface {
	CountTotalAccounts(ctx context.Context) (int64, error)
	CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error)
	CountTotalSurveys(ctx context.Context) (int64, error)
	CountTotalResponses(ctx context.Context) (int64, error)
	CountSubscriptionsByStatus(ctx context.Context, status db_models.SubscriptionStatus) (int64, error)

	RevenueSeries(ctx context.Context, start, end time.Time, interval string) ([]BucketSum, error)
	NewUsersSeries(ctx context.Context, start, end time.Time, interval string) ([]BucketSum, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountTotalAccounts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Account{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountNewAccounts(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Account{}).
		Where("created_at BETWEEN ? AND ?", start.Unix(), end.Unix()).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountTotalSurveys(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Survey{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountTotalResponses(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Response{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountSubscriptionsByStatus(ctx context.Context, status db_models.SubscriptionStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Subscription{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// interval must be a date_trunc unit; the service validates before calling.
func (r *dashboardRepository) RevenueSeries(ctx context.Context, start, end time.Time, interval string) ([]BucketSum, error) {
	var rows []BucketSum
	err := r.db.WithContext(ctx).
		Table("transactions").
		Select("date_trunc(?, to_timestamp(paid_at)) AS bucket, SUM(amount_minor) AS sum", interval).
		Where("status = ? AND paid_at BETWEEN ? AND ? AND deleted_at IS NULL",
			db_models.TxnStatusPaid, start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) NewUsersSeries(ctx context.Context, start, end time.Time, interval string) ([]BucketSum, error) {
	var rows []BucketSum
	err := r.db.WithContext(ctx).
		Table("accounts").
		Select("date_trunc(?, to_timestamp(created_at)) AS bucket, COUNT(*) AS sum", interval).
		Where("created_at BETWEEN ? AND ? AND deleted_at IS NULL", start.Unix(), end.Unix()).
		Group("bucket").
		Order("bucket ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
