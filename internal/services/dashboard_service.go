package services

import (
	"context"
	"time"

	"formloom/internal/models/db_models"
	"formloom/internal/models/response_models"
	"formloom/internal/repositories"
	"formloom/pkg/utils"
)

type DashboardServiceInterface interface {
	Report(ctx context.Context, rng response_models.TimeRange) (*response_models.DashboardReport, error)
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepository
}

func NewDashboardService(dashboardRepo repositories.DashboardRepository) DashboardServiceInterface {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// normalizeRange fills in defaults: last 30 days, daily buckets, UTC.
func normalizeRange(rng response_models.TimeRange) (response_models.TimeRange, error) {
	loc := time.UTC
	if rng.Timezone != "" {
		parsed, err := time.LoadLocation(rng.Timezone)
		if err != nil {
			return rng, utils.ValidationError("Unknown timezone: " + rng.Timezone)
		}
		loc = parsed
	}

	now := time.Now().In(loc)
	if rng.End.IsZero() {
		rng.End = now
	}
	if rng.Start.IsZero() {
		rng.Start = rng.End.AddDate(0, 0, -30)
	}
	if rng.Start.After(rng.End) {
		return rng, utils.ValidationError("Range start must be before its end")
	}

	switch rng.Interval {
	case "":
		rng.Interval = "day"
	case "day", "week", "month":
	default:
		return rng, utils.ValidationError("Interval must be day, week or month")
	}
	rng.Timezone = loc.String()
	return rng, nil
}

func (s *DashboardService) Report(ctx context.Context, rng response_models.TimeRange) (*response_models.DashboardReport, error) {
	rng, err := normalizeRange(rng)
	if err != nil {
		return nil, err
	}

	report := &response_models.DashboardReport{}
	if report.TotalUsers, err = s.dashboardRepo.CountTotalAccounts(ctx); err != nil {
		return nil, utils.DatabaseError(err)
	}
	if report.NewUsers, err = s.dashboardRepo.CountNewAccounts(ctx, rng.Start, rng.End); err != nil {
		return nil, utils.DatabaseError(err)
	}
	if report.TotalSurveys, err = s.dashboardRepo.CountTotalSurveys(ctx); err != nil {
		return nil, utils.DatabaseError(err)
	}
	if report.TotalResponses, err = s.dashboardRepo.CountTotalResponses(ctx); err != nil {
		return nil, utils.DatabaseError(err)
	}

	type statusCount struct {
		status db_models.SubscriptionStatus
		dest   *int64
	}
	for _, sc := range []statusCount{
		{db_models.SubStatusActive, &report.ActiveSubscriptions},
		{db_models.SubStatusTrialing, &report.TrialingSubscriptions},
		{db_models.SubStatusCanceled, &report.CanceledSubscriptions},
	} {
		count, err := s.dashboardRepo.CountSubscriptionsByStatus(ctx, sc.status)
		if err != nil {
			return nil, utils.DatabaseError(err)
		}
		*sc.dest = count
	}

	revenue, err := s.dashboardRepo.RevenueSeries(ctx, rng.Start, rng.End, rng.Interval)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	report.RevenueSeries = toSeries(revenue)
	for _, p := range report.RevenueSeries {
		report.TotalRevenueMinor += p.Value
	}

	newUsers, err := s.dashboardRepo.NewUsersSeries(ctx, rng.Start, rng.End, rng.Interval)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	report.NewUsersSeries = toSeries(newUsers)

	return report, nil
}

func toSeries(rows []repositories.BucketSum) []response_models.SeriesPoint {
	out := make([]response_models.SeriesPoint, len(rows))
	for i, r := range rows {
		out[i] = response_models.SeriesPoint{Bucket: r.Bucket, Value: r.Sum}
	}
	return out
}
