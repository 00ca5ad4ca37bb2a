package response_models

import "time"

type TimeRange struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Interval string    `json:"interval"` // day | week | month
	Timezone string    `json:"timezone"`
}

type SeriesPoint struct {
	Bucket time.Time `json:"bucket"`
	Value  int64     `json:"value"`
}

type DashboardReport struct {
	TotalUsers     int64 `json:"total_users"`
	NewUsers       int64 `json:"new_users"`
	TotalSurveys   int64 `json:"total_surveys"`
	TotalResponses int64 `json:"total_responses"`

	ActiveSubscriptions   int64 `json:"active_subscriptions"`
	TrialingSubscriptions int64 `json:"trialing_subscriptions"`
	CanceledSubscriptions int64 `json:"canceled_subscriptions"`

	TotalRevenueMinor int64         `json:"total_revenue_minor"`
	RevenueSeries     []SeriesPoint `json:"revenue_series"`
	NewUsersSeries    []SeriesPoint `json:"new_users_series"`
}

type PagedUsers struct {
	Users    []AccountResponse `json:"users"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Total    int64             `json:"total"`
}
