package dashboard

import (
	"context"
	"time"
)

// DashboardRepository runs the aggregate queries behind the HR dashboard
type DashboardRepository interface {
	CountEmployees(ctx context.Context) (int64, error)
	CountHRs(ctx context.Context) (int64, error)
	CountPendingLeave(ctx context.Context) (int64, error)
	// CountCheckedIn counts attendances with a check-in on workDate
	CountCheckedIn(ctx context.Context, workDate time.Time) (int64, error)
	// CountContractsEndingBetween counts contracts ending in [from, to]
	CountContractsEndingBetween(ctx context.Context, from, to time.Time) (int64, error)

	GroupByGender(ctx context.Context) ([]GroupCount, error)
	// GroupByDepartment orders by count descending, then department name
	GroupByDepartment(ctx context.Context) ([]GroupCount, error)
}
