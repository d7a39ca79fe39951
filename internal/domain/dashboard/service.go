package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// Counts fans the count queries out concurrently
	Counts(ctx context.Context) (CountsResponse, error)
	GenderSummary(ctx context.Context) (GenderSummaryResponse, error)
	DepartmentSummary(ctx context.Context) (DepartmentSummaryResponse, error)
}
