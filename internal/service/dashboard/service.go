package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/dashboard"
	"golang.org/x/sync/errgroup"
)

// contractWindow is how far ahead ending contracts are counted.
const contractWindow = 30

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, loc *time.Location) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		loc:                 loc,
		now:                 time.Now,
	}
}

// today returns the facility-local date as a UTC midnight, matching work_date.
func (s *DashboardServiceImpl) today() time.Time {
	local := s.now().In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Counts returns the dashboard headline numbers using parallel goroutines
func (s *DashboardServiceImpl) Counts(ctx context.Context) (dashboard.CountsResponse, error) {
	var resp dashboard.CountsResponse
	today := s.today()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountEmployees(gCtx)
		resp.Employees = n
		return err
	})
	g.Go(func() error {
		n, err := s.CountHRs(gCtx)
		resp.HRs = n
		return err
	})
	g.Go(func() error {
		n, err := s.CountPendingLeave(gCtx)
		resp.PendingLeave = n
		return err
	})
	g.Go(func() error {
		n, err := s.CountCheckedIn(gCtx, today)
		resp.CheckedInToday = n
		return err
	})
	g.Go(func() error {
		n, err := s.CountContractsEndingBetween(gCtx, today, today.AddDate(0, 0, contractWindow))
		resp.ContractsEnding = n
		return err
	})
	g.Go(func() error {
		groups, err := s.GroupByDepartment(gCtx)
		resp.Departments = int64(len(groups))
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.CountsResponse{}, err
	}
	return resp, nil
}

func (s *DashboardServiceImpl) GenderSummary(ctx context.Context) (dashboard.GenderSummaryResponse, error) {
	groups, err := s.GroupByGender(ctx)
	if err != nil {
		return dashboard.GenderSummaryResponse{}, err
	}

	var resp dashboard.GenderSummaryResponse
	for _, g := range groups {
		switch g.Key {
		case "male":
			resp.Male = g.Count
		case "female":
			resp.Female = g.Count
		}
	}
	return resp, nil
}

func (s *DashboardServiceImpl) DepartmentSummary(ctx context.Context) (dashboard.DepartmentSummaryResponse, error) {
	groups, err := s.GroupByDepartment(ctx)
	if err != nil {
		return dashboard.DepartmentSummaryResponse{}, err
	}
	if groups == nil {
		groups = []dashboard.GroupCount{}
	}
	return dashboard.DepartmentSummaryResponse{Departments: groups}, nil
}
