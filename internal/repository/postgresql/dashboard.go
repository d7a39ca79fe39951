package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := GetQuerier(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees`)
}

func (r *dashboardRepositoryImpl) CountHRs(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM hrs`)
}

func (r *dashboardRepositoryImpl) CountPendingLeave(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = 'pending'`)
}

func (r *dashboardRepositoryImpl) CountCheckedIn(ctx context.Context, workDate time.Time) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM attendances WHERE work_date = $1 AND check_in IS NOT NULL`, workDate)
}

func (r *dashboardRepositoryImpl) CountContractsEndingBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees WHERE contract_end_date BETWEEN $1 AND $2`, from, to)
}

func (r *dashboardRepositoryImpl) group(ctx context.Context, query string) ([]dashboard.GroupCount, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []dashboard.GroupCount{}
	for rows.Next() {
		var g dashboard.GroupCount
		if err := rows.Scan(&g.Key, &g.Count); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *dashboardRepositoryImpl) GroupByGender(ctx context.Context) ([]dashboard.GroupCount, error) {
	return r.group(ctx, `SELECT gender, COUNT(*) FROM employees GROUP BY gender ORDER BY gender`)
}

func (r *dashboardRepositoryImpl) GroupByDepartment(ctx context.Context) ([]dashboard.GroupCount, error) {
	return r.group(ctx, `
		SELECT COALESCE(NULLIF(department, ''), 'Unassigned') AS dept, COUNT(*) AS n
		FROM employees
		GROUP BY dept
		ORDER BY n DESC, dept
	`)
}
