package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	// CreateBatch inserts all rows or none.
	CreateBatch(ctx context.Context, employees []Employee) error
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, error)
	ListNameRefs(ctx context.Context) ([]NameRef, error)
	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id string) error

	SetLeaveInfo(ctx context.Context, id string, info LeaveInfo) error
	// AddUsedAnnualLeave moves days from remaining to used without a floor.
	AddUsedAnnualLeave(ctx context.Context, id string, days int) (LeaveInfo, error)
	SetSalarySlip(ctx context.Context, id string, path *string) error
}
