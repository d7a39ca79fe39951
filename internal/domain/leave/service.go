package leave

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
)

type LeaveService interface {
	Submit(ctx context.Context, employeeID string, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	Decide(ctx context.Context, requestID string, req DecisionRequest, approverID string) (LeaveRequestResponse, error)
	Delete(ctx context.Context, requestID string, employeeID string) error

	ListAll(ctx context.Context) ([]LeaveRequestResponse, error)
	ListPending(ctx context.Context) ([]LeaveRequestResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	// LeaveInfo initialises the balance when the employee has none yet.
	LeaveInfo(ctx context.Context, employeeID string) (employee.LeaveInfo, error)
}
