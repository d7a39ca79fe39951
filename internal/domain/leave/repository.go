package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// Decide sets a terminal status only while the request is still pending.
	// It reports false when another decision won.
	Decide(ctx context.Context, id string, status LeaveRequestStatus, approverID string, decidedAt time.Time) (bool, error)
	// DeleteOwned removes the request only if employeeID owns it.
	DeleteOwned(ctx context.Context, id string, employeeID string) error
	ListAll(ctx context.Context) ([]LeaveRequest, error)
	ListPending(ctx context.Context) ([]LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
}
