package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// Today returns nil when the employee has no record for today.
	Today(ctx context.Context, employeeID string) (*AttendanceResponse, error)
	History(ctx context.Context, employeeID string) ([]AttendanceResponse, error)

	// AutoCheckout closes every session opened on now's facility day at the cut-off time.
	AutoCheckout(ctx context.Context, now time.Time) (AutoCheckoutResult, error)
}
