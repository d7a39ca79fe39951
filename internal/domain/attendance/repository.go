package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetLatest returns the employee's most recent record by check-in.
	GetLatest(ctx context.Context, employeeID string) (Attendance, error)

	// GetByEmployeeAndDate returns the record keyed by (employee, work date).
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (Attendance, error)

	// Close sets check-out and work hours on an open record.
	Close(ctx context.Context, attendance Attendance) error

	// ListByEmployee returns records newest check-in first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)

	// ListOpenOn returns records for workDate that have a check-in and no check-out.
	ListOpenOn(ctx context.Context, workDate time.Time) ([]Attendance, error)
}
