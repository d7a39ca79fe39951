package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/attendance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Config places the working day in the facility's time zone.
type Config struct {
	Location     *time.Location
	CheckoutHour int
	CheckoutMin  int
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	cfg Config
	now func() time.Time
}

func NewAttendanceService(repo attendance.AttendanceRepository, cfg Config) attendance.AttendanceService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		cfg:                  cfg,
		now:                  time.Now,
	}
}

// workDate returns the facility-local calendar day of t as a UTC midnight.
func (s *AttendanceServiceImpl) workDate(t time.Time) time.Time {
	local := t.In(s.cfg.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	now := s.now()

	latest, err := s.AttendanceRepository.GetLatest(ctx, employeeID)
	switch {
	case err == nil:
		if latest.IsOpen() {
			return attendance.AttendanceResponse{}, attendance.ErrOpenSessionExists
		}
	case errors.Is(err, attendance.ErrAttendanceNotFound):
	default:
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load latest attendance: %w", err)
	}

	today := s.workDate(now)
	if _, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today); err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		ID:         id.String(),
		EmployeeID: employeeID,
		WorkDate:   today,
		CheckIn:    &now,
		WorkHours:  decimal.Zero,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	latest, err := s.AttendanceRepository.GetLatest(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNoAttendance
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load latest attendance: %w", err)
	}
	if latest.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if latest.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	now := s.now()
	latest.CheckOut = &now
	latest.WorkHours = attendance.WorkHoursBetween(*latest.CheckIn, now)
	if err := s.AttendanceRepository.Close(ctx, latest); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(latest), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	a, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, s.workDate(s.now()))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := attendance.NewAttendanceResponse(a)
	return &resp, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	records, err := s.AttendanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	out := make([]attendance.AttendanceResponse, len(records))
	for i, a := range records {
		out[i] = attendance.NewAttendanceResponse(a)
	}
	return out, nil
}

// AutoCheckout implements attendance.AttendanceService. Sessions opened after
// the cut-off are closed at their own check-in time with zero hours.
func (s *AttendanceServiceImpl) AutoCheckout(ctx context.Context, now time.Time) (attendance.AutoCheckoutResult, error) {
	var result attendance.AutoCheckoutResult

	day := s.workDate(now)
	local := now.In(s.cfg.Location)
	cutoff := time.Date(local.Year(), local.Month(), local.Day(), s.cfg.CheckoutHour, s.cfg.CheckoutMin, 0, 0, s.cfg.Location)

	open, err := s.AttendanceRepository.ListOpenOn(ctx, day)
	if err != nil {
		return result, fmt.Errorf("failed to list open attendances: %w", err)
	}

	for _, a := range open {
		checkOut := cutoff
		if a.CheckIn.After(cutoff) {
			checkOut = *a.CheckIn
		}
		a.CheckOut = &checkOut
		a.WorkHours = attendance.WorkHoursBetween(*a.CheckIn, checkOut)
		a.AutoClosed = true

		if err := s.AttendanceRepository.Close(ctx, a); err != nil {
			if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
				continue
			}
			result.Failed++
			slog.Error("auto checkout failed", "attendance_id", a.ID, "employee_id", a.EmployeeID, "error", err)
			continue
		}
		result.Closed++
	}

	return result, nil
}
