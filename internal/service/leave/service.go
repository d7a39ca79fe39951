package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/notification"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/email"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	tx           database.Transactor
	notifier     notification.Service
	hrEmail      string
	now          func() time.Time
}

func NewLeaveService(
	requestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	tx database.Transactor,
	notifier notification.Service,
	hrEmail string,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: requestRepo,
		employeeRepo:           employeeRepo,
		tx:                     tx,
		notifier:               notifier,
		hrEmail:                hrEmail,
		now:                    time.Now,
	}
}

// ensureLeaveInfo returns the employee's balance, persisting the default one
// the first time it is needed.
func (s *LeaveServiceImpl) ensureLeaveInfo(ctx context.Context, emp employee.Employee) (employee.LeaveInfo, error) {
	if emp.LeaveInfo != nil {
		return *emp.LeaveInfo, nil
	}
	info := employee.DefaultLeaveInfo()
	if err := s.employeeRepo.SetLeaveInfo(ctx, emp.ID, info); err != nil {
		return employee.LeaveInfo{}, fmt.Errorf("failed to initialise leave info: %w", err)
	}
	return info, nil
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, employeeID string, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	start, end := req.Dates()
	totalDays := leave.TotalDays(start, end)

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	info, err := s.ensureLeaveInfo(ctx, emp)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveType := leave.LeaveType(req.Type)
	if leaveType == leave.LeaveTypeAnnual && totalDays > info.Remaining {
		return leave.LeaveRequestResponse{}, &leave.InsufficientBalanceError{
			Requested: totalDays,
			Remaining: info.Remaining,
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		ID:          id.String(),
		EmployeeID:  employeeID,
		Type:        leaveType,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      leave.LeaveRequestStatusPending,
		RequestedAt: s.now(),
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	created.EmployeeName = &emp.Name
	created.Department = &emp.Department

	s.notifyHR(ctx, emp, created)

	return leave.NewLeaveRequestResponse(created), nil
}

// notifyHR queues the HR mail. The request is already stored, so failures
// are only logged.
func (s *LeaveServiceImpl) notifyHR(ctx context.Context, emp employee.Employee, lr leave.LeaveRequest) {
	if s.notifier == nil || s.hrEmail == "" {
		slog.Warn("leave request notification skipped, no HR recipient configured", "leave_request_id", lr.ID)
		return
	}

	notice := email.LeaveRequestNotice{
		EmployeeName: emp.Name,
		Department:   emp.Department,
		Type:         string(lr.Type),
		StartDate:    lr.StartDate.Format(validator.DateLayout),
		EndDate:      lr.EndDate.Format(validator.DateLayout),
		TotalDays:    lr.TotalDays,
	}
	if lr.Reason != nil {
		notice.Reason = *lr.Reason
	}

	err := s.notifier.Queue(ctx, notification.Notification{
		Type:         notification.TypeLeaveRequest,
		Recipient:    s.hrEmail,
		LeaveRequest: &notice,
	})
	if err != nil {
		slog.Error("failed to queue leave request notification", "leave_request_id", lr.ID, "error", err)
	}
}

// Decide implements leave.LeaveService.
func (s *LeaveServiceImpl) Decide(ctx context.Context, requestID string, req leave.DecisionRequest, approverID string) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	status := leave.LeaveRequestStatus(req.Status)

	var decided leave.LeaveRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		lr, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if lr.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		decidedAt := s.now()
		ok, err := s.LeaveRequestRepository.Decide(ctx, requestID, status, approverID, decidedAt)
		if err != nil {
			return err
		}
		if !ok {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		if status == leave.LeaveRequestStatusApproved && lr.Type == leave.LeaveTypeAnnual {
			days := leave.TotalDays(lr.StartDate, lr.EndDate)
			_, err := s.employeeRepo.AddUsedAnnualLeave(ctx, lr.EmployeeID, days)
			switch {
			case errors.Is(err, employee.ErrEmployeeNotFound):
				// Deleted employees keep their requests; there is no balance left to charge.
				slog.Warn("Approved leave for deleted employee", "request_id", requestID, "employee_id", lr.EmployeeID)
			case err != nil:
				return fmt.Errorf("failed to deduct annual leave: %w", err)
			}
		}

		lr.Status = status
		lr.ApprovedBy = &approverID
		lr.DecidedAt = &decidedAt
		decided = lr
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(decided), nil
}

// Delete implements leave.LeaveService.
func (s *LeaveServiceImpl) Delete(ctx context.Context, requestID string, employeeID string) error {
	return s.LeaveRequestRepository.DeleteOwned(ctx, requestID, employeeID)
}

func (s *LeaveServiceImpl) ListAll(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	items, err := s.LeaveRequestRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return leave.NewLeaveRequestResponses(items), nil
}

func (s *LeaveServiceImpl) ListPending(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	items, err := s.LeaveRequestRepository.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return leave.NewLeaveRequestResponses(items), nil
}

func (s *LeaveServiceImpl) ListMine(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	items, err := s.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return leave.NewLeaveRequestResponses(items), nil
}

// LeaveInfo implements leave.LeaveService.
func (s *LeaveServiceImpl) LeaveInfo(ctx context.Context, employeeID string) (employee.LeaveInfo, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.LeaveInfo{}, err
		}
		return employee.LeaveInfo{}, fmt.Errorf("failed to load employee: %w", err)
	}
	return s.ensureLeaveInfo(ctx, emp)
}
