package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	Type      string  `json:"type"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason,omitempty"`

	start time.Time
	end   time.Time
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if !LeaveType(r.Type).Valid() {
		errs.Add("type", "type must be one of sick, annual, personal, maternity, other")
	}

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs.Add("startDate", "startDate must be in YYYY-MM-DD format")
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs.Add("endDate", "endDate must be in YYYY-MM-DD format")
	}
	if okStart && okEnd && end.Before(start) {
		errs.Add("endDate", "endDate must not be before startDate")
	}

	if err := errs.Err(); err != nil {
		return err
	}
	r.start, r.end = start, end
	return nil
}

// Dates returns the parsed range. Validate must have passed.
func (r SubmitLeaveRequest) Dates() (time.Time, time.Time) {
	return r.start, r.end
}

type DecisionRequest struct {
	Status string `json:"status"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Status != string(LeaveRequestStatusApproved) && r.Status != string(LeaveRequestStatusRejected) {
		errs.Add("status", "status must be approved or rejected")
	}

	return errs.Err()
}

type LeaveRequestResponse struct {
	ID           string             `json:"id"`
	EmployeeID   string             `json:"employee_id"`
	EmployeeName *string            `json:"employee_name,omitempty"`
	Department   *string            `json:"department,omitempty"`
	Type         LeaveType          `json:"type"`
	StartDate    string             `json:"startDate"`
	EndDate      string             `json:"endDate"`
	TotalDays    int                `json:"totalDays"`
	Reason       *string            `json:"reason,omitempty"`
	Status       LeaveRequestStatus `json:"status"`
	RequestedAt  time.Time          `json:"requestedAt"`
	ApprovedBy   *string            `json:"approvedBy"`
	DecidedAt    *time.Time         `json:"decidedAt,omitempty"`
}

func NewLeaveRequestResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           lr.ID,
		EmployeeID:   lr.EmployeeID,
		EmployeeName: lr.EmployeeName,
		Department:   lr.Department,
		Type:         lr.Type,
		StartDate:    lr.StartDate.Format(validator.DateLayout),
		EndDate:      lr.EndDate.Format(validator.DateLayout),
		TotalDays:    lr.TotalDays,
		Reason:       lr.Reason,
		Status:       lr.Status,
		RequestedAt:  lr.RequestedAt,
		ApprovedBy:   lr.ApprovedBy,
		DecidedAt:    lr.DecidedAt,
	}
}

func NewLeaveRequestResponses(items []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, len(items))
	for i, lr := range items {
		out[i] = NewLeaveRequestResponse(lr)
	}
	return out
}
