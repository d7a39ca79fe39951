package leave

import (
	"math"
	"time"
)

type LeaveType string

const (
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeAnnual    LeaveType = "annual"
	LeaveTypePersonal  LeaveType = "personal"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypeOther     LeaveType = "other"
)

var LeaveTypes = []LeaveType{LeaveTypeSick, LeaveTypeAnnual, LeaveTypePersonal, LeaveTypeMaternity, LeaveTypeOther}

func (t LeaveType) Valid() bool {
	for _, lt := range LeaveTypes {
		if t == lt {
			return true
		}
	}
	return false
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

type LeaveRequest struct {
	ID          string
	EmployeeID  string
	Type        LeaveType
	StartDate   time.Time
	EndDate     time.Time
	TotalDays   int
	Reason      *string
	Status      LeaveRequestStatus
	RequestedAt time.Time
	ApprovedBy  *string
	DecidedAt   *time.Time

	// Join
	EmployeeName *string
	Department   *string
}

// TotalDays counts calendar days from start to end inclusive.
func TotalDays(start, end time.Time) int {
	days := math.Ceil(float64(end.Sub(start).Milliseconds()) / 86_400_000)
	return int(days) + 1
}
