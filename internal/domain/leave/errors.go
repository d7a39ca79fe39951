package leave

import (
	"errors"
	"fmt"
)

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInsufficientAnnualLeave      = errors.New("insufficient annual leave")
)

// InsufficientBalanceError carries the counts shown to the employee.
type InsufficientBalanceError struct {
	Requested int
	Remaining int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient annual leave: requested %d day(s), remaining %d day(s)", e.Requested, e.Remaining)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientAnnualLeave
}
