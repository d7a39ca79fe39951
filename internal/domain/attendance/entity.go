package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Attendance struct {
	ID         string
	EmployeeID string
	// WorkDate is the facility-local calendar day of the check-in.
	WorkDate   time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	WorkHours  decimal.Decimal
	AutoClosed bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOpen reports a checked-in session that has not been closed.
func (a Attendance) IsOpen() bool {
	return a.CheckIn != nil && a.CheckOut == nil
}

// WorkHoursBetween returns the elapsed hours rounded half away from zero to 2 places.
func WorkHoursBetween(checkIn, checkOut time.Time) decimal.Decimal {
	ms := decimal.NewFromInt(checkOut.Sub(checkIn).Milliseconds())
	return ms.Div(decimal.NewFromInt(3_600_000)).Round(2)
}
