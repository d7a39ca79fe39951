package attendance

import "time"

type AttendanceResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Date       string     `json:"date"`
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
	WorkHours  float64    `json:"work_hours"`
	AutoClosed bool       `json:"auto_closed"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	hours, _ := a.WorkHours.Float64()
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.WorkDate.Format("2006-01-02"),
		CheckIn:    a.CheckIn,
		CheckOut:   a.CheckOut,
		WorkHours:  hours,
		AutoClosed: a.AutoClosed,
	}
}

type AutoCheckoutResult struct {
	Closed int `json:"closed"`
	Failed int `json:"failed"`
}
