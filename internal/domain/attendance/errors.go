package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrOpenSessionExists = errors.New("you have not checked out of your previous session")
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")

	// Check-out errors
	ErrNoAttendance      = errors.New("no attendance record found")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)
