package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/admin"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/announcement"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/hr"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/leave"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/salary"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-portal-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var balanceErr *leave.InsufficientBalanceError
	if errors.As(err, &balanceErr) {
		BadRequest(w, balanceErr.Error(), map[string]string{
			"requested": strconv.Itoa(balanceErr.Requested),
			"remaining": strconv.Itoa(balanceErr.Remaining),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrOldPasswordMismatch),
		errors.Is(err, auth.ErrInvalidOTP),
		errors.Is(err, auth.ErrOTPExpired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrRoleAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already registered")

	// Not found
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, admin.ErrAdminNotFound):
		NotFound(w, "Admin not found")
	case errors.Is(err, hr.ErrHRNotFound):
		NotFound(w, "HR not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, salary.ErrSalarySlipNotFound):
		NotFound(w, "Salary slip not found")
	case errors.Is(err, announcement.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Attendance rules
	case errors.Is(err, attendance.ErrOpenSessionExists),
		errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNoAttendance),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut):
		BadRequest(w, err.Error(), nil)

	// Leave, uploads and imports
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		BadRequest(w, "Leave request already processed", nil)
	case errors.Is(err, salary.ErrInvalidArchive),
		errors.Is(err, salary.ErrEmptyUpload),
		errors.Is(err, employee.ErrEmptyImport),
		errors.Is(err, employee.ErrInvalidSpreadsheet),
		errors.Is(err, file.ErrUnsupportedImage):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
