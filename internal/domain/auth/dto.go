package auth

import (
	"strings"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	}
	if r.Password == "" {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Role      string `json:"role"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OldPassword == "" {
		errs.Add("old_password", "old_password is required")
	}
	if !validator.IsValidPassword(r.NewPassword) {
		errs.Add("new_password", "new_password must be at least 6 characters")
	}

	return errs.Err()
}

type RequestPasswordResetRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	// Role narrows the account lookup. Empty searches employee, hr, admin in order.
	Role string `json:"role,omitempty"`
}

func (r *RequestPasswordResetRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)

	if r.Username == "" {
		errs.Add("username", "username is required")
	}
	if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	if r.Role != "" {
		if _, ok := user.ParseRole(r.Role); !ok {
			errs.Add("role", "role must be one of admin, hr, employee")
		}
	}

	return errs.Err()
}

type ResetPasswordRequest struct {
	Username    string `json:"username"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

func (r *ResetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Username = strings.TrimSpace(r.Username)
	r.OTP = strings.TrimSpace(r.OTP)

	if r.Username == "" {
		errs.Add("username", "username is required")
	}
	if !validator.IsValidOTP(r.OTP) {
		errs.Add("otp", "otp must be a 6 digit code")
	}
	if !validator.IsValidPassword(r.NewPassword) {
		errs.Add("new_password", "new_password must be at least 6 characters")
	}

	return errs.Err()
}
