package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-portal-go/internal/handler/http/response"
)

type AuthHandler interface {
	// Login authenticates against role's accounts.
	Login(role user.Role) http.HandlerFunc
	Logout(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
	RequestPasswordReset(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(role user.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var loginReq auth.LoginRequest
		if !decodeJSON(w, r, &loginReq) {
			return
		}

		if err := loginReq.Validate(); err != nil {
			response.HandleError(w, err)
			return
		}

		tokenResponse, err := a.authService.Login(r.Context(), role, loginReq)
		if err != nil {
			slog.Warn("Login failed", "role", role, "username", loginReq.Username, "error", err)
			response.HandleError(w, err)
			return
		}

		slog.Info("User logged in", "role", role, "user_id", tokenResponse.UserID)
		response.SuccessWithMessage(w, "Login successful", tokenResponse)
	}
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.authService.Logout(r.Context(), middleware.RawTokenFromContext(r.Context())); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// ChangePassword implements AuthHandler.
func (a *AuthHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	id := caller(r)
	if err := a.authService.ChangePassword(r.Context(), id.Role, id.ID, req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Password changed successfully", nil)
}

// RequestPasswordReset implements AuthHandler.
func (a *AuthHandlerImpl) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req auth.RequestPasswordResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := a.authService.RequestPasswordReset(r.Context(), req); err != nil {
		slog.Error("RequestPasswordReset service error", "username", req.Username, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "OTP has been sent to your email", nil)
}

// ResetPassword implements AuthHandler.
func (a *AuthHandlerImpl) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := a.authService.ResetPassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Password reset successfully", "username", req.Username)
	response.SuccessWithMessage(w, "Password has been reset successfully", nil)
}
