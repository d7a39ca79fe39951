package auth

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, role user.Role, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, role user.Role, accountID string, req ChangePasswordRequest) error
	RequestPasswordReset(ctx context.Context, req RequestPasswordResetRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	PurgeExpiredResetTokens(ctx context.Context) error
}
