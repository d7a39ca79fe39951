package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/email"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	auth.ResetTokenRepository

	accounts map[user.Role]user.AccountRepository
	tx       database.Transactor
	jwt      jwt.Service
	mailer   email.EmailService
	now      func() time.Time
	newOTP   func() (string, error)
}

func NewAuthService(
	accounts map[user.Role]user.AccountRepository,
	resetTokens auth.ResetTokenRepository,
	tx database.Transactor,
	jwtService jwt.Service,
	mailer email.EmailService,
) auth.AuthService {
	return &AuthServiceImpl{
		accounts:             accounts,
		ResetTokenRepository: resetTokens,
		tx:                   tx,
		jwt:                  jwtService,
		mailer:               mailer,
		now:                  time.Now,
		newOTP:               generateOTP,
	}
}

func (a *AuthServiceImpl) repo(role user.Role) (user.AccountRepository, error) {
	repo, ok := a.accounts[role]
	if !ok {
		return nil, fmt.Errorf("no account repository for role %q", role)
	}
	return repo, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, role user.Role, req auth.LoginRequest) (auth.TokenResponse, error) {
	repo, err := a.repo(role)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := repo.GetAccountByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to load account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwt.GenerateAccessToken(account.ID, string(role))
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      string(role),
		UserID:    account.ID,
		Username:  account.Username,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrMissingToken
	}
	a.jwt.RevokeToken(token)
	return nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, role user.Role, accountID string, req auth.ChangePasswordRequest) error {
	repo, err := a.repo(role)
	if err != nil {
		return err
	}

	account, err := repo.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.OldPassword)); err != nil {
		return auth.ErrOldPasswordMismatch
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return repo.UpdatePasswordHash(ctx, accountID, hash)
}

// RequestPasswordReset implements auth.AuthService.
func (a *AuthServiceImpl) RequestPasswordReset(ctx context.Context, req auth.RequestPasswordResetRequest) error {
	roles := user.ResetLookupOrder
	if req.Role != "" {
		role, _ := user.ParseRole(req.Role)
		roles = []user.Role{role}
	}

	account, err := a.findAccount(ctx, req.Username, roles)
	if err != nil {
		return err
	}
	// Accounts without a stored email cannot receive an OTP.
	if account.Email == nil || !strings.EqualFold(strings.TrimSpace(*account.Email), strings.TrimSpace(req.Email)) {
		return user.ErrUserNotFound
	}

	otp, err := a.newOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	token := auth.ResetToken{
		Username:  account.Username,
		OTP:       otp,
		Role:      account.Role,
		ExpiresAt: a.now().Add(auth.OTPLifetime),
	}
	if err := a.ResetTokenRepository.Upsert(ctx, token); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := a.mailer.SendPasswordResetOTP(req.Email, account.Username, otp, token.ExpiresAt); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}

	slog.Info("Password reset OTP issued", "username", account.Username, "role", account.Role)
	return nil
}

// findAccount returns the first account matching username in roles order.
func (a *AuthServiceImpl) findAccount(ctx context.Context, username string, roles []user.Role) (user.Account, error) {
	for _, role := range roles {
		repo, ok := a.accounts[role]
		if !ok {
			continue
		}
		account, err := repo.GetAccountByUsername(ctx, username)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, user.ErrUserNotFound) {
			return user.Account{}, err
		}
	}
	return user.Account{}, user.ErrUserNotFound
}

// ResetPassword implements auth.AuthService.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	expired := false
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		token, err := a.ResetTokenRepository.Consume(ctx, req.Username, req.OTP)
		if err != nil {
			if errors.Is(err, auth.ErrResetTokenNotFound) {
				return auth.ErrInvalidOTP
			}
			return err
		}

		// Commit the delete so an expired OTP is gone either way.
		if token.Expired(a.now()) {
			expired = true
			return nil
		}

		repo, err := a.repo(token.Role)
		if err != nil {
			return err
		}
		account, err := repo.GetAccountByUsername(ctx, token.Username)
		if err != nil {
			return err
		}
		return repo.UpdatePasswordHash(ctx, account.ID, hash)
	})
	if err != nil {
		return err
	}
	if expired {
		return auth.ErrOTPExpired
	}
	return nil
}

// PurgeExpiredResetTokens implements auth.AuthService.
func (a *AuthServiceImpl) PurgeExpiredResetTokens(ctx context.Context) error {
	n, err := a.ResetTokenRepository.DeleteExpired(ctx, a.now())
	if err != nil {
		return fmt.Errorf("failed to purge reset tokens: %w", err)
	}
	if n > 0 {
		slog.Info("Expired reset tokens purged", "count", n)
	}
	return nil
}

// HashPassword bcrypt-hashes password at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func generateOTP() (string, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", auth.OTPLength, n.Int64()), nil
}
