package auth

import (
	"context"
	"time"
)

type ResetTokenRepository interface {
	// Upsert replaces any pending OTP for the same username.
	Upsert(ctx context.Context, token ResetToken) error
	// Consume deletes and returns the token matching username and otp.
	Consume(ctx context.Context, username, otp string) (ResetToken, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
