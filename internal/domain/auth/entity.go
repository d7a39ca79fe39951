package auth

import (
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/user"
)

const (
	OTPLength   = 6
	OTPLifetime = 10 * time.Minute
)

// ResetToken is the pending OTP for one username.
type ResetToken struct {
	Username  string
	OTP       string
	Role      user.Role
	ExpiresAt time.Time
}

// Expired reports whether the OTP is past its expiry at now.
func (t ResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
