package cron

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAttendance struct {
	attendance.AttendanceService
	calledWith time.Time
}

func (r *recordingAttendance) AutoCheckout(ctx context.Context, now time.Time) (attendance.AutoCheckoutResult, error) {
	r.calledWith = now
	return attendance.AutoCheckoutResult{Closed: 2}, nil
}

type recordingAuth struct {
	auth.AuthService
	purged int
}

func (r *recordingAuth) PurgeExpiredResetTokens(ctx context.Context) error {
	r.purged++
	return nil
}

func TestAttendanceJobs_AutoCheckout(t *testing.T) {
	svc := &recordingAttendance{}
	jobs := NewAttendanceJobs(svc, DailyTime{Hour: 17, Location: time.UTC})
	fixed := time.Date(2024, 3, 4, 17, 0, 1, 0, time.UTC)
	jobs.now = func() time.Time { return fixed }

	s := NewScheduler()
	jobs.RegisterJobs(s)
	s.RunOnce(context.Background())

	assert.Equal(t, fixed, svc.calledWith)
}

func TestMaintenanceJobs(t *testing.T) {
	tokens, err := jwt.NewJWTService("secret", "1ms")
	require.NoError(t, err)
	token, _, err := tokens.GenerateAccessToken("emp-1", "employee")
	require.NoError(t, err)
	tokens.RevokeToken(token)

	authSvc := &recordingAuth{}
	jobs := NewMaintenanceJobs(tokens, authSvc)

	time.Sleep(1100 * time.Millisecond)
	s := NewScheduler()
	jobs.RegisterJobs(s)
	s.RunOnce(context.Background())

	assert.Equal(t, 1, authSvc.purged)
	assert.Equal(t, 0, tokens.PurgeExpired(), "expired revocation was already evicted")
}
